package database

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"go-vagas-pipeline/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWhere(t *testing.T) {
	where, args := buildWhere(models.JobFilter{})
	assert.Empty(t, where)
	assert.Nil(t, args)

	where, args = buildWhere(models.JobFilter{Sector: "Vendas", State: "sp", Seniority: " "})
	assert.Equal(t, " WHERE sector ILIKE $1 AND location_state = upper($2)", where)
	assert.Equal(t, []any{"Vendas", "sp"}, args)

	where, args = buildWhere(models.JobFilter{City: "Campinas", Modality: "Remoto", Seniority: "Júnior"})
	assert.Equal(t, " WHERE location_city ILIKE $1 AND modality ILIKE $2 AND seniority ILIKE $3", where)
	assert.Len(t, args, 3)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, ClampLimit(0))
	assert.Equal(t, DefaultLimit, ClampLimit(-5))
	assert.Equal(t, 50, ClampLimit(50))
	assert.Equal(t, MaxLimit, ClampLimit(1000))
}

func TestUpsertArgs(t *testing.T) {
	args := upsertArgs(models.Job{ExternalID: "abc", Title: "Vendedor"}, "run-1")

	assert.Equal(t, strings.Count(upsertJobSQL, "$"), len(args))
	assert.Equal(t, "abc", args[0])
	assert.Equal(t, "run-1", args[35])
	assert.Equal(t, []string{}, args[18])
}

func TestCountByRejectsUnknownColumn(t *testing.T) {
	r := &Repository{}
	_, err := r.countBy(context.Background(), "description; DROP TABLE vagas", 10)
	assert.Error(t, err)
}

// Runs against a disposable database only.
func TestRepository_Integration(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, err := ConnectDB(ctx, url)
	require.NoError(t, err)
	defer repo.Close()
	require.NoError(t, repo.EnsureSchema(ctx))

	min := 2000.0
	published := "2025-03-01"
	job := models.Job{
		ExternalID:     "it-" + time.Now().Format("150405.000000"),
		Title:          "Vendedor Integração",
		Company:        "Alfa",
		Sector:         "Vendas",
		Seniority:      models.SeniorityJunior,
		EmploymentType: models.EmploymentCLT,
		Modality:       models.ModalityOnSite,
		LocationCity:   "Campinas",
		LocationState:  "SP",
		SalaryMin:      &min,
		SalaryType:     models.SalaryTypeMinimum,
		Skills:         []string{"vendas"},
		PublishedAt:    &published,
		ParsedAt:       time.Now().UTC(),
	}

	n, err := repo.UpsertJobs(ctx, []models.Job{job, job}, "run-it")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	found, err := repo.SearchJobs(ctx, "Integração", 10)
	require.NoError(t, err)
	require.NotEmpty(t, found)
	assert.Equal(t, "2025-03-01", *found[0].PublishedAt)

	got, err := repo.GetJob(ctx, found[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.SeniorityJunior, got.Seniority)

	_, err = repo.GetJob(ctx, -1)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = repo.Stats(ctx)
	require.NoError(t, err)
}
