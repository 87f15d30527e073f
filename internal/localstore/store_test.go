package localstore

import (
	"context"
	"path/filepath"
	"testing"

	"go-vagas-pipeline/internal/fileio"
	"go-vagas-pipeline/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "vagas.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_UpsertByLink(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	job := models.RawJob{Title: "Vendedor", Company: "Alfa", URL: "https://www.catho.com.br/vagas/vendedor/1/", Source: "catho"}
	require.NoError(t, s.Upsert(ctx, job))

	job.Salary = "R$ 2.000"
	require.NoError(t, s.Upsert(ctx, job))
	require.NoError(t, s.Upsert(ctx, models.RawJob{Title: "Caixa", URL: "https://www.catho.com.br/vagas/caixa/2/"}))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "R$ 2.000", all[0].Salary)
	assert.Equal(t, "Caixa", all[1].Title)

	has, err := s.Has(ctx, "https://www.catho.com.br/vagas/caixa/2/")
	require.NoError(t, err)
	assert.True(t, has)
}

func TestStore_UpsertRequiresLink(t *testing.T) {
	s := openTestStore(t)
	assert.Error(t, s.Upsert(context.Background(), models.RawJob{Title: "Sem link"}))
}

func TestStore_ExportCSV(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	require.NoError(t, s.Upsert(ctx, models.RawJob{Title: "Vendedor", URL: "https://x/1", Description: "Atender clientes"}))

	path := filepath.Join(t.TempDir(), "export.csv")
	n, err := s.ExportCSV(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rows, err := fileio.ReadRawCSV(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "https://x/1", rows[0].URL)
	assert.Equal(t, "Atender clientes", rows[0].Description)
}
