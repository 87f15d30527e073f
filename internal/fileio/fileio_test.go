package fileio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-vagas-pipeline/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRawCSV_HeaderAliases(t *testing.T) {
	csvData := "\ufefftitle,Empresa,Localização,Salário,link,descrição\n" +
		"Vendedor,Loja Alfa,Campinas - SP,R$ 2.000,https://www.catho.com.br/vagas/vendedor/1/,\"Atender clientes, organizar loja\"\n" +
		",,,,,\n"

	jobs, err := readRawCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	assert.Equal(t, "Vendedor", jobs[0].Title)
	assert.Equal(t, "Loja Alfa", jobs[0].Company)
	assert.Equal(t, "Campinas - SP", jobs[0].Location)
	assert.Equal(t, "R$ 2.000", jobs[0].Salary)
	assert.Equal(t, "https://www.catho.com.br/vagas/vendedor/1/", jobs[0].URL)
	assert.Equal(t, "Atender clientes, organizar loja", jobs[0].Description)
}

func TestRawCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "vagas.csv")
	in := []models.RawJob{
		{Title: "Vendedor", Company: "Loja Alfa", Location: "Campinas - SP", Description: "linha 1\nlinha 2", URL: "https://x/1", Sector: "Vendas", Source: "catho"},
		{Title: "Caixa", Description: "Operar caixa", Level: "Júnior", Contract: "CLT"},
	}
	require.NoError(t, WriteRawCSV(path, in))

	out, err := ReadRawCSV(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestReadRawCSV_MissingFile(t *testing.T) {
	_, err := ReadRawCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestReadJobsJSONL_SkipsBadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.jsonl")
	content := `{"title":"Vendedor","company_name":"Alfa"}` + "\n" +
		"not json\n" +
		"\n" +
		`{"title":"Caixa"}` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	jobs, err := ReadJobsJSONL(path)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "Alfa", jobs[0].Company)
	assert.Equal(t, "Caixa", jobs[1].Title)
}

func TestJobsJSONLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.jsonl")
	min := 1800.0
	in := []models.Job{
		{ExternalID: "a", Title: "Vendedor", SalaryMin: &min, Benefits: []string{"Vale Transporte"}},
		{ExternalID: "b", Title: "Caixa <noite>"},
	}
	require.NoError(t, WriteJobsJSONL(path, in))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Caixa <noite>")
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 2)

	out, err := ReadJobsJSONL(path)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.NotNil(t, out[0].SalaryMin)
	assert.InDelta(t, 1800.0, *out[0].SalaryMin, 0.001)
	assert.Equal(t, []string{"Vale Transporte"}, out[0].Benefits)
}

func TestReadRawJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"title":"Vendedor","url":"https://x/1"}`+"\n{broken\n"), 0644))

	raws, err := ReadRawJSONL(path)
	require.NoError(t, err)
	require.Len(t, raws, 1)
	assert.Equal(t, "https://x/1", raws[0].URL)
}

func TestWriteJobsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vagas.json")
	require.NoError(t, WriteJobsJSON(path, []models.Job{{ExternalID: "a"}, {ExternalID: "b"}}, Metadata{RunID: "run-1", Source: "catho"}))

	env, err := ReadJobsJSON(path)
	require.NoError(t, err)
	assert.Equal(t, 2, env.Metadata.Total)
	assert.Equal(t, "run-1", env.Metadata.RunID)
	assert.False(t, env.Metadata.GeneratedAt.IsZero())
	assert.Len(t, env.Jobs, 2)

	empty := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, WriteJobsJSON(empty, nil, Metadata{}))
	data, err := os.ReadFile(empty)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"jobs": []`)
}
