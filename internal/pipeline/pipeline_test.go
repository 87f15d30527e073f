package pipeline

import (
	"context"
	"errors"
	"testing"

	"go-vagas-pipeline/internal/dedup"
	"go-vagas-pipeline/internal/filter"
	"go-vagas-pipeline/internal/models"
	"go-vagas-pipeline/internal/normalize"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	batches [][]models.Job
	runIDs  []string
	failOn  int // 1-based batch number that fails; 0 never
}

func (f *fakeStore) UpsertJobs(_ context.Context, jobs []models.Job, runID string) (int, error) {
	if f.failOn == len(f.batches)+1 {
		f.batches = append(f.batches, nil)
		return 0, errors.New("connection reset")
	}
	f.batches = append(f.batches, jobs)
	f.runIDs = append(f.runIDs, runID)
	return len(jobs), nil
}

func sampleRaws() []models.RawJob {
	return []models.RawJob{
		{Title: "Vendedor", Company: "Loja Alfa", Location: "Campinas - SP", Description: "Atender clientes na loja.", URL: "https://x/1"},
		{Title: "Vendedor", Company: "Loja Alfa", Location: "Campinas - SP", Description: "Atender clientes na loja.", URL: "https://x/2"},
		{},
		{Title: "Motorista", Company: "Transportes Gama", Description: "Dirigir caminhão.", URL: "https://x/4"},
		{Title: "Operador de Caixa", Company: "Mercado Beta", Location: "Sorocaba - SP", Description: "Operar o caixa do mercado.", URL: "https://x/5"},
		{Title: "Caixa", Company: "Mercado Beta", Location: "Sorocaba - SP", Description: "Registrar compras no caixa.", URL: "https://x/6"},
	}
}

func TestNormalizeAll_SkipsBadRecords(t *testing.T) {
	jobs, skipped := NormalizeAll(normalize.New(), []models.RawJob{
		{Title: "Vendedor"},
		{Title: "   ", Description: ""},
		{Description: "Sem título, apenas texto"},
	})

	assert.Len(t, jobs, 1)
	require.Len(t, skipped, 2)
	assert.Equal(t, 1, skipped[0].Index)
	assert.Equal(t, 2, skipped[1].Index)
	assert.Contains(t, skipped[0].Error(), "empty record")
}

func TestPipeline_Run(t *testing.T) {
	ctx := context.Background()
	seen := dedup.NewJobCache(t.TempDir())
	require.NoError(t, seen.Add(ctx, []string{"https://x/5"}))

	matcher, err := filter.NewMatcher(filter.Rules{Include: []string{"vendedor", "caixa"}})
	require.NoError(t, err)

	store := &fakeStore{}
	p := &Pipeline{
		Normalizer: normalize.New(),
		Matcher:    matcher,
		Seen:       seen,
		Uploader:   NewUploader(store, 1, 0),
	}

	res, err := p.Run(ctx, sampleRaws())
	require.NoError(t, err)

	s := res.Stats
	assert.Equal(t, 6, s.Input)
	assert.Equal(t, 5, s.Normalized)
	assert.Equal(t, 1, s.Skipped)
	assert.Equal(t, 1, s.Filtered)
	assert.Equal(t, 1, s.Duplicates)
	assert.Equal(t, 1, s.Seen)
	assert.Equal(t, 2, s.Uploaded)

	_, err = uuid.Parse(s.RunID)
	assert.NoError(t, err)

	require.Len(t, res.Jobs, 2)
	assert.Equal(t, "https://x/1", res.Jobs[0].SourceURL)
	assert.Equal(t, "https://x/6", res.Jobs[1].SourceURL)
	assert.Equal(t, s.RunID, res.Jobs[0].RunID)

	assert.Len(t, store.batches, 2)
	assert.Equal(t, []string{s.RunID, s.RunID}, store.runIDs)

	marked, err := seen.IsSeen(ctx, "https://x/6")
	require.NoError(t, err)
	assert.True(t, marked)

	assert.Equal(t, 2, s.Coverage.Total)
	assert.Equal(t, 2, s.Coverage.WithCompany)
	assert.Equal(t, 2, s.Coverage.WithLocation)
}

func TestPipeline_Run_SecondRunSeesEverything(t *testing.T) {
	ctx := context.Background()
	seen := dedup.NewJobCache(t.TempDir())
	p := &Pipeline{Seen: seen, Uploader: NewUploader(&fakeStore{}, 10, 0)}

	_, err := p.Run(ctx, sampleRaws())
	require.NoError(t, err)

	res, err := p.Run(ctx, sampleRaws())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Stats.Uploaded)
	assert.Empty(t, res.Jobs)
}

func TestPipeline_Run_DryRun(t *testing.T) {
	ctx := context.Background()
	seen := dedup.NewJobCache(t.TempDir())
	p := &Pipeline{Seen: seen}

	res, err := p.Run(ctx, sampleRaws())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Stats.Uploaded)
	assert.NotEmpty(t, res.Jobs)
	assert.Equal(t, 0, seen.Len())
}

func TestUploader_FailedBatchIsNotMarkedSeen(t *testing.T) {
	ctx := context.Background()
	seen := dedup.NewJobCache(t.TempDir())
	store := &fakeStore{failOn: 1}
	p := &Pipeline{Seen: seen, Uploader: NewUploader(store, 1, 1000)}

	res, err := p.Run(ctx, sampleRaws()[:1])
	assert.Error(t, err)
	assert.Equal(t, 0, res.Stats.Uploaded)
	assert.Equal(t, 0, seen.Len())
}

func TestUploader_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	u := NewUploader(&fakeStore{}, 1, 0.001)
	uploaded, err := u.Upload(ctx, []models.Job{{Title: "a"}, {Title: "b"}}, "run")
	assert.Error(t, err)
	assert.Empty(t, uploaded)
}

func TestSummarize(t *testing.T) {
	min := 1500.0
	c := Summarize([]models.Job{
		{Company: "Alfa", Modality: models.ModalityRemote, SalaryMin: &min, SalaryType: models.SalaryTypeMinimum, Tags: []string{"VENDAS"}, Confidence: 1},
		{Company: "Alfa", Modality: models.ModalityRemote, LocationState: "SP", Tags: []string{"VENDAS", "SAÚDE"}},
		{Modality: models.ModalityOnSite, Skills: []string{"excel"}},
	})

	assert.Equal(t, 3, c.Total)
	assert.Equal(t, 1, c.WithSalary)
	assert.Equal(t, 1, c.WithLocation)
	assert.Equal(t, 2, c.WithCompany)
	assert.Equal(t, 1, c.WithSkills)
	assert.InDelta(t, 1.0/3, c.AvgConfidence, 0.0001)
	assert.Equal(t, []models.CountItem{{Name: "Remoto", Count: 2}, {Name: "Presencial", Count: 1}}, c.TopModalities)
	assert.Equal(t, []models.CountItem{{Name: "VENDAS", Count: 2}, {Name: "SAÚDE", Count: 1}}, c.TopTags)
	assert.Contains(t, Stats{RunID: "r", Coverage: c}.String(), "Remoto: 2")
}
