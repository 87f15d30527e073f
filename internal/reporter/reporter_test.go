package reporter

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-vagas-pipeline/internal/config"
	"go-vagas-pipeline/internal/models"
	"go-vagas-pipeline/internal/pipeline"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	f.sent = append(f.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{}, nil
}

func sampleJob() models.Job {
	min, max := 1800.0, 2500.5
	published := "2025-03-05"
	return models.Job{
		Title:         "Vendedor <Interno>",
		Company:       "Loja Alfa & Filhos",
		Sector:        "Comercial e Vendas",
		Modality:      models.ModalityOnSite,
		LocationCity:  "Campinas",
		LocationState: "SP",
		SalaryMin:     &min,
		SalaryMax:     &max,
		SalaryType:    models.SalaryTypeRange,
		Skills:        []string{"vendas", "excel"},
		PublishedAt:   &published,
		SourceURL:     "https://www.catho.com.br/vagas/vendedor-interno/1/",
	}
}

func TestFormatJob(t *testing.T) {
	text := FormatJob(sampleJob())

	assert.Contains(t, text, "<b>Vendedor &lt;Interno&gt;</b>")
	assert.Contains(t, text, "Loja Alfa &amp; Filhos")
	assert.Contains(t, text, "R$ 1.800,00 a R$ 2.500,50")
	assert.Contains(t, text, "Campinas - SP · Presencial")
	assert.Contains(t, text, "vendas, excel")
	assert.Contains(t, text, "2025-03-05")
}

func TestFormatJob_Negotiable(t *testing.T) {
	text := FormatJob(models.Job{Title: "Motorista", SalaryType: models.SalaryTypeNegotiable, Modality: models.ModalityUnknown})
	assert.Contains(t, text, "A combinar")
	assert.Contains(t, text, "🏢 N/A")
}

func TestBRL(t *testing.T) {
	tests := map[float64]string{
		0:         "R$ 0,00",
		950:       "R$ 950,00",
		1412:      "R$ 1.412,00",
		123456.78: "R$ 123.456,78",
		1000000:   "R$ 1.000.000,00",
	}
	for in, want := range tests {
		assert.Equal(t, want, brl(in))
	}
}

func TestTelegramReporter(t *testing.T) {
	fake := &fakeSender{}
	r := &TelegramReporter{bot: fake, chatID: 42}

	require.NoError(t, r.SendJob(sampleJob()))
	require.NoError(t, r.SendRunSummary(pipeline.Stats{RunID: "run-1", Input: 10, Uploaded: 4, Coverage: pipeline.Coverage{
		Total:         4,
		WithSalary:    2,
		TopModalities: []models.CountItem{{Name: "Presencial", Count: 3}},
	}}))
	require.NoError(t, r.SendError(errors.New("pool <closed>")))

	require.Len(t, fake.sent, 3)
	assert.Equal(t, int64(42), fake.sent[0].ChatID)
	assert.Equal(t, tgbotapi.ModeHTML, fake.sent[0].ParseMode)
	assert.NotNil(t, fake.sent[0].ReplyMarkup)
	assert.Contains(t, fake.sent[1].Text, "Run run-1")
	assert.Contains(t, fake.sent[1].Text, "4 uploaded")
	assert.Contains(t, fake.sent[1].Text, "• Presencial: 3")
	assert.Contains(t, fake.sent[2].Text, "pool &lt;closed&gt;")
}

func TestSendJobs(t *testing.T) {
	fake := &fakeSender{}
	r := &TelegramReporter{bot: fake, chatID: 1}
	jobs := []models.Job{sampleJob(), sampleJob(), sampleJob()}

	sent, err := SendJobs(context.Background(), r, jobs, 2, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Len(t, fake.sent, 2)

	failing := &TelegramReporter{bot: &fakeSender{err: errors.New("429")}, chatID: 1}
	sent, err = SendJobs(context.Background(), failing, jobs, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sent, err = SendJobs(ctx, LogReporter{}, jobs, 0, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, sent)
}

func TestFromConfig_WithoutTelegram(t *testing.T) {
	r, err := FromConfig(&config.Config{})
	require.NoError(t, err)
	assert.IsType(t, LogReporter{}, r)
}
