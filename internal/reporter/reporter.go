package reporter

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"go-vagas-pipeline/internal/config"
	"go-vagas-pipeline/internal/models"
	"go-vagas-pipeline/internal/pipeline"
)

// Reporter announces run results. Failures to report never fail a run; callers log them.
type Reporter interface {
	SendRunSummary(stats pipeline.Stats) error
	SendJob(job models.Job) error
	SendError(err error) error
}

// FromConfig returns a Telegram reporter when credentials are configured and a LogReporter otherwise.
func FromConfig(cfg *config.Config) (Reporter, error) {
	if !cfg.TelegramEnabled() {
		log.Println("ℹ️ Telegram not configured, reporting to the log")
		return LogReporter{}, nil
	}
	r, err := NewTelegramReporter(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		return nil, err
	}
	log.Println("🤖 Telegram reporter initialized.")
	return r, nil
}

// SendJobs sends up to max jobs (all when max <= 0), pausing between messages
// to stay under the Telegram flood limit.
func SendJobs(ctx context.Context, r Reporter, jobs []models.Job, max int, pause time.Duration) (int, error) {
	if max > 0 && len(jobs) > max {
		jobs = jobs[:max]
	}
	sent := 0
	for i, job := range jobs {
		if i > 0 && pause > 0 {
			select {
			case <-ctx.Done():
				return sent, ctx.Err()
			case <-time.After(pause):
			}
		}
		if err := r.SendJob(job); err != nil {
			log.Printf("⚠️ Failed to send job %q: %v", job.Title, err)
			continue
		}
		sent++
	}
	return sent, nil
}

// LogReporter writes the same messages to the log, for runs without Telegram credentials.
type LogReporter struct{}

func (LogReporter) SendRunSummary(stats pipeline.Stats) error {
	log.Printf("📊 Run summary\n%s", stats.String())
	return nil
}

func (LogReporter) SendJob(job models.Job) error {
	log.Printf("  %s @ %s (%s) %s", job.Title, orNA(job.Company), location(job), job.SourceURL)
	return nil
}

func (LogReporter) SendError(err error) error {
	log.Printf("❌ Error: %v", err)
	return nil
}

func location(job models.Job) string {
	switch {
	case job.LocationCity != "" && job.LocationState != "":
		return job.LocationCity + " - " + job.LocationState
	case job.LocationState != "":
		return job.LocationState
	}
	return orNA(job.LocationCity)
}

func salary(job models.Job) string {
	switch {
	case job.SalaryType == models.SalaryTypeNegotiable:
		return "A combinar"
	case job.SalaryMin == nil:
		return ""
	case job.SalaryMax != nil && *job.SalaryMax != *job.SalaryMin:
		return fmt.Sprintf("%s a %s", brl(*job.SalaryMin), brl(*job.SalaryMax))
	}
	return brl(*job.SalaryMin)
}

// brl formats 2500.5 as "R$ 2.500,50".
func brl(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	intPart, dec, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return "R$ " + b.String() + "," + dec
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
