package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go-vagas-pipeline/internal/dedup"
	"go-vagas-pipeline/internal/filter"
	"go-vagas-pipeline/internal/models"
	"go-vagas-pipeline/internal/normalize"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Store is the load target. *database.Repository satisfies it.
type Store interface {
	UpsertJobs(ctx context.Context, jobs []models.Job, runID string) (int, error)
}

const DefaultBatchSize = 100

// Uploader sends jobs to the store in fixed-size batches, waiting on a rate
// limiter between batches so a large backfill does not hammer the pooler.
type Uploader struct {
	store     Store
	batchSize int
	limiter   *rate.Limiter
}

// NewUploader allows batchesPerSecond batches per second; zero or less means unthrottled.
func NewUploader(store Store, batchSize int, batchesPerSecond float64) *Uploader {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	limit := rate.Inf
	if batchesPerSecond > 0 {
		limit = rate.Limit(batchesPerSecond)
	}
	return &Uploader{store: store, batchSize: batchSize, limiter: rate.NewLimiter(limit, 1)}
}

// Upload returns the jobs that were written. A failed batch is logged and the
// remaining batches still go out; the joined errors are returned at the end.
func (u *Uploader) Upload(ctx context.Context, jobs []models.Job, runID string) ([]models.Job, error) {
	var uploaded []models.Job
	var errs []error
	for start := 0; start < len(jobs); start += u.batchSize {
		end := min(start+u.batchSize, len(jobs))
		if err := u.limiter.Wait(ctx); err != nil {
			errs = append(errs, fmt.Errorf("upload interrupted: %w", err))
			break
		}
		batch := jobs[start:end]
		if _, err := u.store.UpsertJobs(ctx, batch, runID); err != nil {
			log.Printf("❌ Batch %d-%d failed: %v", start, end, err)
			errs = append(errs, fmt.Errorf("batch %d-%d: %w", start, end, err))
			continue
		}
		log.Printf("📤 Uploaded %d/%d", end, len(jobs))
		uploaded = append(uploaded, batch...)
	}
	return uploaded, errors.Join(errs...)
}

// Pipeline wires the stages. Nil Matcher accepts everything, nil Seen disables
// cross-run dedup and nil Uploader makes the run a dry run.
type Pipeline struct {
	Normalizer *normalize.Normalizer
	Matcher    *filter.Matcher
	Seen       dedup.SeenStore
	Uploader   *Uploader
	Threshold  float64
}

type Result struct {
	Stats Stats
	Jobs  []models.Job
}

// Run executes normalize -> filter -> dedupe -> upload for one batch of raw postings.
// Jobs in the result are the fresh ones (after dedup), whether or not they were uploaded.
func (p *Pipeline) Run(ctx context.Context, raws []models.RawJob) (*Result, error) {
	started := time.Now()
	stats := Stats{RunID: uuid.NewString(), Input: len(raws)}
	log.Printf("🚀 Run %s: %d raw postings", stats.RunID, len(raws))

	n := p.Normalizer
	if n == nil {
		n = normalize.New()
	}
	jobs, skipped := NormalizeAll(n, raws)
	stats.Normalized, stats.Skipped = len(jobs), len(skipped)
	for i := range jobs {
		jobs[i].RunID = stats.RunID
	}

	if p.Matcher != nil {
		kept := jobs[:0]
		for _, job := range jobs {
			if ok, reason := p.Matcher.Check(job); !ok {
				log.Printf("🚫 Filtered %q: %s", job.Title, reason)
				stats.Filtered++
				continue
			}
			kept = append(kept, job)
		}
		jobs = kept
	}

	jobs, stats.Duplicates = dedup.Remove(jobs, p.Threshold)
	log.Printf("🔍 Deduplication: %d duplicates removed", stats.Duplicates)

	if p.Seen != nil {
		fresh := make([]models.Job, 0, len(jobs))
		for _, job := range jobs {
			seen, err := p.Seen.IsSeen(ctx, job.DedupKey())
			if err != nil {
				log.Printf("⚠️ Seen cache lookup failed, keeping job: %v", err)
			}
			if seen {
				stats.Seen++
				continue
			}
			fresh = append(fresh, job)
		}
		jobs = fresh
	}

	var runErr error
	if p.Uploader != nil && len(jobs) > 0 {
		uploaded, err := p.Uploader.Upload(ctx, jobs, stats.RunID)
		stats.Uploaded = len(uploaded)
		runErr = err
		if p.Seen != nil && len(uploaded) > 0 {
			keys := make([]string, 0, len(uploaded))
			for _, job := range uploaded {
				keys = append(keys, job.DedupKey())
			}
			if err := p.Seen.Add(ctx, keys); err != nil {
				log.Printf("⚠️ Failed to update seen cache: %v", err)
			}
		}
	}

	stats.Coverage = Summarize(jobs)
	stats.Duration = time.Since(started)
	log.Printf("✅ Run %s finished: %d fresh, %d uploaded", stats.RunID, len(jobs), stats.Uploaded)
	return &Result{Stats: stats, Jobs: jobs}, runErr
}
