package pipeline

import (
	"fmt"
	"log"
	"strings"

	"go-vagas-pipeline/internal/models"
	"go-vagas-pipeline/internal/normalize"
)

// RecordError tells which input record was skipped and why.
type RecordError struct {
	Index int
	URL   string
	Err   error
}

func (e RecordError) Error() string {
	return fmt.Sprintf("record %d (%s): %v", e.Index, e.URL, e.Err)
}

func (e RecordError) Unwrap() error { return e.Err }

// NormalizeAll normalizes every record independently. A record that cannot be
// normalized, including one that panics inside an extractor, is skipped and
// reported; the rest of the batch continues.
func NormalizeAll(n *normalize.Normalizer, raws []models.RawJob) ([]models.Job, []RecordError) {
	jobs := make([]models.Job, 0, len(raws))
	var skipped []RecordError
	for i, raw := range raws {
		job, err := normalizeOne(n, raw)
		if err != nil {
			rerr := RecordError{Index: i, URL: raw.URL, Err: err}
			log.Printf("⚠️ Skipping %v", rerr)
			skipped = append(skipped, rerr)
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs, skipped
}

func normalizeOne(n *normalize.Normalizer, raw models.RawJob) (job models.Job, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while normalizing: %v", r)
		}
	}()
	if strings.TrimSpace(raw.Title) == "" && strings.TrimSpace(raw.Description) == "" {
		return job, fmt.Errorf("empty record")
	}
	job = n.Normalize(raw)
	if job.Title == "" {
		return job, fmt.Errorf("no title")
	}
	return job, nil
}
