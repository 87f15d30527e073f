package fileio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go-vagas-pipeline/internal/models"
	"go-vagas-pipeline/internal/normalize"
)

// Column order of the raw CSV export. The headers fold onto the same aliases
// ReadRawCSV understands, so an exported file reads back unchanged.
var rawCSVHeader = []string{
	"Título", "Empresa", "Localidade", "Modalidade", "Salário", "Descrição", "Link",
	"Setor", "Publicada em", "Horário", "Regime", "Benefícios", "Nível", "Fonte",
}

const maxLineBytes = 4 * 1024 * 1024

// ReadRawCSV loads scraped rows. Headers may be Portuguese or English, in any order.
func ReadRawCSV(path string) ([]models.RawJob, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return readRawCSV(f)
}

func readRawCSV(r io.Reader) ([]models.RawJob, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var jobs []models.RawJob
	for line := 2; ; line++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			log.Printf("⚠️ Skipping csv line %d: %v", line, err)
			continue
		}
		if err != nil {
			return jobs, fmt.Errorf("failed to read csv: %w", err)
		}
		fields := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(rec) {
				fields[name] = rec[i]
			}
		}
		raw := normalize.RawJobFromFields(fields)
		if raw.Title == "" && raw.Description == "" {
			continue
		}
		jobs = append(jobs, raw)
	}
	return jobs, nil
}

// WriteRawCSV exports raw postings with the Portuguese header.
func WriteRawCSV(path string, jobs []models.RawJob) error {
	f, err := create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(rawCSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, j := range jobs {
		record := []string{j.Title, j.Company, j.Location, j.Modality, j.Salary, j.Description, j.URL,
			j.Sector, j.PublishedAt, j.Schedule, j.Contract, j.Benefits, j.Level, j.Source}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func ReadRawJSONL(path string) ([]models.RawJob, error) {
	return readJSONL[models.RawJob](path)
}

func ReadJobsJSONL(path string) ([]models.Job, error) {
	return readJSONL[models.Job](path)
}

// readJSONL decodes one value per line. Lines that fail to decode are logged and skipped.
func readJSONL[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var out []T
	skipped := 0
	for line := 1; scanner.Scan(); line++ {
		b := bytes.TrimSpace(scanner.Bytes())
		if len(b) == 0 {
			continue
		}
		var v T
		if err := json.Unmarshal(b, &v); err != nil {
			log.Printf("⚠️ Skipping %s line %d: %v", filepath.Base(path), line, err)
			skipped++
			continue
		}
		out = append(out, v)
	}
	if err := scanner.Err(); err != nil {
		return out, fmt.Errorf("failed to scan %s: %w", path, err)
	}
	if skipped > 0 {
		log.Printf("📋 Read %d records from %s (%d bad lines skipped)", len(out), filepath.Base(path), skipped)
	}
	return out, nil
}

func WriteJobsJSONL(path string, jobs []models.Job) error {
	f, err := create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i := range jobs {
		if err := enc.Encode(&jobs[i]); err != nil {
			return fmt.Errorf("failed to encode job %d: %w", i, err)
		}
	}
	return w.Flush()
}

// Metadata heads the JSON export.
type Metadata struct {
	GeneratedAt time.Time `json:"generated_at"`
	Total       int       `json:"total"`
	RunID       string    `json:"run_id,omitempty"`
	Source      string    `json:"source,omitempty"`
}

type Envelope struct {
	Metadata Metadata     `json:"metadata"`
	Jobs     []models.Job `json:"jobs"`
}

// WriteJobsJSON writes {"metadata": ..., "jobs": [...]} as indented JSON.
// Total and GeneratedAt are filled in when zero.
func WriteJobsJSON(path string, jobs []models.Job, meta Metadata) error {
	if meta.GeneratedAt.IsZero() {
		meta.GeneratedAt = time.Now().UTC()
	}
	if meta.Total == 0 {
		meta.Total = len(jobs)
	}
	if jobs == nil {
		jobs = []models.Job{}
	}

	f, err := create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Envelope{Metadata: meta, Jobs: jobs}); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

// ReadJobsJSON reads a file written by WriteJobsJSON.
func ReadJobsJSON(path string) (Envelope, error) {
	var env Envelope
	data, err := os.ReadFile(path)
	if err != nil {
		return env, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return env, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return env, nil
}

func create(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, nil
}
