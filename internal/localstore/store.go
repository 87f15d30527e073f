package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go-vagas-pipeline/internal/fileio"
	"go-vagas-pipeline/internal/models"

	_ "modernc.org/sqlite"
)

// Store keeps scraped postings between runs so an interrupted scrape resumes
// without revisiting pages and the raw data can be re-normalized offline.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite file. ":memory:" works for tests.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return nil, fmt.Errorf("localstore: mkdir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("localstore: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("localstore: init schema: %w", err)
	}
	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS jobs (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		link         TEXT NOT NULL UNIQUE,
		source       TEXT NOT NULL DEFAULT '',
		title        TEXT NOT NULL DEFAULT '',
		company      TEXT NOT NULL DEFAULT '',
		location     TEXT NOT NULL DEFAULT '',
		modality     TEXT NOT NULL DEFAULT '',
		salary       TEXT NOT NULL DEFAULT '',
		description  TEXT NOT NULL DEFAULT '',
		sector       TEXT NOT NULL DEFAULT '',
		published_at TEXT NOT NULL DEFAULT '',
		schedule     TEXT NOT NULL DEFAULT '',
		contract     TEXT NOT NULL DEFAULT '',
		benefits     TEXT NOT NULL DEFAULT '',
		level        TEXT NOT NULL DEFAULT '',
		scraped_at   TEXT NOT NULL
	)`)
	return err
}

// Upsert inserts the posting or refreshes the stored row with the same link.
func (s *Store) Upsert(ctx context.Context, job models.RawJob) error {
	link := strings.TrimSpace(job.URL)
	if link == "" {
		return errors.New("localstore: upsert: job has no link")
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO jobs (link, source, title, company, location, modality, salary, description,
			sector, published_at, schedule, contract, benefits, level, scraped_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(link) DO UPDATE SET
			source = excluded.source, title = excluded.title, company = excluded.company,
			location = excluded.location, modality = excluded.modality, salary = excluded.salary,
			description = excluded.description, sector = excluded.sector,
			published_at = excluded.published_at, schedule = excluded.schedule,
			contract = excluded.contract, benefits = excluded.benefits, level = excluded.level,
			scraped_at = excluded.scraped_at`,
		link, job.Source, job.Title, job.Company, job.Location, job.Modality, job.Salary, job.Description,
		job.Sector, job.PublishedAt, job.Schedule, job.Contract, job.Benefits, job.Level, now,
	)
	if err != nil {
		return fmt.Errorf("localstore: upsert: %w", err)
	}
	return nil
}

// Has reports whether a link is already stored.
func (s *Store) Has(ctx context.Context, link string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM jobs WHERE link = ?`, strings.TrimSpace(link)).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("localstore: has: %w", err)
	}
	return n > 0, nil
}

// All returns every stored posting in insertion order.
func (s *Store) All(ctx context.Context) ([]models.RawJob, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT link, source, title, company, location, modality, salary, description,
			sector, published_at, schedule, contract, benefits, level
		 FROM jobs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("localstore: all: %w", err)
	}
	defer rows.Close()

	var jobs []models.RawJob
	for rows.Next() {
		var j models.RawJob
		if err := rows.Scan(&j.URL, &j.Source, &j.Title, &j.Company, &j.Location, &j.Modality, &j.Salary,
			&j.Description, &j.Sector, &j.PublishedAt, &j.Schedule, &j.Contract, &j.Benefits, &j.Level); err != nil {
			return nil, fmt.Errorf("localstore: scan: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM jobs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("localstore: count: %w", err)
	}
	return n, nil
}

// ExportCSV writes every stored posting to path and returns how many were written.
func (s *Store) ExportCSV(ctx context.Context, path string) (int, error) {
	jobs, err := s.All(ctx)
	if err != nil {
		return 0, err
	}
	if err := fileio.WriteRawCSV(path, jobs); err != nil {
		return 0, fmt.Errorf("localstore: export: %w", err)
	}
	return len(jobs), nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
