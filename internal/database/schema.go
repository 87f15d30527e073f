package database

import (
	"context"
	"fmt"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS vagas (
	id                BIGSERIAL PRIMARY KEY,
	external_id       TEXT NOT NULL UNIQUE,
	title             TEXT NOT NULL,
	company_name      TEXT NOT NULL DEFAULT '',
	sector            TEXT NOT NULL DEFAULT '',
	seniority         TEXT NOT NULL DEFAULT '',
	employment_type   TEXT NOT NULL DEFAULT '',
	modality          TEXT NOT NULL DEFAULT '',
	work_schedule     TEXT NOT NULL DEFAULT '',
	location_city     TEXT NOT NULL DEFAULT '',
	location_state    TEXT NOT NULL DEFAULT '',
	location_region   TEXT NOT NULL DEFAULT '',
	salary_min        DOUBLE PRECISION,
	salary_max        DOUBLE PRECISION,
	salary_type       TEXT NOT NULL DEFAULT '',
	salary_period     TEXT NOT NULL DEFAULT '',
	salary_currency   TEXT NOT NULL DEFAULT 'BRL',
	commission        DOUBLE PRECISION,
	has_commission    BOOLEAN NOT NULL DEFAULT false,
	benefits          TEXT[] NOT NULL DEFAULT '{}',
	skills            TEXT[] NOT NULL DEFAULT '{}',
	education         TEXT[] NOT NULL DEFAULT '{}',
	education_level   TEXT NOT NULL DEFAULT '',
	experience        TEXT NOT NULL DEFAULT '',
	requirements_must TEXT[] NOT NULL DEFAULT '{}',
	requirements_nice TEXT[] NOT NULL DEFAULT '{}',
	responsibilities  TEXT[] NOT NULL DEFAULT '{}',
	tags              TEXT[] NOT NULL DEFAULT '{}',
	pcd               BOOLEAN NOT NULL DEFAULT false,
	published_at      DATE,
	source_name       TEXT NOT NULL DEFAULT '',
	source_url        TEXT NOT NULL DEFAULT '',
	description       TEXT NOT NULL DEFAULT '',
	raw_excerpt       TEXT NOT NULL DEFAULT '',
	confidence        DOUBLE PRECISION NOT NULL DEFAULT 0,
	quality_score     DOUBLE PRECISION NOT NULL DEFAULT 0,
	run_id            TEXT NOT NULL DEFAULT '',
	parsed_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_vagas_sector ON vagas (sector);
CREATE INDEX IF NOT EXISTS idx_vagas_state ON vagas (location_state);
CREATE INDEX IF NOT EXISTS idx_vagas_modality ON vagas (modality);
CREATE INDEX IF NOT EXISTS idx_vagas_published ON vagas (published_at DESC);
`

// EnsureSchema creates the vagas table and its indexes when missing.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
