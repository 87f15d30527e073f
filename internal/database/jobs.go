package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-vagas-pipeline/internal/models"

	"github.com/jackc/pgx/v5"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

const jobColumns = `id, external_id, title, company_name, sector, seniority, employment_type, modality,
	work_schedule, location_city, location_state, location_region, salary_min, salary_max, salary_type,
	salary_period, salary_currency, commission, has_commission, benefits, skills, education, education_level,
	experience, requirements_must, requirements_nice, responsibilities, tags, pcd,
	to_char(published_at, 'YYYY-MM-DD'), source_name, source_url, description, raw_excerpt, confidence,
	quality_score, run_id, parsed_at, created_at`

const upsertJobSQL = `
	INSERT INTO vagas (external_id, title, company_name, sector, seniority, employment_type, modality,
		work_schedule, location_city, location_state, location_region, salary_min, salary_max, salary_type,
		salary_period, salary_currency, commission, has_commission, benefits, skills, education, education_level,
		experience, requirements_must, requirements_nice, responsibilities, tags, pcd, published_at,
		source_name, source_url, description, raw_excerpt, confidence, quality_score, run_id, parsed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
		$21, $22, $23, $24, $25, $26, $27, $28, $29::date, $30, $31, $32, $33, $34, $35, $36, $37)
	ON CONFLICT (external_id) DO UPDATE SET
		title = EXCLUDED.title, company_name = EXCLUDED.company_name, sector = EXCLUDED.sector,
		seniority = EXCLUDED.seniority, employment_type = EXCLUDED.employment_type, modality = EXCLUDED.modality,
		work_schedule = EXCLUDED.work_schedule, location_city = EXCLUDED.location_city,
		location_state = EXCLUDED.location_state, location_region = EXCLUDED.location_region,
		salary_min = EXCLUDED.salary_min, salary_max = EXCLUDED.salary_max, salary_type = EXCLUDED.salary_type,
		salary_period = EXCLUDED.salary_period, salary_currency = EXCLUDED.salary_currency,
		commission = EXCLUDED.commission, has_commission = EXCLUDED.has_commission,
		benefits = EXCLUDED.benefits, skills = EXCLUDED.skills, education = EXCLUDED.education,
		education_level = EXCLUDED.education_level, experience = EXCLUDED.experience,
		requirements_must = EXCLUDED.requirements_must, requirements_nice = EXCLUDED.requirements_nice,
		responsibilities = EXCLUDED.responsibilities, tags = EXCLUDED.tags, pcd = EXCLUDED.pcd,
		published_at = EXCLUDED.published_at, source_name = EXCLUDED.source_name,
		source_url = EXCLUDED.source_url, description = EXCLUDED.description,
		raw_excerpt = EXCLUDED.raw_excerpt, confidence = EXCLUDED.confidence,
		quality_score = EXCLUDED.quality_score, run_id = EXCLUDED.run_id, parsed_at = EXCLUDED.parsed_at,
		updated_at = now()`

func upsertArgs(job models.Job, runID string) []any {
	return []any{
		job.ExternalID, job.Title, job.Company, job.Sector, string(job.Seniority), string(job.EmploymentType),
		string(job.Modality), job.WorkSchedule, job.LocationCity, job.LocationState, job.LocationRegion,
		job.SalaryMin, job.SalaryMax, job.SalaryType, job.SalaryPeriod, job.SalaryCurrency, job.Commission,
		job.HasCommission, nonNil(job.Benefits), nonNil(job.Skills), nonNil(job.Education), job.EducationLevel,
		job.Experience, nonNil(job.RequirementsMust), nonNil(job.RequirementsNice), nonNil(job.Responsibilities),
		nonNil(job.Tags), job.PCD, job.PublishedAt, job.SourceName, job.SourceURL, job.Description,
		job.RawExcerpt, job.Confidence, job.QualityScore, runID, job.ParsedAt,
	}
}

// UpsertJobs writes one batch in a single round trip. Re-running the same
// postings updates rows in place, keyed by external_id.
func (r *Repository) UpsertJobs(ctx context.Context, jobs []models.Job, runID string) (int, error) {
	if len(jobs) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, job := range jobs {
		batch.Queue(upsertJobSQL, upsertArgs(job, runID)...)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	affected := 0
	for i := range jobs {
		tag, err := br.Exec()
		if err != nil {
			return affected, fmt.Errorf("failed to upsert vaga %s: %w", jobs[i].ExternalID, err)
		}
		affected += int(tag.RowsAffected())
	}
	return affected, nil
}

// buildWhere turns the non-empty filter fields into a WHERE clause and its args.
// Text filters compare case-insensitively; state is an exact UF.
func buildWhere(f models.JobFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	add("sector ILIKE $%d", f.Sector)
	add("location_city ILIKE $%d", f.City)
	add("location_state = upper($%d)", f.State)
	add("modality ILIKE $%d", f.Modality)
	add("seniority ILIKE $%d", f.Seniority)

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ClampLimit keeps page sizes within [1, MaxLimit].
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

func (r *Repository) ListJobs(ctx context.Context, f models.JobFilter) ([]models.Job, error) {
	where, args := buildWhere(f)
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	args = append(args, ClampLimit(f.Limit), offset)
	query := fmt.Sprintf(`SELECT %s FROM vagas%s ORDER BY published_at DESC NULLS LAST, id DESC LIMIT $%d OFFSET $%d`,
		jobColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list vagas: %w", err)
	}
	return collectJobs(rows)
}

func (r *Repository) CountJobs(ctx context.Context, f models.JobFilter) (int, error) {
	where, args := buildWhere(f)
	var n int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM vagas"+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count vagas: %w", err)
	}
	return n, nil
}

func (r *Repository) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM vagas WHERE id = $1`, id)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get vaga %d: %w", id, err)
	}
	return job, nil
}

// SearchJobs matches q against title, company and description.
func (r *Repository) SearchJobs(ctx context.Context, q string, limit int) ([]models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM vagas
		WHERE title ILIKE '%' || $1 || '%' OR company_name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%'
		ORDER BY published_at DESC NULLS LAST, id DESC LIMIT $2`
	rows, err := r.db.Query(ctx, query, strings.TrimSpace(q), ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to search vagas: %w", err)
	}
	return collectJobs(rows)
}

func collectJobs(rows pgx.Rows) ([]models.Job, error) {
	defer rows.Close()
	jobs := []models.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vaga: %w", err)
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vagas: %w", err)
	}
	return jobs, nil
}

func scanJob(row pgx.Row) (*models.Job, error) {
	var job models.Job
	var seniority, employment, modality string
	err := row.Scan(&job.ID, &job.ExternalID, &job.Title, &job.Company, &job.Sector, &seniority, &employment,
		&modality, &job.WorkSchedule, &job.LocationCity, &job.LocationState, &job.LocationRegion,
		&job.SalaryMin, &job.SalaryMax, &job.SalaryType, &job.SalaryPeriod, &job.SalaryCurrency,
		&job.Commission, &job.HasCommission, &job.Benefits, &job.Skills, &job.Education, &job.EducationLevel,
		&job.Experience, &job.RequirementsMust, &job.RequirementsNice, &job.Responsibilities, &job.Tags,
		&job.PCD, &job.PublishedAt, &job.SourceName, &job.SourceURL, &job.Description, &job.RawExcerpt,
		&job.Confidence, &job.QualityScore, &job.RunID, &job.ParsedAt, &job.CreatedAt)
	if err != nil {
		return nil, err
	}
	job.Seniority = models.Seniority(seniority)
	job.EmploymentType = models.EmploymentType(employment)
	job.Modality = models.Modality(modality)
	return &job, nil
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
