package database

import (
	"context"
	"fmt"

	"go-vagas-pipeline/internal/models"

	"github.com/jackc/pgx/v5"
)

// groupable columns; countBy only interpolates names from this set
var groupColumns = map[string]bool{
	"sector":         true,
	"modality":       true,
	"location_state": true,
	"seniority":      true,
	"company_name":   true,
}

func (r *Repository) countBy(ctx context.Context, column string, limit int) ([]models.CountItem, error) {
	if !groupColumns[column] {
		return nil, fmt.Errorf("cannot group by %q", column)
	}
	query := fmt.Sprintf(`SELECT %[1]s, COUNT(*) FROM vagas WHERE %[1]s <> '' GROUP BY %[1]s ORDER BY 2 DESC, 1 LIMIT $1`, column)
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to count by %s: %w", column, err)
	}
	return collectCounts(rows)
}

func collectCounts(rows pgx.Rows) ([]models.CountItem, error) {
	defer rows.Close()
	items := []models.CountItem{}
	for rows.Next() {
		var it models.CountItem
		if err := rows.Scan(&it.Name, &it.Count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Stats summarizes the table: totals, salary coverage and the main breakdowns.
func (r *Repository) Stats(ctx context.Context) (*models.JobStats, error) {
	var stats models.JobStats
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE salary_min IS NOT NULL AND salary_type <> $1),
			AVG(salary_min) FILTER (WHERE salary_type <> $1)
		FROM vagas`, models.SalaryTypeNegotiable).
		Scan(&stats.Total, &stats.WithSalary, &stats.AvgSalaryMin)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	breakdowns := []struct {
		column string
		dst    *[]models.CountItem
	}{
		{"sector", &stats.BySector},
		{"modality", &stats.ByModality},
		{"location_state", &stats.ByState},
		{"seniority", &stats.BySeniority},
	}
	for _, b := range breakdowns {
		items, err := r.countBy(ctx, b.column, 50)
		if err != nil {
			return nil, err
		}
		*b.dst = items
	}
	return &stats, nil
}

// TopSkills ranks skills across every loaded posting.
func (r *Repository) TopSkills(ctx context.Context, limit int) ([]models.CountItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT skill, COUNT(*) FROM vagas, unnest(skills) AS skill
		GROUP BY skill ORDER BY 2 DESC, 1 LIMIT $1`, ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to rank skills: %w", err)
	}
	return collectCounts(rows)
}

func (r *Repository) Sectors(ctx context.Context) ([]models.CountItem, error) {
	return r.countBy(ctx, "sector", 200)
}

func (r *Repository) Companies(ctx context.Context, limit int) ([]models.CountItem, error) {
	return r.countBy(ctx, "company_name", ClampLimit(limit))
}
