package pipeline

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go-vagas-pipeline/internal/models"
)

// Stats is the run summary printed by the CLI and sent to the reporter.
type Stats struct {
	RunID      string        `json:"run_id"`
	Input      int           `json:"input"`
	Normalized int           `json:"normalized"`
	Skipped    int           `json:"skipped"`
	Filtered   int           `json:"filtered"`
	Duplicates int           `json:"duplicates"`
	Seen       int           `json:"seen"`
	Uploaded   int           `json:"uploaded"`
	Duration   time.Duration `json:"duration"`
	Coverage   Coverage      `json:"coverage"`
}

// Coverage counts how many output jobs carry each enrichment.
type Coverage struct {
	Total         int                `json:"total"`
	WithSalary    int                `json:"with_salary"`
	WithLocation  int                `json:"with_location"`
	WithCompany   int                `json:"with_company"`
	WithSkills    int                `json:"with_skills"`
	WithBenefits  int                `json:"with_benefits"`
	AvgConfidence float64            `json:"avg_confidence"`
	TopModalities []models.CountItem `json:"top_modalities"`
	TopCompanies  []models.CountItem `json:"top_companies"`
	TopTags       []models.CountItem `json:"top_tags"`
}

const topN = 10

// Summarize computes coverage counters for a set of normalized jobs.
func Summarize(jobs []models.Job) Coverage {
	c := Coverage{Total: len(jobs)}
	modalities := map[string]int{}
	companies := map[string]int{}
	tags := map[string]int{}

	sum := 0.0
	for _, j := range jobs {
		if j.HasSalary() {
			c.WithSalary++
		}
		if j.LocationCity != "" || j.LocationState != "" {
			c.WithLocation++
		}
		if j.Company != "" {
			c.WithCompany++
			companies[j.Company]++
		}
		if len(j.Skills) > 0 {
			c.WithSkills++
		}
		if len(j.Benefits) > 0 {
			c.WithBenefits++
		}
		modalities[string(j.Modality)]++
		for _, t := range j.Tags {
			tags[t]++
		}
		sum += j.Confidence
	}
	if len(jobs) > 0 {
		c.AvgConfidence = sum / float64(len(jobs))
	}
	c.TopModalities = top(modalities, topN)
	c.TopCompanies = top(companies, topN)
	c.TopTags = top(tags, topN)
	return c
}

// top sorts by count, then name, and keeps n items.
func top(counts map[string]int, n int) []models.CountItem {
	items := make([]models.CountItem, 0, len(counts))
	for name, count := range counts {
		if name == "" {
			continue
		}
		items = append(items, models.CountItem{Name: name, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Name < items[j].Name
	})
	if len(items) > n {
		items = items[:n]
	}
	return items
}

func pct(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(part) / float64(total)
}

// String renders the summary as the multi-line block the CLI prints.
func (s Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s (%s)\n", s.RunID, s.Duration.Round(time.Millisecond))
	fmt.Fprintf(&b, "input %d, normalized %d, skipped %d, filtered %d, duplicates %d, seen %d, uploaded %d\n",
		s.Input, s.Normalized, s.Skipped, s.Filtered, s.Duplicates, s.Seen, s.Uploaded)
	c := s.Coverage
	fmt.Fprintf(&b, "salary %.1f%%, location %.1f%%, company %.1f%%, skills %.1f%%, benefits %.1f%%, avg confidence %.2f\n",
		pct(c.WithSalary, c.Total), pct(c.WithLocation, c.Total), pct(c.WithCompany, c.Total),
		pct(c.WithSkills, c.Total), pct(c.WithBenefits, c.Total), c.AvgConfidence)
	for _, m := range c.TopModalities {
		fmt.Fprintf(&b, "  %s: %d\n", m.Name, m.Count)
	}
	return b.String()
}
