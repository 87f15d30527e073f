package filter

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"go-vagas-pipeline/internal/models"
	"go-vagas-pipeline/internal/normalize"
)

// Rules decide which normalized postings are loaded. Keyword entries are
// regular expressions matched case-insensitively against title and description,
// with accents ignored on both sides.
type Rules struct {
	Include       []string
	Exclude       []string
	MinConfidence float64
	MaxAge        time.Duration
}

type Matcher struct {
	include       *regexp.Regexp
	exclude       *regexp.Regexp
	minConfidence float64
	maxAge        time.Duration
	now           func() time.Time
}

func NewMatcher(rules Rules) (*Matcher, error) {
	include, err := compileKeywords(rules.Include)
	if err != nil {
		return nil, fmt.Errorf("invalid include keyword: %w", err)
	}
	exclude, err := compileKeywords(rules.Exclude)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude keyword: %w", err)
	}
	return &Matcher{
		include:       include,
		exclude:       exclude,
		minConfidence: rules.MinConfidence,
		maxAge:        rules.MaxAge,
		now:           time.Now,
	}, nil
}

// compileKeywords joins the keywords into one alternation; nil when there are none.
func compileKeywords(keywords []string) (*regexp.Regexp, error) {
	var parts []string
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			parts = append(parts, "(?:"+normalize.StripAccents(k)+")")
		}
	}
	if len(parts) == 0 {
		return nil, nil
	}
	return regexp.Compile(`(?i)` + strings.Join(parts, "|"))
}

// Check returns whether the job passes and, when it does not, why.
func (m *Matcher) Check(job models.Job) (bool, string) {
	text := normalize.StripAccents(job.Title + " " + job.Description)

	if m.include != nil && !m.include.MatchString(text) {
		return false, "no include keyword"
	}
	if m.exclude != nil && m.exclude.MatchString(text) {
		return false, "exclude keyword"
	}
	if job.Confidence < m.minConfidence {
		return false, "low confidence"
	}
	if job.PublishedAt != nil && !isRecentAt(m.now(), *job.PublishedAt, m.maxAge) {
		return false, "too old"
	}
	return true, ""
}

func (m *Matcher) ShouldInclude(job models.Job) bool {
	ok, _ := m.Check(job)
	return ok
}

// ShouldIncludeJob is the one-off form of Matcher.ShouldInclude. Invalid rules reject everything.
func ShouldIncludeJob(job models.Job, rules Rules) bool {
	m, err := NewMatcher(rules)
	if err != nil {
		return false
	}
	return m.ShouldInclude(job)
}
