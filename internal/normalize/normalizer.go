package normalize

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"time"
	"unicode/utf8"

	"go-vagas-pipeline/internal/models"
)

const rawExcerptLen = 300

// Normalizer turns raw postings into structured jobs. It holds no mutable state
// after construction, so one instance can be shared between goroutines.
type Normalizer struct {
	sectors *SectorMapper
	skills  *SkillMatcher
	now     func() time.Time
}

type Option func(*Normalizer)

func WithSectorMapper(m *SectorMapper) Option {
	return func(n *Normalizer) { n.sectors = m }
}

func WithSkillTaxonomy(taxonomy map[string][]string) Option {
	return func(n *Normalizer) { n.skills = NewSkillMatcher(taxonomy) }
}

// WithClock fixes "now" for relative dates ("há 3 dias").
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) { n.now = now }
}

func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		sectors: NewSectorMapper(nil),
		skills:  defaultSkills,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize runs every extractor over the posting. Explicit raw fields win over
// values found in the description.
func (n *Normalizer) Normalize(raw models.RawJob) models.Job {
	now := n.now()
	description := CleanDescription(raw.Description)
	title := collapseSpaces(raw.Title)
	full := strings.Join(nonEmpty(title, description), "\n")

	job := models.Job{
		Title:          title,
		SourceName:     strings.TrimSpace(raw.Source),
		SourceURL:      strings.TrimSpace(raw.URL),
		Description:    description,
		RawExcerpt:     excerpt(raw.Description, rawExcerptLen),
		SalaryCurrency: models.CurrencyBRL,
		ParsedAt:       now.UTC(),
	}
	if job.SourceName == "" {
		job.SourceName = "catho"
	}

	job.Company = CleanCompany(raw.Company)
	if job.Company == "" {
		job.Company = ExtractCompany(description)
	}

	job.Sector = n.sectors.Normalize(raw.Sector)

	loc := ParseLocationField(raw.Location)
	if loc.City == "" && loc.State == "" {
		loc = ExtractLocation(description)
	} else if loc.State == "" {
		// dedicated column had only a city we do not know; the body may say more
		if extra := ExtractLocation(description); extra.State != "" && strings.EqualFold(extra.City, loc.City) {
			loc = extra
		}
	}
	job.LocationCity, job.LocationState, job.LocationRegion = loc.City, loc.State, loc.Region

	job.Modality = ExtractModality(raw.Modality)
	if job.Modality == models.ModalityUnknown {
		job.Modality = ExtractModality(raw.Location + "\n" + full)
	}

	job.EmploymentType = ExtractEmploymentType(raw.Contract)
	if job.EmploymentType == models.EmploymentUnknown {
		job.EmploymentType = ExtractEmploymentType(full)
	}

	job.Seniority = ExtractSeniority(title+" "+raw.Level, description)

	job.WorkSchedule = ExtractSchedule(raw.Schedule)
	if job.WorkSchedule == "" {
		job.WorkSchedule = ExtractSchedule(description)
	}
	if job.WorkSchedule == "" {
		job.WorkSchedule = strings.TrimSpace(raw.Schedule)
	}

	sal := ExtractSalary(raw.Salary)
	if sal.Min == nil {
		fromBody := ExtractSalary(description)
		fromBody.HasCommission = fromBody.HasCommission || sal.HasCommission
		if fromBody.Commission == nil {
			fromBody.Commission = sal.Commission
		}
		sal = fromBody
	}
	job.SalaryMin, job.SalaryMax = sal.Min, sal.Max
	job.SalaryType, job.SalaryPeriod = sal.Type, sal.Period
	job.Commission, job.HasCommission = sal.Commission, sal.HasCommission

	job.Benefits = ExtractBenefits(raw.Benefits + "\n" + description)
	job.Skills = n.skills.Extract(full)
	job.Education, job.EducationLevel = ExtractEducation(description)
	job.Experience = ExtractExperience(description)
	job.RequirementsMust, job.RequirementsNice = ExtractRequirements(description)
	job.Responsibilities = ExtractResponsibilities(description)
	job.Tags = ExtractTags(full, job.Sector)
	job.PCD = IsPCD(full)

	if d := ExtractPublishedDate(raw.PublishedAt, now); d != "" {
		job.PublishedAt = &d
	} else if d := ExtractDescriptionDate(description, now); d != "" {
		job.PublishedAt = &d
	}

	job.ExternalID = ExternalID(job)
	job.Confidence = Confidence(job)
	job.QualityScore = QualityScore(job)
	return Validate(job)
}

// NormalizeText is the field-map entry point used for CSV rows and ad-hoc input.
// Keys may be the Portuguese export headers or the English field names.
func (n *Normalizer) NormalizeText(text string, fields map[string]string) models.Job {
	raw := RawJobFromFields(fields)
	if strings.TrimSpace(text) != "" {
		raw.Description = text
	}
	return n.Normalize(raw)
}

var defaultNormalizer = New()

// NormalizeText normalizes one record with the default normalizer (no sector map, built-in skills).
func NormalizeText(text string, fields map[string]string) models.Job {
	return defaultNormalizer.NormalizeText(text, fields)
}

var fieldAliases = map[string][]string{
	"title":        {"titulo", "title", "cargo", "vaga"},
	"company":      {"empresa", "company", "company_name"},
	"location":     {"localidade", "localizacao", "location", "local", "cidade"},
	"modality":     {"modalidade", "modality", "work_type", "modelo de trabalho"},
	"salary":       {"salario", "salary", "remuneracao", "faixa salarial"},
	"description":  {"descricao", "description", "descricao completa", "desc"},
	"url":          {"link", "url", "source_url"},
	"sector":       {"setor", "sector", "area"},
	"published_at": {"publicada em", "data de publicacao", "published_at", "data", "publicacao"},
	"schedule":     {"horario", "schedule", "work_schedule", "jornada"},
	"contract":     {"regime", "regime de contratacao", "contrato", "tipo de contrato", "employment_type"},
	"benefits":     {"beneficios", "benefits"},
	"level":        {"nivel", "level", "senioridade", "seniority"},
	"source":       {"fonte", "source", "source_name"},
}

// RawJobFromFields maps a loosely keyed record onto RawJob. Keys are matched
// case- and accent-insensitively.
func RawJobFromFields(fields map[string]string) models.RawJob {
	folded := make(map[string]string, len(fields))
	for k, v := range fields {
		folded[collapseSpaces(fold(k))] = v
	}
	get := func(name string) string {
		for _, alias := range fieldAliases[name] {
			if v, ok := folded[alias]; ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
		return ""
	}
	return models.RawJob{
		Source:      get("source"),
		Title:       get("title"),
		Company:     get("company"),
		Location:    get("location"),
		Modality:    get("modality"),
		Salary:      get("salary"),
		Description: get("description"),
		URL:         get("url"),
		Sector:      get("sector"),
		PublishedAt: get("published_at"),
		Schedule:    get("schedule"),
		Contract:    get("contract"),
		Benefits:    get("benefits"),
		Level:       get("level"),
	}
}

// ExternalID is stable across runs: md5 of the source URL, or of title|company|city without one.
func ExternalID(job models.Job) string {
	key := job.SourceURL
	if key == "" {
		key = strings.ToLower(job.Title + "|" + job.Company + "|" + job.LocationCity)
	}
	sum := md5.Sum([]byte(key))
	return hex.EncodeToString(sum[:])
}

// Confidence scores how much of the core record was recovered.
func Confidence(job models.Job) float64 {
	c := 0.3
	if job.Company != "" {
		c += 0.2
	}
	if job.LocationCity != "" {
		c += 0.2
	}
	if job.SalaryMin != nil {
		c += 0.2
	}
	if len(job.Responsibilities) > 0 {
		c += 0.1
	}
	return clamp01(c)
}

// QualityScore weighs the enrichment fields; max 6.5.
func QualityScore(job models.Job) float64 {
	score := 0.0
	if job.HasSalary() {
		score += 2
	}
	if job.Experience != "" {
		score += 1
	}
	if len(job.Responsibilities) > 0 {
		score += 1
	}
	if len(job.Benefits) > 0 {
		score += 1
	}
	if job.Commission != nil || job.HasCommission {
		score += 0.5
	}
	if len(job.Education) > 0 {
		score += 0.5
	}
	if len(job.Skills) > 0 {
		score += 0.5
	}
	return score
}

// Validate enforces the cross-field invariants: salary_min <= salary_max,
// confidence within [0,1], no nil lists, no empty enums.
func Validate(job models.Job) models.Job {
	if job.SalaryMin != nil && job.SalaryMax != nil && *job.SalaryMin > *job.SalaryMax {
		job.SalaryMin, job.SalaryMax = job.SalaryMax, job.SalaryMin
	}
	if job.SalaryMin == nil && job.SalaryMax != nil {
		job.SalaryMin, job.SalaryMax = job.SalaryMax, nil
	}
	job.Confidence = clamp01(job.Confidence)

	for _, list := range []*[]string{&job.Benefits, &job.Skills, &job.Education, &job.RequirementsMust,
		&job.RequirementsNice, &job.Responsibilities, &job.Tags} {
		if *list == nil {
			*list = []string{}
		}
	}
	if job.Seniority == "" {
		job.Seniority = models.SeniorityUnknown
	}
	if job.EmploymentType == "" {
		job.EmploymentType = models.EmploymentUnknown
	}
	if job.Modality == "" {
		job.Modality = models.ModalityUnknown
	}
	if job.SalaryType == "" {
		job.SalaryType = models.SalaryTypeNegotiable
	}
	if job.SalaryPeriod == "" {
		job.SalaryPeriod = models.SalaryPeriodMonthly
	}
	if job.SalaryCurrency == "" {
		job.SalaryCurrency = models.CurrencyBRL
	}
	if job.EducationLevel == "" {
		job.EducationLevel = EducationUnknown
	}
	return job
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func nonEmpty(parts ...string) []string {
	out := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

func excerpt(s string, max int) string {
	s = collapseSpaces(s)
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:max])) + "..."
}
