package models

import (
	"time"
)

const NotSpecified = "Não especificado"

type Seniority string

const (
	SeniorityIntern      Seniority = "Estagiário"
	SeniorityTrainee     Seniority = "Trainee"
	SeniorityJunior      Seniority = "Júnior"
	SeniorityMid         Seniority = "Pleno"
	SenioritySenior      Seniority = "Sênior"
	SenioritySpecialist  Seniority = "Especialista"
	SeniorityCoordinator Seniority = "Coordenador"
	SeniorityManager     Seniority = "Gerente"
	SeniorityDirector    Seniority = "Diretor"
	SeniorityUnknown     Seniority = NotSpecified
)

type EmploymentType string

const (
	EmploymentCLT        EmploymentType = "CLT"
	EmploymentPJ         EmploymentType = "PJ"
	EmploymentInternship EmploymentType = "Estágio"
	EmploymentTemporary  EmploymentType = "Temporário"
	EmploymentApprentice EmploymentType = "Aprendiz"
	EmploymentFreelancer EmploymentType = "Freelancer"
	EmploymentOutsourced EmploymentType = "Terceirizado"
	EmploymentUnknown    EmploymentType = NotSpecified
)

type Modality string

const (
	ModalityOnSite  Modality = "Presencial"
	ModalityRemote  Modality = "Remoto"
	ModalityHybrid  Modality = "Híbrido"
	ModalityUnknown Modality = NotSpecified
)

const (
	SalaryTypeRange      = "faixa salarial"
	SalaryTypeMinimum    = "valor mínimo"
	SalaryTypeNegotiable = "a combinar"

	SalaryPeriodMonthly = "mensal"
	SalaryPeriodHourly  = "hora"
	SalaryPeriodWeekly  = "semanal"
	SalaryPeriodDaily   = "diario"

	CurrencyBRL = "BRL"
)

// RawJob is a posting as it comes out of the scraper or a CSV export, before any parsing.
type RawJob struct {
	Source      string `json:"source"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Modality    string `json:"modality"`
	Salary      string `json:"salary"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Sector      string `json:"sector"`
	PublishedAt string `json:"published_at"`
	Schedule    string `json:"schedule"`
	Contract    string `json:"contract"`
	Benefits    string `json:"benefits"`
	Level       string `json:"level"`
}

// Job is the structured record produced by the normalizer and stored in Postgres.
type Job struct {
	ID               int64          `json:"id,omitempty"`
	ExternalID       string         `json:"external_id"`
	Title            string         `json:"title"`
	Company          string         `json:"company_name"`
	Sector           string         `json:"sector"`
	Seniority        Seniority      `json:"seniority"`
	EmploymentType   EmploymentType `json:"employment_type"`
	Modality         Modality       `json:"modality"`
	WorkSchedule     string         `json:"work_schedule,omitempty"`
	LocationCity     string         `json:"location_city,omitempty"`
	LocationState    string         `json:"location_state,omitempty"`
	LocationRegion   string         `json:"location_region,omitempty"`
	SalaryMin        *float64       `json:"salary_min"`
	SalaryMax        *float64       `json:"salary_max"`
	SalaryType       string         `json:"salary_type"`
	SalaryPeriod     string         `json:"salary_period"`
	SalaryCurrency   string         `json:"salary_currency"`
	Commission       *float64       `json:"commission"`
	HasCommission    bool           `json:"has_commission"`
	Benefits         []string       `json:"benefits"`
	Skills           []string       `json:"skills"`
	Education        []string       `json:"education"`
	EducationLevel   string         `json:"education_level"`
	Experience       string         `json:"experience,omitempty"`
	RequirementsMust []string       `json:"requirements_must"`
	RequirementsNice []string       `json:"requirements_nice"`
	Responsibilities []string       `json:"responsibilities"`
	Tags             []string       `json:"tags"`
	PCD              bool           `json:"pcd"`
	PublishedAt      *string        `json:"published_at"`
	SourceName       string         `json:"source_name"`
	SourceURL        string         `json:"source_url"`
	Description      string         `json:"description"`
	RawExcerpt       string         `json:"raw_excerpt"`
	Confidence       float64        `json:"confidence"`
	QualityScore     float64        `json:"quality_score"`
	RunID            string         `json:"run_id,omitempty"`
	ParsedAt         time.Time      `json:"parsed_at"`
	CreatedAt        *time.Time     `json:"created_at,omitempty"`
}

// DedupKey identifies a posting across runs. Falls back to the external id when there is no URL.
func (j Job) DedupKey() string {
	if j.SourceURL != "" {
		return j.SourceURL
	}
	return j.ExternalID
}

// HasSalary reports whether a concrete amount was extracted.
func (j Job) HasSalary() bool {
	return j.SalaryMin != nil && j.SalaryType != SalaryTypeNegotiable
}

// JobFilter narrows API listing queries. Empty fields are ignored.
type JobFilter struct {
	Sector    string
	City      string
	State     string
	Modality  string
	Seniority string
	Limit     int
	Offset    int
}

type CountItem struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// JobStats aggregates the loaded table for the API.
type JobStats struct {
	Total        int         `json:"total"`
	WithSalary   int         `json:"with_salary"`
	AvgSalaryMin *float64    `json:"avg_salary_min"`
	BySector     []CountItem `json:"by_sector"`
	ByModality   []CountItem `json:"by_modality"`
	ByState      []CountItem `json:"by_state"`
	BySeniority  []CountItem `json:"by_seniority"`
}
