package normalize

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go-vagas-pipeline/internal/models"
)

// Salary is the compensation extracted from free text.
type Salary struct {
	Min           *float64
	Max           *float64
	Type          string
	Period        string
	Currency      string
	Commission    *float64
	HasCommission bool
}

var (
	salaryRangePatterns = compileAll(
		`(?i)\b(?:de|entre)\s*r\$\s*([\d.,]+)\s*(?:(?:a|e)\b|at[eé]|-|–)\s*(?:r\$\s*)?([\d.,]+)`,
		`(?i)r\$\s*([\d.,]+)\s*(?:a\b|at[eé]|-|–)\s*r\$\s*([\d.,]+)`,
		`(?i)(?:sal[áa]rio|remunera[çc][ãa]o)\s*:?\s*(?:\b(?:de|entre)\b)?\s*(?:r\$\s*)?([\d.,]+)\s*(?:(?:a|e)\b|at[eé]|-|–)\s*(?:r\$\s*)?([\d.,]+)`,
	)
	salarySinglePatterns = compileAll(
		`(?i)r\$\s*([\d.,]+)`,
		`(?i)(?:sal[áa]rio|remunera[çc][ãa]o|vencimento|ganho|renda)\s*:?\s*(?:de\s*)?([\d.,]+)`,
	)
	commissionPatterns = compileAll(
		`(?i)comiss[ãa]o\s*de\s*([\d.,]+)\s*%`,
		`(?i)comiss[ãa]o\s*:?\s*([\d.,]+)\s*%`,
		`(?i)([\d.,]+)\s*%\s*de\s*comiss[ãa]o`,
	)
	commissionWordRe = regexp.MustCompile(`(?i)comiss[ãa]o|comissionamento`)

	hourlyRe = regexp.MustCompile(`(?i)r\$\s*[\d.,]+\s*(?:por|/|a)\s*hora|valor\s*(?:da\s*)?hora|por\s*hora\s*trabalhada`)
	weeklyRe = regexp.MustCompile(`(?i)r\$\s*[\d.,]+\s*(?:por|/)\s*semana|\bsemanal\b`)
	dailyRe  = regexp.MustCompile(`(?i)r\$\s*[\d.,]+\s*(?:por|/|ao)\s*dia\b|\bdi[áa]ria\b`)

	thousandsCommaRe = regexp.MustCompile(`^\d{1,3}(?:,\d{3})+$`)
	thousandsDotRe   = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})+$`)
)

// minBareSalary guards the keyword pattern: "salário 13" is not a salary.
const minBareSalary = 100

// ParseBRLNumber parses a pt-BR formatted amount: "1.234,56", "1,500", "2,5", "3.500".
func ParseBRLNumber(s string) (float64, bool) {
	s = strings.Trim(strings.TrimSpace(s), ".,")
	if s == "" {
		return 0, false
	}
	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")

	switch {
	case hasComma && hasDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case hasComma:
		if thousandsCommaRe.MatchString(s) {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case hasDot:
		if thousandsDotRe.MatchString(s) {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// ExtractSalary tries range patterns first, then single values.
func ExtractSalary(text string) Salary {
	sal := Salary{
		Type:     models.SalaryTypeNegotiable,
		Period:   models.SalaryPeriodMonthly,
		Currency: models.CurrencyBRL,
	}
	if strings.TrimSpace(text) == "" {
		return sal
	}

	for _, re := range commissionPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if v, ok := ParseBRLNumber(m[1]); ok {
				sal.Commission = &v
			}
			break
		}
	}
	sal.HasCommission = sal.Commission != nil || commissionWordRe.MatchString(text)

	switch {
	case hourlyRe.MatchString(text):
		sal.Period = models.SalaryPeriodHourly
	case weeklyRe.MatchString(text):
		sal.Period = models.SalaryPeriodWeekly
	case dailyRe.MatchString(text):
		sal.Period = models.SalaryPeriodDaily
	}

	for _, re := range salaryRangePatterns {
		idx := re.FindStringSubmatchIndex(text)
		if idx == nil {
			continue
		}
		v1, ok1 := rangeValue(text, idx[0], idx[2], idx[3])
		v2, ok2 := rangeValue(text, idx[3], idx[4], idx[5])
		if ok1 && ok2 {
			vals := []float64{v1, v2}
			sort.Float64s(vals)
			sal.Min, sal.Max = &vals[0], &vals[1]
			break
		}
	}

	if sal.Min == nil {
		for i, re := range salarySinglePatterns {
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			v, ok := ParseBRLNumber(m[1])
			if !ok || v <= 0 || (i > 0 && v < minBareSalary) {
				continue
			}
			sal.Min = &v
			break
		}
	}

	switch {
	case sal.Min != nil && sal.Max != nil:
		sal.Type = models.SalaryTypeRange
	case sal.Min != nil:
		sal.Type = models.SalaryTypeMinimum
	}
	return sal
}

// rangeValue parses one end of a salary range. Without "R$" between from and
// start the number must clear minBareSalary: "R$ 2.000 - 44 horas" is not 44-2000.
func rangeValue(text string, from, start, end int) (float64, bool) {
	v, ok := ParseBRLNumber(text[start:end])
	if !ok || v <= 0 {
		return 0, false
	}
	if !strings.Contains(strings.ToLower(text[from:start]), "r$") && v < minBareSalary {
		return 0, false
	}
	return v, true
}
