package normalize

import (
	"regexp"
	"strings"

	"go-vagas-pipeline/internal/models"
)

type seniorityRule struct {
	level    models.Seniority
	patterns []*regexp.Regexp
}

// Order matters: "Analista Sênior" is Sênior, "Gerente de Vendas" is Gerente.
// All patterns run against folded (lowercase, accent-free) text.
var seniorityRules = []seniorityRule{
	{models.SeniorityIntern, compileAll(`\bestagi(?:ario|aria|o)\b`)},
	{models.SeniorityTrainee, compileAll(`\btrainee\b`)},
	{models.SenioritySenior, compileAll(`\bsenior\b`, `\bsr\b`)},
	{models.SeniorityMid, compileAll(`\bpleno\b`, `\bpl\b`)},
	{models.SeniorityJunior, compileAll(`\bjunior\b`, `\bjr\b`)},
	{models.SenioritySpecialist, compileAll(`\bespecialista\b`)},
	{models.SeniorityDirector, compileAll(`\bdiretora?\b`)},
	{models.SeniorityManager, compileAll(`\bgerente\b`)},
	{models.SeniorityCoordinator, compileAll(`\bcoordenadora?\b`, `\bsupervisora?\b`, `\blider\b`)},
	{models.SeniorityJunior, compileAll(`\bauxiliar\b`, `\bassistente\b`, `\baprendiz\b`)},
}

// in descriptions only explicit level markers count; "gerente" in a body usually names who you report to
var descriptionLevelRe = regexp.MustCompile(`\b(?:nivel|vaga|cargo|perfil|profissional)\s*:?\s*(estagiario|trainee|junior|pleno|senior|especialista)\b`)

// ExtractSeniority classifies the level. The title wins over the description.
func ExtractSeniority(title, description string) models.Seniority {
	if t := fold(title); t != "" {
		for _, rule := range seniorityRules {
			if matchAny(rule.patterns, t) {
				return rule.level
			}
		}
	}
	if m := descriptionLevelRe.FindStringSubmatch(fold(description)); m != nil {
		for _, rule := range seniorityRules {
			if matchAny(rule.patterns, m[1]) {
				return rule.level
			}
		}
	}
	return models.SeniorityUnknown
}

type employmentRule struct {
	kind     models.EmploymentType
	patterns []*regexp.Regexp
}

var employmentRules = []employmentRule{
	{models.EmploymentCLT, compileAll(`\bclt\b`, `carteira\s*assinada`, `registro\s*em\s*carteira`, `\(efetivo\)`)},
	{models.EmploymentPJ, compileAll(`\bpj\b`, `pessoa\s*juridica`, `\bcnpj\b`)},
	{models.EmploymentInternship, compileAll(`\bestagi(?:o|ario|aria)\b`)},
	{models.EmploymentApprentice, compileAll(`\bjovem\s*aprendiz\b`, `\baprendiz\b`)},
	{models.EmploymentTemporary, compileAll(`\btemporari[oa]\b`)},
	{models.EmploymentFreelancer, compileAll(`\bfree\s*-?lancer\b`, `\bautonomo\b`)},
	{models.EmploymentOutsourced, compileAll(`\bterceirizad[oa]\b`, `\bterceirizacao\b`)},
}

// ExtractEmploymentType returns the contract regime or "Não especificado".
func ExtractEmploymentType(text string) models.EmploymentType {
	t := fold(text)
	for _, rule := range employmentRules {
		if matchAny(rule.patterns, t) {
			return rule.kind
		}
	}
	return models.EmploymentUnknown
}

type modalityRule struct {
	modality models.Modality
	patterns []*regexp.Regexp
}

// Hybrid first: hybrid postings usually also mention "presencial" and "remoto".
var modalityRules = []modalityRule{
	{models.ModalityHybrid, compileAll(`\bhibrid[oa]\b`, `semi\s*-?\s*presencial`, `modelo\s*misto`)},
	{models.ModalityRemote, compileAll(`\bremot[oa]\b`, `home\s*-?\s*office`, `trabalho\s*em\s*casa`, `\bteletrabalho\b`, `100%\s*online`)},
	{models.ModalityOnSite, compileAll(`\bpresencial\b`, `\bno\s*local\b`)},
}

// ExtractModality returns where the work happens or "Não especificado".
func ExtractModality(text string) models.Modality {
	t := fold(text)
	for _, rule := range modalityRules {
		if matchAny(rule.patterns, t) {
			return rule.modality
		}
	}
	return models.ModalityUnknown
}

var schedulePatterns = compileAll(
	`(?i)((?:das\s*)?\d{1,2}\s*h(?:\d{2})?\s*(?:às|as|a)\s*\d{1,2}\s*h(?:\d{2})?)`,
	`(?i)((?:das\s*)?\d{1,2}:\d{2}\s*(?:às|as|a|-)\s*\d{1,2}:\d{2})`,
	`(?i)(segunda\s*(?:à|a)\s*(?:sexta|s[áa]bado)(?:[- ]feira)?[^.\n|;]{0,60})`,
	`(?i)hor[áa]rio(?:\s*de\s*trabalho)?\s*:\s*([^.\n|;]{3,80})`,
	`(?i)(escala\s*\d{1,2}\s*x\s*\d{1,2})`,
)

// ExtractSchedule returns the first working-hours phrase, "" when absent.
func ExtractSchedule(text string) string {
	for _, re := range schedulePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimRight(collapseSpaces(m[1]), " ,-")
		}
	}
	return ""
}
