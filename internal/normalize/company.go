package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	companyPatterns = compileAll(
		`(?i)dados\s+da\s+empresa\s*:?\s*\n?\s*([^\n|]{3,80})`,
		`(?i)empresa\s*(?:contratante)?\s*:\s*([^\n|,;]{3,80})`,
		`((?:[A-ZÀ-Ú\d][\p{L}\d&.'-]*\s+)(?:(?:d[aeo]s?|e|&|[A-ZÀ-Ú\d][\p{L}\d&.'-]*)\s+){0,6}(?:LTDA|Ltda|EIRELI|Eireli|S/A|S\.A\.?))`,
		`\b((?:Hospital|Colégio|Clínica|Instituto|Grupo|Rede|Supermercados?|Faculdade|Universidade)\s+[A-ZÀ-Ú][\p{L}\d&' ]{2,50})`,
	)
	companyNoise = map[string]bool{
		"confidencial": true, "empresa confidencial": true, "empresa": true, "por que": true,
		"sigilosa": true, "empresa sigilosa": true, "nao informado": true, "nao informada": true,
	}
	companyTrailRe = regexp.MustCompile(`\s+(?:contrata|busca|procura|seleciona|est[áa]|oferece|admite)(?:\s.*)?$`)
)

// ExtractCompany pulls an employer name from a posting body; "" when nothing credible is found.
func ExtractCompany(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	for _, re := range companyPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if c := CleanCompany(m[1]); c != "" {
				return c
			}
		}
	}
	return ""
}

// CleanCompany trims a company name and rejects placeholders such as "Confidencial".
func CleanCompany(s string) string {
	s = collapseSpaces(companyTrailRe.ReplaceAllString(s, ""))
	s = strings.Trim(s, " ,:;-–|")
	if utf8.RuneCountInString(s) < 3 || companyNoise[fold(s)] {
		return ""
	}
	return s
}
