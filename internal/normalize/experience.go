package normalize

import (
	"fmt"
	"regexp"
	"strings"
)

const NoExperience = "Sem experiência"

var (
	noExperiencePatterns = compileAll(
		`sem\s*experiencia`,
		`nao\s*(?:e\s*)?(?:necessari[ao]|exige|exigimos|precisa\s*de)\s*experiencia`,
		`primeiro\s*emprego`,
		`aceita(?:mos)?\s*(?:candidatos\s*)?(?:sem\s*experiencia|iniciantes)`,
	)
	experienceYearsPatterns = compileAll(
		`(\d{1,2})\s*\+?\s*anos?\s*de\s*experiencia`,
		`experiencia\s*(?:minima\s*)?de\s*(\d{1,2})\s*anos?`,
		`(\d{1,2})\s*anos?\s*(?:na|de)\s*(?:area|funcao)`,
		`(?:minimo|pelo\s*menos)\s*(?:de\s*)?(\d{1,2})\s*anos?`,
	)
	experienceMonthsRe    = regexp.MustCompile(`(\d{1,2})\s*meses\s*de\s*experiencia|experiencia\s*(?:minima\s*)?de\s*(\d{1,2})\s*meses`)
	experienceAreaPattern = compileAll(
		`experiencia\s*(?:previa\s*|comprovada\s*)?(?:na\s*area\s*de|em|como|na\s*funcao\s*de|no\s*cargo\s*de)\s+([^.,;:\n|]{3,80})`,
		`vivencia\s*(?:em|com|na\s*area\s*de)\s+([^.,;:\n|]{3,80})`,
	)
)

// ExtractExperience returns a short description of the experience asked for:
// "2 anos", "6 meses", "vendas externas", "Sem experiência" or "".
// Matching is done on folded text, so area phrases come back without accents.
func ExtractExperience(text string) string {
	t := fold(text)
	if t == "" {
		return ""
	}
	if matchAny(noExperiencePatterns, t) {
		return NoExperience
	}
	for _, re := range experienceYearsPatterns {
		if m := re.FindStringSubmatch(t); m != nil {
			if m[1] == "1" {
				return "1 ano"
			}
			return fmt.Sprintf("%s anos", m[1])
		}
	}
	if m := experienceMonthsRe.FindStringSubmatch(t); m != nil {
		n := m[1]
		if n == "" {
			n = m[2]
		}
		return fmt.Sprintf("%s meses", n)
	}
	for _, re := range experienceAreaPattern {
		if m := re.FindStringSubmatch(t); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
