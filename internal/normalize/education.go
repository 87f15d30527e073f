package normalize

import (
	"regexp"
	"strings"
)

const maxEducation = 5

const (
	EducationFundamental = "Fundamental"
	EducationHighSchool  = "Médio/Técnico"
	EducationHigher      = "Superior"
	EducationPostgrad    = "Pós-graduação"
	EducationUnknown     = "Não informado"
)

var educationPatterns = compileAll(
	`(ensino\s+fundamental\s+(?:completo|incompleto))`,
	`(ensino\s+m[ée]dio\s+(?:completo|incompleto|cursando))`,
	`(ensino\s+t[ée]cnico\s+(?:completo|incompleto|cursando))`,
	`(ensino\s+superior\s+(?:completo|incompleto|cursando))`,
	`(superior\s+(?:completo|incompleto|cursando)(?:\s+em\s+[\p{L} ]{3,40})?)`,
	`(t[ée]cnico\s+em\s+[\p{L} ]{3,40})`,
	`(gradua[çc][ãa]o\s+em\s+[\p{L} ]{3,40})`,
	`(forma[çc][ãa]o\s+em\s+[\p{L} ]{3,40})`,
	`(p[óo]s[-\s]*gradua[çc][ãa]o)`,
	`(especializa[çc][ãa]o)`,
	`\b(mba)\b`,
	`\b(mestrado)\b`,
	`\b(doutorado)\b`,
)

// a captured "técnico em ..." phrase runs until a connective
var educationTailRe = regexp.MustCompile(`\s+(?:e|ou|com|para|na|no|desejável|será|experiência|conhecimento)\s.*$`)

// ordered from highest; first hit wins. Runs against folded text.
var educationLevels = []struct {
	level    string
	patterns []*regexp.Regexp
}{
	{EducationPostgrad, compileAll(`pos[-\s]*graduacao`, `\bmba\b`, `\bmestrado\b`, `\bdoutorado\b`, `\bespecializacao\b`)},
	{EducationHigher, compileAll(`\bsuperior\b`, `\bgraduacao\b`, `\bbacharel`, `\blicenciatura\b`, `\bgraduad[oa]\b`)},
	{EducationHighSchool, compileAll(`ensino\s+medio`, `\btecnico\s+em\b`, `ensino\s+tecnico`, `\b2[ºo°]?\s*grau\b`)},
	{EducationFundamental, compileAll(`ensino\s+fundamental`, `\b1[ºo°]?\s*grau\b`)},
}

// ExtractEducation returns the education phrases found (lowercase, at most 5)
// and the highest education level they imply.
func ExtractEducation(text string) ([]string, string) {
	lower := strings.ToLower(text)
	education := []string{}
	for _, re := range educationPatterns {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			v := collapseSpaces(educationTailRe.ReplaceAllString(m[1], ""))
			if v == "" || containsFold(education, v) {
				continue
			}
			education = append(education, v)
		}
	}
	if len(education) > maxEducation {
		education = education[:maxEducation]
	}

	level := EducationUnknown
	folded := fold(text)
	for _, l := range educationLevels {
		if matchAny(l.patterns, folded) {
			level = l.level
			break
		}
	}
	return education, level
}

// containsFold reports whether v is already covered by an entry ("superior completo" by "ensino superior completo").
func containsFold(list []string, v string) bool {
	for _, x := range list {
		if strings.Contains(x, v) || strings.Contains(v, x) {
			return true
		}
	}
	return false
}
