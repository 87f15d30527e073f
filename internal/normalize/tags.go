package normalize

import (
	"sort"
	"strings"
)

// area tag -> folded keyword patterns
var areaTags = []namedPatterns{
	{"VENDAS", compileAll(`\bvendas?\b`, `\bvendedor(?:a|es)?\b`, `\bcomercial\b`, `\bconsultor(?:a)?\s+de\s+vendas\b`)},
	{"MARKETING", compileAll(`\bmarketing\b`, `\bpublicidade\b`, `\bpropaganda\b`, `\bsocial\s*media\b`)},
	{"TECNOLOGIA", compileAll(`\bdesenvolvedor(?:a)?\b`, `\bprogramador(?:a)?\b`, `\bsoftware\b`, `\bti\b`, `\bsuporte\s+tecnico\b`, `\bdados\b`)},
	{"SAÚDE", compileAll(`\bmedic[oa]\b`, `\benfermeir[oa]\b`, `\benfermagem\b`, `\bhospital(?:ar)?\b`, `\bclinica\b`, `\bsaude\b`)},
	{"EDUCAÇÃO", compileAll(`\bprofessor(?:a)?\b`, `\beducador(?:a)?\b`, `\bescola\b`, `\bpedagogic[oa]\b`, `\bdocente\b`)},
	{"SOCIAL", compileAll(`\bassistente\s+social\b`, `\bservico\s+social\b`, `\bprojetos?\s+socia(?:l|is)\b`, `\bcomunidade\b`)},
	{"ADMINISTRATIVO", compileAll(`\badministrativ[oa]\b`, `\bescritorio\b`, `\brecepcionista\b`, `\bfinanceir[oa]\b`)},
	{"OPERACIONAL", compileAll(`\boperador(?:a)?\b`, `\bmanutencao\b`, `\bproducao\b`, `\blogistica\b`, `\bestoque\b`)},
}

// ExtractTags returns the sector (upper-cased) plus area tags found in the text, sorted.
func ExtractTags(text, sector string) []string {
	tags := []string{}
	if s := strings.TrimSpace(sector); s != "" && s != DefaultSector {
		tags = append(tags, strings.ToUpper(s))
	}
	t := fold(text)
	for _, a := range areaTags {
		if matchAny(a.patterns, t) {
			tags = appendUnique(tags, a.name)
		}
	}
	sort.Strings(tags)
	return tags
}
