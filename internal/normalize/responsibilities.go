package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxResponsibilities = 12
	minItemLen          = 12
	maxItemLen          = 220
)

var (
	actionPatterns = compileAll(
		`(?i)\b((?:desenvolver|executar|realizar|coordenar|gerenciar|supervisionar|administrar|controlar|organizar|planejar|implementar|monitorar|acompanhar|elaborar|preparar|conduzir|liderar|orientar|apoiar|auxiliar|assessorar|atender|prestar|fornecer|garantir|assegurar|manter|zelar|cuidar|operar|configurar|efetuar|emitir|conferir|analisar)\s+[^\n.;]+)`,
		`(?i)(?:ser[áa]\s+)?respons[áa]vel\s+(?:por|pela|pelo)\s+([^\n.;]+)`,
		`(?m)^\s*[•\-*]\s*([^\n]+)`,
		`(?m)^\s*\d{1,2}[.)]\s*([^\n]+)`,
	)

	responsibilityNoiseRe = regexp.MustCompile(`(?i)r\$\s*\d|sal[áa]ri|remunera|benef[íi]cio|comiss|\bplr\b|\bfgts\b|13[ºo°]|` +
		`vale[\s-]*(?:transporte|refei[çc][ãa]o|alimenta[çc][ãa]o)|\bvt\b|\bvr\b|\bva\b|` +
		`candidat|curr[íi]culo|e-?mail|@|https?:|www\.|clique|link|contin(?:uar|ue)\s+lendo|` +
		`vaga\s+(?:publicada|dispon[íi]vel)|\bsomos\b|sobre\s+a\s+empresa|` +
		`requisito|qualifica[çc][ãa]o|experi[êe]ncia\s+(?:m[íi]nima|necess[áa]ria|obrigat[óo]ria)|` +
		`forma[çc][ãa]o|escolaridade|habilidades|certifica[çc][ãa]o`)

	genericResponsibleRe = regexp.MustCompile(`(?i)^respons[áa]vel\s+por$`)
)

// ExtractResponsibilities collects duty items from named sections, falling back
// to action-verb sentences and bullets anywhere in the text.
func ExtractResponsibilities(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	text = segmentText(text)

	var items []string
	for _, m := range responsibilitySectionRe.FindAllStringSubmatch(text, -1) {
		for _, it := range splitItems(m[1], minItemLen, maxItemLen) {
			if keepResponsibility(it) {
				items = append(items, it)
			}
		}
	}

	if len(items) == 0 {
		for _, re := range actionPatterns {
			for _, m := range re.FindAllStringSubmatch(text, -1) {
				it := collapseSpaces(itemPrefixRe.ReplaceAllString(m[1], ""))
				it = strings.TrimRight(it, " ;-.,:")
				n := utf8.RuneCountInString(it)
				if n < minItemLen || n > maxItemLen || !keepResponsibility(it) {
					continue
				}
				items = append(items, it)
			}
		}
	}
	return dedupItems(items, maxResponsibilities)
}

func keepResponsibility(item string) bool {
	return !responsibilityNoiseRe.MatchString(item) && !genericResponsibleRe.MatchString(item)
}
