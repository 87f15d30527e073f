package normalize

import (
	"regexp"
	"strings"
)

const maxRequirements = 10

var (
	inlineNiceRe = regexp.MustCompile(`(?i)(?:desej[áa]vel|diferencial|ser[áa]\s+um\s+plus)\s*:?\s*([^,\n.;|]{3,120})`)
	inlineMustRe = compileAll(
		`(?i)(ensino\s+(?:m[ée]dio|t[ée]cnico|superior)\s+completo)`,
		`(?i)(experi[êe]ncia\s+(?:de\s+|m[íi]nima\s+de\s+)?\d+\s*(?:anos?|meses))`,
		`(?i)(conhecimento\s+(?:em|de)\s+[^,\n.;|]{3,80})`,
		`(?i)(cnh\s+(?:categoria\s+)?[a-e]{1,2}\b)`,
		`(?i)(disponibilidade\s+(?:de|para)\s+[^,\n.;|]{3,80})`,
	)
	niceMarkerRe = regexp.MustCompile(`(?i)desej[áa]ve|diferencia|plus`)
)

// ExtractRequirements returns must-have and nice-to-have items, at most 10 each.
func ExtractRequirements(text string) (must, nice []string) {
	must, nice = []string{}, []string{}
	if strings.TrimSpace(text) == "" {
		return must, nice
	}
	text = segmentText(text)

	for _, m := range requirementSectionRe.FindAllStringSubmatch(text, -1) {
		// "Requisitos desejáveis:" belongs to the nice-to-have section
		if strings.HasPrefix(fold(strings.TrimSpace(m[1])), "desejave") {
			continue
		}
		for _, it := range splitItems(m[1], 4, maxItemLen) {
			if niceMarkerRe.MatchString(it) {
				nice = append(nice, it)
			} else {
				must = append(must, it)
			}
		}
	}
	if len(must) == 0 {
		for _, re := range inlineMustRe {
			for _, m := range re.FindAllStringSubmatch(text, -1) {
				must = append(must, collapseSpaces(m[1]))
			}
		}
	}

	for _, m := range niceSectionRe.FindAllStringSubmatch(text, -1) {
		nice = append(nice, splitItems(m[1], 4, maxItemLen)...)
	}
	if len(nice) == 0 {
		for _, m := range inlineNiceRe.FindAllStringSubmatch(text, -1) {
			nice = append(nice, strings.TrimSpace(m[1]))
		}
	}
	return dedupItems(must, maxRequirements), dedupItems(nice, maxRequirements)
}
