package normalize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	commonStops = `benef[íi]cios|sal[áa]rio|remunera[çc][ãa]o|hor[áa]rio|regime|local\s+de\s+trabalho|` +
		`informa[çc][õo]es\s+adicionais|sobre\s+a\s+empresa|o\s+que\s+oferecemos|oferecemos`
	responsibilityHeaders = `(?:principais\s+)?(?:responsabilidades?|atividades|fun[çc][õo]es|atribui[çc][õo]es)|` +
		`o\s+que\s+voc[êe]\s+(?:far[áa]|vai\s+fazer)|suas\s+fun[çc][õo]es|descri[çc][ãa]o\s+das\s+atividades`
	requirementHeaders = `(?:pr[ée][-\s]?)?requisitos(?:\s+obrigat[óo]rios)?|exig[êe]ncias|qualifica[çc][õo]es|` +
		`o\s+que\s+(?:buscamos|procuramos|esperamos)|perfil\s+(?:desejado|do\s+candidato)`
	niceHeaders = `diferenciais|(?:ser[áa]\s+um\s+)?diferencial|requisitos\s+desej[áa]veis|desej[áa]vel|desej[áa]veis|ser[áa]\s+um\s+plus`
)

// sectionRegexp captures the block after a header until the next known header line or end of text.
// A header counts at the start of a line, or anywhere when followed by a colon.
func sectionRegexp(headers, stops string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:(?:^|\n)[ \t]*(?:` + headers + `)|(?:` + headers + `)[ \t]*:)[ \t]*:?[ \t\-–]*([\s\S]+?)(?:\n[ \t]*(?:` + stops + `)|$)`)
}

var (
	responsibilitySectionRe = sectionRegexp(responsibilityHeaders,
		commonStops+`|`+requirementHeaders+`|`+niceHeaders+`|forma[çc][ãa]o|escolaridade|conhecimentos`)
	requirementSectionRe = sectionRegexp(requirementHeaders,
		commonStops+`|`+responsibilityHeaders+`|`+niceHeaders)
	niceSectionRe = sectionRegexp(niceHeaders,
		commonStops+`|`+responsibilityHeaders+`|`+requirementHeaders)

	itemSplitRe     = regexp.MustCompile(`[\n;•·▪►●]+|(?:^|\s)[-–*]\s+|(?:^|\s)\d{1,2}[.)]\s+`)
	itemPrefixRe    = regexp.MustCompile(`^[\s•·▪►●*\-–\d.)]+`)
	sentenceBreakRe = regexp.MustCompile(`[.!?]\s+`)
)

// splitItems breaks a section into bullet-like items. Sentences are split on
// ". " only when the next word is capitalized, so "R$ 1.500" and "p. ex." survive.
func splitItems(section string, minLen, maxLen int) []string {
	var items []string
	for _, chunk := range itemSplitRe.Split(section, -1) {
		for _, sentence := range splitSentences(chunk) {
			item := collapseSpaces(itemPrefixRe.ReplaceAllString(sentence, ""))
			item = strings.TrimRight(item, " ;-.,:")
			n := utf8.RuneCountInString(item)
			if n < minLen || n > maxLen {
				continue
			}
			items = append(items, item)
		}
	}
	return items
}

func splitSentences(s string) []string {
	var out []string
	start := 0
	for _, loc := range sentenceBreakRe.FindAllStringIndex(s, -1) {
		next, _ := utf8.DecodeRuneInString(s[loc[1]:])
		if !unicode.IsUpper(next) {
			continue
		}
		out = append(out, s[start:loc[0]+1])
		start = loc[1]
	}
	return append(out, s[start:])
}

// dedupItems drops case-insensitive repeats and truncates to max.
func dedupItems(items []string, max int) []string {
	seen := make(map[string]bool, len(items))
	out := []string{}
	for _, it := range items {
		key := strings.ToLower(it)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, it)
		if len(out) == max {
			break
		}
	}
	return out
}

// segmentText turns Catho's " | " separated bodies into lines.
func segmentText(text string) string {
	return strings.ReplaceAll(strings.ReplaceAll(text, "\r", "\n"), "|", "\n")
}
