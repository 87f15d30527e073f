package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)candidatura\s*f[aá]cil`),
	regexp.MustCompile(`(?i)continuar\s*lendo`),
	regexp.MustCompile(`(?i)leia\s*mais`),
	regexp.MustCompile(`(?i)ver\s*mais`),
	regexp.MustCompile(`(?i)clique\s*aqui`),
	regexp.MustCompile(`(?i)saiba\s*mais`),
	regexp.MustCompile(`(?i)acesse\s*o\s*link`),
	regexp.MustCompile(`(?i)entre\s*em\s*contato`),
	regexp.MustCompile(`(?i)envie\s*seu\s*curr[íi]culo`),
	regexp.MustCompile(`(?i)(?:cadastre|inscreva|aplique|candidate)[-\s]*se`),
	regexp.MustCompile(`(?i)(?:whatsapp|telefone)\s*[\d()\s-]{8,}`),
	regexp.MustCompile(`(?i)e[-\s]*mail\s*:?\s*\S+@\S+`),
	regexp.MustCompile(`\S+@\S+\.\S+`),
	regexp.MustCompile(`(?i)https?://\S+`),
	regexp.MustCompile(`(?i)www\.\S+`),
	regexp.MustCompile(`(?i)(?:compartilhar|denunciar|salvar|favoritar)\s*vaga`),
}

var (
	blankLinesRe = regexp.MustCompile(`\n\s*\n`)
	spacesRe     = regexp.MustCompile(`[ \t\r\f\v]+`)
	allSpaceRe   = regexp.MustCompile(`\s+`)
)

// CleanDescription removes call-to-action noise from a posting body and collapses
// whitespace. Line breaks are kept because section parsing relies on them.
func CleanDescription(s string) string {
	if s == "" {
		return ""
	}
	for _, re := range noisePatterns {
		s = re.ReplaceAllString(s, "")
	}
	s = blankLinesRe.ReplaceAllString(s, "\n")
	s = spacesRe.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n")
}

// StripAccents drops combining marks: "Sênior" -> "Senior".
func StripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// fold lowercases and strips accents so keyword tables can be written in plain ASCII.
func fold(s string) string {
	return strings.ToLower(StripAccents(s))
}

func collapseSpaces(s string) string {
	return strings.TrimSpace(allSpaceRe.ReplaceAllString(s, " "))
}

// matchAny reports whether any pattern matches s.
func matchAny(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// appendUnique appends v unless an equal (case-insensitive) value is present.
func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if strings.EqualFold(x, v) {
			return list
		}
	}
	return append(list, v)
}
