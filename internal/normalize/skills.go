package normalize

import (
	"regexp"
	"sort"
	"strings"
)

const maxSkills = 15

var builtinSkills = []namedPatterns{
	{"excel", compileAll(`\bexcel\b`, `pacote\s*office`)},
	{"word", compileAll(`\bword\b`)},
	{"powerpoint", compileAll(`power\s*point`)},
	{"power bi", compileAll(`power\s*bi\b`)},
	{"sql", compileAll(`\bsql\b`)},
	{"python", compileAll(`\bpython\b`)},
	{"java", compileAll(`\bjava\b`)},
	{"javascript", compileAll(`\bjavascript\b`, `\bnode\.?js\b`, `\breact\b`)},
	{"c#", compileAll(`(?:^|[^\p{L}\p{N}])c#`, `\bcsharp\b`, `\.net\b`)},
	{"git", compileAll(`\bgit\b`, `\bgithub\b`, `\bgitlab\b`)},
	{"linux", compileAll(`\blinux\b`)},
	{"comunicação", compileAll(`\bcomunicacao\b`)},
	{"liderança", compileAll(`\blideranca\b`)},
	{"negociação", compileAll(`\bnegociacao\b`)},
	{"vendas", compileAll(`\bvendas\b`)},
	{"atendimento ao cliente", compileAll(`atendimento\s+ao\s+cliente`)},
	{"crm", compileAll(`\bcrm\b`)},
	{"erp", compileAll(`\berp\b`, `\bsap\b`, `\btotvs\b`)},
	{"autocad", compileAll(`\bautocad\b`)},
	{"solidworks", compileAll(`solid\s*works`)},
	{"marketing digital", compileAll(`marketing\s*digital`)},
	{"redes sociais", compileAll(`redes\s*sociais`)},
	{"photoshop", compileAll(`\bphotoshop\b`)},
	{"illustrator", compileAll(`\billustrator\b`)},
	{"inglês", compileAll(`\bingles\b`)},
	{"espanhol", compileAll(`\bespanhol\b`)},
}

// SkillMatcher recognizes the built-in skills plus an optional taxonomy
// (canonical name -> keywords) loaded from configuration.
type SkillMatcher struct {
	table []namedPatterns
}

func NewSkillMatcher(taxonomy map[string][]string) *SkillMatcher {
	table := append([]namedPatterns(nil), builtinSkills...)

	names := make([]string, 0, len(taxonomy))
	for name := range taxonomy {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		var patterns []*regexp.Regexp
		for _, kw := range taxonomy[name] {
			kw = strings.TrimSpace(fold(kw))
			if kw == "" {
				continue
			}
			patterns = append(patterns, keywordPattern(kw))
		}
		if len(patterns) > 0 {
			table = append(table, namedPatterns{name: strings.ToLower(strings.TrimSpace(name)), patterns: patterns})
		}
	}
	return &SkillMatcher{table: table}
}

// keywordPattern matches kw as a whole token; \b is not enough for "c++" or "node.js".
func keywordPattern(kw string) *regexp.Regexp {
	words := strings.Fields(kw)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?:^|[^\p{L}\p{N}])` + strings.Join(words, `\s+`) + `(?:$|[^\p{L}\p{N}])`)
}

// Extract returns sorted canonical skill names, at most 15.
func (m *SkillMatcher) Extract(text string) []string {
	t := fold(text)
	skills := []string{}
	if t == "" {
		return skills
	}
	for _, s := range m.table {
		if matchAny(s.patterns, t) {
			skills = appendUnique(skills, s.name)
		}
	}
	sort.Strings(skills)
	if len(skills) > maxSkills {
		skills = skills[:maxSkills]
	}
	return skills
}

var defaultSkills = NewSkillMatcher(nil)

// ExtractSkills uses the built-in skill table only.
func ExtractSkills(text string) []string {
	return defaultSkills.Extract(text)
}
