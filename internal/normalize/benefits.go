package normalize

import "regexp"

type namedPatterns struct {
	name     string
	patterns []*regexp.Regexp
}

// Patterns run against folded text.
var benefitTable = []namedPatterns{
	{"Vale Alimentação", compileAll(`vale[\s-]*alimentacao`, `\bva\b`, `cartao\s*alimentacao`, `ticket\s*alimentacao`)},
	{"Vale Transporte", compileAll(`vale[\s-]*transporte`, `\bvt\b`, `cartao\s*transporte`, `\bfretado\b`)},
	{"Vale Refeição", compileAll(`vale[\s-]*refeicao`, `\bvr\b`, `cartao\s*refeicao`, `ticket\s*refeicao`)},
	{"Plano de Saúde", compileAll(`plano\s*de\s*saude`, `convenio\s*medico`, `assistencia\s*medica`)},
	{"Plano Odontológico", compileAll(`plano\s*odontologico`, `convenio\s*odontologico`, `assistencia\s*odontologica`)},
	{"Seguro de Vida", compileAll(`seguro\s*(?:de\s*)?vida`)},
	{"Participação nos Lucros", compileAll(`participacao\s*nos\s*lucros`, `\bplr\b`, `participacao\s*(?:de|nos)?\s*resultados`)},
	{"Décimo Terceiro", compileAll(`decimo\s*terceiro`, `\b13\s*[ºo°]?\s*salario`, `gratificacao\s*natalina`)},
	{"Férias", compileAll(`\bferias\b`)},
	{"FGTS", compileAll(`\bfgts\b`, `fundo\s*de\s*garantia`)},
	{"PIS", compileAll(`\bpis\b`, `programa\s*de\s*integracao\s*social`)},
	{"Comissão", compileAll(`\bcomissao\b`, `\bcomissionamento\b`, `\bcomissoes\b`)},
	{"Home Office", compileAll(`home\s*-?\s*office`, `trabalho\s*remoto`, `trabalho\s*em\s*casa`)},
	{"Horário Flexível", compileAll(`horario\s*flexivel`, `flexibilidade\s*de\s*horario`)},
	{"Treinamento", compileAll(`\btreinamentos?\b`, `\bcapacitac(?:ao|oes)\b`, `curso\s*de\s*formacao`)},
	{"Estacionamento", compileAll(`\bestacionamento\b`)},
	{"Cesta Básica", compileAll(`cesta\s*basica`, `cesta\s*de\s*alimentos`)},
	{"Auxílio Creche", compileAll(`auxilio[\s-]*creche`, `auxilio[\s-]*baba`)},
	{"Auxílio Educação", compileAll(`auxilio[\s-]*educacao`, `auxilio[\s-]*estudo`, `bolsa\s*de\s*estudos?`)},
	{"Ginástica Laboral", compileAll(`ginastica\s*laboral`, `\bgympass\b`, `\btotalpass\b`, `\bwellhub\b`)},
	{"Refeitório", compileAll(`\brefeitorio\b`, `restaurante\s*(?:da|na)\s*empresa`)},
	{"Almoço", compileAll(`\balmoco\b`)},
	{"Lanche", compileAll(`\blanches?\b`, `cafe\s*da\s*manha`)},
	{"Uniforme", compileAll(`\buniformes?\b`)},
	{"Equipamentos", compileAll(`equipamentos?\s*fornecidos?`, `ferramentas\s*de\s*trabalho`, `notebook\s*(?:da\s*empresa|fornecido)`)},
}

// ExtractBenefits returns canonical benefit names in table order, without duplicates.
func ExtractBenefits(text string) []string {
	t := fold(text)
	benefits := []string{}
	if t == "" {
		return benefits
	}
	for _, b := range benefitTable {
		if matchAny(b.patterns, t) {
			benefits = append(benefits, b.name)
		}
	}
	return benefits
}

var pcdPatterns = compileAll(
	`\bpcds?\b`, `pessoas?\s*com\s*deficiencia`, `\bdeficientes?\b`, `vaga\s*(?:afirmativa|inclusiva)`, `\bpne\b`,
)

// IsPCD reports postings open to (or exclusive for) people with disabilities.
func IsPCD(text string) bool {
	return matchAny(pcdPatterns, fold(text))
}
