package normalize

import (
	"regexp"
	"sort"
	"strings"
)

// Location is a Brazilian city/state pair with the IBGE macro-region derived from the state.
type Location struct {
	City   string
	State  string
	Region string
}

var stateRegions = map[string]string{
	"AC": "Norte", "AL": "Nordeste", "AP": "Norte", "AM": "Norte", "BA": "Nordeste",
	"CE": "Nordeste", "DF": "Centro-Oeste", "ES": "Sudeste", "GO": "Centro-Oeste",
	"MA": "Nordeste", "MT": "Centro-Oeste", "MS": "Centro-Oeste", "MG": "Sudeste",
	"PA": "Norte", "PB": "Nordeste", "PR": "Sul", "PE": "Nordeste", "PI": "Nordeste",
	"RJ": "Sudeste", "RN": "Nordeste", "RS": "Sul", "RO": "Norte", "RR": "Norte",
	"SC": "Sul", "SP": "Sudeste", "SE": "Nordeste", "TO": "Norte",
}

// "para" is left out on purpose: it is also the preposition.
var stateNames = map[string]string{
	"acre": "AC", "alagoas": "AL", "amapa": "AP", "amazonas": "AM", "bahia": "BA",
	"ceara": "CE", "distrito federal": "DF", "espirito santo": "ES", "goias": "GO",
	"maranhao": "MA", "mato grosso": "MT", "mato grosso do sul": "MS", "minas gerais": "MG",
	"paraiba": "PB", "parana": "PR", "pernambuco": "PE", "piaui": "PI",
	"rio de janeiro": "RJ", "rio grande do norte": "RN", "rio grande do sul": "RS",
	"rondonia": "RO", "roraima": "RR", "santa catarina": "SC", "sao paulo": "SP",
	"sergipe": "SE", "tocantins": "TO",
}

type knownCity struct {
	Name  string
	State string
}

var knownCities = []knownCity{
	{"São Paulo", "SP"}, {"Rio de Janeiro", "RJ"}, {"Belo Horizonte", "MG"}, {"Salvador", "BA"},
	{"Brasília", "DF"}, {"Fortaleza", "CE"}, {"Manaus", "AM"}, {"Curitiba", "PR"},
	{"Recife", "PE"}, {"Porto Alegre", "RS"}, {"Belém", "PA"}, {"Goiânia", "GO"},
	{"Guarulhos", "SP"}, {"Campinas", "SP"}, {"São Luís", "MA"}, {"São Gonçalo", "RJ"},
	{"Maceió", "AL"}, {"Duque de Caxias", "RJ"}, {"Natal", "RN"}, {"Teresina", "PI"},
	{"Campo Grande", "MS"}, {"Nova Iguaçu", "RJ"}, {"São Bernardo do Campo", "SP"},
	{"João Pessoa", "PB"}, {"Santos", "SP"}, {"Osasco", "SP"}, {"Santo André", "SP"},
	{"Ribeirão Preto", "SP"}, {"Uberlândia", "MG"}, {"Sorocaba", "SP"}, {"Contagem", "MG"},
	{"Aracaju", "SE"}, {"Feira de Santana", "BA"}, {"Cuiabá", "MT"}, {"Joinville", "SC"},
	{"Juiz de Fora", "MG"}, {"Londrina", "PR"}, {"Porto Velho", "RO"}, {"Niterói", "RJ"},
	{"Caxias do Sul", "RS"}, {"Florianópolis", "SC"}, {"Vitória", "ES"}, {"Vila Velha", "ES"},
	{"Macapá", "AP"}, {"Boa Vista", "RR"}, {"Rio Branco", "AC"}, {"Palmas", "TO"},
	{"São José dos Campos", "SP"}, {"Jundiaí", "SP"}, {"Piracicaba", "SP"}, {"Maringá", "PR"},
	{"Blumenau", "SC"}, {"Barueri", "SP"}, {"Mogi das Cruzes", "SP"}, {"Betim", "MG"},
}

// Cities whose names are also ordinary words ("contagem de estoque", "Natal",
// "Vitória"). They only count next to a UF or in a dedicated location field.
var ambiguousCities = map[string]bool{
	"Contagem": true, "Natal": true, "Palmas": true, "Santos": true,
	"Vitória": true, "Salvador": true,
}

var (
	// "1 vaga: São Paulo - SP" on Catho detail pages
	vacancyLocationRe = regexp.MustCompile(`(?i)vagas?\s*:\s*([\p{L}' .]+?)\s*[-–]\s*([A-Za-z]{2})\b`)
	cityUFRe          = regexp.MustCompile(`((?:[A-ZÀ-Ú][\p{L}']+)(?:\s+(?:d[aeo]s?|[A-ZÀ-Ú][\p{L}']+))*)\s*(?:[-–/,]|\s\()\s*([A-Z]{2})\b`)
	labelledLocRe     = regexp.MustCompile(`(?i)(?:localiza[çc][ãa]o|local\s+de\s+trabalho|local|cidade|endere[çc]o)\s*:\s*([^\n|;]+)`)
	trailingUFRe      = regexp.MustCompile(`^(.*?)\s*(?:[-–/,(]\s*)([A-Za-z]{2})\)?\s*$`)
	bareUFRe          = regexp.MustCompile(`\b(AC|AL|AP|AM|BA|CE|DF|ES|GO|MA|MT|MS|MG|PA|PB|PR|PE|PI|RJ|RN|RS|RO|RR|SC|SP|SE|TO)\b`)

	stateNameRe *regexp.Regexp
	cityRe      *regexp.Regexp
	cityByFold  = map[string]knownCity{}
	cityByName  = map[string]knownCity{}
)

func init() {
	names := make([]string, 0, len(stateNames))
	for n := range stateNames {
		names = append(names, n)
	}
	stateNameRe = regexp.MustCompile(`\b(` + alternation(names) + `)\b`)

	cities := make([]string, 0, 2*len(knownCities))
	for _, c := range knownCities {
		cityByFold[fold(c.Name)] = c
		if ambiguousCities[c.Name] {
			continue
		}
		cityByName[c.Name] = c
		cities = append(cities, c.Name)
		if plain := StripAccents(c.Name); plain != c.Name {
			cityByName[plain] = c
			cities = append(cities, plain)
		}
	}
	// matched on the original casing; \b does not work next to accented letters
	cityRe = regexp.MustCompile(`(?:^|[^\p{L}])(` + alternation(cities) + `)(?:$|[^\p{L}])`)
}

// alternation builds a regexp alternation with longer literals first so
// "mato grosso do sul" wins over "mato grosso".
func alternation(words []string) string {
	sorted := append([]string(nil), words...)
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})
	for i, w := range sorted {
		sorted[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(sorted, "|")
}

// RegionForState maps a UF code to its macro-region, "" when unknown.
func RegionForState(uf string) string {
	return stateRegions[strings.ToUpper(strings.TrimSpace(uf))]
}

// IsValidUF reports whether s is one of the 27 federative unit codes.
func IsValidUF(s string) bool {
	_, ok := stateRegions[strings.ToUpper(s)]
	return ok
}

func newLocation(city, uf string) Location {
	uf = strings.ToUpper(strings.TrimSpace(uf))
	if !IsValidUF(uf) {
		uf = ""
	}
	loc := Location{City: cleanCity(city), State: uf, Region: RegionForState(uf)}
	if loc.State == "" && loc.City != "" {
		if c, ok := cityByFold[fold(loc.City)]; ok {
			loc.State = c.State
			loc.Region = RegionForState(c.State)
		}
	}
	return loc
}

func cleanCity(s string) string {
	s = collapseSpaces(strings.Trim(s, " :-–,.()"))
	if len([]rune(s)) < 3 || len([]rune(s)) > 60 {
		return ""
	}
	return s
}

// ParseLocationField parses a dedicated location column such as
// "São Paulo - SP", "Curitiba/PR", "Recife, PE" or just "Campinas".
func ParseLocationField(s string) Location {
	s = collapseSpaces(s)
	if s == "" {
		return Location{}
	}
	if m := trailingUFRe.FindStringSubmatch(s); m != nil && IsValidUF(m[2]) {
		return newLocation(m[1], m[2])
	}
	if uf, ok := stateNames[fold(s)]; ok {
		return newLocation("", uf)
	}
	if IsValidUF(s) && len(s) == 2 {
		return newLocation("", s)
	}
	switch fold(s) {
	case "remoto", "home office", "brasil", "todo o brasil":
		return Location{}
	}
	return newLocation(s, "")
}

// ExtractLocation finds a city/state in free text, most specific pattern first.
func ExtractLocation(text string) Location {
	if strings.TrimSpace(text) == "" {
		return Location{}
	}

	if m := vacancyLocationRe.FindStringSubmatch(text); m != nil && IsValidUF(m[2]) {
		return newLocation(m[1], m[2])
	}
	for _, m := range cityUFRe.FindAllStringSubmatch(text, -1) {
		if IsValidUF(m[2]) {
			return newLocation(m[1], m[2])
		}
	}
	if m := labelledLocRe.FindStringSubmatch(text); m != nil {
		if loc := ParseLocationField(m[1]); loc.City != "" || loc.State != "" {
			return loc
		}
	}

	if m := cityRe.FindStringSubmatch(text); m != nil {
		c := cityByName[m[1]]
		return newLocation(c.Name, c.State)
	}
	folded := fold(text)
	if m := stateNameRe.FindStringSubmatch(folded); m != nil {
		return newLocation("", stateNames[m[1]])
	}
	if m := bareUFRe.FindStringSubmatch(text); m != nil {
		return newLocation("", m[1])
	}
	return Location{}
}
