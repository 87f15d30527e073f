package catho

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"go-vagas-pipeline/internal/models"
	"go-vagas-pipeline/internal/normalize"

	"github.com/PuerkitoBio/goquery"
)

const BaseURL = "https://www.catho.com.br"

// selectors, most specific first
var (
	titleSelectors     = []string{`h1[data-testid="job-title"]`, "h1", ".job-title", ".vacancy-title", ".position-title"}
	companySelectors   = []string{".company-name", ".employer-name", `[data-testid="company-name"]`, ".job-company", ".job-header .company"}
	locationSelectors  = []string{".location", ".job-location", `[data-testid="location"]`, ".job-header .location", ".position-location"}
	salarySelectors    = []string{".salary", ".wage", ".compensation", `[data-testid="salary"]`, ".job-salary"}
	modalitySelectors  = []string{".work-mode", ".job-type", ".employment-type", `[data-testid="work-mode"]`}
	publishedSelectors = []string{".publication-date", ".posted-date", `[data-testid="publication-date"]`, ".date-posted"}
)

var excludedLinkParts = []string{
	"/empresa/", "/company/", "/anunciar", "/cadastro", "/login",
	"/por-local/", "/por-area/", "filtros", "busca-de-vagas", "/vagas/?",
}

var (
	jobPathRe     = regexp.MustCompile(`/vagas/[^/]+/\d+/?$`)
	ufLocationRe  = regexp.MustCompile(`\b([\p{L}. ]+?)\s*-\s*([A-Z]{2})\b`)
	companyTextRe = regexp.MustCompile(`(?i)Dados da Empresa\s*\n([^\n]{2,100})`)
	publishedRe   = regexp.MustCompile(`(?i)Publicada\s+(hoje|ontem|há\s+\d+\s+dias?|em\s+[0-3]?\d/[01]?\d(?:/\d{2,4})?)`)
	shortDateRe   = regexp.MustCompile(`([0-3]?\d)/([01]?\d)(?:/(\d{2,4}))?`)
	contractRe    = regexp.MustCompile(`(?i)Regime de Contrata[cç][aã]o\s*\n([^\n]+)`)
	scheduleRe    = regexp.MustCompile(`(?i)Hor[áa]rio\s*\n([^\n]+)`)
	benefitsRe    = regexp.MustCompile(`(?i)Benef[ií]cios\s*\n([^\n]+)`)
	benefitSepRe  = regexp.MustCompile(`,|;|\|`)
	groupMedRe    = regexp.MustCompile(`(?i)\s*/\s*Medicina em grupo`)
	levelRe       = regexp.MustCompile(`(?i)\b(J[úu]nior|Pleno|S[êe]nior|Est[áa]gio|Trainee)\b`)
	remoteWorkRe  = regexp.MustCompile(`(?i)remote\s*work`)
)

// lines that are page chrome, never a title
var chromeLines = map[string]bool{
	"candidatura fácil": true, "candidatos": true, "compatibilidade": true,
	"gráfico de colunas": true, "suas chances": true, "mostrar menos": true, "compartilhar": true,
}

var slugLowerWords = map[string]bool{
	"de": true, "da": true, "do": true, "e": true, "em": true, "para": true, "com": true, "a": true, "o": true,
}

func newDocument(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// ExtractJobLinks returns the absolute, de-duplicated posting URLs of a listing page.
func ExtractJobLinks(html, base string) ([]string, error) {
	doc, err := newDocument(html)
	if err != nil {
		return nil, err
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, err
	}

	var links []string
	seen := map[string]bool{}
	doc.Find(`a[href*="/vagas/"]`).Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if href == "" {
			return
		}
		lower := strings.ToLower(href)
		for _, part := range excludedLinkParts {
			if strings.Contains(lower, part) {
				return
			}
		}
		if !jobPathRe.MatchString(href) {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		abs := baseURL.ResolveReference(ref).String()
		if !seen[abs] {
			seen[abs] = true
			links = append(links, abs)
		}
	})
	return links, nil
}

// PageURL appends the listing page number to a sector URL.
func PageURL(base string, page int) string {
	sep := "?p="
	if strings.Contains(base, "?") {
		sep = "&p="
	}
	return base + sep + strconv.Itoa(page)
}

// CleanText flattens the main content of a page into one line per text node,
// dropping scripts and page chrome.
func CleanText(doc *goquery.Document) string {
	doc.Find("script, style, noscript, header, footer, nav, aside, svg").Remove()

	container := doc.Find("main").First()
	if container.Length() == 0 {
		container = doc.Find("article").First()
	}
	if container.Length() == 0 {
		container = doc.Find("body").First()
	}
	if container.Length() == 0 {
		container = doc.Selection
	}

	var lines []string
	collectText(container, &lines)
	text := strings.Join(lines, "\n")
	text = strings.NewReplacer("·", "- ", "•", "- ", "\r", "\n").Replace(text)
	return strings.TrimSpace(text)
}

func collectText(sel *goquery.Selection, lines *[]string) {
	sel.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			if t := strings.Join(strings.Fields(c.Text()), " "); t != "" {
				*lines = append(*lines, t)
			}
			return
		}
		collectText(c, lines)
	})
}

// TitleFromSlug builds a title from /vagas/<slug>/<id>, "" when the URL has another shape.
func TitleFromSlug(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] != "vagas" {
		return ""
	}

	words := strings.Fields(strings.ReplaceAll(parts[1], "-", " "))
	for i, w := range words {
		lw := strings.ToLower(w)
		if slugLowerWords[lw] {
			words[i] = lw
			continue
		}
		r := []rune(lw)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// IsBlocked detects a Cloudflare or captcha interstitial.
func IsBlocked(title, html string) bool {
	for _, marker := range []string{"Just a moment", "Attention Required", "Cloudflare"} {
		if strings.Contains(title, marker) {
			return true
		}
	}
	return strings.Contains(html, "Verifying you are human") || strings.Contains(html, "cf-challenge")
}

func pick(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		el := doc.Find(sel).First()
		if el.Length() == 0 {
			continue
		}
		if txt := strings.Join(strings.Fields(el.Text()), " "); len([]rune(txt)) > 1 {
			return txt
		}
	}
	return ""
}

// ParseDetail reads a posting page. Selectors win; text heuristics and the URL
// slug fill the gaps. ok is false when no title can be found.
func ParseDetail(html, link, sector string, now time.Time) (models.RawJob, bool) {
	doc, err := newDocument(html)
	if err != nil {
		return models.RawJob{}, false
	}

	// selectors first: CleanText removes header/nav which may hold some of them
	title := pick(doc, titleSelectors)
	company := pick(doc, companySelectors)
	location := pick(doc, locationSelectors)
	salary := pick(doc, salarySelectors)
	modality := pick(doc, modalitySelectors)
	published := pick(doc, publishedSelectors)
	text := CleanText(doc)

	if title == "" {
		title = titleFromText(text)
	}
	if title == "" || strings.EqualFold(strings.TrimSpace(title), "sobre a vaga") {
		title = TitleFromSlug(link)
	}
	if title == "" {
		return models.RawJob{}, false
	}

	if company == "" {
		company = companyFromText(text, title)
	}

	if m := ufLocationRe.FindStringSubmatch(location); m != nil && !normalize.IsValidUF(m[2]) {
		location = ""
	}
	if location == "" {
		location = formatLocation(normalize.ExtractLocation(text))
	}

	if published != "" {
		if d := parsePublished(published, now); d != "" {
			published = d
		}
	} else if m := publishedRe.FindStringSubmatch(text); m != nil {
		published = parsePublished(m[1], now)
	}

	modality = modalityLabel(modality)
	schedule := firstGroup(scheduleRe, text)
	if remoteWorkRe.MatchString(schedule) {
		if modality == "" {
			modality = "remoto"
		}
		schedule = ""
	}

	level := ""
	if m := levelRe.FindStringSubmatch(title); m != nil {
		level = levelLabel(m[1])
	}

	if sector == "" {
		sector = normalize.DefaultSector
	}

	return models.RawJob{
		Source:      "catho",
		Title:       title,
		Company:     company,
		Location:    location,
		Modality:    modality,
		Salary:      salary,
		Description: text,
		URL:         link,
		Sector:      sector,
		PublishedAt: published,
		Schedule:    schedule,
		Contract:    firstGroup(contractRe, text),
		Benefits:    strings.Join(benefitsFromText(text), "; "),
		Level:       level,
	}, true
}

func titleFromText(text string) string {
	lines := nonBlankLines(text)
	if len(lines) > 80 {
		lines = lines[:80]
	}
	for _, ln := range lines {
		low := strings.ToLower(ln)
		if chromeLines[low] || strings.Contains(low, "sobre a vaga") || strings.HasSuffix(ln, ":") {
			continue
		}
		if n := len([]rune(ln)); n > 3 && n < 100 && strings.ToUpper(ln) != ln {
			return ln
		}
	}
	return ""
}

func companyFromText(text, title string) string {
	if m := companyTextRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	lines := nonBlankLines(text)
	for i, ln := range lines {
		if ln != title || i+1 >= len(lines) {
			continue
		}
		cand := lines[i+1]
		if n := len([]rune(cand)); n > 2 && n < 80 && !strings.Contains(strings.ToLower(cand), "vaga com recrutador") {
			return cand
		}
		break
	}
	return ""
}

func benefitsFromText(text string) []string {
	raw := firstGroup(benefitsRe, text)
	if raw == "" {
		return nil
	}
	var out []string
	seen := map[string]bool{}
	for _, p := range benefitSepRe.Split(raw, -1) {
		p = strings.TrimSpace(groupMedRe.ReplaceAllString(p, ""))
		if p == "" || seen[strings.ToLower(p)] {
			continue
		}
		seen[strings.ToLower(p)] = true
		out = append(out, p)
	}
	return out
}

// parsePublished resolves "hoje", "ontem", "há N dias" and dd/mm[/yy] to an ISO date.
func parsePublished(val string, now time.Time) string {
	v := strings.ToLower(strings.TrimSpace(val))
	if m := shortDateRe.FindStringSubmatch(v); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year := now.Year()
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
			if len(m[3]) == 2 {
				year += 2000
			}
		}
		d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if d.Day() == day && int(d.Month()) == month {
			return d.Format("2006-01-02")
		}
		return ""
	}
	return normalize.ExtractPublishedDate(v, now)
}

func modalityLabel(s string) string {
	low := strings.ToLower(s)
	switch {
	case strings.Contains(low, "remoto"), strings.Contains(low, "home office"):
		return "remoto"
	case strings.Contains(low, "híbrido"), strings.Contains(low, "hibrido"):
		return "híbrido"
	case strings.Contains(low, "presencial"):
		return "presencial"
	}
	return s
}

func levelLabel(s string) string {
	switch normalize.StripAccents(strings.ToLower(s)) {
	case "junior":
		return "Júnior"
	case "senior":
		return "Sênior"
	case "estagio":
		return "Estágio"
	case "pleno":
		return "Pleno"
	case "trainee":
		return "Trainee"
	}
	return s
}

func formatLocation(loc normalize.Location) string {
	switch {
	case loc.City != "" && loc.State != "":
		return loc.City + " - " + loc.State
	case loc.State != "":
		return loc.State
	}
	return loc.City
}

func firstGroup(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func nonBlankLines(s string) []string {
	var out []string
	for _, ln := range strings.Split(s, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			out = append(out, ln)
		}
	}
	return out
}
