package normalize

import (
	"regexp"
	"strconv"
	"time"
)

var (
	explicitDatePatterns = compileAll(
		`publicad[ao]\s*em\s*:?\s*(\d{1,2})/(\d{1,2})/(\d{4})`,
		`data\s*:?\s*(\d{1,2})/(\d{1,2})/(\d{4})`,
		`(\d{1,2})/(\d{1,2})/(\d{4})`,
	)
	isoDateRe      = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})`)
	relativeDaysRe = regexp.MustCompile(`\bha\s*(\d+)\s*dias?|(\d+)\s*dias?\s*atras`)
	relativeHrsRe  = regexp.MustCompile(`\bha\s*(\d+)\s*(?:horas?|minutos?)|(\d+)\s*(?:horas?|minutos?)\s*atras`)
	relativeWksRe  = regexp.MustCompile(`\bha\s*(\d+)\s*semanas?|(\d+)\s*semanas?\s*atras`)
	relativeMonRe  = regexp.MustCompile(`\bha\s*(\d+)\s*mes(?:es)?|(\d+)\s*mes(?:es)?\s*atras`)
	todayRe        = regexp.MustCompile(`\bhoje\b|esta\s*semana`)
	yesterdayRe    = regexp.MustCompile(`\bontem\b`)
	lastWeekRe     = regexp.MustCompile(`semana\s*passada`)

	// "publicada há 3 dias", "anunciada em 05/03/2025", "atualizado hoje"
	anchoredDateRe = regexp.MustCompile(`\b(?:publicad[ao]|postad[ao]|anunciad[ao]|atualizad[ao])\s*(?:em\s*:?\s*)?` +
		`(hoje|ontem|ha\s*\d+\s*(?:horas?|minutos?|dias?|semanas?|mes(?:es)?)|\d+\s*(?:dias?|semanas?)\s*atras|` +
		`\d{1,2}/\d{1,2}/\d{4}|\d{4}-\d{2}-\d{2})`)
)

const isoDay = "2006-01-02"

// ExtractPublishedDate resolves "12/03/2025", "publicada hoje", "há 3 dias" and
// similar to an ISO date relative to now. Returns "" when nothing matches.
func ExtractPublishedDate(text string, now time.Time) string {
	t := fold(text)
	if t == "" {
		return ""
	}

	if d := explicitDate(t); d != "" {
		return d
	}

	if n, ok := relativeNumber(relativeDaysRe, t); ok {
		return now.AddDate(0, 0, -n).Format(isoDay)
	}
	if _, ok := relativeNumber(relativeHrsRe, t); ok {
		return now.Format(isoDay)
	}
	if n, ok := relativeNumber(relativeWksRe, t); ok {
		return now.AddDate(0, 0, -7*n).Format(isoDay)
	}
	if n, ok := relativeNumber(relativeMonRe, t); ok {
		return now.AddDate(0, -n, 0).Format(isoDay)
	}
	switch {
	case yesterdayRe.MatchString(t):
		return now.AddDate(0, 0, -1).Format(isoDay)
	case lastWeekRe.MatchString(t):
		return now.AddDate(0, 0, -7).Format(isoDay)
	case todayRe.MatchString(t):
		return now.Format(isoDay)
	}
	return ""
}

// ExtractDescriptionDate is the body-text variant of ExtractPublishedDate.
// Relative words only count after a publication verb, so a company blurb
// starting with "Hoje somos..." does not date the posting.
func ExtractDescriptionDate(text string, now time.Time) string {
	t := fold(text)
	if t == "" {
		return ""
	}
	if m := anchoredDateRe.FindStringSubmatch(t); m != nil {
		if d := ExtractPublishedDate(m[1], now); d != "" {
			return d
		}
	}
	return explicitDate(t)
}

func explicitDate(t string) string {
	if m := isoDateRe.FindStringSubmatch(t); m != nil {
		if d, ok := makeDate(m[3], m[2], m[1]); ok {
			return d.Format(isoDay)
		}
	}
	for _, re := range explicitDatePatterns {
		if m := re.FindStringSubmatch(t); m != nil {
			if d, ok := makeDate(m[1], m[2], m[3]); ok {
				return d.Format(isoDay)
			}
		}
	}
	return ""
}

func relativeNumber(re *regexp.Regexp, s string) (int, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	raw := m[1]
	if raw == "" {
		raw = m[2]
	}
	n, err := strconv.Atoi(raw)
	return n, err == nil
}

// makeDate rejects impossible dates such as 31/02 instead of letting time.Date normalize them.
func makeDate(day, month, year string) (time.Time, bool) {
	d, err1 := strconv.Atoi(day)
	m, err2 := strconv.Atoi(month)
	y, err3 := strconv.Atoi(year)
	if err1 != nil || err2 != nil || err3 != nil || m < 1 || m > 12 || d < 1 || y < 1990 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}
