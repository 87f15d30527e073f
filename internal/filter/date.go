package filter

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultMaxAge is how old a posting may be before the pipeline drops it.
const DefaultMaxAge = 60 * 24 * time.Hour

var (
	isoDateRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	yearOnlyRegex = regexp.MustCompile(`\b(20\d{2})\b`)
)

// IsRecentJob reports whether a publication date is within maxAge of now.
// Unknown or unparseable dates pass.
func IsRecentJob(dateStr string, maxAge time.Duration) bool {
	return isRecentAt(time.Now(), dateStr, maxAge)
}

func isRecentAt(now time.Time, dateStr string, maxAge time.Duration) bool {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" || dateStr == "N/A" || strings.EqualFold(dateStr, "recente") {
		return true
	}
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}

	// Case 1: ISO "2025-03-01" or "2025-03-01T..."
	if isoDateRegex.MatchString(dateStr) {
		if jobDate, err := time.Parse("2006-01-02", dateStr[:10]); err == nil {
			return isWithin(now, jobDate, maxAge)
		}
	}

	// Case 2: dd/mm/yyyy, the only order Brazilian boards use
	if strings.Contains(dateStr, "/") {
		parts := strings.Split(dateStr, "/")
		if len(parts) >= 3 {
			day, errD := strconv.Atoi(strings.TrimSpace(parts[0]))
			month, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
			year, errY := strconv.Atoi(strings.TrimSpace(parts[2][:min(4, len(parts[2]))]))
			if errD == nil && errM == nil && errY == nil {
				jobDate := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
				return isWithin(now, jobDate, maxAge)
			}
		}
	}

	// Case 3: year only fallback
	if match := yearOnlyRegex.FindStringSubmatch(dateStr); match != nil {
		year, _ := strconv.Atoi(match[1])
		return year == now.Year() || year == now.Year()-1
	}

	return true
}

func isWithin(now, jobDate time.Time, maxAge time.Duration) bool {
	diff := now.Sub(jobDate)
	if diff > maxAge {
		return false
	}
	// future dates beyond two days are bogus (timezone slack aside)
	if diff < -2*24*time.Hour {
		return false
	}
	return true
}
