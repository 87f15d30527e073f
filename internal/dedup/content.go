package dedup

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"go-vagas-pipeline/internal/models"
)

// DefaultThreshold is the similarity ratio above which two postings of the same
// company, sector and city count as one.
const DefaultThreshold = 0.85

// Long bodies are compared on their head only; the matcher is quadratic.
const maxCompareRunes = 1500

// Signature is the exact-duplicate fingerprint of a posting.
func Signature(job models.Job) string {
	sum := md5.Sum([]byte(job.Description))
	parts := []string{job.Company, job.Sector, job.LocationCity, job.Title, hex.EncodeToString(sum[:])[:8]}
	return strings.ToLower(strings.Join(parts, "|"))
}

func groupKey(job models.Job) string {
	return strings.ToLower(strings.TrimSpace(job.Company) + "|" + strings.TrimSpace(job.Sector) + "|" + strings.TrimSpace(job.LocationCity))
}

// Remove drops near-duplicates. Jobs are only compared inside their
// company|sector|city group; the first occurrence wins and order is preserved.
func Remove(jobs []models.Job, threshold float64) ([]models.Job, int) {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	unique := make([]models.Job, 0, len(jobs))
	groups := make(map[string][]int)
	duplicates := 0

	for _, job := range jobs {
		key := groupKey(job)
		sig := Signature(job)

		dup := false
		for _, idx := range groups[key] {
			if isDuplicate(unique[idx], job, sig, threshold) {
				dup = true
				break
			}
		}
		if dup {
			duplicates++
			continue
		}
		groups[key] = append(groups[key], len(unique))
		unique = append(unique, job)
	}
	return unique, duplicates
}

func isDuplicate(kept, job models.Job, sig string, threshold float64) bool {
	if Signature(kept) == sig {
		return true
	}
	if kept.Title != "" && job.Title != "" &&
		Similarity(strings.ToLower(kept.Title), strings.ToLower(job.Title)) > threshold {
		return true
	}
	if kept.Description != "" && job.Description != "" &&
		Similarity(head(kept.Description), head(job.Description)) > threshold {
		return true
	}
	return false
}

func head(s string) string {
	r := []rune(strings.ToLower(s))
	if len(r) > maxCompareRunes {
		r = r[:maxCompareRunes]
	}
	return string(r)
}

// Similarity is the Ratcliff/Obershelp ratio 2*M/(|a|+|b|) over runes, where M
// is the number of runes in matching blocks. Two empty strings are identical.
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchingRunes(ra, rb)) / float64(total)
}

func matchingRunes(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	i, j, k := longestCommon(a, b)
	if k == 0 {
		return 0
	}
	return k + matchingRunes(a[:i], b[:j]) + matchingRunes(a[i+k:], b[j+k:])
}

// longestCommon returns the start in a, start in b and length of the longest
// common substring, preferring the earliest one in a.
func longestCommon(a, b []rune) (int, int, int) {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	bestI, bestJ, best := 0, 0, 0
	for x := 1; x <= len(a); x++ {
		for y := 1; y <= len(b); y++ {
			if a[x-1] == b[y-1] {
				cur[y] = prev[y-1] + 1
				if cur[y] > best {
					best = cur[y]
					bestI, bestJ = x-best, y-best
				}
			} else {
				cur[y] = 0
			}
		}
		prev, cur = cur, prev
	}
	return bestI, bestJ, best
}
