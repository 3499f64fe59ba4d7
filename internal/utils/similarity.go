package utils

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Similarity returns the normalized Levenshtein similarity of two strings in [0,1].
// Comparison is case-insensitive and ignores surrounding whitespace.
func Similarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	lenA := utf8.RuneCountInString(a)
	lenB := utf8.RuneCountInString(b)

	if lenA == 0 && lenB == 0 {
		return 1.0
	}
	if lenA == 0 || lenB == 0 {
		return 0.0
	}
	if a == b {
		return 1.0
	}

	distance := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(distance)/float64(max(lenA, lenB))
}

// SimilarityPercent is Similarity scaled to an integer percentage, used in mismatch reports
func SimilarityPercent(a, b string) int {
	return int(math.Round(Similarity(a, b) * 100))
}
