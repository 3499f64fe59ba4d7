package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	leadingArticleRegex = regexp.MustCompile(`^(?:the|a|an)\s+`)
	nonWordRegex        = regexp.MustCompile(`[^\p{L}\p{N}_\s]+`)
	whitespaceRegex     = regexp.MustCompile(`\s+`)
)

// NormalizeTitle canonicalizes a free-text title for comparison:
// lower-case, no leading article, no diacritics, no punctuation, single spaces.
// The result is idempotent: NormalizeTitle(NormalizeTitle(x)) == NormalizeTitle(x).
func NormalizeTitle(title string) string {
	normalized := strings.ToLower(strings.TrimSpace(StripDiacritics(title)))
	normalized = nonWordRegex.ReplaceAllString(normalized, "")
	normalized = whitespaceRegex.ReplaceAllString(normalized, " ")
	normalized = strings.TrimSpace(normalized)

	// Loop so "The A Team" style chains collapse fully and the output is stable
	for {
		stripped := leadingArticleRegex.ReplaceAllString(normalized, "")
		if stripped == normalized {
			break
		}
		normalized = stripped
	}

	return normalized
}

// StripDiacritics removes combining marks ("Amélie" -> "Amelie")
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}
