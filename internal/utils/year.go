package utils

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoYear is returned when no plausible year can be parsed from the input
var ErrNoYear = errors.New("no year found")

var (
	yearRegex = regexp.MustCompile(`\b(1[89]\d{2}|20\d{2})\b`)
	// Matches "1927/28", "1927/1928" and "1932-33"
	dualYearRegex = regexp.MustCompile(`\b(1[89]\d{2}|20\d{2})\s*[/\-–]\s*(\d{2}|\d{4})\b`)
)

// ExtractYear extracts a 4-digit year from a free-text string
// Returns 0 if no year is found
// Matches years like: (2009), 2009, [2009], etc.
func ExtractYear(s string) int {
	matches := yearRegex.FindStringSubmatch(s)
	if len(matches) > 1 {
		year, err := strconv.Atoi(matches[1])
		if err == nil {
			return year
		}
	}
	return 0
}

// ParseFilmYear parses a raw film year. Dual years such as "1927/28"
// resolve to the later year.
func ParseFilmYear(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrNoYear
	}

	if m := dualYearRegex.FindStringSubmatch(raw); m != nil {
		if year, ok := consecutiveYears(m[1], m[2]); ok {
			return year, nil
		}
	}

	if year := ExtractYear(raw); year != 0 {
		return year, nil
	}
	return 0, ErrNoYear
}

// consecutiveYears accepts "1927"+"28" or "1927"+"1928" and returns the later year.
// Anything that is not a consecutive pair (e.g. the month in "2023-05-12") is rejected.
func consecutiveYears(firstRaw, secondRaw string) (int, bool) {
	first, err := strconv.Atoi(firstRaw)
	if err != nil {
		return 0, false
	}
	second, err := strconv.Atoi(secondRaw)
	if err != nil {
		return 0, false
	}
	if len(secondRaw) == 2 {
		if second != (first+1)%100 {
			return 0, false
		}
		return first + 1, true
	}
	if second != first+1 {
		return 0, false
	}
	return second, true
}

// CeremonyYearFromFilmYear converts a raw film year into the ceremony year honoring it
func CeremonyYearFromFilmYear(raw string) (int, error) {
	year, err := ParseFilmYear(raw)
	if err != nil {
		return 0, err
	}
	return year + 1, nil
}

// ParseCeremonyYear parses a raw value that already names the ceremony year,
// e.g. "2024" or "2024 (96th)"
func ParseCeremonyYear(raw string) (int, error) {
	if year := ExtractYear(raw); year != 0 {
		return year, nil
	}
	return 0, ErrNoYear
}

// ExpectedFilmYear returns the production year a ceremony's films are expected to have
func ExpectedFilmYear(ceremonyYear int) int {
	if ceremonyYear <= 0 {
		return 0
	}
	return ceremonyYear - 1
}

// YearsWithin reports whether both years are known and differ by at most tolerance
func YearsWithin(a, b, tolerance int) bool {
	if a <= 0 || b <= 0 {
		return false
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}
