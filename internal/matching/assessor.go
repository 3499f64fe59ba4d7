package matching

import (
	"fmt"
	"math"
	"strings"

	"github.com/amaumene/reelarr/internal/models"
	"github.com/amaumene/reelarr/internal/utils"
)

const (
	mismatchThreshold = 80
	titleWeight       = 0.6
	directorWeight    = 0.3
	missingDirector   = 20
	yearPenaltyStep   = 5
	yearPenaltyCap    = 30
)

// MatchedRecord is the metadata a collection movie is currently matched to
type MatchedRecord struct {
	Title       string
	Director    string
	ReleaseYear int // 0 when unknown
}

// MatchedRecordFromMovie uses a collection movie's own metadata fields as its match
func MatchedRecordFromMovie(m *models.CollectionMovie) MatchedRecord {
	return MatchedRecord{
		Title:       m.Title,
		Director:    m.Director,
		ReleaseYear: m.ReleaseYear(),
	}
}

// Assess scores how well the spreadsheet row in p agrees with the matched record.
// Absent signals are skipped, except a source director with no matched director.
func Assess(p models.ImportProvenance, matched MatchedRecord) models.MatchAnalysis {
	analysis := models.MatchAnalysis{Mismatches: []string{}}
	confidence := 100.0

	sourceTitle := strings.TrimSpace(p.SourceTitle)
	matchedTitle := strings.TrimSpace(matched.Title)
	if sourceTitle != "" && matchedTitle != "" {
		similarity := utils.SimilarityPercent(sourceTitle, matchedTitle)
		analysis.TitleSimilarity = &similarity
		if similarity < mismatchThreshold {
			analysis.Mismatches = append(analysis.Mismatches,
				fmt.Sprintf("Title: %q vs %q (%d%% similar)", sourceTitle, matchedTitle, similarity))
			confidence -= float64(100-similarity) * titleWeight
		}
	}

	sourceDirector := strings.TrimSpace(p.SourceDirector)
	matchedDirector := strings.TrimSpace(matched.Director)
	switch {
	case sourceDirector != "" && matchedDirector != "":
		similarity := utils.SimilarityPercent(sourceDirector, matchedDirector)
		analysis.DirectorSimilarity = &similarity
		if similarity < mismatchThreshold {
			analysis.Mismatches = append(analysis.Mismatches,
				fmt.Sprintf("Director: %q vs %q (%d%% similar)", sourceDirector, matchedDirector, similarity))
			confidence -= float64(100-similarity) * directorWeight
		}
	case sourceDirector != "":
		analysis.Mismatches = append(analysis.Mismatches,
			fmt.Sprintf("Director: %q in source, none on matched movie", sourceDirector))
		confidence -= missingDirector
	}

	if sourceYear, err := utils.ParseFilmYear(p.SourceYear); err == nil && matched.ReleaseYear > 0 {
		diff := sourceYear - matched.ReleaseYear
		if diff < 0 {
			diff = -diff
		}
		analysis.YearDifference = &diff
		if diff > 1 {
			analysis.Mismatches = append(analysis.Mismatches,
				fmt.Sprintf("Year: %d vs %d (%d years apart)", sourceYear, matched.ReleaseYear, diff))
			confidence -= float64(min(diff*yearPenaltyStep, yearPenaltyCap))
		}
	}

	analysis.Confidence = int(math.Round(math.Max(0, math.Min(100, confidence))))
	analysis.Severity = SeverityFor(analysis.Confidence)
	return analysis
}

// SeverityFor buckets a 0-100 confidence into a review severity
func SeverityFor(confidence int) models.Severity {
	switch {
	case confidence < 50:
		return models.SeverityHigh
	case confidence < 80:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}
