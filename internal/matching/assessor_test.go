package matching

import (
	"testing"

	"github.com/amaumene/reelarr/internal/models"
)

func TestAssess(t *testing.T) {
	tests := []struct {
		name           string
		source         models.ImportProvenance
		matched        MatchedRecord
		wantConfidence int
		wantSeverity   models.Severity
		wantMismatches int
	}{
		{
			name:           "typo in source title",
			source:         models.ImportProvenance{Imported: true, SourceTitle: "The Hold Overs", SourceDirector: "Alexander Payne", SourceYear: "2023"},
			matched:        MatchedRecord{Title: "The Holdovers", Director: "Alexander Payne", ReleaseYear: 2023},
			wantConfidence: 100,
			wantSeverity:   models.SeverityLow,
		},
		{
			name:           "three years apart",
			source:         models.ImportProvenance{Imported: true, SourceTitle: "Dune", SourceDirector: "Denis Villeneuve", SourceYear: "2024"},
			matched:        MatchedRecord{Title: "Dune", Director: "Denis Villeneuve", ReleaseYear: 2021},
			wantConfidence: 85,
			wantSeverity:   models.SeverityLow,
			wantMismatches: 1,
		},
		{
			name:           "title mismatch and three years apart",
			source:         models.ImportProvenance{Imported: true, SourceTitle: "The Batman", SourceYear: "2025"},
			matched:        MatchedRecord{Title: "Batman", ReleaseYear: 2022},
			wantConfidence: 61,
			wantSeverity:   models.SeverityMedium,
			wantMismatches: 2,
		},
		{
			name:           "year penalty is capped",
			source:         models.ImportProvenance{Imported: true, SourceTitle: "Dune", SourceYear: "1965"},
			matched:        MatchedRecord{Title: "Dune", ReleaseYear: 2021},
			wantConfidence: 70,
			wantSeverity:   models.SeverityMedium,
			wantMismatches: 1,
		},
		{
			name:           "one year apart is tolerated",
			source:         models.ImportProvenance{Imported: true, SourceTitle: "Dune", SourceYear: "2020"},
			matched:        MatchedRecord{Title: "Dune", ReleaseYear: 2021},
			wantConfidence: 100,
			wantSeverity:   models.SeverityLow,
		},
		{
			name:           "matched movie has no director",
			source:         models.ImportProvenance{Imported: true, SourceTitle: "Dune", SourceDirector: "Denis Villeneuve"},
			matched:        MatchedRecord{Title: "Dune"},
			wantConfidence: 80,
			wantSeverity:   models.SeverityLow,
			wantMismatches: 1,
		},
		{
			name:           "missing signals are skipped",
			source:         models.ImportProvenance{Imported: true, SourceTitle: "Dune", SourceYear: "unknown"},
			matched:        MatchedRecord{Title: "Dune", Director: "Denis Villeneuve", ReleaseYear: 2021},
			wantConfidence: 100,
			wantSeverity:   models.SeverityLow,
		},
		{
			name:           "title and director mismatch",
			source:         models.ImportProvenance{Imported: true, SourceTitle: "abc", SourceDirector: "xyz"},
			matched:        MatchedRecord{Title: "qrs", Director: "uvw", ReleaseYear: 2020},
			wantConfidence: 10,
			wantSeverity:   models.SeverityHigh,
			wantMismatches: 2,
		},
		{
			name:           "everything wrong clamps to zero",
			source:         models.ImportProvenance{Imported: true, SourceTitle: "abc", SourceDirector: "xyz", SourceYear: "1950"},
			matched:        MatchedRecord{Title: "qrs", ReleaseYear: 2020},
			wantConfidence: 0,
			wantSeverity:   models.SeverityHigh,
			wantMismatches: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := Assess(tt.source, tt.matched)
			if analysis.Confidence != tt.wantConfidence {
				t.Errorf("Expected confidence %d, got %d (%v)", tt.wantConfidence, analysis.Confidence, analysis.Mismatches)
			}
			if analysis.Severity != tt.wantSeverity {
				t.Errorf("Expected severity %s, got %s", tt.wantSeverity, analysis.Severity)
			}
			if len(analysis.Mismatches) != tt.wantMismatches {
				t.Errorf("Expected %d mismatches, got %v", tt.wantMismatches, analysis.Mismatches)
			}
			if analysis.Confidence < 0 || analysis.Confidence > 100 {
				t.Errorf("Confidence %d out of range", analysis.Confidence)
			}
		})
	}
}

func TestAssessRecordsSignals(t *testing.T) {
	analysis := Assess(
		models.ImportProvenance{Imported: true, SourceTitle: "The Hold Overs", SourceDirector: "Alexander Payne", SourceYear: "2023"},
		MatchedRecord{Title: "The Holdovers", Director: "Alexander Payne", ReleaseYear: 2023},
	)

	if analysis.TitleSimilarity == nil || *analysis.TitleSimilarity != 93 {
		t.Errorf("Expected title similarity 93, got %v", analysis.TitleSimilarity)
	}
	if analysis.DirectorSimilarity == nil || *analysis.DirectorSimilarity != 100 {
		t.Errorf("Expected director similarity 100, got %v", analysis.DirectorSimilarity)
	}
	if analysis.YearDifference == nil || *analysis.YearDifference != 0 {
		t.Errorf("Expected year difference 0, got %v", analysis.YearDifference)
	}
}

func TestSeverityBoundaries(t *testing.T) {
	tests := []struct {
		confidence int
		want       models.Severity
	}{
		{0, models.SeverityHigh},
		{49, models.SeverityHigh},
		{50, models.SeverityMedium},
		{79, models.SeverityMedium},
		{80, models.SeverityLow},
		{100, models.SeverityLow},
	}

	for _, tt := range tests {
		if got := SeverityFor(tt.confidence); got != tt.want {
			t.Errorf("SeverityFor(%d) = %s, want %s", tt.confidence, got, tt.want)
		}
	}
}
