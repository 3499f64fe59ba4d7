package matching

import (
	"testing"

	"github.com/amaumene/reelarr/internal/models"
)

func int64Ptr(v int64) *int64 { return &v }

func TestFindBestMatchTiers(t *testing.T) {
	tests := []struct {
		name       string
		nominee    Nominee
		movies     []models.CollectionMovie
		wantTier   int
		wantConf   int
		wantIndex  int
		wantNoHits bool
	}{
		{
			name:     "external id",
			nominee:  Nominee{Title: "Something Else", ExternalID: int64Ptr(872585), Year: 2023},
			movies:   []models.CollectionMovie{{ExternalID: 1, Title: "Oppenheimer", ReleaseDate: "2023-07-19"}, {ExternalID: 872585, Title: "Oppen", ReleaseDate: "1990-01-01"}},
			wantTier: TierExternalID, wantConf: 100, wantIndex: 1,
		},
		{
			name:     "exact title and year",
			nominee:  Nominee{Title: "oppenheimer", Year: 2023},
			movies:   []models.CollectionMovie{{ExternalID: 1, Title: "Oppenheimer", ReleaseDate: "2024-01-01"}},
			wantTier: TierExactTitleYear, wantConf: 95, wantIndex: 0,
		},
		{
			name:     "exact title year outside tolerance",
			nominee:  Nominee{Title: "Dune", Year: 2021},
			movies:   []models.CollectionMovie{{ExternalID: 1, Title: "Dune", ReleaseDate: "1984-12-14"}},
			wantTier: TierExactTitle, wantConf: 90, wantIndex: 0,
		},
		{
			name:     "exact title unknown year",
			nominee:  Nominee{Title: "Dune"},
			movies:   []models.CollectionMovie{{ExternalID: 1, Title: "Dune", ReleaseDate: "2021-09-15"}},
			wantTier: TierExactTitle, wantConf: 90, wantIndex: 0,
		},
		{
			name:     "normalized title and year",
			nominee:  Nominee{Title: "Amélie", Year: 2001},
			movies:   []models.CollectionMovie{{ExternalID: 1, Title: "Amelie!", ReleaseDate: "2001-04-25"}},
			wantTier: TierNormalizedTitleYear, wantConf: 85, wantIndex: 0,
		},
		{
			name:     "normalized original title",
			nominee:  Nominee{Title: "Le Fabuleux Destin d'Amélie Poulain", Year: 2001},
			movies:   []models.CollectionMovie{{ExternalID: 1, Title: "Amélie", OriginalTitle: "Le fabuleux destin d'Amelie Poulain", ReleaseDate: "2001-04-25"}},
			wantTier: TierNormalizedTitleYear, wantConf: 85, wantIndex: 0,
		},
		{
			name:    "normalized import source title without year",
			nominee: Nominee{Title: "The Hold Overs", Year: 1980},
			movies: []models.CollectionMovie{{
				ExternalID: 1, Title: "The Holdovers", ReleaseDate: "2023-10-27",
				Provenance: models.ImportProvenance{Imported: true, SourceTitle: "Hold Overs"},
			}},
			wantTier: TierNormalizedTitle, wantConf: 75, wantIndex: 0,
		},
		{
			name:     "substring title and year",
			nominee:  Nominee{Title: "Birdman", Year: 2014},
			movies:   []models.CollectionMovie{{ExternalID: 1, Title: "Birdman or (The Unexpected Virtue of Ignorance)", ReleaseDate: "2014-10-17"}},
			wantTier: TierSubstringTitleYear, wantConf: 65, wantIndex: 0,
		},
		{
			name:     "director within two years",
			nominee:  Nominee{Title: "Untitled", Director: "Bong Joon Ho", Year: 2019},
			movies:   []models.CollectionMovie{{ExternalID: 1, Title: "Parasite", Director: "Bong Joon-ho, Bong Joon Ho", ReleaseDate: "2017-05-30"}},
			wantTier: TierDirectorYear, wantConf: 60, wantIndex: 0,
		},
		{
			name:       "director too far apart",
			nominee:    Nominee{Title: "Untitled", Director: "Bong Joon Ho", Year: 2019},
			movies:     []models.CollectionMovie{{ExternalID: 1, Title: "Mother", Director: "Bong Joon Ho", ReleaseDate: "2009-05-28"}},
			wantNoHits: true,
		},
		{
			name:       "no candidates",
			nominee:    Nominee{Title: "Oppenheimer", Year: 2023},
			wantNoHits: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindBestMatch(tt.nominee, tt.movies)
			if tt.wantNoHits {
				if result.Matched {
					t.Fatalf("Expected no match, got tier %d (%s)", result.Tier, result.TierName)
				}
				if result.Confidence != 0 || result.Index != -1 || result.Movie != nil {
					t.Errorf("Expected empty result, got %+v", result)
				}
				return
			}
			if !result.Matched {
				t.Fatalf("Expected a match at tier %d, got none", tt.wantTier)
			}
			if result.Tier != tt.wantTier {
				t.Errorf("Expected tier %d, got %d (%s)", tt.wantTier, result.Tier, result.TierName)
			}
			if result.Confidence != tt.wantConf {
				t.Errorf("Expected confidence %d, got %d", tt.wantConf, result.Confidence)
			}
			if result.Index != tt.wantIndex || result.Movie != &tt.movies[tt.wantIndex] {
				t.Errorf("Expected candidate %d, got %d", tt.wantIndex, result.Index)
			}
		})
	}
}

func TestExternalIDAlwaysWins(t *testing.T) {
	movies := []models.CollectionMovie{
		{ExternalID: 10, Title: "Oppenheimer", ReleaseDate: "2023-07-19"},
		{ExternalID: 20, Title: "Oppenheimer", ReleaseDate: "2023-07-19"},
		{ExternalID: 872585, Title: "Completely Different", ReleaseDate: "1950-01-01"},
	}

	result := FindBestMatch(Nominee{Title: "Oppenheimer", ExternalID: int64Ptr(872585), Year: 2023}, movies)
	if result.Tier != TierExternalID {
		t.Fatalf("Expected external id tier, got %d", result.Tier)
	}
	if result.Movie.ExternalID != 872585 {
		t.Errorf("Expected movie 872585, got %d", result.Movie.ExternalID)
	}
}

func TestTieGoesToFirstCandidate(t *testing.T) {
	movies := []models.CollectionMovie{
		{ExternalID: 1, Title: "Little Women", ReleaseDate: "2019-12-25"},
		{ExternalID: 2, Title: "Little Women", ReleaseDate: "2019-12-25"},
	}

	result := FindBestMatch(Nominee{Title: "Little Women", Year: 2019}, movies)
	if result.Index != 0 || result.Movie.ExternalID != 1 {
		t.Errorf("Expected the first candidate, got index %d", result.Index)
	}
}

func TestHigherConfidenceWinsWithinTier(t *testing.T) {
	tier := Tier{
		ID:   1,
		Name: "custom",
		Evaluate: func(n *preparedNominee, c *preparedMovie) (int, bool) {
			return int(c.movie.ExternalID), true
		},
	}
	movies := []models.CollectionMovie{{ExternalID: 40}, {ExternalID: 70}, {ExternalID: 70}}

	result := NewCollectionMatcher(tier).FindBestMatch(Nominee{Title: "x"}, movies)
	if result.Index != 1 || result.Confidence != 70 {
		t.Errorf("Expected index 1 with confidence 70, got index %d confidence %d", result.Index, result.Confidence)
	}
}

func TestEmptyNormalizedTitleSkipsSubstring(t *testing.T) {
	// Punctuation-only titles normalize to empty, which is a substring of everything
	movies := []models.CollectionMovie{{ExternalID: 1, Title: "Her", ReleaseDate: "2013-12-18"}}

	result := FindBestMatch(Nominee{Title: "!!!", Year: 2013}, movies)
	if result.Matched {
		t.Errorf("Expected no match for an empty normalized title, got tier %d", result.Tier)
	}
}

func TestOppenheimerMatchesWithoutExternalID(t *testing.T) {
	nominee := NomineeFromBestPicture(models.BestPictureNominee{
		CeremonyYear: 2024,
		Title:        "Oppenheimer",
		ReleaseYear:  2023,
	})
	movies := []models.CollectionMovie{
		{ExternalID: 346698, Title: "Barbie", ReleaseDate: "2023-07-19"},
		{ExternalID: 872585, Title: "Oppenheimer", ReleaseDate: "2023-07-19"},
	}

	result := FindBestMatch(nominee, movies)
	if result.Tier != TierExactTitleYear || result.Confidence != 95 {
		t.Errorf("Expected tier 2 at 95, got tier %d at %d", result.Tier, result.Confidence)
	}
}
