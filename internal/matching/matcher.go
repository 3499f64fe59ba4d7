package matching

import (
	"github.com/amaumene/reelarr/internal/models"
)

// Nominee is an award nomination to locate in a collection
type Nominee struct {
	Title      string
	ExternalID *int64
	Director   string
	Year       int // approximate release year, 0 when unknown
}

// NomineeFromBestPicture builds a matcher input from a Best Picture nominee
func NomineeFromBestPicture(n models.BestPictureNominee) Nominee {
	return Nominee{
		Title:      n.Title,
		ExternalID: n.ExternalID,
		Director:   n.Director,
		Year:       n.ReleaseYear,
	}
}

// MatchResult is the best collection entry for a nominee
type MatchResult struct {
	Matched    bool
	Movie      *models.CollectionMovie
	Index      int // position of Movie in the candidate slice, -1 without a match
	Tier       int
	TierName   string
	Confidence int // 0-100
}

var noMatch = MatchResult{Index: -1}

// CollectionMatcher finds the collection movie that best corresponds to a nominee
type CollectionMatcher struct {
	tiers []Tier
}

// NewCollectionMatcher creates a matcher using tiers, or DefaultTiers when none are given
func NewCollectionMatcher(tiers ...Tier) *CollectionMatcher {
	if len(tiers) == 0 {
		tiers = DefaultTiers
	}
	return &CollectionMatcher{tiers: tiers}
}

// FindBestMatch returns the best match among movies.
// The first tier with any match wins; within a tier the highest confidence wins and
// ties go to the candidate that appears first.
func (m *CollectionMatcher) FindBestMatch(nominee Nominee, movies []models.CollectionMovie) MatchResult {
	if len(movies) == 0 {
		return noMatch
	}

	n := prepareNominee(nominee)
	candidates := make([]*preparedMovie, len(movies))
	for i := range movies {
		candidates[i] = prepareMovie(&movies[i])
	}

	for _, tier := range m.tiers {
		best := noMatch
		for i, candidate := range candidates {
			confidence, ok := tier.Evaluate(n, candidate)
			if !ok || (best.Matched && confidence <= best.Confidence) {
				continue
			}
			best = MatchResult{
				Matched:    true,
				Movie:      candidate.movie,
				Index:      i,
				Tier:       tier.ID,
				TierName:   tier.Name,
				Confidence: confidence,
			}
		}
		if best.Matched {
			return best
		}
	}

	return noMatch
}

// FindBestMatch matches with the default tiers
func FindBestMatch(nominee Nominee, movies []models.CollectionMovie) MatchResult {
	return NewCollectionMatcher().FindBestMatch(nominee, movies)
}
