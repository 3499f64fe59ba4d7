package matching

import (
	"strings"

	"github.com/amaumene/reelarr/internal/models"
	"github.com/amaumene/reelarr/internal/utils"
)

// Match tier identifiers, in priority order
const (
	TierExternalID = iota + 1
	TierExactTitleYear
	TierExactTitle
	TierNormalizedTitleYear
	TierNormalizedTitle
	TierSubstringTitleYear
	TierDirectorYear
)

const (
	titleYearTolerance    = 1
	directorYearTolerance = 2
)

// Tier is one level of the collection matching policy
// Evaluate returns the confidence for a candidate, or false when the tier does not apply
type Tier struct {
	ID         int
	Name       string
	Confidence int
	Evaluate   func(n *preparedNominee, c *preparedMovie) (int, bool)
}

// DefaultTiers is the matching policy, strongest signal first
var DefaultTiers = []Tier{
	newTier(TierExternalID, "external_id", 100, func(n *preparedNominee, c *preparedMovie) bool {
		return n.externalID != nil && *n.externalID != 0 && *n.externalID == c.movie.ExternalID
	}),
	newTier(TierExactTitleYear, "exact_title_year", 95, func(n *preparedNominee, c *preparedMovie) bool {
		return n.exactTitle != "" && n.exactTitle == c.exactTitle &&
			utils.YearsWithin(n.year, c.year, titleYearTolerance)
	}),
	newTier(TierExactTitle, "exact_title", 90, func(n *preparedNominee, c *preparedMovie) bool {
		return n.exactTitle != "" && n.exactTitle == c.exactTitle
	}),
	newTier(TierNormalizedTitleYear, "normalized_title_year", 85, func(n *preparedNominee, c *preparedMovie) bool {
		return c.hasNormalizedTitle(n.normalizedTitle) &&
			utils.YearsWithin(n.year, c.year, titleYearTolerance)
	}),
	newTier(TierNormalizedTitle, "normalized_title", 75, func(n *preparedNominee, c *preparedMovie) bool {
		return c.hasNormalizedTitle(n.normalizedTitle)
	}),
	newTier(TierSubstringTitleYear, "substring_title_year", 65, func(n *preparedNominee, c *preparedMovie) bool {
		return c.containsTitle(n.normalizedTitle) &&
			utils.YearsWithin(n.year, c.year, titleYearTolerance)
	}),
	newTier(TierDirectorYear, "director_year", 60, func(n *preparedNominee, c *preparedMovie) bool {
		return containsEither(n.director, c.director) &&
			utils.YearsWithin(n.year, c.year, directorYearTolerance)
	}),
}

// newTier builds a tier that scores every matching candidate at the same confidence
func newTier(id int, name string, confidence int, match func(n *preparedNominee, c *preparedMovie) bool) Tier {
	return Tier{
		ID:         id,
		Name:       name,
		Confidence: confidence,
		Evaluate: func(n *preparedNominee, c *preparedMovie) (int, bool) {
			if match(n, c) {
				return confidence, true
			}
			return 0, false
		},
	}
}

// preparedNominee caches the comparison forms of a nominee
type preparedNominee struct {
	externalID      *int64
	exactTitle      string
	normalizedTitle string
	director        string
	year            int
}

func prepareNominee(n Nominee) *preparedNominee {
	return &preparedNominee{
		externalID:      n.ExternalID,
		exactTitle:      exactForm(n.Title),
		normalizedTitle: utils.NormalizeTitle(n.Title),
		director:        personForm(n.Director),
		year:            n.Year,
	}
}

// preparedMovie caches the comparison forms of a collection movie
type preparedMovie struct {
	movie      *models.CollectionMovie
	exactTitle string
	// normalized primary, original and import-source titles, empty ones dropped
	normalizedTitles []string
	director         string
	year             int
}

func prepareMovie(m *models.CollectionMovie) *preparedMovie {
	p := &preparedMovie{
		movie:      m,
		exactTitle: exactForm(m.Title),
		director:   personForm(m.Director),
		year:       m.ReleaseYear(),
	}
	for _, title := range []string{m.Title, m.OriginalTitle, m.Provenance.SourceTitle} {
		if normalized := utils.NormalizeTitle(title); normalized != "" {
			p.normalizedTitles = append(p.normalizedTitles, normalized)
		}
	}
	return p
}

func (p *preparedMovie) hasNormalizedTitle(title string) bool {
	if title == "" {
		return false
	}
	for _, candidate := range p.normalizedTitles {
		if candidate == title {
			return true
		}
	}
	return false
}

func (p *preparedMovie) containsTitle(title string) bool {
	for _, candidate := range p.normalizedTitles {
		if containsEither(title, candidate) {
			return true
		}
	}
	return false
}

// containsEither reports substring containment in either direction, never for empty input
func containsEither(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func exactForm(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

func personForm(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(utils.StripDiacritics(name))), " ")
}
