package matching

import (
	"context"
	"fmt"
	"strings"

	"github.com/amaumene/reelarr/internal/models"
	"github.com/amaumene/reelarr/internal/services/tmdb"
	"github.com/amaumene/reelarr/internal/utils"
	"github.com/rs/zerolog"
)

const (
	// TitleVerifyThreshold is the minimum title similarity for automated verification
	TitleVerifyThreshold = 0.85
	// YearTolerance is the accepted difference between expected and reported production year
	YearTolerance = 1
	// missingYearPenalty scales confidence when the lookup reports no release year
	missingYearPenalty = 0.9
)

// MovieFetcher fetches movie details by external identifier
type MovieFetcher interface {
	GetMovie(ctx context.Context, id int64) (*tmdb.Movie, error)
}

// Candidate is an award-linked movie to verify
type Candidate struct {
	Title        string
	ExternalID   *int64
	CeremonyYear int
}

// CandidateFromMovie builds a verification candidate from an award-linked movie
func CandidateFromMovie(movie *models.AwardLinkedMovie) Candidate {
	return Candidate{
		Title:        movie.Title,
		ExternalID:   movie.ExternalID,
		CeremonyYear: movie.CeremonyYear,
	}
}

// Verdict is the outcome of verifying a candidate
type Verdict struct {
	Status     models.ReviewStatus `json:"status"`
	Confidence float64             `json:"confidence"` // 0-1
	Notes      string              `json:"notes"`

	// LookupFailed is set when the metadata service could not be reached or returned an error
	LookupFailed bool `json:"lookup_failed"`
}

// Verifier decides whether an external identifier plausibly refers to the claimed title and year
type Verifier struct {
	fetcher MovieFetcher
	logger  zerolog.Logger
}

// NewVerifier creates a verifier backed by fetcher
// Callers are expected to pass a rate-limited, retrying fetcher for bulk runs
func NewVerifier(fetcher MovieFetcher, logger zerolog.Logger) *Verifier {
	return &Verifier{
		fetcher: fetcher,
		logger:  logger.With().Str("component", "verifier").Logger(),
	}
}

// Verify checks a candidate against the metadata service.
// Lookup failures are folded into a needs_manual_review verdict, never returned as errors.
func (v *Verifier) Verify(ctx context.Context, candidate Candidate) Verdict {
	if candidate.ExternalID == nil {
		return Verdict{
			Status:     models.ReviewNeedsManualReview,
			Confidence: 0,
			Notes:      "No external identifier in source data.",
		}
	}

	movie, err := v.fetcher.GetMovie(ctx, *candidate.ExternalID)
	if err != nil {
		v.logger.Warn().Err(err).
			Int64("external_id", *candidate.ExternalID).
			Str("title", candidate.Title).
			Msg("Metadata lookup failed")
		return Verdict{
			Status:       models.ReviewNeedsManualReview,
			Confidence:   0,
			Notes:        fmt.Sprintf("Metadata lookup failed: %v", err),
			LookupFailed: true,
		}
	}

	verdict := Evaluate(candidate, movie)

	v.logger.Debug().
		Int64("external_id", *candidate.ExternalID).
		Str("title", candidate.Title).
		Str("status", string(verdict.Status)).
		Float64("confidence", verdict.Confidence).
		Msg("Candidate verified")

	return verdict
}

// Evaluate scores a candidate against fetched metadata
func Evaluate(candidate Candidate, movie *tmdb.Movie) Verdict {
	similarity := utils.Similarity(candidate.Title, movie.Title)
	if movie.OriginalTitle != "" {
		similarity = max(similarity, utils.Similarity(candidate.Title, movie.OriginalTitle))
	}

	expectedYear := utils.ExpectedFilmYear(candidate.CeremonyYear)
	reportedYear := movie.ReleaseYear()
	titleOK := similarity >= TitleVerifyThreshold

	if titleOK && utils.YearsWithin(expectedYear, reportedYear, YearTolerance) {
		return Verdict{
			Status:     models.ReviewAutoVerified,
			Confidence: similarity,
			Notes:      fmt.Sprintf("Title similarity %.2f, release year %d matches expected %d.", similarity, reportedYear, expectedYear),
		}
	}

	if titleOK && reportedYear == 0 {
		return Verdict{
			Status:     models.ReviewAutoVerified,
			Confidence: similarity * missingYearPenalty,
			Notes:      fmt.Sprintf("Title similarity %.2f; metadata has no release year, year check skipped.", similarity),
		}
	}

	var problems []string
	if !titleOK {
		problems = append(problems, fmt.Sprintf("Title mismatch: %q vs %q (similarity %.2f).", candidate.Title, displayTitle(movie), similarity))
	}
	if reportedYear != 0 && !utils.YearsWithin(expectedYear, reportedYear, YearTolerance) {
		problems = append(problems, fmt.Sprintf("Year mismatch: expected %s, got %d.", yearText(expectedYear), reportedYear))
	}

	return Verdict{
		Status:     models.ReviewNeedsManualReview,
		Confidence: similarity,
		Notes:      strings.Join(problems, " "),
	}
}

func displayTitle(movie *tmdb.Movie) string {
	if movie.OriginalTitle != "" && movie.OriginalTitle != movie.Title {
		return fmt.Sprintf("%s / %s", movie.Title, movie.OriginalTitle)
	}
	return movie.Title
}

func yearText(year int) string {
	if year == 0 {
		return "unknown"
	}
	return fmt.Sprintf("%d (±%d)", year, YearTolerance)
}

// Apply records a verdict on an award-linked movie through the review state machine
func Apply(movie *models.AwardLinkedMovie, verdict Verdict) error {
	if err := movie.Transition(verdict.Status); err != nil {
		return err
	}
	movie.Confidence = verdict.Confidence
	movie.VerificationNotes = verdict.Notes
	return nil
}
