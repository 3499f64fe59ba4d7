package controllers

import (
	"context"
	"fmt"
	"strings"

	"github.com/amaumene/reelarr/internal/matching"
	"github.com/amaumene/reelarr/internal/models"
	"github.com/amaumene/reelarr/internal/services/tmdb"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
)

// FallbackMetadata is what the metadata service knows about an unmatched nominee
type FallbackMetadata struct {
	ExternalID  int64  `json:"external_id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date,omitempty"`
	PosterPath  string `json:"poster_path,omitempty"`
}

// BestPictureEntry is one nominee of a ceremony and its place in the user's collection
type BestPictureEntry struct {
	Nominee           models.BestPictureNominee `json:"nominee"`
	Matched           bool                      `json:"matched"`
	CollectionMovieID uint                      `json:"collection_movie_id,omitempty"`
	Tier              int                       `json:"tier,omitempty"`
	TierName          string                    `json:"tier_name,omitempty"`
	Confidence        int                       `json:"confidence"`
	Fallback          *FallbackMetadata         `json:"fallback,omitempty"`
}

// BestPictureReport is the result of syncing one ceremony against a collection
type BestPictureReport struct {
	CeremonyYear int                `json:"ceremony_year"`
	UserID       string             `json:"user_id"`
	Entries      []BestPictureEntry `json:"entries"`
	Matched      int                `json:"matched"`
	Unmatched    int                `json:"unmatched"`
}

// AwardSyncController reconciles award nominees with a user's collection
type AwardSyncController struct {
	db      *models.Database
	matcher *matching.CollectionMatcher
	lookup  tmdb.Lookup
	logger  zerolog.Logger
}

// NewAwardSyncController creates a new award sync controller
func NewAwardSyncController(db *models.Database, matcher *matching.CollectionMatcher, lookup tmdb.Lookup, logger zerolog.Logger) *AwardSyncController {
	return &AwardSyncController{
		db:      db,
		matcher: matcher,
		lookup:  lookup,
		logger:  logger.With().Str("controller", "award_sync").Logger(),
	}
}

// SyncBestPicture matches every Best Picture nominee of a ceremony against the user's
// collection. Unmatched nominees stay in the report with metadata-service fallback data.
func (c *AwardSyncController) SyncBestPicture(ctx context.Context, userID string, ceremonyYear int) (*BestPictureReport, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if ceremonyYear <= 0 {
		return nil, fmt.Errorf("ceremony year must be positive, got %d", ceremonyYear)
	}

	ctx, span := tracer.Start(ctx, "sync.best_picture")
	defer span.End()

	nominees, err := c.db.BestPictureNominees(ceremonyYear)
	if err != nil {
		return nil, err
	}

	collection, err := c.db.GetCollectionMovies(userID, models.ApprovalPending, models.ApprovalApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}
	candidates := make([]models.CollectionMovie, len(collection))
	for i, movie := range collection {
		candidates[i] = *movie
	}

	c.logger.Info().
		Int("ceremony_year", ceremonyYear).
		Str("user_id", userID).
		Int("nominees", len(nominees)).
		Int("collection", len(candidates)).
		Msg("Syncing Best Picture nominees")

	report := &BestPictureReport{
		CeremonyYear: ceremonyYear,
		UserID:       userID,
		Entries:      make([]BestPictureEntry, 0, len(nominees)),
	}

	for _, nominee := range nominees {
		entry := BestPictureEntry{Nominee: nominee}

		result := c.matcher.FindBestMatch(matching.NomineeFromBestPicture(nominee), candidates)
		if result.Matched {
			entry.Matched = true
			entry.CollectionMovieID = result.Movie.ID
			entry.Tier = result.Tier
			entry.TierName = result.TierName
			entry.Confidence = result.Confidence
			report.Matched++

			c.logger.Debug().
				Str("title", nominee.Title).
				Str("tier", result.TierName).
				Int("confidence", result.Confidence).
				Msg("Nominee matched")
		} else {
			entry.Fallback = c.fallback(ctx, nominee)
			report.Unmatched++
		}

		report.Entries = append(report.Entries, entry)
	}

	span.SetAttributes(
		attribute.Int("sync.matched", report.Matched),
		attribute.Int("sync.unmatched", report.Unmatched),
	)
	c.logger.Info().
		Int("ceremony_year", ceremonyYear).
		Int("matched", report.Matched).
		Int("unmatched", report.Unmatched).
		Msg("Best Picture sync completed")

	return report, nil
}

// fallback fetches display metadata for an unmatched nominee; failures leave it nil
func (c *AwardSyncController) fallback(ctx context.Context, nominee models.BestPictureNominee) *FallbackMetadata {
	if nominee.ExternalID != nil {
		movie, err := c.lookup.GetMovie(ctx, *nominee.ExternalID)
		if err == nil {
			return &FallbackMetadata{
				ExternalID:  movie.ID,
				Title:       movie.Title,
				ReleaseDate: movie.ReleaseDate,
				PosterPath:  movie.PosterPath,
			}
		}
		c.logger.Warn().Err(err).Str("title", nominee.Title).Msg("Fallback lookup failed, trying search")
	}

	results, err := c.lookup.SearchMovies(ctx, nominee.Title, nominee.ReleaseYear)
	if err != nil {
		c.logger.Warn().Err(err).Str("title", nominee.Title).Msg("Fallback search failed")
		return nil
	}
	if len(results) == 0 {
		c.logger.Debug().Str("title", nominee.Title).Msg("Fallback search found nothing")
		return nil
	}

	return &FallbackMetadata{
		ExternalID:  results[0].ID,
		Title:       results[0].Title,
		ReleaseDate: results[0].ReleaseDate,
		PosterPath:  results[0].PosterPath,
	}
}
