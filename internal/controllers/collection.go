package controllers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amaumene/reelarr/internal/matching"
	"github.com/amaumene/reelarr/internal/models"
	"github.com/amaumene/reelarr/internal/services/sources"
	"github.com/amaumene/reelarr/internal/services/tmdb"
	"github.com/amaumene/reelarr/internal/telemetry"
	"github.com/amaumene/reelarr/internal/utils"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
)

const collectionJob = "collection"

// ErrNoSearchResults is returned when a spreadsheet row matches nothing in the metadata service
var ErrNoSearchResults = errors.New("no search results")

// CollectionController manages spreadsheet imports and approvals of a user's collection
type CollectionController struct {
	db      *models.Database
	lookup  tmdb.Lookup
	metrics *telemetry.Metrics
	logger  zerolog.Logger
}

// NewCollectionController creates a new collection controller
func NewCollectionController(db *models.Database, lookup tmdb.Lookup, metrics *telemetry.Metrics, logger zerolog.Logger) *CollectionController {
	return &CollectionController{
		db:      db,
		lookup:  lookup,
		metrics: metrics,
		logger:  logger.With().Str("controller", "collection").Logger(),
	}
}

// ImportSpreadsheet matches each row against the metadata service and adds it to the
// user's collection as pending, with a match analysis. Rows whose movie is already in
// the collection are skipped.
func (c *CollectionController) ImportSpreadsheet(ctx context.Context, job *Job, userID string, rows []sources.SpreadsheetRow) (*Summary, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	ctx, span := tracer.Start(ctx, "collection.import")
	defer span.End()

	start := time.Now()
	summary := newSummary(job, len(rows))
	c.logger.Info().Str("user_id", userID).Int("count", len(rows)).Msg("Starting spreadsheet import")

	for i, row := range rows {
		if job.shouldStop(ctx) {
			summary.Cancelled = true
			break
		}

		outcome := c.importRow(ctx, userID, row)
		switch outcome {
		case models.OutcomeCreated:
			summary.Created++
		case models.OutcomeSkipped:
			summary.Skipped++
		default:
			summary.Failed++
		}
		if outcome == "" {
			c.metrics.ObserveImport(collectionJob, "failed")
		} else {
			c.metrics.ObserveImport(collectionJob, string(outcome))
		}

		summary.Processed++
		job.progress(i+1, len(rows), summary)
	}

	span.SetAttributes(
		attribute.Int("collection.processed", summary.Processed),
		attribute.Int("collection.created", summary.Created),
		attribute.Bool("collection.cancelled", summary.Cancelled),
	)
	summary.finish(job, start)
	return summary, nil
}

// importRow imports one row, returning an empty outcome on failure
func (c *CollectionController) importRow(ctx context.Context, userID string, row sources.SpreadsheetRow) models.UpsertOutcome {
	log := c.logger.With().Int("row", row.Row).Str("title", row.Title).Logger()

	metadata, err := c.resolve(ctx, row)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to resolve spreadsheet row")
		return ""
	}

	movie := &models.CollectionMovie{
		UserID:         userID,
		ApprovalStatus: models.ApprovalPending,
		Provenance:     row.Provenance(),
	}
	applyMetadata(movie, metadata)

	outcome, err := c.db.CreateCollectionMovie(movie)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to create collection movie")
		return ""
	}
	if outcome == models.OutcomeSkipped {
		log.Debug().Int64("external_id", metadata.ID).Msg("Movie already in collection, skipped")
		return outcome
	}

	if _, err := c.assess(movie); err != nil {
		log.Warn().Err(err).Uint("movie_id", movie.ID).Msg("Failed to save match analysis")
	}
	return outcome
}

// resolve finds the metadata record for a row, by its TMDB ID when present and by
// the most similar title search result otherwise
func (c *CollectionController) resolve(ctx context.Context, row sources.SpreadsheetRow) (*tmdb.Movie, error) {
	if row.TMDBID > 0 {
		return c.lookup.GetMovie(ctx, row.TMDBID)
	}

	year, _ := utils.ParseFilmYear(row.Year)
	results, err := c.lookup.SearchMovies(ctx, row.Title, year)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 && year > 0 {
		results, err = c.lookup.SearchMovies(ctx, row.Title, 0)
		if err != nil {
			return nil, err
		}
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w for %q", ErrNoSearchResults, row.Title)
	}

	best, bestScore := results[0], -1.0
	for _, result := range results {
		score := max(utils.Similarity(row.Title, result.Title), utils.Similarity(row.Title, result.OriginalTitle))
		if score > bestScore {
			best, bestScore = result, score
		}
	}

	return c.lookup.GetMovie(ctx, best.ID)
}

// assess recomputes and stores the match analysis of an imported movie
func (c *CollectionController) assess(movie *models.CollectionMovie) (*models.MatchAnalysis, error) {
	if !movie.Provenance.Imported {
		return nil, nil
	}

	analysis := matching.Assess(movie.Provenance, matching.MatchedRecordFromMovie(movie))
	analysis.CollectionMovieID = movie.ID
	if err := c.db.SaveMatchAnalysis(&analysis); err != nil {
		return nil, err
	}

	c.metrics.ObserveMatchConfidence(analysis.Confidence)
	movie.Analysis = &analysis
	return &analysis, nil
}

// CorrectMatch points a collection movie at a different metadata record, replaces its
// match analysis and returns it to pending approval
func (c *CollectionController) CorrectMatch(ctx context.Context, userID string, id uint, externalID int64) (*models.CollectionMovie, error) {
	if externalID <= 0 {
		return nil, fmt.Errorf("external id must be positive, got %d", externalID)
	}

	movie, err := c.getOwned(userID, id)
	if err != nil {
		return nil, err
	}

	existing, err := c.db.GetCollectionMovieByExternalID(userID, externalID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to check external id: %w", err)
	}
	if existing != nil && existing.ID != movie.ID {
		return nil, fmt.Errorf("%w: %d", models.ErrDuplicateExternalID, externalID)
	}

	metadata, err := c.lookup.GetMovie(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch movie %d: %w", externalID, err)
	}

	previous := movie.ExternalID
	applyMetadata(movie, metadata)
	movie.ApprovalStatus = models.ApprovalPending
	if err := c.db.UpdateCollectionMovie(movie); err != nil {
		return nil, fmt.Errorf("failed to save collection movie: %w", err)
	}

	if _, err := c.assess(movie); err != nil {
		return nil, fmt.Errorf("failed to save match analysis: %w", err)
	}

	c.logger.Info().
		Uint("movie_id", movie.ID).
		Int64("previous_external_id", previous).
		Int64("external_id", externalID).
		Msg("Collection match corrected")

	return movie, nil
}

// Approve makes a collection movie visible
func (c *CollectionController) Approve(userID string, id uint) (*models.CollectionMovie, error) {
	return c.setApproval(userID, id, models.ApprovalApproved)
}

// Remove hides a collection movie without deleting its record
func (c *CollectionController) Remove(userID string, id uint) (*models.CollectionMovie, error) {
	return c.setApproval(userID, id, models.ApprovalRemoved)
}

func (c *CollectionController) setApproval(userID string, id uint, status models.ApprovalStatus) (*models.CollectionMovie, error) {
	movie, err := c.getOwned(userID, id)
	if err != nil {
		return nil, err
	}

	movie.ApprovalStatus = status
	if err := c.db.UpdateCollectionMovie(movie); err != nil {
		return nil, fmt.Errorf("failed to save collection movie: %w", err)
	}

	c.logger.Info().Uint("movie_id", movie.ID).Str("status", string(status)).Msg("Collection approval changed")
	return movie, nil
}

// ReviewQueue returns the user's pending movies, least confident match first
func (c *CollectionController) ReviewQueue(userID string, limit int) ([]*models.CollectionMovie, error) {
	return c.db.ReviewQueue(userID, limit)
}

// getOwned loads a collection movie, treating other users' movies as missing
func (c *CollectionController) getOwned(userID string, id uint) (*models.CollectionMovie, error) {
	movie, err := c.db.GetCollectionMovieByID(id)
	if err != nil {
		return nil, err
	}
	if movie.UserID != userID {
		return nil, models.ErrNotFound
	}
	return movie, nil
}

func applyMetadata(movie *models.CollectionMovie, metadata *tmdb.Movie) {
	movie.ExternalID = metadata.ID
	movie.Title = metadata.Title
	movie.OriginalTitle = metadata.OriginalTitle
	movie.Director = metadata.Director()
	movie.ReleaseDate = metadata.ReleaseDate
}
