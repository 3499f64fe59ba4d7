package controllers

import (
	"context"
	"fmt"
	"time"

	"github.com/amaumene/reelarr/internal/matching"
	"github.com/amaumene/reelarr/internal/models"
	"github.com/amaumene/reelarr/internal/telemetry"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
)

// VerifyController runs automated verification of award-linked movies
type VerifyController struct {
	db       *models.Database
	verifier *matching.Verifier
	metrics  *telemetry.Metrics
	logger   zerolog.Logger
}

// NewVerifyController creates a new verify controller
func NewVerifyController(db *models.Database, verifier *matching.Verifier, metrics *telemetry.Metrics, logger zerolog.Logger) *VerifyController {
	return &VerifyController{
		db:       db,
		verifier: verifier,
		metrics:  metrics,
		logger:   logger.With().Str("controller", "verify").Logger(),
	}
}

// VerifyPending verifies every pending award-linked movie, in creation order.
// With force, movies in every other status are re-verified too, human reviews included.
func (c *VerifyController) VerifyPending(ctx context.Context, job *Job, force bool) (*Summary, error) {
	ctx, span := tracer.Start(ctx, "verify.pending")
	defer span.End()

	statuses := []models.ReviewStatus{models.ReviewPending}
	if force {
		statuses = append(statuses, models.ReviewAutoVerified, models.ReviewNeedsManualReview, models.ReviewManuallyReviewed)
	}

	movies, err := c.db.GetAwardMoviesByStatus(statuses...)
	if err != nil {
		return nil, fmt.Errorf("failed to get award movies: %w", err)
	}

	start := time.Now()
	summary := newSummary(job, len(movies))
	c.logger.Info().Int("count", len(movies)).Bool("force", force).Msg("Starting verification run")

	for i, movie := range movies {
		if job.shouldStop(ctx) {
			summary.Cancelled = true
			break
		}

		verdict, err := c.verifyMovie(ctx, movie)
		summary.Processed++
		switch {
		case err != nil:
			c.logger.Warn().Err(err).Uint("movie_id", movie.ID).Str("title", movie.Title).Msg("Failed to record verdict")
			summary.Failed++
		case verdict.Status == models.ReviewAutoVerified:
			summary.AutoVerified++
			summary.Updated++
		default:
			summary.NeedsReview++
			summary.Updated++
			if verdict.LookupFailed {
				summary.LookupFailures++
			}
		}

		job.progress(i+1, len(movies), summary)
	}

	span.SetAttributes(
		attribute.Int("verify.processed", summary.Processed),
		attribute.Int("verify.auto_verified", summary.AutoVerified),
		attribute.Bool("verify.cancelled", summary.Cancelled),
	)
	summary.finish(job, start)
	return summary, nil
}

// Verify verifies a single award-linked movie by ID, whatever its current status
func (c *VerifyController) Verify(ctx context.Context, id uint) (*models.AwardLinkedMovie, matching.Verdict, error) {
	movie, err := c.db.GetAwardMovieByID(id)
	if err != nil {
		return nil, matching.Verdict{}, err
	}

	verdict, err := c.verifyMovie(ctx, movie)
	if err != nil {
		return nil, matching.Verdict{}, err
	}
	return movie, verdict, nil
}

// verifyMovie verifies and saves one movie. A movie that is not pending goes back
// through pending first; discarding a human review is logged as a forced re-verification.
func (c *VerifyController) verifyMovie(ctx context.Context, movie *models.AwardLinkedMovie) (matching.Verdict, error) {
	if movie.ReviewStatus != models.ReviewPending && movie.ReviewStatus != "" {
		wasReviewed, err := movie.ResetForVerification()
		if err != nil {
			return matching.Verdict{}, err
		}
		if wasReviewed {
			c.logger.Warn().
				Uint("movie_id", movie.ID).
				Str("title", movie.Title).
				Msg("Forced re-verification of a manually reviewed movie")
		}
	}

	verdict := c.verifier.Verify(ctx, matching.CandidateFromMovie(movie))
	if err := matching.Apply(movie, verdict); err != nil {
		return verdict, err
	}
	if err := c.db.UpdateAwardMovie(movie); err != nil {
		return verdict, fmt.Errorf("failed to save verdict: %w", err)
	}

	c.metrics.ObserveVerdict(string(verdict.Status))
	c.logger.Debug().
		Uint("movie_id", movie.ID).
		Str("title", movie.Title).
		Str("status", string(verdict.Status)).
		Float64("confidence", verdict.Confidence).
		Msg("Movie verified")

	return verdict, nil
}
