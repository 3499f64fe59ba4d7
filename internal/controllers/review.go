package controllers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amaumene/reelarr/internal/matching"
	"github.com/amaumene/reelarr/internal/models"
	"github.com/rs/zerolog"
)

// ReviewController applies human review decisions to award-linked movies
type ReviewController struct {
	db         *models.Database
	verifyCtrl *VerifyController
	logger     zerolog.Logger
}

// NewReviewController creates a new review controller
func NewReviewController(db *models.Database, verifyCtrl *VerifyController, logger zerolog.Logger) *ReviewController {
	return &ReviewController{
		db:         db,
		verifyCtrl: verifyCtrl,
		logger:     logger.With().Str("controller", "review").Logger(),
	}
}

// Confirm records that a reviewer accepted the current external identifier
func (c *ReviewController) Confirm(ctx context.Context, id uint, reviewer, notes string) (*models.AwardLinkedMovie, error) {
	reviewer = strings.TrimSpace(reviewer)
	if reviewer == "" {
		return nil, fmt.Errorf("reviewer is required")
	}

	movie, err := c.db.GetAwardMovieByID(id)
	if err != nil {
		return nil, err
	}

	if err := movie.Transition(models.ReviewManuallyReviewed); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	movie.ReviewedBy = reviewer
	movie.ReviewedAt = &now
	if notes = strings.TrimSpace(notes); notes != "" {
		movie.VerificationNotes = notes
	}

	if err := c.db.UpdateAwardMovie(movie); err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	c.logger.Info().
		Uint("movie_id", movie.ID).
		Str("title", movie.Title).
		Str("reviewer", reviewer).
		Msg("Award movie confirmed")

	return movie, nil
}

// Correct replaces the external identifier of an award-linked movie and verifies it again.
// The movie always passes through pending, so a stale human review never survives a correction.
func (c *ReviewController) Correct(ctx context.Context, id uint, externalID int64, reviewer string) (*models.AwardLinkedMovie, matching.Verdict, error) {
	if externalID <= 0 {
		return nil, matching.Verdict{}, fmt.Errorf("external id must be positive, got %d", externalID)
	}

	movie, err := c.db.GetAwardMovieByID(id)
	if err != nil {
		return nil, matching.Verdict{}, err
	}

	inUse, err := c.db.AwardExternalIDInUse(externalID, movie.ID)
	if err != nil {
		return nil, matching.Verdict{}, fmt.Errorf("failed to check external id: %w", err)
	}
	if inUse {
		return nil, matching.Verdict{}, fmt.Errorf("%w: %d", models.ErrDuplicateExternalID, externalID)
	}

	previous := movie.ExternalID
	if _, err := movie.ResetForVerification(); err != nil {
		return nil, matching.Verdict{}, err
	}
	movie.ExternalID = &externalID
	correctedAt := time.Now().UTC()
	movie.CorrectedBy = strings.TrimSpace(reviewer)
	movie.CorrectedAt = &correctedAt

	c.logger.Info().
		Uint("movie_id", movie.ID).
		Str("title", movie.Title).
		Str("reviewer", reviewer).
		Interface("previous_external_id", previous).
		Int64("external_id", externalID).
		Msg("Award movie corrected, re-verifying")

	verdict, err := c.verifyCtrl.verifyMovie(ctx, movie)
	if err != nil {
		return nil, verdict, err
	}
	return movie, verdict, nil
}
