package handlers

import (
	"strings"

	"github.com/amaumene/reelarr/internal/controllers"
	"github.com/amaumene/reelarr/internal/matching"
	"github.com/amaumene/reelarr/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// ReviewHandler serves the award-movie review actions
type ReviewHandler struct {
	reviewCtrl *controllers.ReviewController
	logger     zerolog.Logger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewCtrl *controllers.ReviewController, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewCtrl: reviewCtrl,
		logger:     logger,
	}
}

// ConfirmRequest is the body of a confirm action
type ConfirmRequest struct {
	Reviewer string `json:"reviewer"`
	Notes    string `json:"notes"`
}

// CorrectRequest is the body of a correct action
type CorrectRequest struct {
	ExternalID int64  `json:"external_id"`
	Reviewer   string `json:"reviewer"`
}

// CorrectResponse is the movie after a correction and the verdict of its re-verification
type CorrectResponse struct {
	Movie   *models.AwardLinkedMovie `json:"movie"`
	Verdict matching.Verdict         `json:"verdict"`
}

// Confirm handles POST /api/award-movies/:id/confirm
func (h *ReviewHandler) Confirm(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "invalid movie id")
	}

	var req ConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if strings.TrimSpace(req.Reviewer) == "" {
		return badRequest(c, "reviewer is required")
	}

	movie, err := h.reviewCtrl.Confirm(c.UserContext(), id, req.Reviewer, req.Notes)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(movie)
}

// Correct handles POST /api/award-movies/:id/correct
func (h *ReviewHandler) Correct(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return badRequest(c, "invalid movie id")
	}

	var req CorrectRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.ExternalID <= 0 {
		return badRequest(c, "external_id must be positive")
	}

	movie, verdict, err := h.reviewCtrl.Correct(c.UserContext(), id, req.ExternalID, req.Reviewer)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(CorrectResponse{Movie: movie, Verdict: verdict})
}
