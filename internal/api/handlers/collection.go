package handlers

import (
	"github.com/amaumene/reelarr/internal/controllers"
	"github.com/amaumene/reelarr/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

const defaultQueueLimit = 100

// CollectionHandler serves the collection review queue and approval actions
type CollectionHandler struct {
	collectionCtrl *controllers.CollectionController
	logger         zerolog.Logger
}

// NewCollectionHandler creates a new collection handler
func NewCollectionHandler(collectionCtrl *controllers.CollectionController, logger zerolog.Logger) *CollectionHandler {
	return &CollectionHandler{
		collectionCtrl: collectionCtrl,
		logger:         logger,
	}
}

// CorrectMatchRequest is the body of a collection correction
type CorrectMatchRequest struct {
	ExternalID int64 `json:"external_id"`
}

// ReviewQueue handles GET /api/review-queue
func (h *CollectionHandler) ReviewQueue(c *fiber.Ctx) error {
	user := userID(c)
	if user == "" {
		return badRequest(c, "user is required")
	}

	limit := c.QueryInt("limit", defaultQueueLimit)
	movies, err := h.collectionCtrl.ReviewQueue(user, limit)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if movies == nil {
		movies = []*models.CollectionMovie{}
	}
	return c.JSON(movies)
}

// Correct handles POST /api/collection/:id/correct
func (h *CollectionHandler) Correct(c *fiber.Ctx) error {
	user, id, ok := h.target(c)
	if !ok {
		return badRequest(c, "user and a valid movie id are required")
	}

	var req CorrectMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.ExternalID <= 0 {
		return badRequest(c, "external_id must be positive")
	}

	movie, err := h.collectionCtrl.CorrectMatch(c.UserContext(), user, id, req.ExternalID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(movie)
}

// Approve handles POST /api/collection/:id/approve
func (h *CollectionHandler) Approve(c *fiber.Ctx) error {
	user, id, ok := h.target(c)
	if !ok {
		return badRequest(c, "user and a valid movie id are required")
	}

	movie, err := h.collectionCtrl.Approve(user, id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(movie)
}

// Remove handles POST /api/collection/:id/remove
func (h *CollectionHandler) Remove(c *fiber.Ctx) error {
	user, id, ok := h.target(c)
	if !ok {
		return badRequest(c, "user and a valid movie id are required")
	}

	movie, err := h.collectionCtrl.Remove(user, id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(movie)
}

func (h *CollectionHandler) target(c *fiber.Ctx) (string, uint, bool) {
	user := userID(c)
	id, ok := idParam(c)
	return user, id, ok && user != ""
}
