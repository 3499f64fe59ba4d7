package handlers

import (
	"github.com/amaumene/reelarr/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// StatusHandler handles status requests
type StatusHandler struct {
	db     *models.Database
	logger zerolog.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(db *models.Database, logger zerolog.Logger) *StatusHandler {
	return &StatusHandler{
		db:     db,
		logger: logger,
	}
}

// StatusResponse represents the status response
type StatusResponse struct {
	Nominations     int64                           `json:"nominations"`
	AwardMovies     int64                           `json:"award_movies"`
	ReviewStatus    map[models.ReviewStatus]int64   `json:"review_status"`
	CollectionTotal int64                           `json:"collection_total"`
	Approval        map[models.ApprovalStatus]int64 `json:"approval"`
	MatchAnalyses   int64                           `json:"match_analyses"`
}

// Handle serves the status endpoint
func (h *StatusHandler) Handle(c *fiber.Ctx) error {
	nominations, err := h.db.CountNominations()
	if err != nil {
		return respondError(c, h.logger, err)
	}
	reviewStatus, err := h.db.CountAwardMoviesByStatus()
	if err != nil {
		return respondError(c, h.logger, err)
	}
	approval, err := h.db.CountCollectionByApproval()
	if err != nil {
		return respondError(c, h.logger, err)
	}
	analyses, err := h.db.CountMatchAnalyses()
	if err != nil {
		return respondError(c, h.logger, err)
	}

	response := StatusResponse{
		Nominations:   nominations,
		ReviewStatus:  reviewStatus,
		Approval:      approval,
		MatchAnalyses: analyses,
	}
	for _, count := range reviewStatus {
		response.AwardMovies += count
	}
	for _, count := range approval {
		response.CollectionTotal += count
	}

	return c.JSON(response)
}
