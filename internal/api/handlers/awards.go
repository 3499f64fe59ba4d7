package handlers

import (
	"github.com/amaumene/reelarr/internal/controllers"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// AwardsHandler serves the Best Picture sync report
type AwardsHandler struct {
	syncCtrl *controllers.AwardSyncController
	logger   zerolog.Logger
}

// NewAwardsHandler creates a new awards handler
func NewAwardsHandler(syncCtrl *controllers.AwardSyncController, logger zerolog.Logger) *AwardsHandler {
	return &AwardsHandler{
		syncCtrl: syncCtrl,
		logger:   logger,
	}
}

// BestPicture handles GET /api/best-picture/:year
func (h *AwardsHandler) BestPicture(c *fiber.Ctx) error {
	year, err := c.ParamsInt("year")
	if err != nil || year <= 0 {
		return badRequest(c, "invalid ceremony year")
	}
	user := userID(c)
	if user == "" {
		return badRequest(c, "user is required")
	}

	report, err := h.syncCtrl.SyncBestPicture(c.UserContext(), user, year)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(report)
}
