package handlers

import (
	"errors"
	"strings"

	"github.com/amaumene/reelarr/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// ErrorResponse is the JSON body of a failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps domain errors to HTTP status codes
func respondError(c *fiber.Ctx, logger zerolog.Logger, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, models.ErrInvalidTransition), errors.Is(err, models.ErrDuplicateExternalID):
		status = fiber.StatusConflict
	}

	if status == fiber.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Path()).Msg("Request failed")
		return c.Status(status).JSON(ErrorResponse{Error: "Internal server error"})
	}
	return c.Status(status).JSON(ErrorResponse{Error: err.Error()})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: message})
}

// userID identifies the collection owner from the X-User-ID header or the user query parameter
func userID(c *fiber.Ctx) string {
	if id := strings.TrimSpace(c.Get("X-User-ID")); id != "" {
		return id
	}
	return strings.TrimSpace(c.Query("user"))
}

func idParam(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}
