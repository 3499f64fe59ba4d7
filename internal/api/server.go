package api

import (
	"context"
	"fmt"
	"time"

	"github.com/amaumene/reelarr/internal/api/handlers"
	"github.com/amaumene/reelarr/internal/api/middleware"
	"github.com/amaumene/reelarr/internal/config"
	"github.com/amaumene/reelarr/internal/controllers"
	"github.com/amaumene/reelarr/internal/models"
	"github.com/amaumene/reelarr/internal/telemetry"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/rs/zerolog"
)

// Server represents the HTTP server
type Server struct {
	app    *fiber.App
	addr   string
	logger zerolog.Logger
}

// Controllers groups the controllers the API exposes
type Controllers struct {
	Review     *controllers.ReviewController
	Collection *controllers.CollectionController
	AwardSync  *controllers.AwardSyncController
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, db *models.Database, ctrls Controllers, metrics *telemetry.Metrics, logger zerolog.Logger) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:               "reelarr",
			DisableStartupMessage: true,
			ReadTimeout:           15 * time.Second,
			WriteTimeout:          30 * time.Second,
			IdleTimeout:           60 * time.Second,
		}),
		addr:   ":" + cfg.ServerPort,
		logger: logger.With().Str("component", "api").Logger(),
	}

	s.app.Use(middleware.Logging(s.logger))
	s.setupRoutes(db, ctrls, metrics)

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(db *models.Database, ctrls Controllers, metrics *telemetry.Metrics) {
	// Health check
	s.app.Get("/health", handlers.NewHealthHandler().Handle)

	// Status endpoint
	s.app.Get("/status", handlers.NewStatusHandler(db, s.logger).Handle)

	// Prometheus metrics
	if metrics != nil {
		s.app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	}

	api := s.app.Group("/api")

	// Award-linked movie review
	review := handlers.NewReviewHandler(ctrls.Review, s.logger)
	api.Post("/award-movies/:id/confirm", review.Confirm)
	api.Post("/award-movies/:id/correct", review.Correct)

	// Collection approval
	collection := handlers.NewCollectionHandler(ctrls.Collection, s.logger)
	api.Get("/review-queue", collection.ReviewQueue)
	api.Post("/collection/:id/correct", collection.Correct)
	api.Post("/collection/:id/approve", collection.Approve)
	api.Post("/collection/:id/remove", collection.Remove)

	// Award sync
	awards := handlers.NewAwardsHandler(ctrls.AwardSync, s.logger)
	api.Get("/best-picture/:year", awards.BestPicture)
}

// App exposes the fiber application, mainly for tests
func (s *Server) App() *fiber.App {
	return s.app
}

// Start starts the HTTP server and blocks until ctx is done or the listener fails
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info().Str("port", s.addr).Msg("Starting HTTP server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.app.Listen(s.addr); err != nil {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.app.ShutdownWithContext(shutdownCtx)
}
