package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/amaumene/reelarr/internal/api"
	"github.com/amaumene/reelarr/internal/config"
	"github.com/amaumene/reelarr/internal/controllers"
	"github.com/amaumene/reelarr/internal/matching"
	"github.com/amaumene/reelarr/internal/models"
	"github.com/amaumene/reelarr/internal/scheduler"
	"github.com/amaumene/reelarr/internal/services/tmdb"
	"github.com/amaumene/reelarr/internal/telemetry"
	"github.com/amaumene/reelarr/internal/utils"
	"github.com/google/wire"
	"github.com/rs/zerolog"
)

// App is the fully wired application
type App struct {
	Config     *config.Config
	Logger     zerolog.Logger
	DB         *models.Database
	Tracing    *telemetry.Tracing
	Metrics    *telemetry.Metrics
	Import     *controllers.ImportController
	Verify     *controllers.VerifyController
	Review     *controllers.ReviewController
	Collection *controllers.CollectionController
	AwardSync  *controllers.AwardSyncController
	Scheduler  *scheduler.Scheduler
	Server     *api.Server
}

var providerSet = wire.NewSet(
	config.Load,
	provideLogger,
	provideDatabase,
	provideTracing,
	provideMetrics,
	provideExclusions,
	tmdb.NewClient,
	provideLookup,
	provideVerifier,
	provideMatcher,
	controllers.NewVerifyController,
	controllers.NewImportController,
	controllers.NewReviewController,
	controllers.NewCollectionController,
	controllers.NewAwardSyncController,
	provideScheduler,
	provideServer,
	wire.Struct(new(App), "*"),
)

func provideLogger(cfg *config.Config) zerolog.Logger {
	logger := utils.NewLogger(cfg.LogLevel, cfg.LogFormat)
	logger.Debug().Str("config_dir", filepath.Dir(cfg.DatabaseFile)).Msg("Configuration loaded")
	return logger
}

func provideDatabase(cfg *config.Config, logger zerolog.Logger) (*models.Database, func(), error) {
	db, err := models.NewDatabase(cfg.DatabaseFile, logger.GetLevel() <= zerolog.DebugLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	logger.Debug().Str("path", cfg.DatabaseFile).Msg("Database initialized")

	return db, func() {
		if err := db.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close database")
		}
	}, nil
}

func provideTracing(cfg *config.Config, logger zerolog.Logger) (*telemetry.Tracing, func()) {
	tracing := telemetry.NewTracing(cfg.TraceSampleRatio, logger)
	return tracing, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to flush traces")
		}
	}
}

func provideMetrics() *telemetry.Metrics {
	return telemetry.NewMetrics("reelarr")
}

func provideExclusions(cfg *config.Config, logger zerolog.Logger) *utils.ExclusionList {
	exclusions, err := utils.LoadExclusionList(cfg.ExcludedCategoriesFile)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to load category exclusions, continuing without them")
		return utils.NewExclusionList()
	}
	logger.Debug().Int("terms", exclusions.Len()).Msg("Category exclusions loaded")
	return exclusions
}

func provideLookup(client *tmdb.Client, cfg *config.Config, metrics *telemetry.Metrics, logger zerolog.Logger) tmdb.Lookup {
	return tmdb.NewThrottledClient(client, cfg, metrics, logger)
}

func provideVerifier(lookup tmdb.Lookup, logger zerolog.Logger) *matching.Verifier {
	return matching.NewVerifier(lookup, logger)
}

func provideMatcher() *matching.CollectionMatcher {
	return matching.NewCollectionMatcher()
}

func provideScheduler(cfg *config.Config, verifyCtrl *controllers.VerifyController, logger zerolog.Logger) *scheduler.Scheduler {
	return scheduler.NewScheduler(verifyCtrl, cfg.VerifySchedule, cfg.ProgressEvery, logger)
}

func provideServer(
	cfg *config.Config,
	db *models.Database,
	review *controllers.ReviewController,
	collection *controllers.CollectionController,
	awardSync *controllers.AwardSyncController,
	metrics *telemetry.Metrics,
	logger zerolog.Logger,
) *api.Server {
	ctrls := api.Controllers{
		Review:     review,
		Collection: collection,
		AwardSync:  awardSync,
	}
	return api.NewServer(cfg, db, ctrls, metrics, logger)
}
