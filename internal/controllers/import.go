package controllers

import (
	"context"
	"time"

	"github.com/amaumene/reelarr/internal/models"
	"github.com/amaumene/reelarr/internal/telemetry"
	"github.com/amaumene/reelarr/internal/utils"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
)

const importJob = "nominations"

// ImportController loads nomination records into the award tables
type ImportController struct {
	db         *models.Database
	exclusions *utils.ExclusionList
	verifyCtrl *VerifyController
	metrics    *telemetry.Metrics
	logger     zerolog.Logger
}

// NewImportController creates a new import controller
func NewImportController(db *models.Database, exclusions *utils.ExclusionList, verifyCtrl *VerifyController, metrics *telemetry.Metrics, logger zerolog.Logger) *ImportController {
	return &ImportController{
		db:         db,
		exclusions: exclusions,
		verifyCtrl: verifyCtrl,
		metrics:    metrics,
		logger:     logger.With().Str("controller", "import").Logger(),
	}
}

// ImportNominations imports records in source order. Writes are keyed on natural keys,
// so re-running the same batch creates nothing new. Created, Updated and Skipped count
// nomination rows; Failed counts invalid records and movie refs that could not be stored.
// With verifyNew, award movies first seen in this run are verified as they are created.
func (c *ImportController) ImportNominations(ctx context.Context, job *Job, records []models.NominationRecord, verifyNew bool) (*Summary, error) {
	ctx, span := tracer.Start(ctx, "import.nominations")
	defer span.End()

	start := time.Now()
	summary := newSummary(job, len(records))
	c.logger.Info().Int("count", len(records)).Bool("verify_new", verifyNew).Msg("Starting nomination import")

	for i, record := range records {
		if job.shouldStop(ctx) {
			summary.Cancelled = true
			break
		}

		c.importRecord(ctx, record, verifyNew, summary)
		summary.Processed++
		job.progress(i+1, len(records), summary)
	}

	span.SetAttributes(
		attribute.Int("import.processed", summary.Processed),
		attribute.Int("import.created", summary.Created),
		attribute.Bool("import.cancelled", summary.Cancelled),
	)
	summary.finish(job, start)
	return summary, nil
}

// importRecord imports one record, folding every failure into the summary
func (c *ImportController) importRecord(ctx context.Context, record models.NominationRecord, verifyNew bool, summary *Summary) {
	log := c.logger.With().Int("ceremony_year", record.CeremonyYear).Str("category", record.Category).Logger()

	if record.CeremonyYear <= 0 || record.Category == "" {
		log.Warn().Msg("Nomination has no ceremony year or category, skipping")
		c.count(summary, "failed")
		return
	}
	if len(record.Movies) == 0 && len(record.Nominees) == 0 {
		log.Warn().Msg("Nomination has neither movies nor nominees, skipping")
		c.count(summary, "failed")
		return
	}

	if excluded, term := c.exclusions.IsExcluded(record.Category); excluded {
		log.Debug().Str("term", term).Msg("Category excluded")
		c.count(summary, string(models.OutcomeSkipped))
		return
	}

	category, _, err := c.db.UpsertCategory(
		utils.CanonicalCategoryKey(record.Category),
		record.Category,
		utils.ClassifyCategory(record.Category),
	)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to upsert category")
		c.count(summary, "failed")
		return
	}

	// Movie ID 0 stands for a nomination without a movie
	movieIDs := []uint{0}
	if len(record.Movies) > 0 {
		movieIDs = movieIDs[:0]
		for _, ref := range record.Movies {
			movie, outcome, err := c.db.FindOrCreateAwardMovie(ref, record.CeremonyYear)
			if err != nil {
				log.Warn().Err(err).Str("title", ref.Title).Msg("Failed to find or create award movie")
				c.count(summary, "failed")
				continue
			}
			if outcome == models.OutcomeCreated {
				summary.MoviesCreated++
				log.Debug().Uint("movie_id", movie.ID).Str("title", movie.Title).Msg("Award movie created")
				if verifyNew && c.verifyCtrl != nil {
					c.verifyNewMovie(ctx, movie, summary)
				}
			}
			movieIDs = append(movieIDs, movie.ID)
		}
		if len(movieIDs) == 0 {
			return
		}
	}

	nominees := record.Nominees
	if len(nominees) == 0 {
		nominees = []string{""}
	}

	for _, movieID := range movieIDs {
		for _, nominee := range nominees {
			nomination := &models.CanonicalNomination{
				CeremonyYear: record.CeremonyYear,
				CategoryID:   category.ID,
				MovieID:      movieID,
				NomineeName:  nominee,
				Winner:       record.Winner,
			}
			outcome, err := c.db.UpsertNomination(nomination)
			if err != nil {
				log.Warn().Err(err).Str("nominee", nominee).Msg("Failed to upsert nomination")
				c.count(summary, "failed")
				continue
			}
			if outcome == models.OutcomeSkipped {
				log.Debug().Str("nominee", nominee).Uint("movie_id", movieID).Msg("Nomination already imported, skipped")
			}
			c.count(summary, string(outcome))
		}
	}
}

func (c *ImportController) verifyNewMovie(ctx context.Context, movie *models.AwardLinkedMovie, summary *Summary) {
	verdict, err := c.verifyCtrl.verifyMovie(ctx, movie)
	if err != nil {
		c.logger.Warn().Err(err).Uint("movie_id", movie.ID).Msg("Failed to verify new award movie")
		return
	}
	if verdict.Status == models.ReviewAutoVerified {
		summary.AutoVerified++
	} else {
		summary.NeedsReview++
	}
	if verdict.LookupFailed {
		summary.LookupFailures++
	}
}

func (c *ImportController) count(summary *Summary, outcome string) {
	switch outcome {
	case string(models.OutcomeCreated):
		summary.Created++
	case string(models.OutcomeUpdated):
		summary.Updated++
	case string(models.OutcomeSkipped):
		summary.Skipped++
	default:
		summary.Failed++
	}
	c.metrics.ObserveImport(importJob, outcome)
}
