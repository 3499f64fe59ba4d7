package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/amaumene/reelarr/internal/controllers"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler manages scheduled tasks
type Scheduler struct {
	cron          *cron.Cron
	verifyCtrl    *controllers.VerifyController
	spec          string
	progressEvery int
	logger        zerolog.Logger

	mu      sync.Mutex
	running *controllers.Job
	wg      sync.WaitGroup
}

// NewScheduler creates a new scheduler running verification on the given cron spec
func NewScheduler(verifyCtrl *controllers.VerifyController, spec string, progressEvery int, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:          cron.New(),
		verifyCtrl:    verifyCtrl,
		spec:          spec,
		progressEvery: progressEvery,
		logger:        logger.With().Str("component", "scheduler").Logger(),
	}
}

// Start starts the scheduler and runs a first verification immediately
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info().Str("schedule", s.spec).Msg("Starting scheduler")

	_, err := s.cron.AddFunc(s.spec, func() {
		s.runVerify(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to add verify job: %w", err)
	}

	s.cron.Start()
	s.logger.Info().Msg("Scheduler started")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runVerify(ctx)
	}()

	return nil
}

// Stop stops the scheduler, asks a running verification to finish and waits for it
func (s *Scheduler) Stop() {
	s.logger.Info().Msg("Stopping scheduler")

	s.mu.Lock()
	if s.running != nil {
		s.running.Stop()
	}
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	s.wg.Wait()
}

// runVerify executes the verification job unless one is already running
func (s *Scheduler) runVerify(ctx context.Context) {
	s.mu.Lock()
	if s.running != nil {
		s.mu.Unlock()
		s.logger.Debug().Msg("Verification already running, skipping")
		return
	}
	job := controllers.NewJob("scheduled_verify", s.progressEvery, s.logger)
	s.running = job
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = nil
		s.mu.Unlock()
	}()

	s.logger.Info().Msg("Running scheduled verification")

	summary, err := s.verifyCtrl.VerifyPending(ctx, job, false)
	if err != nil {
		s.logger.Error().Err(err).Msg("Verification job failed")
		return
	}

	s.logger.Info().
		Int("processed", summary.Processed).
		Int("auto_verified", summary.AutoVerified).
		Int("needs_review", summary.NeedsReview).
		Msg("Verification job completed successfully")
}
