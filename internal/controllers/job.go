package controllers

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("github.com/amaumene/reelarr/internal/controllers")

const defaultProgressEvery = 50

// Job is a cooperative stop flag plus progress reporting for a bulk run.
// Stop may be called from any goroutine; the run checks it between records.
type Job struct {
	name    string
	every   int
	stopped atomic.Bool
	logger  zerolog.Logger
}

// NewJob creates a job that logs progress every progressEvery records
func NewJob(name string, progressEvery int, logger zerolog.Logger) *Job {
	if progressEvery <= 0 {
		progressEvery = defaultProgressEvery
	}
	return &Job{
		name:   name,
		every:  progressEvery,
		logger: logger.With().Str("job", name).Logger(),
	}
}

// Name returns the job name
func (j *Job) Name() string {
	return j.name
}

// Stop asks the job to finish after the current record
func (j *Job) Stop() {
	j.stopped.Store(true)
}

// Stopped reports whether Stop has been called
func (j *Job) Stopped() bool {
	return j.stopped.Load()
}

// shouldStop reports whether the run must end before the next record
func (j *Job) shouldStop(ctx context.Context) bool {
	return j.Stopped() || ctx.Err() != nil
}

// progress logs every N processed records and on the last one
func (j *Job) progress(done, total int, summary *Summary) {
	if done%j.every != 0 && done != total {
		return
	}
	j.logger.Info().
		Int("processed", done).
		Int("total", total).
		Int("created", summary.Created).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Msg("Job progress")
}

// Summary is the outcome of a bulk run. It is returned even when the run was cancelled.
type Summary struct {
	Job       string        `json:"job"`
	Total     int           `json:"total"`
	Processed int           `json:"processed"`
	Created   int           `json:"created"`
	Updated   int           `json:"updated"`
	Skipped   int           `json:"skipped"`
	Failed    int           `json:"failed"`
	Cancelled bool          `json:"cancelled"`
	Duration  time.Duration `json:"duration"`

	// Award-linked movies created by a nomination import
	MoviesCreated int `json:"movies_created,omitempty"`

	// Verification outcomes
	AutoVerified   int `json:"auto_verified,omitempty"`
	NeedsReview    int `json:"needs_review,omitempty"`
	LookupFailures int `json:"lookup_failures,omitempty"`
}

func newSummary(job *Job, total int) *Summary {
	return &Summary{Job: job.name, Total: total}
}

func (s *Summary) finish(job *Job, start time.Time) {
	s.Duration = time.Since(start)

	event := job.logger.Info()
	if s.Cancelled {
		event = job.logger.Warn()
	}
	event.
		Int("total", s.Total).
		Int("processed", s.Processed).
		Int("created", s.Created).
		Int("updated", s.Updated).
		Int("skipped", s.Skipped).
		Int("failed", s.Failed).
		Int("auto_verified", s.AutoVerified).
		Int("needs_review", s.NeedsReview).
		Bool("cancelled", s.Cancelled).
		Dur("duration", s.Duration).
		Msg("Job finished")
}
