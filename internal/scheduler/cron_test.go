package scheduler

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/amaumene/reelarr/internal/controllers"
	"github.com/amaumene/reelarr/internal/matching"
	"github.com/amaumene/reelarr/internal/models"
	"github.com/amaumene/reelarr/internal/services/tmdb"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticFetcher struct{}

func (staticFetcher) GetMovie(ctx context.Context, id int64) (*tmdb.Movie, error) {
	return &tmdb.Movie{ID: id, Title: "Rustin", ReleaseDate: "2023-11-03"}, nil
}

func newVerifyController(t *testing.T) (*controllers.VerifyController, *models.Database) {
	t.Helper()
	db, err := models.NewDatabase(filepath.Join(t.TempDir(), "test.db"), false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := zerolog.Nop()
	return controllers.NewVerifyController(db, matching.NewVerifier(staticFetcher{}, logger), nil, logger), db
}

func TestSchedulerRunsInitialVerification(t *testing.T) {
	verifyCtrl, db := newVerifyController(t)

	id := int64(831815)
	_, _, err := db.FindOrCreateAwardMovie(models.MovieRef{Title: "Rustin", ExternalID: &id}, 2024)
	require.NoError(t, err)

	s := NewScheduler(verifyCtrl, "@every 1h", 10, zerolog.Nop())
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Eventually(t, func() bool {
		counts, err := db.CountAwardMoviesByStatus()
		return err == nil && counts[models.ReviewAutoVerified] == 1
	}, 5*time.Second, 20*time.Millisecond)
}

func TestSchedulerRejectsInvalidSpec(t *testing.T) {
	verifyCtrl, _ := newVerifyController(t)

	s := NewScheduler(verifyCtrl, "not a cron spec", 10, zerolog.Nop())
	assert.Error(t, s.Start(context.Background()))
}
