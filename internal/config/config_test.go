package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	v := viper.New()
	v.Set("CONFIG_DIR", dir)
	v.Set("TMDB_API_KEY", "key")

	cfg, err := load(v)
	require.NoError(t, err)

	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDBBaseURL)
	assert.Equal(t, 250*time.Millisecond, cfg.LookupDelay)
	assert.Equal(t, 3, cfg.LookupRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.LookupBackoff)
	assert.Equal(t, time.Hour, cfg.LookupCacheTTL)
	assert.Equal(t, 50, cfg.ProgressEvery)
	assert.Equal(t, filepath.Join(dir, "reelarr.db"), cfg.DatabaseFile)
	assert.Equal(t, filepath.Join(dir, "excluded_categories.txt"), cfg.ExcludedCategoriesFile)
}

func TestLoadOverrides(t *testing.T) {
	v := viper.New()
	v.Set("CONFIG_DIR", t.TempDir())
	v.Set("TMDB_API_KEY", "key")
	v.Set("LOOKUP_DELAY_MS", 1000)
	v.Set("LOOKUP_RETRIES", 1)
	v.Set("IMPORT_PROGRESS_EVERY", 0)

	cfg, err := load(v)
	require.NoError(t, err)

	assert.Equal(t, time.Second, cfg.LookupDelay)
	assert.Equal(t, 1, cfg.LookupRetries)
	assert.Equal(t, 50, cfg.ProgressEvery, "non-positive progress interval falls back to default")
}

func TestLoadRequiresAPIKey(t *testing.T) {
	v := viper.New()
	v.Set("CONFIG_DIR", t.TempDir())

	_, err := load(v)
	assert.ErrorContains(t, err, "TMDB_API_KEY")
}

func TestLoadRejectsNegativeRetries(t *testing.T) {
	v := viper.New()
	v.Set("CONFIG_DIR", t.TempDir())
	v.Set("TMDB_API_KEY", "key")
	v.Set("LOOKUP_RETRIES", -1)

	_, err := load(v)
	assert.Error(t, err)
}
