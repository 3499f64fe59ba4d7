package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// TMDB
	TMDBAPIKey   string
	TMDBBaseURL  string
	TMDBLanguage string

	// Lookup throttling
	LookupDelay    time.Duration // Minimum delay between metadata lookups (default: 250ms)
	LookupRetries  int           // Retries per lookup after the first attempt (default: 3)
	LookupBackoff  time.Duration // Delay between retries (default: 500ms)
	LookupCacheTTL time.Duration // How long fetched details are cached (default: 60m)

	// Jobs
	ProgressEvery  int    // Log progress every N records (default: 50)
	VerifySchedule string // Cron spec for the periodic verification run (default: hourly)

	// Server
	ServerPort string

	// Paths
	DatabaseFile           string // $CONFIG_DIR/reelarr.db
	ExcludedCategoriesFile string // $CONFIG_DIR/excluded_categories.txt

	// Logging
	LogLevel  string
	LogFormat string // "console" or "json"

	// Tracing
	TraceSampleRatio float64
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	v := viper.New()

	// Setup viper FIRST to load .env file
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = v.ReadInConfig()

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	// Set defaults
	v.SetDefault("TMDB_BASE_URL", "https://api.themoviedb.org/3")
	v.SetDefault("TMDB_LANGUAGE", "en-US")
	v.SetDefault("LOOKUP_DELAY_MS", 250)
	v.SetDefault("LOOKUP_RETRIES", 3)
	v.SetDefault("LOOKUP_BACKOFF_MS", 500)
	v.SetDefault("LOOKUP_CACHE_MINUTES", 60)
	v.SetDefault("IMPORT_PROGRESS_EVERY", 50)
	v.SetDefault("VERIFY_SCHEDULE", "0 * * * *")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("TRACE_SAMPLE_RATIO", 1.0)

	// NOW read CONFIG_DIR from viper (which has loaded .env file)
	configDir := v.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "reelarr")
	} else {
		// Convert relative path to absolute path
		absPath, err := filepath.Abs(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for CONFIG_DIR: %w", err)
		}
		configDir = absPath
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config := &Config{
		// TMDB
		TMDBAPIKey:   v.GetString("TMDB_API_KEY"),
		TMDBBaseURL:  v.GetString("TMDB_BASE_URL"),
		TMDBLanguage: v.GetString("TMDB_LANGUAGE"),

		// Lookup throttling
		LookupDelay:    time.Duration(v.GetInt("LOOKUP_DELAY_MS")) * time.Millisecond,
		LookupRetries:  v.GetInt("LOOKUP_RETRIES"),
		LookupBackoff:  time.Duration(v.GetInt("LOOKUP_BACKOFF_MS")) * time.Millisecond,
		LookupCacheTTL: time.Duration(v.GetInt("LOOKUP_CACHE_MINUTES")) * time.Minute,

		// Jobs
		ProgressEvery:  v.GetInt("IMPORT_PROGRESS_EVERY"),
		VerifySchedule: v.GetString("VERIFY_SCHEDULE"),

		// Server
		ServerPort: v.GetString("SERVER_PORT"),

		// Paths
		DatabaseFile:           filepath.Join(configDir, "reelarr.db"),
		ExcludedCategoriesFile: filepath.Join(configDir, "excluded_categories.txt"),

		// Logging
		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),

		// Tracing
		TraceSampleRatio: v.GetFloat64("TRACE_SAMPLE_RATIO"),
	}

	// Validate required fields
	if config.TMDBAPIKey == "" {
		return nil, fmt.Errorf("TMDB_API_KEY is required")
	}
	if config.LookupRetries < 0 {
		return nil, fmt.Errorf("LOOKUP_RETRIES must not be negative")
	}
	if config.LookupDelay < 0 || config.LookupBackoff < 0 {
		return nil, fmt.Errorf("LOOKUP_DELAY_MS and LOOKUP_BACKOFF_MS must not be negative")
	}
	if config.ProgressEvery <= 0 {
		config.ProgressEvery = 50
	}

	return config, nil
}
