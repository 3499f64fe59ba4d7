package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/amaumene/reelarr/internal/config"
	"github.com/amaumene/reelarr/internal/models"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned when TMDB has no movie for the requested ID
var ErrNotFound = errors.New("movie not found")

// ErrMalformedResponse is returned when a successful TMDB response body cannot be decoded
var ErrMalformedResponse = errors.New("malformed tmdb response")

// StatusError is a non-success response from the TMDB API
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb API returned status %d: %s", e.StatusCode, e.Body)
}

// Temporary reports whether retrying the request could succeed
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Movie is the subset of TMDB movie details used for matching
type Movie struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	OriginalTitle string   `json:"original_title"`
	ReleaseDate   string   `json:"release_date"`
	PosterPath    string   `json:"poster_path"`
	Directors     []string `json:"-"`

	Credits *struct {
		Crew []struct {
			Name string `json:"name"`
			Job  string `json:"job"`
		} `json:"crew"`
	} `json:"credits,omitempty"`
}

// ReleaseYear returns the year part of the release date, 0 when TMDB has none
func (m *Movie) ReleaseYear() int {
	return models.YearOfDate(m.ReleaseDate)
}

// Director returns the credited directors joined with ", "
func (m *Movie) Director() string {
	return strings.Join(m.Directors, ", ")
}

// Client wraps direct TMDB API HTTP calls
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new TMDB client
func NewClient(cfg *config.Config, logger zerolog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.TMDBAPIKey) == "" {
		return nil, fmt.Errorf("tmdb API key is required")
	}
	if strings.TrimSpace(cfg.TMDBBaseURL) == "" {
		return nil, fmt.Errorf("tmdb base URL is required")
	}

	return &Client{
		baseURL:  strings.TrimRight(cfg.TMDBBaseURL, "/"),
		apiKey:   cfg.TMDBAPIKey,
		language: cfg.TMDBLanguage,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger.With().Str("service", "tmdb").Logger(),
	}, nil
}

// get performs a TMDB API GET request and decodes the JSON response into result
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	apiURL, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("invalid tmdb URL: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	apiURL.RawQuery = params.Encode()

	c.logger.Debug().Str("path", path).Msg("Making TMDB API request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "reelarr/1.0")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb API request failed: %w", err)
	}
	defer resp.Body.Close()

	// Check response status
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Debug().
			Int("status_code", resp.StatusCode).
			Dur("latency", time.Since(start)).
			Msg("TMDB API returned non-OK status")
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w: %v", ErrMalformedResponse, err)
	}

	c.logger.Debug().Str("path", path).Dur("latency", time.Since(start)).Msg("TMDB API request completed")
	return nil
}

// GetMovie fetches movie details, including directors, by TMDB ID
func (c *Client) GetMovie(ctx context.Context, id int64) (*Movie, error) {
	if id <= 0 {
		return nil, fmt.Errorf("movie id must be positive, got %d", id)
	}

	params := url.Values{}
	params.Set("append_to_response", "credits")

	var movie Movie
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", id), params, &movie); err != nil {
		return nil, err
	}

	if movie.Credits != nil {
		for _, member := range movie.Credits.Crew {
			if member.Job == "Director" && member.Name != "" {
				movie.Directors = append(movie.Directors, member.Name)
			}
		}
		movie.Credits = nil
	}

	return &movie, nil
}
