package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// SearchResult represents a movie search result from TMDB
type SearchResult struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	ReleaseDate   string  `json:"release_date"`
	PosterPath    string  `json:"poster_path"`
	Popularity    float64 `json:"popularity"`
}

// searchResponse models the TMDB paginated search response
type searchResponse struct {
	Page         int            `json:"page"`
	Results      []SearchResult `json:"results"`
	TotalResults int            `json:"total_results"`
}

// SearchMovies searches TMDB for a title, optionally restricted to a primary release year
func (c *Client) SearchMovies(ctx context.Context, title string, year int) ([]SearchResult, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("search title must not be empty")
	}

	c.logger.Debug().Str("title", title).Int("year", year).Msg("Searching TMDB by title")

	params := url.Values{}
	params.Set("query", title)
	params.Set("include_adult", "false")
	if year > 0 {
		params.Set("primary_release_year", strconv.Itoa(year))
	}

	var response searchResponse
	if err := c.get(ctx, "/search/movie", params, &response); err != nil {
		return nil, fmt.Errorf("movie search failed: %w", err)
	}

	c.logger.Debug().Int("count", len(response.Results)).Msg("TMDB search completed")

	return response.Results, nil
}
