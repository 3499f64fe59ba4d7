package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/amaumene/reelarr/internal/config"
	"github.com/amaumene/reelarr/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const movieJSON = `{
  "id": 831815,
  "title": "Rustin",
  "original_title": "Rustin",
  "release_date": "2023-11-03",
  "poster_path": "/rustin.jpg",
  "credits": {
    "crew": [
      {"name": "George C. Wolfe", "job": "Director"},
      {"name": "Tobias Schliessler", "job": "Director of Photography"},
      {"name": "Julian Breece", "job": "Screenplay"}
    ]
  }
}`

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		TMDBAPIKey:     "test-key",
		TMDBBaseURL:    baseURL,
		TMDBLanguage:   "en-US",
		LookupRetries:  2,
		LookupBackoff:  time.Millisecond,
		LookupCacheTTL: time.Minute,
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(testConfig(server.URL), zerolog.Nop())
	require.NoError(t, err)
	return client
}

func TestGetMovie(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/831815", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "credits", r.URL.Query().Get("append_to_response"))
		assert.Equal(t, "en-US", r.URL.Query().Get("language"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, movieJSON)
	})

	movie, err := client.GetMovie(context.Background(), 831815)
	require.NoError(t, err)

	assert.Equal(t, int64(831815), movie.ID)
	assert.Equal(t, "Rustin", movie.Title)
	assert.Equal(t, 2023, movie.ReleaseYear())
	assert.Equal(t, []string{"George C. Wolfe"}, movie.Directors)
	assert.Equal(t, "George C. Wolfe", movie.Director())
	assert.Nil(t, movie.Credits)
}

func TestGetMovieNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"status_code":34,"status_message":"The resource you requested could not be found."}`)
	})

	_, err := client.GetMovie(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetMovieServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.GetMovie(context.Background(), 1)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.True(t, statusErr.Temporary())
}

func TestGetMovieRejectsInvalidID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := client.GetMovie(context.Background(), 0)
	assert.Error(t, err)
}

func TestSearchMovies(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/movie", r.URL.Path)
		assert.Equal(t, "Oppenheimer", r.URL.Query().Get("query"))
		assert.Equal(t, "2023", r.URL.Query().Get("primary_release_year"))
		assert.Equal(t, "false", r.URL.Query().Get("include_adult"))
		fmt.Fprint(w, `{"page":1,"total_results":1,"results":[{"id":872585,"title":"Oppenheimer","release_date":"2023-07-19","popularity":120.5}]}`)
	})

	results, err := client.SearchMovies(context.Background(), "Oppenheimer", 2023)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(872585), results[0].ID)
}

func TestSearchMoviesWithoutYear(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("primary_release_year"))
		fmt.Fprint(w, `{"results":[]}`)
	})

	results, err := client.SearchMovies(context.Background(), "Wings", 0)
	require.NoError(t, err)
	assert.Empty(t, results)

	_, err = client.SearchMovies(context.Background(), "  ", 0)
	assert.Error(t, err)
}

func newThrottled(t *testing.T, handler http.HandlerFunc) (*ThrottledClient, *telemetry.Metrics) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := testConfig(server.URL)
	client, err := NewClient(cfg, zerolog.Nop())
	require.NoError(t, err)

	metrics := telemetry.NewMetrics("test")
	return NewThrottledClient(client, cfg, metrics, zerolog.Nop()), metrics
}

func TestThrottledClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	throttled, metrics := newThrottled(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, movieJSON)
	})

	movie, err := throttled.GetMovie(context.Background(), 831815)
	require.NoError(t, err)
	assert.Equal(t, "Rustin", movie.Title)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.LookupRetries.WithLabelValues("get_movie")))
}

func TestThrottledClientGivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	throttled, metrics := newThrottled(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := throttled.GetMovie(context.Background(), 831815)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, int32(3), calls.Load(), "one attempt plus two retries")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.LookupRequests.WithLabelValues("get_movie", "failure")))
}

func TestThrottledClientDoesNotRetryNotFound(t *testing.T) {
	var calls atomic.Int32
	throttled, _ := newThrottled(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := throttled.GetMovie(context.Background(), 1)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, int32(1), calls.Load())
}

func TestThrottledClientDoesNotRetryMalformedBody(t *testing.T) {
	var calls atomic.Int32
	throttled, _ := newThrottled(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, "not json")
	})

	_, err := throttled.GetMovie(context.Background(), 831815)
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.Equal(t, int32(1), calls.Load())
}

func TestThrottledClientCachesDetails(t *testing.T) {
	var calls atomic.Int32
	throttled, metrics := newThrottled(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, movieJSON)
	})

	for i := 0; i < 3; i++ {
		_, err := throttled.GetMovie(context.Background(), 831815)
		require.NoError(t, err)
	}

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.LookupCacheHits.WithLabelValues("get_movie")))
}

func TestThrottledClientHonorsCancellation(t *testing.T) {
	throttled, _ := newThrottled(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := throttled.SearchMovies(ctx, "Rustin", 2023)
	assert.Error(t, err)
}

func TestRetryable(t *testing.T) {
	assert.False(t, retryable(fmt.Errorf("wrapped: %w", ErrNotFound)))
	assert.False(t, retryable(fmt.Errorf("failed to decode response: %w: %v", ErrMalformedResponse, io.ErrUnexpectedEOF)))
	assert.False(t, retryable(&StatusError{StatusCode: http.StatusUnauthorized}))
	assert.True(t, retryable(&StatusError{StatusCode: http.StatusTooManyRequests}))
	assert.True(t, retryable(&StatusError{StatusCode: http.StatusInternalServerError}))
	assert.True(t, retryable(errors.New("connection reset")))
}
