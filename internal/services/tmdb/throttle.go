package tmdb

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/amaumene/reelarr/internal/config"
	"github.com/amaumene/reelarr/internal/telemetry"
	"github.com/cenkalti/backoff/v4"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// Lookup is the metadata-lookup service consumed by the matching core
type Lookup interface {
	GetMovie(ctx context.Context, id int64) (*Movie, error)
	SearchMovies(ctx context.Context, title string, year int) ([]SearchResult, error)
}

var _ Lookup = (*Client)(nil)
var _ Lookup = (*ThrottledClient)(nil)

var tracer = otel.Tracer("github.com/amaumene/reelarr/internal/services/tmdb")

// ThrottledClient rate-limits, retries and caches calls to an underlying Lookup.
// Every attempt, retries included, waits for the limiter so the inter-call delay holds.
type ThrottledClient struct {
	next    Lookup
	limiter *rate.Limiter
	retries uint64
	backoff time.Duration
	cache   *gocache.Cache
	metrics *telemetry.Metrics
	logger  zerolog.Logger
}

// NewThrottledClient wraps next using the lookup settings from cfg
func NewThrottledClient(next Lookup, cfg *config.Config, metrics *telemetry.Metrics, logger zerolog.Logger) *ThrottledClient {
	limit := rate.Inf
	if cfg.LookupDelay > 0 {
		limit = rate.Every(cfg.LookupDelay)
	}

	ttl := cfg.LookupCacheTTL
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}

	return &ThrottledClient{
		next:    next,
		limiter: rate.NewLimiter(limit, 1),
		retries: uint64(cfg.LookupRetries),
		backoff: cfg.LookupBackoff,
		cache:   gocache.New(ttl, 10*time.Minute),
		metrics: metrics,
		logger:  logger.With().Str("service", "lookup").Logger(),
	}
}

// GetMovie fetches movie details, serving repeated IDs from the cache
func (t *ThrottledClient) GetMovie(ctx context.Context, id int64) (*Movie, error) {
	key := "movie:" + strconv.FormatInt(id, 10)
	if cached, ok := t.cache.Get(key); ok {
		t.metrics.ObserveCacheHit("get_movie")
		return cached.(*Movie), nil
	}

	var movie *Movie
	err := t.do(ctx, "get_movie", func(ctx context.Context) error {
		var err error
		movie, err = t.next.GetMovie(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	t.cache.SetDefault(key, movie)
	return movie, nil
}

// SearchMovies searches by title, serving repeated queries from the cache
func (t *ThrottledClient) SearchMovies(ctx context.Context, title string, year int) ([]SearchResult, error) {
	key := fmt.Sprintf("search:%s|%d", title, year)
	if cached, ok := t.cache.Get(key); ok {
		t.metrics.ObserveCacheHit("search_movies")
		return cached.([]SearchResult), nil
	}

	var results []SearchResult
	err := t.do(ctx, "search_movies", func(ctx context.Context) error {
		var err error
		results, err = t.next.SearchMovies(ctx, title, year)
		return err
	})
	if err != nil {
		return nil, err
	}

	t.cache.SetDefault(key, results)
	return results, nil
}

func (t *ThrottledClient) do(ctx context.Context, op string, call func(context.Context) error) error {
	ctx, span := tracer.Start(ctx, "tmdb."+op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	start := time.Now()
	attempt := 0

	operation := func() error {
		if err := t.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}
		attempt++
		if attempt > 1 {
			t.metrics.ObserveRetry(op)
		}

		err := call(ctx)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil || !retryable(err) {
			return backoff.Permanent(err)
		}

		t.logger.Debug().Err(err).Str("operation", op).Int("attempt", attempt).Msg("Lookup failed, will retry")
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(t.backoff), t.retries),
		ctx,
	)
	err := backoff.Retry(operation, policy)

	span.SetAttributes(attribute.String("lookup.operation", op), attribute.Int("lookup.attempts", attempt))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		t.metrics.ObserveLookup(op, "failure", time.Since(start))
		return err
	}

	t.metrics.ObserveLookup(op, "success", time.Since(start))
	return nil
}

// retryable reports whether a lookup error is worth another attempt:
// transport failures, rate limiting and server errors are, 404s and other client errors are not
func retryable(err error) bool {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrMalformedResponse) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	return true
}
