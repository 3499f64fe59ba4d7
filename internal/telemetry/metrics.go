package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for lookups, verification and imports.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// LookupRequests counts metadata lookups, labeled by operation and outcome.
	LookupRequests *prometheus.CounterVec

	// LookupRetries counts retried lookup attempts, labeled by operation.
	LookupRetries *prometheus.CounterVec

	// LookupCacheHits counts lookups served from the details cache, labeled by operation.
	LookupCacheHits *prometheus.CounterVec

	// LookupDuration observes lookup duration in seconds including retries.
	LookupDuration *prometheus.HistogramVec

	// Verdicts counts verification verdicts, labeled by resulting review status.
	Verdicts *prometheus.CounterVec

	// ImportRecords counts processed import records, labeled by job and outcome.
	ImportRecords *prometheus.CounterVec

	// MatchConfidence observes the confidence of match-quality assessments.
	MatchConfidence prometheus.Histogram
}

// NewMetrics creates a Metrics instance registered on its own registry
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		LookupRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_requests_total",
			Help:      "Total number of metadata lookups",
		}, []string{"operation", "outcome"}),
		LookupRetries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_retries_total",
			Help:      "Total number of retried metadata lookup attempts",
		}, []string{"operation"}),
		LookupCacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_cache_hits_total",
			Help:      "Total number of metadata lookups served from cache",
		}, []string{"operation"}),
		LookupDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lookup_duration_seconds",
			Help:      "Duration of metadata lookups including retries",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		Verdicts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verification_verdicts_total",
			Help:      "Total number of verification verdicts by review status",
		}, []string{"status"}),
		ImportRecords: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_records_total",
			Help:      "Total number of processed import records by job and outcome",
		}, []string{"job", "outcome"}),
		MatchConfidence: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "match_confidence",
			Help:      "Confidence of spreadsheet match-quality assessments",
			Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveLookup(operation, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.LookupRequests.WithLabelValues(operation, outcome).Inc()
	m.LookupDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *Metrics) ObserveRetry(operation string) {
	if m == nil {
		return
	}
	m.LookupRetries.WithLabelValues(operation).Inc()
}

func (m *Metrics) ObserveCacheHit(operation string) {
	if m == nil {
		return
	}
	m.LookupCacheHits.WithLabelValues(operation).Inc()
}

func (m *Metrics) ObserveVerdict(status string) {
	if m == nil {
		return
	}
	m.Verdicts.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveImport(job, outcome string) {
	if m == nil {
		return
	}
	m.ImportRecords.WithLabelValues(job, outcome).Inc()
}

func (m *Metrics) ObserveMatchConfidence(confidence int) {
	if m == nil {
		return
	}
	m.MatchConfidence.Observe(float64(confidence))
}
