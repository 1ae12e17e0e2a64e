// Package metrics provides Prometheus metrics for the Tunify recommender service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	defaultRefreshInterval = 10 * time.Second
)

// Lookup outcomes recorded for metadata enrichment.
const (
	LookupHit      = "hit"
	LookupMiss     = "miss"
	LookupError    = "error"
	LookupRejected = "rejected"
)

// Manager owns every Prometheus collector exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Core
	recommendRequests  prometheus.Counter
	recommendNotFound  prometheus.Counter
	recommendLatency   prometheus.Histogram
	recommendResults   prometheus.Histogram
	playlistRequests   *prometheus.CounterVec
	playlistLatency    prometheus.Histogram
	catalogueRows      prometheus.Gauge
	catalogueGenres    prometheus.Gauge
	catalogueLoadTime  prometheus.Gauge
	catalogueLoadError prometheus.Counter

	// Metadata enrichment
	metadataLookups       *prometheus.CounterVec
	metadataLookupLatency prometheus.Histogram
	metadataCacheHits     prometheus.Counter
	metadataCacheMisses   prometheus.Counter
	metadataCacheSize     prometheus.Gauge
	breakerState          *prometheus.GaugeVec
	breakerTransitions    *prometheus.CounterVec
	enrichWorkers         prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton used by the Record* helpers

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // keeps default Go collectors out of /healthz

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "tunify",
		subsystem:        "recommender",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) name(n string) string {
	return m.metricPrefix + n
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)
	constLabels := prometheus.Labels(m.customLabels)

	m.recommendRequests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("recommend_requests_total"),
		Help: "Total number of recommendation queries",
	})
	m.recommendNotFound = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("recommend_not_found_total"),
		Help: "Recommendation queries whose song was not in the catalogue",
	})
	m.recommendLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name:    m.name("recommend_latency_milliseconds"),
		Help:    "Time spent scoring and ranking one recommendation query",
		Buckets: m.histogramBuckets,
	})
	m.recommendResults = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name:    m.name("recommend_results"),
		Help:    "Number of tracks returned per recommendation query",
		Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
	})
	m.playlistRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("playlist_requests_total"),
		Help: "Total number of playlist generations by mood",
	}, []string{"mood"})
	m.playlistLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name:    m.name("playlist_latency_milliseconds"),
		Help:    "Time spent filtering and sorting one playlist",
		Buckets: m.histogramBuckets,
	})
	m.catalogueRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("catalogue_rows"),
		Help: "Number of tracks in the loaded catalogue",
	})
	m.catalogueGenres = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("catalogue_genres"),
		Help: "Number of distinct genres in the loaded catalogue",
	})
	m.catalogueLoadTime = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("catalogue_load_duration_milliseconds"),
		Help: "Time spent loading the catalogue and building the feature matrix",
	})
	m.catalogueLoadError = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("catalogue_load_errors_total"),
		Help: "Catalogue load failures",
	})

	m.metadataLookups = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("metadata_lookups_total"),
		Help: "Metadata lookups by outcome (hit, miss, error, rejected)",
	}, []string{"outcome"})
	m.metadataLookupLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name:    m.name("metadata_lookup_latency_milliseconds"),
		Help:    "Latency of upstream metadata lookups",
		Buckets: m.histogramBuckets,
	})
	m.metadataCacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("metadata_cache_hits_total"),
		Help: "Metadata lookups served from cache",
	})
	m.metadataCacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("metadata_cache_misses_total"),
		Help: "Metadata lookups not found in cache",
	})
	m.metadataCacheSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("metadata_cache_entries"),
		Help: "Entries held in the metadata cache",
	})
	m.breakerState = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("circuit_breaker_state"),
		Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
	}, []string{"name"})
	m.breakerTransitions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("circuit_breaker_transitions_total"),
		Help: "Circuit breaker state transitions",
	}, []string{"name", "from", "to"})
	m.enrichWorkers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("enrich_workers"),
		Help: "Configured metadata enrichment workers",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("http_requests_total"),
		Help: "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name:    m.name("http_request_duration_milliseconds"),
		Help:    "HTTP request duration in milliseconds",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("errors_by_type_total"),
		Help: "Errors by type and severity",
	}, []string{"error_type", "severity"})
	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("errors_by_endpoint_total"),
		Help: "Errors by endpoint, method and type",
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("system_memory_usage_bytes"),
		Help: "System memory usage in bytes",
	})
	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name: m.name("system_goroutine_count"),
		Help: "Number of goroutines",
	})
	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: constLabels,
		Name:    m.name("system_gc_pause_time_milliseconds"),
		Help:    "GC pause time in milliseconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
}

// RecordRecommend records one recommendation query and its outcome.
func RecordRecommend(latencyMs float64, results int, found bool) {
	if !globalManager.enabled {
		return
	}
	globalManager.recommendRequests.Inc()
	globalManager.recommendLatency.Observe(latencyMs)
	if !found {
		globalManager.recommendNotFound.Inc()
		return
	}
	globalManager.recommendResults.Observe(float64(results))
}

// RecordPlaylist records one playlist generation.
func RecordPlaylist(mood string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.playlistRequests.WithLabelValues(mood).Inc()
	globalManager.playlistLatency.Observe(latencyMs)
}

// UpdateCatalogue sets the catalogue gauges after a successful load.
func UpdateCatalogue(rows, genres int, loadMs float64) {
	globalManager.catalogueRows.Set(float64(rows))
	globalManager.catalogueGenres.Set(float64(genres))
	globalManager.catalogueLoadTime.Set(loadMs)
}

// RecordCatalogueLoadError increments the catalogue load failure counter.
func RecordCatalogueLoadError() {
	globalManager.catalogueLoadError.Inc()
}

// RecordMetadataLookup records an upstream lookup outcome.
func RecordMetadataLookup(outcome string, latencyMs float64) {
	globalManager.metadataLookups.WithLabelValues(outcome).Inc()
	if outcome != LookupRejected {
		globalManager.metadataLookupLatency.Observe(latencyMs)
	}
}

// RecordMetadataCache records a cache hit or miss and the current cache size.
func RecordMetadataCache(hit bool, size int64) {
	if hit {
		globalManager.metadataCacheHits.Inc()
	} else {
		globalManager.metadataCacheMisses.Inc()
	}
	globalManager.metadataCacheSize.Set(float64(size))
}

// UpdateBreakerState sets the numeric state of a named circuit breaker.
func UpdateBreakerState(name string, state float64) {
	globalManager.breakerState.WithLabelValues(name).Set(state)
}

// RecordBreakerTransition counts a circuit breaker transition.
func RecordBreakerTransition(name, from, to string) {
	globalManager.breakerTransitions.WithLabelValues(name, from, to).Inc()
}

// UpdateEnrichWorkers sets the enrichment worker gauge.
func UpdateEnrichWorkers(count int) {
	globalManager.enrichWorkers.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// RefreshInterval reports how often gauge updaters should run.
func RefreshInterval() time.Duration {
	return globalManager.refreshInterval
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
