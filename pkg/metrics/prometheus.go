// Package metrics provides Prometheus metrics for the payout service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Core business metrics.
	recomputesTotal  prometheus.Counter
	recomputeLatency prometheus.Histogram
	rowsDropped      *prometheus.CounterVec
	sessionResets    prometheus.Counter

	// Session state gauges.
	tierCount     prometheus.Gauge
	bonusCount    prometheus.Gauge
	scenarioCount prometheus.Gauge

	// Upload/export adapters.
	uploadsTotal *prometheus.CounterVec
	exportsTotal *prometheus.CounterVec

	// HTTP performance metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec

	// System performance metrics.
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance on a custom registry, so the default
// Go collectors never mix in.
var (
	globalManager  *Manager                              //nolint:gochecknoglobals // singleton metrics manager
	customRegistry = prometheus.NewRegistry()            //nolint:gochecknoglobals // metrics registry
)

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "premia",
		subsystem:        "payout",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.recomputesTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recomputes_total",
		Help:      "Total number of full result recomputations",
	})

	m.recomputeLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recompute_latency_milliseconds",
		Help:      "Histogram of full recomputation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.rowsDropped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_dropped_total",
		Help:      "Total rows dropped during best-effort cleaning, per table",
	}, []string{"table"})

	m.sessionResets = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "session_resets_total",
		Help:      "Total number of resets to the seed defaults",
	})

	m.tierCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tier_rules",
		Help:      "Current number of normalized tier rules",
	})

	m.bonusCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "bonus_rules",
		Help:      "Current number of normalized bonus rules",
	})

	m.scenarioCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scenario_rows",
		Help:      "Current number of raw scenario rows in the session",
	})

	m.uploadsTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "uploads_total",
		Help:      "Total scenario file uploads by format and status",
	}, []string{"format", "status"})

	m.exportsTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "exports_total",
		Help:      "Total result exports by format",
	}, []string{"format"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.httpErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_errors_total",
		Help:      "Total HTTP error responses by endpoint and error type",
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "memory_usage_bytes",
		Help:      "Current allocated heap bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "goroutines",
		Help:      "Current number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "gc_pause_milliseconds",
		Help:      "Histogram of average GC pause time in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// RecordRecompute records one full recomputation and its latency.
func RecordRecompute(latencyMs float64) {
	globalManager.recomputesTotal.Inc()
	globalManager.recomputeLatency.Observe(latencyMs)
}

// RecordRowsDropped records rows dropped while cleaning the named table.
func RecordRowsDropped(table string, n int) {
	if n > 0 {
		globalManager.rowsDropped.WithLabelValues(table).Add(float64(n))
	}
}

// RecordSessionReset records a reset to the seed defaults.
func RecordSessionReset() {
	globalManager.sessionResets.Inc()
}

// UpdateTierCount updates the tier rule gauge.
func UpdateTierCount(count int) {
	globalManager.tierCount.Set(float64(count))
}

// UpdateBonusCount updates the bonus rule gauge.
func UpdateBonusCount(count int) {
	globalManager.bonusCount.Set(float64(count))
}

// UpdateScenarioCount updates the scenario row gauge.
func UpdateScenarioCount(count int) {
	globalManager.scenarioCount.Set(float64(count))
}

// RecordUpload records a scenario file upload attempt.
func RecordUpload(format, status string) {
	globalManager.uploadsTotal.WithLabelValues(format, status).Inc()
}

// RecordExport records a result export.
func RecordExport(format string) {
	globalManager.exportsTotal.WithLabelValues(format).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordHTTPError records an HTTP error response.
func RecordHTTPError(endpoint, method, errorType string) {
	globalManager.httpErrors.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage updates the heap usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount updates the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records an average GC pause observation.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom registry for serving /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
