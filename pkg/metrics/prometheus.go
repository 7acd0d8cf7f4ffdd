// Package metrics provides Prometheus metrics for the brokerlens analytics service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the brokerlens service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Value analytics
	valueMapBuilds       prometheus.Counter
	valueMapBuildLatency prometheus.Histogram
	navigatorsTotal      prometheus.Gauge
	pilotsTotal          prometheus.Gauge
	highQualityRevenue   prometheus.Gauge
	atRiskRevenue        prometheus.Gauge
	lookupMisses         prometheus.Counter

	// Dataset lifecycle
	datasetReloads      prometheus.Counter
	datasetReloadErrors prometheus.Counter

	// Charts
	chartRenders      prometheus.Counter
	chartRenderErrors prometheus.Counter
	chartCacheHits    prometheus.Counter
	chartCacheMisses  prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error tracking
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "brokerlens",
		subsystem:        "value",
		histogramBuckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000},
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
		Buckets:     buckets,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.valueMapBuilds = auto.NewCounter(m.counterOpts("value_map_builds_total",
		"Total number of value map builds"))
	m.valueMapBuildLatency = auto.NewHistogram(m.histogramOpts("value_map_build_latency_milliseconds",
		"Value map build latency in milliseconds", m.histogramBuckets))
	m.navigatorsTotal = auto.NewGauge(m.gaugeOpts("navigators_total",
		"Number of navigators in the loaded dataset"))
	m.pilotsTotal = auto.NewGauge(m.gaugeOpts("pilots_total",
		"Number of pilots in the loaded dataset"))
	m.highQualityRevenue = auto.NewGauge(m.gaugeOpts("high_quality_revenue_pct",
		"Share of broker revenue earned from high-quality navigators"))
	m.atRiskRevenue = auto.NewGauge(m.gaugeOpts("at_risk_revenue_pct",
		"Share of broker revenue earned from watch-tier navigators"))
	m.lookupMisses = auto.NewCounter(m.counterOpts("lookup_misses_total",
		"Total number of navigator lookups for unknown ids"))

	m.datasetReloads = auto.NewCounter(m.counterOpts("dataset_reloads_total",
		"Total number of successful dataset loads"))
	m.datasetReloadErrors = auto.NewCounter(m.counterOpts("dataset_reload_errors_total",
		"Total number of failed dataset loads"))

	m.chartRenders = auto.NewCounter(m.counterOpts("chart_renders_total",
		"Total number of rendered trend charts"))
	m.chartRenderErrors = auto.NewCounter(m.counterOpts("chart_render_errors_total",
		"Total number of failed trend chart renders"))
	m.chartCacheHits = auto.NewCounter(m.counterOpts("chart_cache_hits_total",
		"Total number of trend charts served from cache"))
	m.chartCacheMisses = auto.NewCounter(m.counterOpts("chart_cache_misses_total",
		"Total number of trend chart cache misses"))

	m.httpRequests = auto.NewCounterVec(m.counterOpts("http_requests_total",
		"Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"})

	m.errorRateByType = auto.NewCounterVec(m.counterOpts("errors_by_type_total",
		"Total number of errors by type and severity"),
		[]string{"error_type", "severity"})
	m.errorRateByEndpoint = auto.NewCounterVec(m.counterOpts("errors_by_endpoint_total",
		"Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"})
	m.errorLatency = auto.NewHistogramVec(m.histogramOpts("error_latency_milliseconds",
		"Latency of operations that resulted in an error", m.histogramBuckets),
		[]string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes",
		"System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count",
		"Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts("system_gc_pause_time_milliseconds",
		"GC pause time in milliseconds", []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// RecordValueMapBuild counts a value map build and its latency in milliseconds.
func RecordValueMapBuild(latencyMs float64) {
	globalManager.valueMapBuilds.Inc()
	globalManager.valueMapBuildLatency.Observe(latencyMs)
}

// UpdateDatasetSize sets the navigator and pilot gauges.
func UpdateDatasetSize(navigators, pilots int) {
	globalManager.navigatorsTotal.Set(float64(navigators))
	globalManager.pilotsTotal.Set(float64(pilots))
}

// UpdateRevenueQuality sets the high-quality and at-risk revenue shares.
func UpdateRevenueQuality(highQualityPct, atRiskPct float64) {
	globalManager.highQualityRevenue.Set(highQualityPct)
	globalManager.atRiskRevenue.Set(atRiskPct)
}

// RecordLookupMiss increments the unknown navigator counter.
func RecordLookupMiss() {
	globalManager.lookupMisses.Inc()
}

// RecordDatasetReload increments the dataset load counter.
func RecordDatasetReload() {
	globalManager.datasetReloads.Inc()
}

// RecordDatasetReloadError increments the failed dataset load counter.
func RecordDatasetReloadError() {
	globalManager.datasetReloadErrors.Inc()
}

// RecordChartRender increments the chart render counter.
func RecordChartRender() {
	globalManager.chartRenders.Inc()
}

// RecordChartRenderError increments the failed chart render counter.
func RecordChartRenderError() {
	globalManager.chartRenderErrors.Inc()
}

// RecordChartCacheHit increments the chart cache hit counter.
func RecordChartCacheHit() {
	globalManager.chartCacheHits.Inc()
}

// RecordChartCacheMiss increments the chart cache miss counter.
func RecordChartCacheMiss() {
	globalManager.chartCacheMisses.Inc()
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

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
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

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
