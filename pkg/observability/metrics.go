package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Lint outcome labels for FilesLintedTotal.
const (
	LintStatusClean       = "clean"
	LintStatusViolations  = "violations"
	LintStatusSyntaxError = "syntax_error"
	LintStatusError       = "error"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestSize     *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Lint metrics
	FilesLintedTotal *prometheus.CounterVec
	ViolationsTotal  *prometheus.CounterVec
	LintDuration     *prometheus.HistogramVec
	RulesEnabled     prometheus.Gauge

	// Annotator metrics
	AnnotatedPairsTotal prometheus.Counter
	UnhandledPairsTotal prometheus.Counter

	// Cache metrics
	CacheHitsTotal      *prometheus.CounterVec
	CacheMissesTotal    *prometheus.CounterVec
	CacheEvictionsTotal *prometheus.CounterVec
	CacheEntries        *prometheus.GaugeVec
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,

		// HTTP metrics
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vlint_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vlint_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPRequestSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vlint_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 8),
			},
			[]string{"method", "path"},
		),
		HTTPResponseSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vlint_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 8),
			},
			[]string{"method", "path"},
		),

		// Lint metrics
		FilesLintedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vlint_files_linted_total",
				Help: "Total number of linted files by outcome",
			},
			[]string{"source", "status"},
		),
		ViolationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vlint_violations_total",
				Help: "Total number of reported violations",
			},
			[]string{"rule"},
		),
		LintDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vlint_lint_duration_seconds",
				Help:    "Time spent analyzing and linting one file",
				Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
			},
			[]string{"source"},
		),
		RulesEnabled: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "vlint_rules_enabled",
				Help: "Number of rules enabled in the last configuration",
			},
		),

		// Annotator metrics
		AnnotatedPairsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "vlint_annotated_pairs_total",
				Help: "Total number of token pairs annotated",
			},
		),
		UnhandledPairsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "vlint_unhandled_pairs_total",
				Help: "Total number of token pairs no spacing rule handled",
			},
		),

		// Cache metrics
		CacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vlint_cache_hits_total",
				Help: "Total number of cache hits",
			},
			[]string{"cache_type"},
		),
		CacheMissesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vlint_cache_misses_total",
				Help: "Total number of cache misses",
			},
			[]string{"cache_type"},
		),
		CacheEvictionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vlint_cache_evictions_total",
				Help: "Total number of cache evictions",
			},
			[]string{"cache_type"},
		),
		CacheEntries: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "vlint_cache_entries",
				Help: "Current number of cache entries",
			},
			[]string{"cache_type"},
		),
	}

	// Register all metrics
	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestSize,
		m.HTTPResponseSize,
		m.FilesLintedTotal,
		m.ViolationsTotal,
		m.LintDuration,
		m.RulesEnabled,
		m.AnnotatedPairsTotal,
		m.UnhandledPairsTotal,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.CacheEvictionsTotal,
		m.CacheEntries,
	)

	return m
}

// RecordLint records one linted file. byRule holds the violation count of
// each rule that reported any.
func (m *Metrics) RecordLint(source, status string, duration time.Duration, byRule map[string]int) {
	if m == nil {
		return
	}
	m.FilesLintedTotal.WithLabelValues(source, status).Inc()
	m.LintDuration.WithLabelValues(source).Observe(duration.Seconds())
	for rule, n := range byRule {
		m.ViolationsTotal.WithLabelValues(rule).Add(float64(n))
	}
}

// RecordAnnotation records the pair counts of one annotated file.
func (m *Metrics) RecordAnnotation(pairs, unhandled int) {
	if m == nil {
		return
	}
	m.AnnotatedPairsTotal.Add(float64(pairs))
	m.UnhandledPairsTotal.Add(float64(unhandled))
}

// RecordCacheHit records a cache hit
func (m *Metrics) RecordCacheHit(cacheType string) {
	if m == nil {
		return
	}
	m.CacheHitsTotal.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss records a cache miss
func (m *Metrics) RecordCacheMiss(cacheType string) {
	if m == nil {
		return
	}
	m.CacheMissesTotal.WithLabelValues(cacheType).Inc()
}

// RecordCacheEviction records a cache eviction
func (m *Metrics) RecordCacheEviction(cacheType string) {
	if m == nil {
		return
	}
	m.CacheEvictionsTotal.WithLabelValues(cacheType).Inc()
}

// SetCacheEntries updates the cache size gauge
func (m *Metrics) SetCacheEntries(cacheType string, n int) {
	if m == nil {
		return
	}
	m.CacheEntries.WithLabelValues(cacheType).Set(float64(n))
}

// WriteToTextfile writes every registered metric to path in the text
// exposition format, for node_exporter's textfile collector.
func (m *Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

// responseWriter wraps http.ResponseWriter to capture status code and size
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

// routeLabel prefers the matched route template over the raw path to keep
// label cardinality bounded.
func routeLabel(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return r.URL.Path
}

// HTTPMetricsMiddleware instruments HTTP requests with Prometheus metrics
func HTTPMetricsMiddleware(metrics *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := routeLabel(r)

			// Wrap response writer to capture status and size
			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			// Record request size
			if r.ContentLength > 0 {
				metrics.HTTPRequestSize.WithLabelValues(r.Method, path).Observe(float64(r.ContentLength))
			}

			// Serve the request
			next.ServeHTTP(rw, r)

			// Record metrics
			duration := time.Since(start).Seconds()
			status := strconv.Itoa(rw.statusCode)

			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
			metrics.HTTPResponseSize.WithLabelValues(r.Method, path).Observe(float64(rw.bytesWritten))
		})
	}
}

// MetricsHandler serves the registry in the Prometheus exposition format
func MetricsHandler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
