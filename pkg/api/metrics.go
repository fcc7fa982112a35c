package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for the API
type Metrics struct {
	// HTTP request metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestsInFlight *prometheus.GaugeVec
	httpRequestDuration  *prometheus.HistogramVec

	// Codec metrics
	decodeOperationsTotal *prometheus.CounterVec
	decodeDuration        *prometheus.HistogramVec
	decodeBytesTotal      prometheus.Counter
	decodeEntriesTotal    prometheus.Counter

	// Storage metrics
	storageOperationsTotal *prometheus.CounterVec
	storedOutlines         prometheus.Gauge

	// API key authentication metrics
	authRequestsTotal *prometheus.CounterVec

	// Health check metrics
	healthChecksTotal *prometheus.CounterVec
}

// NewMetrics creates all Prometheus metrics and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		// HTTP request metrics
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "odsdb_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "odsdb_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		httpRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "odsdb_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method"},
		),

		// Codec metrics
		decodeOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "odsdb_codec_operations_total",
				Help: "Total number of outline decode and encode operations",
			},
			[]string{"operation", "status"},
		),

		decodeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "odsdb_codec_operation_duration_seconds",
				Help:    "Outline decode and encode duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"operation"},
		),

		decodeBytesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "odsdb_decoded_bytes_total",
				Help: "Total number of bytes successfully decoded",
			},
		),

		decodeEntriesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "odsdb_decoded_entries_total",
				Help: "Total number of outline entries decoded",
			},
		),

		// Storage metrics
		storageOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "odsdb_storage_operations_total",
				Help: "Total number of outline storage operations",
			},
			[]string{"operation", "status"},
		),

		storedOutlines: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "odsdb_stored_outlines",
				Help: "Number of outlines in the store",
			},
		),

		// Authentication metrics
		authRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "odsdb_auth_requests_total",
				Help: "Total number of authentication requests",
			},
			[]string{"status"},
		),

		// Health check metrics
		healthChecksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "odsdb_health_checks_total",
				Help: "Total number of health checks",
			},
			[]string{"status"},
		),
	}

	return m
}

func statusLabel(success bool) string {
	if success {
		return statusSuccess
	}
	return statusError
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	statusCodeStr := strconv.Itoa(statusCode)

	m.httpRequestsTotal.WithLabelValues(method, endpoint, statusCodeStr).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordCodecOperation records a decode or encode
func (m *Metrics) RecordCodecOperation(operation string, success bool, duration time.Duration) {
	m.decodeOperationsTotal.WithLabelValues(operation, statusLabel(success)).Inc()
	m.decodeDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordDecoded records the size of a successful decode
func (m *Metrics) RecordDecoded(bytes, entries int) {
	m.decodeBytesTotal.Add(float64(bytes))
	m.decodeEntriesTotal.Add(float64(entries))
}

// RecordStorageOperation records a storage operation
func (m *Metrics) RecordStorageOperation(operation string, success bool) {
	m.storageOperationsTotal.WithLabelValues(operation, statusLabel(success)).Inc()
}

// UpdateStoredOutlines sets the number of stored outlines
func (m *Metrics) UpdateStoredOutlines(n int) {
	m.storedOutlines.Set(float64(n))
}

// RecordAuthRequest records an authentication request
func (m *Metrics) RecordAuthRequest(success bool) {
	m.authRequestsTotal.WithLabelValues(statusLabel(success)).Inc()
}

// RecordHealthCheck records a health check
func (m *Metrics) RecordHealthCheck(success bool) {
	m.healthChecksTotal.WithLabelValues(statusLabel(success)).Inc()
}

// Middleware records request count, duration and in-flight requests. The
// endpoint label is the matched chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.httpRequestsInFlight.WithLabelValues(r.Method).Inc()
		defer m.httpRequestsInFlight.WithLabelValues(r.Method).Dec()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		m.RecordHTTPRequest(r.Method, routePattern(r), rw.statusCode, time.Since(start))
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

// InstrumentAuthMiddleware instruments the authentication middleware
func (m *Metrics) InstrumentAuthMiddleware(next func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hasAPIKey := r.Header.Get("X-API-Key") != ""

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next(h).ServeHTTP(rw, r)

			if hasAPIKey {
				m.RecordAuthRequest(rw.statusCode != http.StatusUnauthorized)
			}
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
