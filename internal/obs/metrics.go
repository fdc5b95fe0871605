package obs

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Metrics holds the Prometheus collectors of the service.
type Metrics struct {
	registry         *prometheus.Registry
	toolCalls        *prometheus.CounterVec
	toolDuration     *prometheus.HistogramVec
	providerRequests *prometheus.CounterVec
	supplierRequests *prometheus.CounterVec
	rateLimited      *prometheus.CounterVec
	cacheLookups     *prometheus.CounterVec
	events           *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		toolCalls: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eywa_tool_calls_total",
			Help: "Total number of tool calls",
		}, []string{"tool", "status"}),
		toolDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "eywa_tool_call_duration_seconds",
			Help:    "Tool call duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"tool"}),
		providerRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eywa_provider_requests_total",
			Help: "Total number of routed provider operations",
		}, []string{"provider", "operation", "outcome"}),
		supplierRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eywa_supplier_requests_total",
			Help: "Total number of outbound supplier API calls",
		}, []string{"endpoint", "outcome"}),
		rateLimited: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eywa_supplier_rate_limited_total",
			Help: "Total number of supplier calls denied by the rate limiter",
		}, []string{"account"}),
		cacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eywa_cache_lookups_total",
			Help: "Total number of cache lookups",
		}, []string{"cache", "result"}),
		events: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eywa_booking_events_total",
			Help: "Total number of booking events published",
		}, []string{"type", "outcome"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "eywa_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "eywa_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
}

// ObserveToolCall records one tool call.
func (m *Metrics) ObserveToolCall(tool, status string, d time.Duration) {
	m.toolCalls.WithLabelValues(tool, status).Inc()
	m.toolDuration.WithLabelValues(tool).Observe(d.Seconds())
}

// IncProviderRequest counts a routed provider operation.
func (m *Metrics) IncProviderRequest(provider, operation, outcome string) {
	m.providerRequests.WithLabelValues(provider, operation, outcome).Inc()
}

// IncSupplierRequest counts an outbound supplier call.
func (m *Metrics) IncSupplierRequest(endpoint, outcome string) {
	m.supplierRequests.WithLabelValues(endpoint, outcome).Inc()
}

// IncRateLimited counts a call denied by the rate limiter.
func (m *Metrics) IncRateLimited(account string) {
	m.rateLimited.WithLabelValues(account).Inc()
}

// IncCacheLookup counts a cache hit or miss.
func (m *Metrics) IncCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(cache, result).Inc()
}

// IncEvent counts a published booking event.
func (m *Metrics) IncEvent(eventType, outcome string) {
	m.events.WithLabelValues(eventType, outcome).Inc()
}

// ObserveHTTPRequest records one served HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, d time.Duration) {
	code := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(method, path, code).Inc()
	m.httpDuration.WithLabelValues(method, path, code).Observe(d.Seconds())
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// HealthHandler returns a handler for /healthz requests.
func HealthHandler(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write health response", zap.Error(err))
		}
	}
}
