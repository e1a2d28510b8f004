// Package metrics exposes Prometheus collectors for the catalog service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled requests by method, route template and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// TranslationRequestsTotal counts translation lookups by outcome
	// (cache_hit, success, failure, unavailable, skipped).
	TranslationRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_translation_requests_total",
			Help: "Total number of translation lookups by outcome",
		},
		[]string{"outcome"},
	)

	// TranslationDuration tracks calls to the upstream translation service.
	TranslationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_translation_duration_seconds",
			Help:    "Upstream translation latency in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	// ResponseCacheTotal counts response cache lookups by result (hit, miss).
	ResponseCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_response_cache_total",
			Help: "Response cache lookups by result",
		},
		[]string{"result"},
	)

	// UploadedBytesTotal counts stored asset bytes by kind (model, preview).
	UploadedBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_uploaded_bytes_total",
			Help: "Bytes of uploaded assets by kind",
		},
		[]string{"kind"},
	)

	// BreakerState reports circuit breaker state (0 closed, 1 half-open, 2 open).
	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_circuit_breaker_state",
			Help: "Circuit breaker state: 0 closed, 1 half-open, 2 open",
		},
		[]string{"name"},
	)

	// CatalogEventsTotal counts catalog events by type and publish result.
	CatalogEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_events_total",
			Help: "Catalog change events by type and result",
		},
		[]string{"type", "result"},
	)
)

// ObserveHTTPRequest records a finished request
func ObserveHTTPRequest(method, route, status string, d time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordTranslation records a translation lookup outcome
func RecordTranslation(outcome string) {
	TranslationRequestsTotal.WithLabelValues(outcome).Inc()
}

// RecordCacheLookup records a response cache hit or miss
func RecordCacheLookup(hit bool) {
	if hit {
		ResponseCacheTotal.WithLabelValues("hit").Inc()
		return
	}
	ResponseCacheTotal.WithLabelValues("miss").Inc()
}

// RecordUpload adds stored asset bytes
func RecordUpload(kind string, size int64) {
	UploadedBytesTotal.WithLabelValues(kind).Add(float64(size))
}

// SetBreakerState records a circuit breaker transition
func SetBreakerState(name string, state int) {
	BreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordEvent records a catalog event publish attempt
func RecordEvent(eventType string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	CatalogEventsTotal.WithLabelValues(eventType, result).Inc()
}
