package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsPrefix is the prefix used for all metrics
const MetricsPrefix = "smurfguard_"

// Service constants
const (
	ServiceRiot  = "riot"
	ServiceBatch = "batch"
)

var (
	// Global upstream request counter
	// Cardinality: ~6 (success, error, rate_limited, not_found, client_error, timeout)
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "upstream_requests_total",
			Help: "Total number of HTTP requests to the Riot API across all services",
		},
		[]string{"status"},
	)

	// Service-specific upstream request counter
	// Cardinality: ~12 (2 services × 6 statuses)
	ServiceUpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "service_upstream_requests_total",
			Help: "Total number of HTTP requests to the Riot API per service",
		},
		[]string{"service", "status"},
	)

	// Retry attempts counter
	// Cardinality: ~2 (number of services)
	ServiceRetryCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "service_retry_attempts_total",
			Help: "Total number of retry attempts per service",
		},
		[]string{"service"},
	)

	// Time spent waiting for rate limiter admission
	// Cardinality: 6 (endpoint classes)
	RateLimitWaitHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricsPrefix + "rate_limit_wait_seconds",
			Help:    "Time spent waiting for rate limiter admission per endpoint class",
			Buckets: []float64{0, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 600},
		},
		[]string{"class"},
	)

	// Admissions that had to wait
	// Cardinality: 6 (endpoint classes)
	RateLimitCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "rate_limit_hits_total",
			Help: "Total number of admissions delayed by the local rate limiter per endpoint class",
		},
		[]string{"class"},
	)

	// Cache lookups by tier and result
	// Cardinality: 4 (volatile/durable × hit/miss)
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "cache_lookups_total",
			Help: "Cache lookups by tier and result",
		},
		[]string{"tier", "result"},
	)

	// Durable tier I/O failures (fail-open)
	// Cardinality: 2 (load, save)
	CacheDurableErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "cache_durable_errors_total",
			Help: "Durable cache document I/O failures",
		},
		[]string{"operation"},
	)

	// Service cache size
	// Cardinality: 2 (volatile, durable)
	CacheSizeGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "cache_size",
			Help: "Number of items per cache tier",
		},
		[]string{"tier"},
	)

	// Batch items by outcome
	// Cardinality: 2 (success, failure)
	BatchItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "batch_items_total",
			Help: "Items processed by the batch orchestrator by outcome",
		},
		[]string{"outcome"},
	)

	// Batch duration
	BatchDurationHistogram = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "batch_duration_seconds",
			Help: "Time taken to complete a batch fetch",
		},
	)
)

// MetricsWriter provides a unified interface for recording service metrics
type MetricsWriter struct {
	serviceName string
}

// NewMetricsWriter creates a new MetricsWriter for the specified service
func NewMetricsWriter(serviceName string) *MetricsWriter {
	return &MetricsWriter{
		serviceName: serviceName,
	}
}

// GetServiceName returns the service name
func (mw *MetricsWriter) GetServiceName() string {
	return mw.serviceName
}

// RecordUpstreamRequest records a service-specific upstream API request
func (mw *MetricsWriter) RecordUpstreamRequest(status string) {
	UpstreamRequestsTotal.WithLabelValues(status).Inc()
	ServiceUpstreamRequestsTotal.WithLabelValues(mw.serviceName, status).Inc()
}

// RecordRetryAttempt records a retry attempt
func (mw *MetricsWriter) RecordRetryAttempt() {
	ServiceRetryCounter.WithLabelValues(mw.serviceName).Inc()
}

// OnRequest records an HTTP request with its status
func (mw *MetricsWriter) OnRequest(status string) {
	mw.RecordUpstreamRequest(status)
}

// OnRetry records an HTTP retry attempt
func (mw *MetricsWriter) OnRetry() {
	mw.RecordRetryAttempt()
}

// RecordRateLimitWait records the admission delay for an endpoint class
func RecordRateLimitWait(class string, wait time.Duration) {
	RateLimitWaitHistogram.WithLabelValues(class).Observe(wait.Seconds())
	if wait > 0 {
		RateLimitCounter.WithLabelValues(class).Inc()
	}
}

// RecordCacheLookup records a cache lookup on a tier
func RecordCacheLookup(tier string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookupsTotal.WithLabelValues(tier, result).Inc()
}

// RecordCacheDurableError records a failed durable load or save
func RecordCacheDurableError(operation string) {
	CacheDurableErrorsTotal.WithLabelValues(operation).Inc()
}

// RecordCacheSize records the number of items in a cache tier
func RecordCacheSize(tier string, size int) {
	CacheSizeGauge.WithLabelValues(tier).Set(float64(size))
}

// RecordBatch records the outcome counts and duration of one batch
func RecordBatch(succeeded, failed int, duration time.Duration) {
	BatchItemsTotal.WithLabelValues("success").Add(float64(succeeded))
	BatchItemsTotal.WithLabelValues("failure").Add(float64(failed))
	BatchDurationHistogram.Observe(duration.Seconds())
}
