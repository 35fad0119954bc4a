package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookstore_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bookstore_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	authAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookstore_auth_attempts_total",
		Help: "Authentication attempts by result",
	}, []string{"result"})

	lowStockEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookstore_low_stock_events_total",
		Help: "Low stock events raised per collection",
	}, []string{"collection"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveAuth counts an authentication attempt; result is "success" or a failure code.
func ObserveAuth(result string) {
	authAttempts.WithLabelValues(result).Inc()
}

func ObserveLowStock(collection string) {
	lowStockEvents.WithLabelValues(collection).Inc()
}
