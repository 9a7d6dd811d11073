package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics holds all Prometheus metrics
type PrometheusMetrics struct {
	// HTTP request metrics
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec

	// Connectivity test metrics
	ConnectivityTests        *prometheus.CounterVec
	ConnectivityTestDuration *prometheus.HistogramVec
}

var (
	metrics     *PrometheusMetrics
	metricsOnce sync.Once
)

// InitMetrics registers all metrics with the default Prometheus registry.
// Calling it more than once is a no-op.
func InitMetrics() {
	metricsOnce.Do(func() {
		metrics = &PrometheusMetrics{
			HttpRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "dataflow_http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "endpoint", "status"},
			),
			HttpRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "dataflow_http_request_duration_seconds",
					Help:    "HTTP request latency in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"method", "endpoint"},
			),
			ConnectivityTests: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "dataflow_connectivity_tests_total",
					Help: "Total number of data source connectivity tests",
				},
				[]string{"catalog_item", "result"},
			),
			ConnectivityTestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "dataflow_connectivity_test_duration_seconds",
					Help:    "Connectivity test latency in seconds",
					Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
				},
				[]string{"catalog_item"},
			),
		}
	})
}

// PrometheusMiddleware is a Gin middleware that records HTTP metrics
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		metrics.HttpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
		metrics.HttpRequestDuration.WithLabelValues(method, endpoint).Observe(duration)
	}
}

// RecordConnectivityTest records the outcome of one connectivity probe
func RecordConnectivityTest(catalogItemID string, connected bool, duration time.Duration) {
	if metrics == nil {
		return
	}

	result := "disconnected"
	if connected {
		result = "connected"
	}
	metrics.ConnectivityTests.WithLabelValues(catalogItemID, result).Inc()
	metrics.ConnectivityTestDuration.WithLabelValues(catalogItemID).Observe(duration.Seconds())
}
