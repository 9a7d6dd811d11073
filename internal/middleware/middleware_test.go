package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dataflow-backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCorrelationID(t *testing.T) {
	router := gin.New()
	router.Use(CorrelationID())
	router.GET("/ping", func(c *gin.Context) {
		assert.Equal(t, GetCorrelationID(c), CorrelationIDFromContext(c.Request.Context()))
		c.String(http.StatusOK, GetCorrelationID(c))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Correlation-ID", "abc-123")
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get("X-Correlation-ID"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Len(t, w.Body.String(), 36)
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(RateLimiterConfig{RPM: 1, Burst: 2, CleanupInterval: time.Minute})
	defer limiter.Stop()

	router := gin.New()
	router.Use(CorrelationID(), limiter.RateLimit())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	var body response.StandardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", body.Error.Code)
	assert.Equal(t, "Maximum 1 requests per minute allowed", body.Error.Details)

	// A different API key gets its own bucket.
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-API-Key", "other")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Len(t, limiter.clients, 2)
}

func TestNewRateLimiterDefaults(t *testing.T) {
	limiter := NewRateLimiter(RateLimiterConfig{RPM: 120})
	defer limiter.Stop()

	defaults := DefaultRateLimiterConfig()
	assert.Equal(t, 120, limiter.config.RPM)
	assert.Equal(t, defaults.Burst, limiter.config.Burst)
	assert.Equal(t, defaults.CleanupInterval, limiter.config.CleanupInterval)
}

func counterValue(t *testing.T, counter prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, counter.Write(&m))
	return m.GetCounter().GetValue()
}

func TestRecordConnectivityTest(t *testing.T) {
	InitMetrics()
	InitMetrics()

	connected := metrics.ConnectivityTests.WithLabelValues("postgres", "connected")
	disconnected := metrics.ConnectivityTests.WithLabelValues("postgres", "disconnected")
	before := counterValue(t, connected)

	RecordConnectivityTest("postgres", true, 20*time.Millisecond)
	RecordConnectivityTest("postgres", false, time.Second)

	assert.Equal(t, before+1, counterValue(t, connected))
	assert.GreaterOrEqual(t, counterValue(t, disconnected), 1.0)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(CorrelationID(), RequestLogger(logger))
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "/missing", entry["path"])
	assert.EqualValues(t, 404, entry["status"])
	assert.NotEmpty(t, entry["correlation_id"])
}
