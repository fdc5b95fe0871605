package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alex-user-go/eywa/internal/middleware"
	"github.com/alex-user-go/eywa/internal/obs"
)

func newEngine(seen *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Logging(zap.NewNop()), middleware.Metrics(obs.NewMetrics(prometheus.NewRegistry())))
	r.GET("/ping", func(c *gin.Context) {
		*seen = middleware.RequestID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestLogging_GeneratesRequestID(t *testing.T) {
	var seen string
	r := newEngine(&seen)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotEmpty(t, seen)
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get(middleware.HeaderRequestID))
}

func TestLogging_KeepsCallerRequestID(t *testing.T) {
	var seen string
	r := newEngine(&seen)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", seen)
	assert.Equal(t, "req-123", rec.Header().Get(middleware.HeaderRequestID))
}

func TestLogging_UnmatchedRoute(t *testing.T) {
	var seen string
	r := newEngine(&seen)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.HeaderRequestID))
}
