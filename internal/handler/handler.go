package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alex-user-go/eywa/internal/hotel"
	"github.com/alex-user-go/eywa/internal/middleware"
	"github.com/alex-user-go/eywa/internal/obs"
	"github.com/alex-user-go/eywa/internal/ratelimit"
	"github.com/alex-user-go/eywa/internal/tools"
)

// Caller runs a tool by name.
type Caller interface {
	Call(ctx context.Context, name string, args map[string]any) tools.Result
}

// Check reports whether a dependency is usable.
type Check func(ctx context.Context) error

// Handler handles HTTP requests.
type Handler struct {
	tools       Caller
	rateLimiter *ratelimit.Limiter
	metrics     *obs.Metrics
	logger      *zap.Logger
	checks      map[string]Check
}

// New creates a new Handler. rateLimiter may be nil to disable per-client
// limits.
func New(caller Caller, rateLimiter *ratelimit.Limiter, metrics *obs.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		tools:       caller,
		rateLimiter: rateLimiter,
		metrics:     metrics,
		logger:      logger,
		checks:      make(map[string]Check),
	}
}

// AddReadinessCheck makes /ready depend on check.
func (h *Handler) AddReadinessCheck(name string, check Check) {
	h.checks[name] = check
}

// SetupRoutes sets up HTTP routes.
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(middleware.Logging(h.logger))
	router.Use(middleware.Metrics(h.metrics))

	router.GET("/healthz", gin.WrapF(obs.HealthHandler(h.logger)))
	router.GET("/ready", h.readinessCheck)
	router.GET("/metrics", gin.WrapH(h.metrics.Handler()))

	router.GET("/tools", h.listTools)
	router.POST("/tools/call", h.callTool)
}

// CallRequest is the body of POST /tools/call.
type CallRequest struct {
	Name      string         `json:"name" binding:"required"`
	Arguments map[string]any `json:"arguments"`
}

func (h *Handler) listTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": tools.Definitions()})
}

func (h *Handler) callTool(c *gin.Context) {
	requestID := middleware.RequestID(c.Request.Context())

	ip := c.ClientIP()
	if h.rateLimiter != nil && !h.rateLimiter.Allow(ip) {
		h.logger.Warn("rate limit exceeded", zap.String("request_id", requestID), zap.String("ip", ip))
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		return
	}

	var req CallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}
	if req.Arguments == nil {
		req.Arguments = map[string]any{}
	}

	res := h.tools.Call(c.Request.Context(), req.Name, req.Arguments)

	status := http.StatusOK
	if res.IsError {
		status = statusFor(errorCode(res.Text))
		h.logger.Debug("tool call returned an error",
			zap.String("request_id", requestID),
			zap.String("tool", req.Name),
			zap.Int("status", status),
		)
	}
	c.Data(status, "application/json; charset=utf-8", []byte(res.Text))
}

func (h *Handler) readinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	failed := gin.H{}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Warn("readiness check failed", zap.String("check", name), zap.Error(err))
			failed[name] = err.Error()
		}
	}
	if len(failed) > 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "failed": failed})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

func errorCode(text string) hotel.Code {
	var env struct {
		Error struct {
			Code hotel.Code `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		return hotel.CodeInternalError
	}
	return env.Error.Code
}

// statusFor maps a canonical error code to the HTTP status of the response.
func statusFor(code hotel.Code) int {
	switch code {
	case hotel.CodeInvalidDates, hotel.CodeInvalidGuests, hotel.CodeInvalidRequest:
		return http.StatusBadRequest
	case hotel.CodePropertyNotFound, hotel.CodeBookingNotFound, hotel.CodeUnknownTool:
		return http.StatusNotFound
	case hotel.CodeRoomUnavailable, hotel.CodeModificationNotAllowed, hotel.CodeCancellationNotAllowed:
		return http.StatusConflict
	case hotel.CodeRateExpired:
		return http.StatusGone
	case hotel.CodePaymentFailed:
		return http.StatusPaymentRequired
	case hotel.CodeProviderError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
