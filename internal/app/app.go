package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/alex-user-go/eywa/internal/cache"
	"github.com/alex-user-go/eywa/internal/config"
	"github.com/alex-user-go/eywa/internal/events"
	"github.com/alex-user-go/eywa/internal/handler"
	"github.com/alex-user-go/eywa/internal/mcp"
	"github.com/alex-user-go/eywa/internal/obs"
	"github.com/alex-user-go/eywa/internal/providers/hotelrunner"
	"github.com/alex-user-go/eywa/internal/providers/reference"
	"github.com/alex-user-go/eywa/internal/ratelimit"
	"github.com/alex-user-go/eywa/internal/registry"
	"github.com/alex-user-go/eywa/internal/routing"
	"github.com/alex-user-go/eywa/internal/tools"
)

const serviceName = "eywa"

// App is the wired service, shared by the stdio and HTTP entry points.
type App struct {
	cfg       *config.Config
	version   string
	logger    *zap.Logger
	metrics   *obs.Metrics
	registry  *registry.Registry
	router    *routing.Router
	tools     *tools.Dispatcher
	redis     *redis.Client
	publisher events.Publisher
	shutdown  func(context.Context) error
}

// New wires every component from cfg.
func New(cfg *config.Config, version string, logger *zap.Logger) (*App, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := obs.NewMetrics(reg)

	shutdown, err := obs.InitTracer(serviceName, cfg.Observ.JaegerEndpoint)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	a := &App{
		cfg:      cfg,
		version:  version,
		logger:   logger,
		metrics:  metrics,
		registry: registry.New(),
		shutdown: shutdown,
	}
	var rooms hotelrunner.RoomCatalog = cache.New[[]hotelrunner.Room](cache.RoomsTTL)
	if cfg.Redis.Addr != "" {
		a.redis, err = newRedis(cfg.Redis)
		if err != nil {
			_ = a.Close(context.Background())
			return nil, err
		}
		rooms = cache.NewRedis[[]hotelrunner.Room](a.redis, "eywa:rooms:", cache.RoomsTTL, logger)
		logger.Info("redis room cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	a.publisher = events.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		a.publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.TopicBookings, logger)
		logger.Info("kafka booking events enabled",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.TopicBookings),
		)
	}

	limiter := ratelimit.New(ratelimit.HotelRunnerLimits)
	client := hotelrunner.NewClient(cfg.HotelRunner.BaseURL, cfg.HotelRunner.Timeout, limiter, metrics, logger)

	a.router = routing.New(cfg.Routing, a.registry, a.publisher, metrics, logger)
	a.router.Add(reference.New(logger))
	a.router.Add(hotelrunner.New(client, a.registry, rooms, metrics, logger))
	for _, p := range cfg.Properties {
		a.router.RegisterProperty(p)
	}

	a.tools = tools.NewDispatcher(a.router, metrics, logger,
		tools.WithRejectPastCheckIn(cfg.Tools.RejectPastCheckIn),
	)

	logger.Info("eywa wired",
		zap.String("default_provider", string(cfg.Routing.Default)),
		zap.Int("destination_routes", len(cfg.Routing.Destinations)),
		zap.Int("registered_properties", a.registry.Len()),
	)
	return a, nil
}

func newRedis(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

// Tools returns the tool dispatcher.
func (a *App) Tools() *tools.Dispatcher {
	return a.tools
}

// ServeStdio runs the MCP transport until in is closed or ctx is done.
func (a *App) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	return mcp.NewServer(a.tools, a.version, a.logger).Serve(ctx, in, out)
}

// Handler builds the HTTP surface.
func (a *App) Handler() http.Handler {
	if a.cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	var limiter *ratelimit.Limiter
	if a.cfg.Server.RatePerMinute > 0 {
		limiter = ratelimit.New(ratelimit.Limits{PerDay: a.cfg.Server.RatePerDay, PerMinute: a.cfg.Server.RatePerMinute})
	}

	h := handler.New(a.tools, limiter, a.metrics, a.logger)
	if a.redis != nil {
		h.AddReadinessCheck("redis", func(ctx context.Context) error {
			return a.redis.Ping(ctx).Err()
		})
	}

	router := gin.New()
	h.SetupRoutes(router)
	return router
}

// ServeHTTP runs the HTTP server until ctx is done, then shuts down gracefully.
func (a *App) ServeHTTP(ctx context.Context) error {
	srv := &http.Server{
		Addr:         ":" + a.cfg.Server.Port,
		Handler:      a.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownPeriod)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("server shutdown error", zap.Error(err))
		return err
	}

	a.logger.Info("server stopped")
	return nil
}

// Close releases the event publisher, Redis and the tracer.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close publisher: %w", err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if a.shutdown != nil {
		if err := a.shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown tracer: %w", err))
		}
	}
	return errors.Join(errs...)
}
