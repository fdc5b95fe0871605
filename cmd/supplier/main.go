// Supplier runs a local HotelRunner-compatible API for development.
//
// Point eywa at it with HOTELRUNNER_BASE_URL=http://localhost:9100 and a
// properties file registering hr_id 123456 with token dev-token.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/alex-user-go/eywa/internal/obs"
)

func main() {
	port := getEnv("PORT", "9100")

	logger, err := obs.NewLogger(getEnv("EYWA_ENV", "development"), false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	failureRate, err := strconv.ParseFloat(getEnv("SUPPLIER_FAILURE_RATE", "0"), 64)
	if err != nil {
		logger.Fatal("invalid SUPPLIER_FAILURE_RATE", zap.Error(err))
	}
	latencyMs, err := strconv.Atoi(getEnv("SUPPLIER_LATENCY_MS", "50"))
	if err != nil {
		logger.Fatal("invalid SUPPLIER_LATENCY_MS", zap.Error(err))
	}
	latency := time.Duration(latencyMs) * time.Millisecond

	supplier := NewSupplier(seedAccounts(), latency, latency*2, failureRate, logger)

	// Setup routes
	mux := http.NewServeMux()
	mux.Handle("/rooms", supplier)
	mux.Handle("/reservations", supplier)
	mux.HandleFunc("/healthz", obs.HealthHandler(logger))

	// Configure server
	addr := ":" + port
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("supplier listening",
			zap.String("addr", addr),
			zap.Float64("failure_rate", failureRate),
			zap.Duration("latency", latency),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logger.Info("shutting down supplier")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
		return
	}

	logger.Info("supplier stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
