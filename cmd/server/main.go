package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/itc-club/club-applications/internal/admin"
	"github.com/itc-club/club-applications/internal/auth"
	"github.com/itc-club/club-applications/internal/config"
	"github.com/itc-club/club-applications/internal/errors"
	"github.com/itc-club/club-applications/internal/guard"
	"github.com/itc-club/club-applications/internal/monitoring"
	"github.com/itc-club/club-applications/internal/ratelimit"
	"github.com/itc-club/club-applications/internal/review"
	"github.com/itc-club/club-applications/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	appLogger := monitoring.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	appMetrics := monitoring.NewMetrics()

	recordStore, err := store.NewSQLiteStore(cfg.Store.DataDir)
	if err != nil {
		slog.Error("Failed to initialize application store", "error", err)
		os.Exit(1)
	}
	defer errors.SafeClose(recordStore, "application store")

	if err := recordStore.EnsureHeaders(context.Background()); err != nil {
		slog.Error("Application store schema check failed", "error", err)
		os.Exit(1)
	}

	reviewStore, err := review.NewSQLiteStore(cfg.Store.DataDir)
	if err != nil {
		slog.Error("Failed to initialize review store", "error", err)
		os.Exit(1)
	}
	defer errors.SafeClose(reviewStore, "review store")

	deadline, err := cfg.ParseDeadline()
	if err != nil {
		slog.Error("Invalid submission deadline", "error", err)
		os.Exit(1)
	}
	if !deadline.IsZero() {
		slog.Info("Submission deadline configured", "deadline", deadline.Format(time.RFC3339))
	}

	limiter := ratelimit.NewLimiter(ratelimit.Config{
		RequestsPerSecond: cfg.Server.RateLimitRPS,
		Burst:             cfg.Server.RateLimitBurst,
	})

	r := newRouter(routerDeps{
		submissions: guard.NewService(recordStore, deadline),
		dashboard:   admin.NewService(recordStore),
		reviews:     review.NewService(reviewStore, recordStore),
		auth:        auth.NewService(cfg.Admin.Password, cfg.Admin.JWTSecret),
		limiter:     limiter,
		metrics:     appMetrics,
		logger:      appLogger,
		origins:     cfg.Server.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		slog.Info("Starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}
