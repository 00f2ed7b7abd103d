package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/arijbelmabrouk/Convex-Churn-Optimization/common/logging"
	"github.com/arijbelmabrouk/Convex-Churn-Optimization/predict/internal/config"
	"github.com/arijbelmabrouk/Convex-Churn-Optimization/predict/internal/server"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize structured logging
	logger := logging.New(logging.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	}).With(logging.Service("predict"))
	logging.SetDefault(logger)

	slog.Info("Starting Predict service",
		slog.Int("port", cfg.Server.Port),
		slog.String("model_path", cfg.Model.Path),
		slog.String("log_level", cfg.Logging.Level),
		slog.String("log_format", cfg.Logging.Format),
	)
	if *configPath != "" {
		slog.Info("Loaded configuration", slog.String("config_path", *configPath))
	}

	// The artifact is required; refuse to listen without it
	srv, err := server.New(cfg, logger)
	if err != nil {
		slog.Error("Failed to start", logging.Error(err))
		os.Exit(1)
	}
	defer srv.Close()

	// Start server in goroutine
	go func() {
		slog.Info("Predict service listening", slog.String("addr", srv.HTTP.Addr))
		if err := srv.HTTP.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", logging.Error(err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.WriteTimeout)
	defer shutdownCancel()

	if err := srv.HTTP.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", logging.Error(err))
		return
	}

	slog.Info("Server stopped")
}
