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
	"strconv"
	"syscall"

	"github.com/arijbelmabrouk/Convex-Churn-Optimization/common/churn"
	"github.com/arijbelmabrouk/Convex-Churn-Optimization/common/logging"
	"github.com/arijbelmabrouk/Convex-Churn-Optimization/dashboard/internal/config"
	"github.com/arijbelmabrouk/Convex-Churn-Optimization/dashboard/internal/handlers"
	"github.com/arijbelmabrouk/Convex-Churn-Optimization/dashboard/internal/middleware"
	"github.com/arijbelmabrouk/Convex-Churn-Optimization/dashboard/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logging.New(logging.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	}).With(logging.Service("dashboard"))
	logging.SetDefault(logger)

	slog.Info("Starting Dashboard",
		slog.Int("port", cfg.Server.Port),
		slog.String("api_url", cfg.API.URL),
	)

	client := churn.NewClient(cfg.API.URL, cfg.API.Timeout)
	router := server.NewRouter(server.RouterConfig{
		FormHandler: handlers.NewFormHandler(client, logger),
		Logger:      logger,
		Security:    middleware.SecurityConfig{HSTS: cfg.Security.HSTS},
	})

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		slog.Info("Dashboard listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", logging.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.WriteTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", logging.Error(err))
		return
	}
	slog.Info("Server stopped")
}
