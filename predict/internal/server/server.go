package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/arijbelmabrouk/Convex-Churn-Optimization/common/logging"
	"github.com/arijbelmabrouk/Convex-Churn-Optimization/common/middleware"
	"github.com/arijbelmabrouk/Convex-Churn-Optimization/predict/internal/config"
	"github.com/arijbelmabrouk/Convex-Churn-Optimization/predict/internal/handlers"
	"github.com/arijbelmabrouk/Convex-Churn-Optimization/predict/internal/model"
	"github.com/arijbelmabrouk/Convex-Churn-Optimization/predict/internal/ratelimit"
	"github.com/arijbelmabrouk/Convex-Churn-Optimization/predict/internal/service"
)

// Server is a fully wired prediction service that has not started listening.
type Server struct {
	HTTP        *http.Server
	rateLimiter ratelimit.RateLimiter
}

// New loads the model artifact and wires handlers, middleware and the
// optional rate limiter. A missing or invalid artifact is returned as an
// error; an unreachable Redis only disables rate limiting.
func New(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	pipeline, err := model.Load(cfg.Model.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}
	logger.Info("Model loaded",
		logging.Artifact(cfg.Model.Path),
		logging.Engine(pipeline.Engine()),
		slog.Int("columns", len(pipeline.Columns)),
	)

	rateLimiter := newRateLimiter(cfg, logger)

	svc := service.NewPredictionService(pipeline)
	handler := handlers.NewPredictHandler(svc, rateLimiter, cfg.Model.MaxBodyBytes, logger)
	router := NewRouter(handler, logger, middleware.CORSConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	return &Server{
		HTTP: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
		rateLimiter: rateLimiter,
	}, nil
}

// Close releases the rate limiter's connection.
func (s *Server) Close() error {
	return s.rateLimiter.Close()
}

func newRateLimiter(cfg *config.Config, logger *logging.Logger) ratelimit.RateLimiter {
	if !cfg.RateLimit.Enabled {
		logger.Info("Rate limiting disabled in configuration")
		return &ratelimit.NoOpRateLimiter{}
	}

	limiter, err := ratelimit.NewRedisRateLimiter(cfg.Redis.URL, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	if err != nil {
		logger.Warn("Failed to initialize Redis rate limiter, continuing without rate limiting",
			slog.String("redis_url", cfg.Redis.URL),
			logging.Error(err),
		)
		return &ratelimit.NoOpRateLimiter{}
	}

	logger.Info("Rate limiting enabled",
		slog.Int("requests", cfg.RateLimit.Requests),
		slog.Duration("window", cfg.RateLimit.Window),
	)
	return limiter
}
