package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arijbelmabrouk/Convex-Churn-Optimization/common/logging"
	"github.com/arijbelmabrouk/Convex-Churn-Optimization/common/middleware"
	"github.com/arijbelmabrouk/Convex-Churn-Optimization/predict/internal/handlers"
)

// NewRouter constructs a ServeMux with the prediction API routes registered.
func NewRouter(h *handlers.PredictHandler, logger *logging.Logger, cors middleware.CORSConfig) http.Handler {
	mux := http.NewServeMux()

	// Inference
	mux.HandleFunc("/predict", h.Predict)

	// Health endpoints
	mux.HandleFunc("/healthz", h.Health)
	mux.HandleFunc("/readyz", h.Ready)

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	var handler http.Handler = mux
	handler = middleware.CORS(cors)(handler)
	handler = middleware.Recover(handler)
	handler = logging.AccessLog(logger)(handler)
	return middleware.RequestID(handler)
}
