package server

import (
	"net/http"

	"github.com/arijbelmabrouk/Convex-Churn-Optimization/common/httputil"
	"github.com/arijbelmabrouk/Convex-Churn-Optimization/common/logging"
	"github.com/arijbelmabrouk/Convex-Churn-Optimization/common/middleware"
	"github.com/arijbelmabrouk/Convex-Churn-Optimization/dashboard/internal/handlers"
	webmiddleware "github.com/arijbelmabrouk/Convex-Churn-Optimization/dashboard/internal/middleware"
)

// RouterConfig holds dependencies needed to configure routes
type RouterConfig struct {
	FormHandler *handlers.FormHandler
	Logger      *logging.Logger
	Security    webmiddleware.SecurityConfig
}

// NewRouter constructs a ServeMux with dashboard routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", cfg.FormHandler.Index)
	mux.HandleFunc("POST /analyze", cfg.FormHandler.Analyze)

	// Health check
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "dashboard"})
	})

	// Embedded stylesheet
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(handlers.Static())))

	var handler http.Handler = mux
	handler = webmiddleware.SecurityHeaders(cfg.Security)(handler)
	handler = middleware.Recover(handler)
	handler = logging.AccessLog(cfg.Logger)(handler)
	return middleware.RequestID(handler)
}
