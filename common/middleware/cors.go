package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig holds CORS middleware configuration
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

// Enabled reports whether any origin is configured.
func (c CORSConfig) Enabled() bool {
	return len(c.AllowedOrigins) > 0
}

// CORS lets browser front-ends on other origins call the API. Origins may be
// exact ("https://ops.example.com"), a subdomain wildcard ("*.example.com")
// or "*". With no origins configured the middleware is a pass-through.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	if !config.Enabled() {
		return func(next http.Handler) http.Handler { return next }
	}

	methods := config.AllowedMethods
	if len(methods) == 0 {
		methods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	}
	headers := config.AllowedHeaders
	if len(headers) == 0 {
		headers = []string{"Content-Type", RequestIDHeader}
	}
	allowedMethods := strings.Join(methods, ", ")
	allowedHeaders := strings.Join(headers, ", ")
	maxAge := "300"
	if config.MaxAge > 0 {
		maxAge = strconv.Itoa(config.MaxAge)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && originAllowed(config.AllowedOrigins, origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
				w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
				w.Header().Set("Access-Control-Max-Age", maxAge)
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(allowed []string, origin string) bool {
	for _, candidate := range allowed {
		switch {
		case candidate == "*":
			return true
		case strings.HasPrefix(candidate, "*."):
			if strings.HasSuffix(origin, strings.TrimPrefix(candidate, "*")) {
				return true
			}
		case candidate == origin:
			return true
		}
	}
	return false
}
