package logging

import (
	"net/http"
	"time"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// AccessLog logs one record per request after it completes. Server errors
// log at warn so they stand out from routine traffic.
func AccessLog(l *Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			attrs := []any{
				Method(r.Method),
				Path(r.URL.Path),
				Status(rec.status),
				Duration(time.Since(start)),
			}
			if rec.status >= http.StatusInternalServerError {
				l.WarnContext(r.Context(), "request completed", attrs...)
				return
			}
			l.InfoContext(r.Context(), "request completed", attrs...)
		})
	}
}
