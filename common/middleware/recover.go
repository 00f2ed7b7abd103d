package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime"
)

// Recover turns a panic inside next into a 500 {"detail": ...} response.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			slog.ErrorContext(r.Context(), "panic recovered",
				slog.Any("panic", rec),
				slog.String("request_id", GetRequestID(r.Context())),
				slog.String("stack", string(buf[:n])),
			)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "internal server error"})
		}()

		next.ServeHTTP(w, r)
	})
}
