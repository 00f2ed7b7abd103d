package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// DetailResponse is the error body shared by every endpoint.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// WriteJSON writes a JSON response with the given status code and data.
// Encoding failures are logged; the status line has already been sent.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// WriteDetail writes a {"detail": message} error response.
func WriteDetail(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, DetailResponse{Detail: message})
}
