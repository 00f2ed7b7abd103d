package logging

import (
	"log/slog"
	"time"
)

// Common field names for consistent logging across binaries.
const (
	FieldService     = "service"
	FieldRequestID   = "request_id"
	FieldIP          = "ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatus      = "status"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldEngine      = "engine"
	FieldProbability = "probability"
	FieldLabel       = "churn_prediction"
	FieldArtifact    = "artifact"
)

// Service returns a slog attribute for the service name.
func Service(name string) slog.Attr {
	return slog.String(FieldService, name)
}

// IP returns a slog attribute for the client address.
func IP(ip string) slog.Attr {
	return slog.String(FieldIP, ip)
}

// Method returns a slog attribute for the HTTP method.
func Method(method string) slog.Attr {
	return slog.String(FieldMethod, method)
}

// Path returns a slog attribute for the HTTP path.
func Path(path string) slog.Attr {
	return slog.String(FieldPath, path)
}

// Status returns a slog attribute for the HTTP status code.
func Status(code int) slog.Attr {
	return slog.Int(FieldStatus, code)
}

// Duration returns a slog attribute for d in milliseconds.
func Duration(d time.Duration) slog.Attr {
	return slog.Int64(FieldDuration, d.Milliseconds())
}

// Error returns a slog attribute for an error.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(FieldError, "")
	}
	return slog.String(FieldError, err.Error())
}

// Engine returns a slog attribute for the model engine name.
func Engine(name string) slog.Attr {
	return slog.String(FieldEngine, name)
}

// Probability returns a slog attribute for a churn probability.
func Probability(p float64) slog.Attr {
	return slog.Float64(FieldProbability, p)
}

// Label returns a slog attribute for a binary churn label.
func Label(label int) slog.Attr {
	return slog.Int(FieldLabel, label)
}

// Artifact returns a slog attribute for the model artifact path.
func Artifact(path string) slog.Attr {
	return slog.String(FieldArtifact, path)
}
