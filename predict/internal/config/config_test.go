package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_WithDefaults(t *testing.T) {
	// Load config without a config file (use defaults)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 15s", cfg.Server.ReadTimeout)
	}
	if cfg.Model.Path != "models/churn_pipeline.json" {
		t.Errorf("Model.Path = %q, want %q", cfg.Model.Path, "models/churn_pipeline.json")
	}
	if cfg.Model.MaxBodyBytes != 1048576 {
		t.Errorf("Model.MaxBodyBytes = %d, want 1048576", cfg.Model.MaxBodyBytes)
	}
	if cfg.RateLimit.Enabled {
		t.Error("RateLimit.Enabled should be false by default")
	}
	if cfg.RateLimit.Window != time.Minute {
		t.Errorf("RateLimit.Window = %v, want 1m", cfg.RateLimit.Window)
	}
	if len(cfg.CORS.AllowedOrigins) != 0 {
		t.Errorf("CORS.AllowedOrigins = %v, want empty", cfg.CORS.AllowedOrigins)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}
}

func TestLoad_WithConfigFile(t *testing.T) {
	configContent := `
server:
  port: 9100
model:
  path: /srv/models/churn.yaml
rate_limit:
  enabled: true
  requests: 5
  window: 10s
cors:
  allowed_origins:
    - http://localhost:8501
logging:
  level: debug
  format: text
`
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, want 9100", cfg.Server.Port)
	}
	if cfg.Model.Path != "/srv/models/churn.yaml" {
		t.Errorf("Model.Path = %q, want /srv/models/churn.yaml", cfg.Model.Path)
	}
	if !cfg.RateLimit.Enabled || cfg.RateLimit.Requests != 5 || cfg.RateLimit.Window != 10*time.Second {
		t.Errorf("RateLimit = %+v, want enabled 5 per 10s", cfg.RateLimit)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "http://localhost:8501" {
		t.Errorf("CORS.AllowedOrigins = %v", cfg.CORS.AllowedOrigins)
	}
	// Defaults still apply for keys absent from the file
	if cfg.Server.IdleTimeout != 60*time.Second {
		t.Errorf("Server.IdleTimeout = %v, want 60s", cfg.Server.IdleTimeout)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("PREDICT_MODEL_PATH", "/tmp/other.json")
	t.Setenv("PREDICT_SERVER_PORT", "9200")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Model.Path != "/tmp/other.json" {
		t.Errorf("Model.Path = %q, want /tmp/other.json", cfg.Model.Path)
	}
	if cfg.Server.Port != 9200 {
		t.Errorf("Server.Port = %d, want 9200", cfg.Server.Port)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("server: [unclosed"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("Load() with malformed YAML should return error")
	}
}
