// Package config provides the persisted configuration for the churnctl CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultAPIURL is the base URL of a locally running inference service.
	DefaultAPIURL = "http://localhost:8000"

	// DefaultTimeout bounds a single prediction call.
	DefaultTimeout = 30 * time.Second

	configDirName  = ".churnctl"
	configFileName = "config.yaml"
)

// CLIConfig holds CLI tool configuration.
type CLIConfig struct {
	APIURL  string        `yaml:"api_url" mapstructure:"api_url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Output  string        `yaml:"output" mapstructure:"output"`
	path    string
}

// DefaultCLI returns a CLIConfig with default values
func DefaultCLI() *CLIConfig {
	return &CLIConfig{
		APIURL:  DefaultAPIURL,
		Timeout: DefaultTimeout,
		Output:  "text",
	}
}

// Path returns the file the config was loaded from and will be saved to.
func (c *CLIConfig) Path() string {
	return c.path
}

// SetAPIURL validates and stores a new service base URL, then saves.
func (c *CLIConfig) SetAPIURL(url string) error {
	if url == "" {
		return fmt.Errorf("api url must not be empty")
	}
	c.APIURL = url
	return c.Save()
}

// Save writes the CLI config to disk
func (c *CLIConfig) Save() error {
	if c.path == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}
		c.path = filepath.Join(dir, configFileName)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(c.path, data, 0600)
}

// configDir resolves CHURNCTL_CONFIG_DIR, falling back to $HOME/.churnctl.
func configDir() (string, error) {
	if dir := os.Getenv("CHURNCTL_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}
