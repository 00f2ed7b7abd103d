package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// LoadCLI loads configuration for the churnctl CLI.
// Uses $HOME/.churnctl as the default CHURNCTL_CONFIG_DIR if not set.
func LoadCLI() (*CLIConfig, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	return LoadCLIFrom(filepath.Join(dir, configFileName))
}

// LoadCLIFrom loads CLI configuration from an explicit file path.
// A missing file is not an error; defaults and environment apply.
func LoadCLIFrom(configPath string) (*CLIConfig, error) {
	v := viper.New()

	defaults := DefaultCLI()
	v.SetDefault("api_url", defaults.APIURL)
	v.SetDefault("timeout", defaults.Timeout)
	v.SetDefault("output", defaults.Output)

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Environment variables override with CHURNCTL prefix
	v.SetEnvPrefix("CHURNCTL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	_ = v.ReadInConfig() // file may not exist yet

	cfg := DefaultCLI()
	cfg.path = configPath

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}
