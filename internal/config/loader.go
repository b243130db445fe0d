package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"securiwatch/internal/types"
)

// LoadConfig reads the configuration from the given path
func LoadConfig(path string) (*types.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var cfg types.Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the configuration used when no file is given
func Default() *types.Config {
	cfg := &types.Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *types.Config) {
	if cfg.Input.AuthLogPath == "" {
		cfg.Input.AuthLogPath = "/var/log/auth.log"
	}
	if cfg.Input.Lines <= 0 {
		cfg.Input.Lines = 100
	}
	if cfg.Input.PollInterval == "" {
		cfg.Input.PollInterval = "60s"
	}
	if cfg.Storage.DBPath == "" {
		cfg.Storage.DBPath = "securiwatch.db"
	}
	if cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = ":9090"
	}
	if cfg.Dashboard.Port == "" {
		cfg.Dashboard.Port = ":8080"
	}
}
