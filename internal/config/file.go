package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the optional on-disk config for the CLI, read from
// <state dir>/config.yaml. Env vars always win over file values.
type FileConfig struct {
	APIBaseURL  string `yaml:"api_base_url"`
	PersistMode string `yaml:"persist_mode"`
	LogLevel    string `yaml:"log_level"`
	MetricsAddr string `yaml:"metrics_addr"`
}

// LoadFile overlays config.yaml values onto cfg for fields the
// environment left at their defaults. A missing file is not an error.
func LoadFile(cfg *Config) error {
	path := filepath.Join(cfg.StateDir, "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return err
	}

	if fc.APIBaseURL != "" && os.Getenv("FIELDOS_API_URL") == "" {
		cfg.APIBaseURL = fc.APIBaseURL
	}
	if fc.PersistMode != "" && os.Getenv("FIELDOS_PERSIST") == "" {
		cfg.PersistMode = fc.PersistMode
	}
	if fc.LogLevel != "" && os.Getenv("LOG_LEVEL") == "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.MetricsAddr != "" && os.Getenv("METRICS_ADDR") == "" {
		cfg.MetricsAddr = fc.MetricsAddr
	}
	return nil
}
