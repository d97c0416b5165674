package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SourceConfig describes one remote listing source.
type SourceConfig struct {
	Name   string `yaml:"name"`
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key,omitempty"`
}

// NarrativeConfig configures the external text-generation collaborator.
// Without an API key the deterministic template summary is used.
type NarrativeConfig struct {
	APIKey  string `yaml:"api_key,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
	Model   string `yaml:"model,omitempty"`
}

// CLIConfig holds configuration persisted to disk.
type CLIConfig struct {
	DBPath        string          `yaml:"db_path,omitempty"`
	Sources       []SourceConfig  `yaml:"sources,omitempty"`
	Narrative     NarrativeConfig `yaml:"narrative,omitempty"`
	WeightsFile   string          `yaml:"weights_file,omitempty"`
	RateLimit     int             `yaml:"rate_limit,omitempty"`     // requests per source per minute
	SourceTimeout int             `yaml:"source_timeout,omitempty"` // per-source query timeout in seconds
}

// configPath returns the path to the config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "pf", "config.yaml"), nil
}

// loadConfig reads the config from disk, applying env overrides.
// Returns a zero-value config if the file doesn't exist.
func loadConfig() (CLIConfig, error) {
	var cfg CLIConfig

	path, err := configPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	if v := os.Getenv("PF_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PF_NARRATIVE_API_KEY"); v != "" {
		cfg.Narrative.APIKey = v
	}
	if v := os.Getenv("PF_NARRATIVE_BASE_URL"); v != "" {
		cfg.Narrative.BaseURL = v
	}

	return cfg, nil
}
