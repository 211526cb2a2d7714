// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Defaults applied when neither the config file, the environment nor a flag
// supplies a value.
const (
	DefaultBackendURL = "http://localhost:5000"
	// DefaultTimeoutSeconds bounds every request to the matching service.
	DefaultTimeoutSeconds = 30
	// DefaultNumRecommendations is the wizard submission size.
	DefaultNumRecommendations = 5
	// GoalNumRecommendations is the size used by the goal-driven flow.
	GoalNumRecommendations = 20
	DefaultUserID          = "default_user"
)

// Environment variables that override file values.
const (
	EnvBackendURL  = "WIZARD_BACKEND_URL"
	EnvDatabaseURL = "DATABASE_URL"
	EnvUserID      = "WIZARD_USER_ID"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	BackendURL         string `json:"backend_url,omitempty"`         // Matching service base URL
	TimeoutSeconds     int    `json:"timeout_seconds,omitempty"`     // Per-request timeout
	NumRecommendations int    `json:"num_recommendations,omitempty"` // Records requested on submit
	DatabaseURL        string `json:"database_url,omitempty"`        // PostgreSQL URL; profiles use the service when empty
	UserID             string `json:"user_id,omitempty"`             // Profile owner
	Verbose            bool   `json:"verbose,omitempty"`             // Debug logging
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		BackendURL:         DefaultBackendURL,
		TimeoutSeconds:     DefaultTimeoutSeconds,
		NumRecommendations: DefaultNumRecommendations,
		UserID:             DefaultUserID,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns a copy of c with environment overrides applied.
func (c *Config) FromEnv() Config {
	result := *c
	if v := os.Getenv(EnvBackendURL); v != "" {
		result.BackendURL = v
	}
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		result.DatabaseURL = v
	}
	if v := os.Getenv(EnvUserID); v != "" {
		result.UserID = v
	}
	return result
}

// Validate checks that the configuration has valid values.
// Zero values are accepted; MergeWithDefaults fills them.
func (c *Config) Validate() error {
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'timeout_seconds' must be non-negative")
	}
	if c.NumRecommendations < 0 || c.NumRecommendations > 100 {
		return fmt.Errorf("config error: 'num_recommendations' must be between 1 and 100")
	}
	if c.BackendURL != "" {
		u, err := url.Parse(c.BackendURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("config error: 'backend_url' must be an http(s) URL: %s", c.BackendURL)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.BackendURL == "" {
		result.BackendURL = defaults.BackendURL
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.UserID == "" {
		result.UserID = defaults.UserID
	}
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if result.NumRecommendations == 0 {
		result.NumRecommendations = defaults.NumRecommendations
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
