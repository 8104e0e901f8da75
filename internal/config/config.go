// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Default configuration values applied when neither the config file nor a
// flag sets them.
const (
	DefaultTopN      = 3
	DefaultCachePath = ".skillscout/search_cache.json"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via
// CLI flags or environment variables.
type Config struct {
	// Credentials
	GitHubToken  string `json:"github_token,omitempty"`   // GitHub API token (raises the search rate limit)
	GeminiAPIKey string `json:"gemini_api_key,omitempty"` // Gemini API key

	// Network
	ProxyURL string `json:"proxy_url,omitempty" validate:"omitempty,url"` // Explicit HTTP proxy for GitHub requests

	// Search tuning
	StarThreshold    int `json:"star_threshold,omitempty" validate:"gte=0"`    // Initial minimum star count
	RelaxedThreshold int `json:"relaxed_threshold,omitempty" validate:"gte=0"` // Star count after a relax decision
	TopN             int `json:"top_n,omitempty" validate:"gte=0,lte=10"`      // Number of recommendations to return

	// Paths
	CachePath string `json:"cache_path,omitempty"` // Search cache snapshot location
	StatePath string `json:"state_path,omitempty"` // Default retry-state file for suspend/resume

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed progress information
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

// FromEnv builds a Config from environment variables alone. Used when no
// config file is given.
func FromEnv() *Config {
	cfg := &Config{}
	cfg.ApplyEnv()
	return cfg
}

// ApplyEnv overlays environment variables onto the config. The environment
// wins only where the config file left a field empty, so an explicit file
// value stays authoritative.
func (c *Config) ApplyEnv() {
	if c.GitHubToken == "" {
		c.GitHubToken = os.Getenv("GITHUB_TOKEN")
	}
	if c.GeminiAPIKey == "" {
		c.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.ProxyURL == "" {
		c.ProxyURL = os.Getenv("SKILLSCOUT_PROXY")
	}
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required credentials since the core reports
// those as configuration failures when a call actually needs them.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.RelaxedThreshold > 0 && c.StarThreshold > 0 && c.RelaxedThreshold > c.StarThreshold {
		return fmt.Errorf("config error: 'relaxed_threshold' must not exceed 'star_threshold'")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This applies config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.GitHubToken == "" {
		result.GitHubToken = defaults.GitHubToken
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.ProxyURL == "" {
		result.ProxyURL = defaults.ProxyURL
	}
	if result.CachePath == "" {
		result.CachePath = defaults.CachePath
	}
	if result.StatePath == "" {
		result.StatePath = defaults.StatePath
	}

	if result.StarThreshold == 0 {
		result.StarThreshold = defaults.StarThreshold
	}
	if result.RelaxedThreshold == 0 {
		result.RelaxedThreshold = defaults.RelaxedThreshold
	}
	if result.TopN == 0 {
		if defaults.TopN > 0 {
			result.TopN = defaults.TopN
		} else {
			result.TopN = DefaultTopN
		}
	}

	if result.CachePath == "" {
		result.CachePath = DefaultCachePath
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
