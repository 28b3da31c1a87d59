// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Defaults applied where the file and flags are silent.
const (
	DefaultScrapeIntervalHours = 6
	DefaultRateLimitMs         = 3000
	DefaultMaxRetries          = 2
	DefaultRetentionDays       = 30
	DefaultTopSkills           = 10
	DefaultTargetDelaySeconds  = 5
	DefaultLocation            = "India"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Connections
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	RedisURL    string `json:"redis_url,omitempty"`    // Optional redis URL for demand caching

	// Scraping
	ScrapeIntervalHours int    `json:"scrape_interval_hours,omitempty"` // Hours between scheduler passes
	RateLimitMs         int    `json:"rate_limit_ms,omitempty"`         // Minimum ms between outbound fetches
	MaxRetries          int    `json:"max_retries,omitempty"`           // Transient fetch retry attempts
	RetentionDays       int    `json:"retention_days,omitempty"`        // Posting retention window
	TopSkills           int    `json:"top_skills,omitempty"`            // Demand aggregation bound per pass
	TargetDelaySeconds  int    `json:"target_delay_seconds,omitempty"`  // Pause between scrape targets
	DefaultLocation     string `json:"default_location,omitempty"`      // Search location for scrape targets

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty"` // Render JS-heavy boards in a headless browser
	LogJSON    bool `json:"log_json,omitempty"`    // Emit JSON logs instead of console
	Debug      bool `json:"debug,omitempty"`       // Enable debug logging
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

// FromEnv builds a configuration from environment variables. Only connection
// strings come from the environment; tuning knobs live in the file or flags.
func FromEnv() *Config {
	return &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
	}
}

// ApplyDefaults fills in zero-valued tuning fields.
func (c *Config) ApplyDefaults() {
	if c.ScrapeIntervalHours == 0 {
		c.ScrapeIntervalHours = DefaultScrapeIntervalHours
	}
	if c.RateLimitMs == 0 {
		c.RateLimitMs = DefaultRateLimitMs
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.RetentionDays == 0 {
		c.RetentionDays = DefaultRetentionDays
	}
	if c.TopSkills == 0 {
		c.TopSkills = DefaultTopSkills
	}
	if c.TargetDelaySeconds == 0 {
		c.TargetDelaySeconds = DefaultTargetDelaySeconds
	}
	if c.DefaultLocation == "" {
		c.DefaultLocation = DefaultLocation
	}
}

// Merge overlays non-zero values from other onto c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.DatabaseURL != "" {
		c.DatabaseURL = other.DatabaseURL
	}
	if other.RedisURL != "" {
		c.RedisURL = other.RedisURL
	}
	if other.ScrapeIntervalHours != 0 {
		c.ScrapeIntervalHours = other.ScrapeIntervalHours
	}
	if other.RateLimitMs != 0 {
		c.RateLimitMs = other.RateLimitMs
	}
	if other.MaxRetries != 0 {
		c.MaxRetries = other.MaxRetries
	}
	if other.RetentionDays != 0 {
		c.RetentionDays = other.RetentionDays
	}
	if other.TopSkills != 0 {
		c.TopSkills = other.TopSkills
	}
	if other.TargetDelaySeconds != 0 {
		c.TargetDelaySeconds = other.TargetDelaySeconds
	}
	if other.DefaultLocation != "" {
		c.DefaultLocation = other.DefaultLocation
	}
	if other.UseBrowser {
		c.UseBrowser = true
	}
	if other.LogJSON {
		c.LogJSON = true
	}
	if other.Debug {
		c.Debug = true
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.ScrapeIntervalHours < 0 {
		return fmt.Errorf("config error: 'scrape_interval_hours' must be non-negative")
	}
	if c.RateLimitMs < 0 {
		return fmt.Errorf("config error: 'rate_limit_ms' must be non-negative")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("config error: 'max_retries' must be non-negative")
	}
	if c.RetentionDays < 0 {
		return fmt.Errorf("config error: 'retention_days' must be non-negative")
	}
	if c.TopSkills < 0 {
		return fmt.Errorf("config error: 'top_skills' must be non-negative")
	}
	if c.TargetDelaySeconds < 0 {
		return fmt.Errorf("config error: 'target_delay_seconds' must be non-negative")
	}
	return nil
}

// RateLimit returns the politeness delay as a duration.
func (c *Config) RateLimit() time.Duration {
	return time.Duration(c.RateLimitMs) * time.Millisecond
}

// Retention returns the posting retention window as a duration.
func (c *Config) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

// ScrapeInterval returns the scheduler interval as a duration.
func (c *Config) ScrapeInterval() time.Duration {
	return time.Duration(c.ScrapeIntervalHours) * time.Hour
}

// TargetDelay returns the pause between scrape targets as a duration.
func (c *Config) TargetDelay() time.Duration {
	return time.Duration(c.TargetDelaySeconds) * time.Second
}
