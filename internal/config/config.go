// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Data files (empty means the embedded defaults)
	Taxonomy  string `json:"taxonomy,omitempty"`  // Path to skills taxonomy JSON
	Companies string `json:"companies,omitempty"` // Path to company profiles JSON
	Questions string `json:"questions,omitempty"` // Path to question bank JSON

	// Plan defaults
	Weeks          int `json:"weeks,omitempty"`            // Study plan length in weeks
	MinutesPerWeek int `json:"minutes_per_week,omitempty"` // Weekly study budget

	// Gap policy
	MinCategorySkills int `json:"min_category_skills,omitempty"` // Partial-match threshold

	// Behavior
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
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

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Weeks < 0 {
		return fmt.Errorf("config error: 'weeks' must be non-negative")
	}
	if c.MinutesPerWeek < 0 {
		return fmt.Errorf("config error: 'minutes_per_week' must be non-negative")
	}
	if c.MinCategorySkills < 0 {
		return fmt.Errorf("config error: 'min_category_skills' must be non-negative")
	}

	// Validate file paths exist (if specified)
	for _, p := range []struct{ name, path string }{
		{"taxonomy", c.Taxonomy},
		{"companies", c.Companies},
		{"questions", c.Questions},
	} {
		if p.path == "" {
			continue
		}
		if _, err := os.Stat(p.path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", p.name, p.path)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Taxonomy == "" {
		result.Taxonomy = defaults.Taxonomy
	}
	if result.Companies == "" {
		result.Companies = defaults.Companies
	}
	if result.Questions == "" {
		result.Questions = defaults.Questions
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	if result.Weeks == 0 {
		result.Weeks = defaults.Weeks
	}
	if result.MinutesPerWeek == 0 {
		result.MinutesPerWeek = defaults.MinutesPerWeek
	}
	if result.MinCategorySkills == 0 {
		result.MinCategorySkills = defaults.MinCategorySkills
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
