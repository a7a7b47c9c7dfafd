// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Weights mirrors the scoring weight vector in config file form. Zero
// values mean "use the default".
type Weights struct {
	Experience float64 `json:"experience,omitempty"`
	Skills     float64 `json:"skills,omitempty"`
	Trajectory float64 `json:"trajectory,omitempty"`
}

// Config represents configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided
// via CLI flags.
type Config struct {
	// Job source (mutually exclusive)
	Job    string `json:"job,omitempty"`     // Path to job posting text file
	JobURL string `json:"job_url,omitempty"` // URL to fetch job posting from

	// Resume sources
	Resumes    []string `json:"resumes,omitempty"`     // Paths to resume text files
	ResumesDir string   `json:"resumes_dir,omitempty"` // Directory of resume text files

	// Scoring
	Weights  *Weights `json:"weights,omitempty"`
	DetectAI bool     `json:"detect_ai,omitempty"` // Run the AI-content audit per resume

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	UseBrowser  bool   `json:"use_browser,omitempty"`  // Use headless browser for SPA job boards
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	Concurrency int    `json:"concurrency,omitempty"`  // Parallel resume scoring workers
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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
// Required fields are handled by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}

	if c.Weights != nil {
		for name, w := range map[string]float64{
			"experience": c.Weights.Experience,
			"skills":     c.Weights.Skills,
			"trajectory": c.Weights.Trajectory,
		} {
			if w < 0 {
				return fmt.Errorf("config error: weight '%s' must be non-negative", name)
			}
		}
	}

	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}
	if c.ResumesDir != "" {
		if _, err := os.Stat(c.ResumesDir); os.IsNotExist(err) {
			return fmt.Errorf("config error: resumes directory not found: %s", c.ResumesDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if len(result.Resumes) == 0 {
		result.Resumes = defaults.Resumes
	}
	if result.ResumesDir == "" {
		result.ResumesDir = defaults.ResumesDir
	}
	if result.Weights == nil {
		result.Weights = defaults.Weights
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
