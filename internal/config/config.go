// Package config provides configuration loading and validation for the avatar server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the server configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or come from the environment.
type Config struct {
	// Server
	Port       int  `json:"port,omitempty"`        // HTTP listen port
	StreamChat bool `json:"stream_chat,omitempty"` // Stream chat responses as SSE instead of blocking JSON

	// Subject
	SubjectName string `json:"subject_name,omitempty"` // Name the avatar speaks as
	ResumePath  string `json:"resume_path,omitempty"`  // Path to the resume PDF
	SummaryPath string `json:"summary_path,omitempty"` // Path to the profile summary text file
	StaticDir   string `json:"static_dir,omitempty"`   // Directory holding the landing page and assets

	// Completion service
	APIKey string `json:"api_key,omitempty"` // Gemini API key (GEMINI_API_KEY overrides)
	Model  string `json:"model,omitempty"`   // Gemini model name
}

// Defaults returns the built-in configuration. Paths mirror the layout the
// frontend expects: a files/ directory next to the binary and a static/ dir.
func Defaults() Config {
	return Config{
		Port:        8000,
		SubjectName: "Rajath",
		ResumePath:  "files/resume.pdf",
		SummaryPath: "files/summary.txt",
		StaticDir:   "static",
		Model:       "gemini-2.5-flash",
	}
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

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.SubjectName == "" {
		result.SubjectName = defaults.SubjectName
	}
	if result.ResumePath == "" {
		result.ResumePath = defaults.ResumePath
	}
	if result.SummaryPath == "" {
		result.SummaryPath = defaults.SummaryPath
	}
	if result.StaticDir == "" {
		result.StaticDir = defaults.StaticDir
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv overrides config values from the process environment.
// GEMINI_API_KEY and PORT take precedence over file values.
func (c *Config) ApplyEnv() error {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.APIKey = key
	}
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("config error: invalid PORT %q: %w", port, err)
		}
		c.Port = p
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: port %d out of range", c.Port)
	}
	if c.APIKey == "" {
		return fmt.Errorf("config error: API key is required (set GEMINI_API_KEY)")
	}
	return nil
}
