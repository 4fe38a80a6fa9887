// Package config resolves pipeline configuration from an optional YAML file
// and environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment variables.
const (
	EnvAPIKey            = "GEMINI_API_KEY"
	EnvModel             = "GEMINI_MODEL"
	EnvBaseURL           = "GEMINI_API_URL"
	EnvMinWords          = "EXAMGEN_MIN_WORDS"
	EnvRequestsPerMinute = "EXAMGEN_REQUESTS_PER_MINUTE"
)

// Defaults mirroring the folder layout the tool has always used.
const (
	DefaultSourceDir   = "question_papers"
	DefaultJSONDir     = "json"
	DefaultMarkdownDir = "answers_markdown"
	DefaultPDFDir      = "generated_pdf"
	DefaultTopic       = "sexual harassment"

	// DefaultConfigFile is looked for in the working directory.
	DefaultConfigFile = "examgen.yaml"
)

// Config carries all pipeline settings.
type Config struct {
	SourceDir   string `yaml:"source_dir"`
	JSONDir     string `yaml:"json_dir"`
	MarkdownDir string `yaml:"markdown_dir"`
	PDFDir      string `yaml:"pdf_dir"`
	Topic       string `yaml:"topic"`

	Model             string `yaml:"model"`
	BaseURL           string `yaml:"base_url"`
	MinAnswerWords    int    `yaml:"min_answer_words"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`

	// APIKey comes from the environment only, never from the config file.
	APIKey string `yaml:"-"`
}

// Load builds the configuration: defaults, then the optional YAML config
// file, then environment variable overrides. The API key is validated by
// Validate, not here, so callers can separate load and fatal-check.
func Load() (*Config, error) {
	cfg := &Config{
		SourceDir:   DefaultSourceDir,
		JSONDir:     DefaultJSONDir,
		MarkdownDir: DefaultMarkdownDir,
		PDFDir:      DefaultPDFDir,
		Topic:       DefaultTopic,
	}

	if data, err := os.ReadFile(DefaultConfigFile); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", DefaultConfigFile, err)
		}
	}

	cfg.APIKey = os.Getenv(EnvAPIKey)
	cfg.Model = getEnvString(EnvModel, cfg.Model)
	cfg.BaseURL = getEnvString(EnvBaseURL, cfg.BaseURL)
	cfg.MinAnswerWords = getEnvInt(EnvMinWords, cfg.MinAnswerWords)
	cfg.RequestsPerMinute = getEnvInt(EnvRequestsPerMinute, cfg.RequestsPerMinute)

	return cfg, nil
}

// Validate reports the fatal configuration errors that must abort the
// process before any work begins.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("%s environment variable not set", EnvAPIKey)
	}
	return nil
}

// getEnvString gets a string environment variable with a default value.
func getEnvString(envVar string, defaultValue string) string {
	if value := os.Getenv(envVar); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with a default value.
func getEnvInt(envVar string, defaultValue int) int {
	if value := os.Getenv(envVar); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
