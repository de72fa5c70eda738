// ABOUTME: Layered configuration for the translation pipeline
// ABOUTME: Built-in defaults, optional YAML file, environment overrides
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hwei/beamertrans/internal/batch"
)

// Config holds all configuration for the translation pipeline.
type Config struct {
	// Gateway settings
	OpenAIKey  string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration

	// Pipeline settings
	BatchSize   int
	MaxTokens   int
	Concurrency int

	// Optional artifact paths
	TemplatePath string
	GlossaryPath string
}

func defaults() *Config {
	return &Config{
		Model:       "gpt-4o-mini",
		Timeout:     120 * time.Second,
		MaxRetries:  3,
		RetryDelay:  2 * time.Second,
		BatchSize:   batch.DefaultMaxUnits,
		MaxTokens:   batch.DefaultMaxTokens,
		Concurrency: 1,
	}
}

// Load reads configuration from environment variables over the built-in
// defaults.
func Load() (*Config, error) {
	return LoadWithFile("")
}

// LoadWithFile layers configuration sources: built-in defaults first, then
// the optional YAML file at path, then environment variables. An empty path
// skips the file layer. The API key is read from the environment only.
func LoadWithFile(path string) (*Config, error) {
	base := defaults()
	if path != "" {
		if err := base.applyFile(path); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		Model:        getEnv("BEAMERTRANS_MODEL", base.Model),
		BaseURL:      getEnv("BEAMERTRANS_BASE_URL", base.BaseURL),
		Timeout:      getEnvDuration("OPENAI_TIMEOUT", base.Timeout),
		MaxRetries:   getEnvInt("OPENAI_MAX_RETRIES", base.MaxRetries),
		RetryDelay:   getEnvDuration("OPENAI_RETRY_DELAY", base.RetryDelay),
		BatchSize:    getEnvInt("BEAMERTRANS_BATCH_SIZE", base.BatchSize),
		MaxTokens:    getEnvInt("BEAMERTRANS_MAX_TOKENS", base.MaxTokens),
		Concurrency:  getEnvInt("BEAMERTRANS_CONCURRENCY", base.Concurrency),
		TemplatePath: base.TemplatePath,
		GlossaryPath: base.GlossaryPath,
	}

	return cfg, cfg.Validate()
}

// fileValues mirrors the optional YAML config file. Pointer fields
// distinguish "absent" from an explicit zero.
type fileValues struct {
	Model       string `yaml:"model"`
	BaseURL     string `yaml:"base_url"`
	Timeout     string `yaml:"timeout"`
	MaxRetries  *int   `yaml:"max_retries"`
	RetryDelay  string `yaml:"retry_delay"`
	BatchSize   *int   `yaml:"batch_size"`
	MaxTokens   *int   `yaml:"max_tokens"`
	Concurrency *int   `yaml:"concurrency"`
	Template    string `yaml:"template"`
	Glossary    string `yaml:"glossary"`
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	var fv fileValues
	if err := yaml.Unmarshal(data, &fv); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if fv.Model != "" {
		c.Model = fv.Model
	}
	if fv.BaseURL != "" {
		c.BaseURL = fv.BaseURL
	}
	if fv.Timeout != "" {
		d, err := time.ParseDuration(fv.Timeout)
		if err != nil {
			return fmt.Errorf("config file %s: timeout: %w", path, err)
		}
		c.Timeout = d
	}
	if fv.MaxRetries != nil {
		c.MaxRetries = *fv.MaxRetries
	}
	if fv.RetryDelay != "" {
		d, err := time.ParseDuration(fv.RetryDelay)
		if err != nil {
			return fmt.Errorf("config file %s: retry_delay: %w", path, err)
		}
		c.RetryDelay = d
	}
	if fv.BatchSize != nil {
		c.BatchSize = *fv.BatchSize
	}
	if fv.MaxTokens != nil {
		c.MaxTokens = *fv.MaxTokens
	}
	if fv.Concurrency != nil {
		c.Concurrency = *fv.Concurrency
	}
	if fv.Template != "" {
		c.TemplatePath = fv.Template
	}
	if fv.Glossary != "" {
		c.GlossaryPath = fv.Glossary
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("OPENAI_TIMEOUT must be positive, got %v", c.Timeout)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("OPENAI_RETRY_DELAY must not be negative, got %v", c.RetryDelay)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("BEAMERTRANS_BATCH_SIZE must be >= 1, got %d", c.BatchSize)
	}
	if c.MaxTokens < 1 {
		return fmt.Errorf("BEAMERTRANS_MAX_TOKENS must be >= 1, got %d", c.MaxTokens)
	}
	if c.Concurrency < 1 || c.Concurrency > 64 {
		return fmt.Errorf("BEAMERTRANS_CONCURRENCY must be 1-64, got %d", c.Concurrency)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
