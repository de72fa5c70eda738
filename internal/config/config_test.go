// ABOUTME: Tests for layered configuration
// ABOUTME: Verifies defaults, YAML file merge, env precedence and validation
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Model != "gpt-4o-mini" {
		t.Errorf("Model = %s, want gpt-4o-mini", cfg.Model)
	}
	if cfg.BaseURL != "" {
		t.Errorf("BaseURL = %s, want empty", cfg.BaseURL)
	}
	if cfg.Timeout != 120*time.Second {
		t.Errorf("Timeout = %v, want 120s", cfg.Timeout)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 2*time.Second {
		t.Errorf("RetryDelay = %v, want 2s", cfg.RetryDelay)
	}
	if cfg.BatchSize != 3 {
		t.Errorf("BatchSize = %d, want 3", cfg.BatchSize)
	}
	if cfg.MaxTokens != 20000 {
		t.Errorf("MaxTokens = %d, want 20000", cfg.MaxTokens)
	}
	if cfg.Concurrency != 1 {
		t.Errorf("Concurrency = %d, want 1", cfg.Concurrency)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	os.Setenv("OPENAI_API_KEY", "test-key")
	os.Setenv("BEAMERTRANS_MODEL", "glm-4-flash")
	os.Setenv("BEAMERTRANS_BASE_URL", "https://open.bigmodel.cn/api/paas/v4")
	os.Setenv("OPENAI_TIMEOUT", "60s")
	os.Setenv("OPENAI_MAX_RETRIES", "5")
	os.Setenv("OPENAI_RETRY_DELAY", "3s")
	os.Setenv("BEAMERTRANS_BATCH_SIZE", "8")
	os.Setenv("BEAMERTRANS_MAX_TOKENS", "4000")
	os.Setenv("BEAMERTRANS_CONCURRENCY", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.OpenAIKey != "test-key" {
		t.Errorf("OpenAIKey = %s, want test-key", cfg.OpenAIKey)
	}
	if cfg.Model != "glm-4-flash" {
		t.Errorf("Model = %s, want glm-4-flash", cfg.Model)
	}
	if cfg.BaseURL != "https://open.bigmodel.cn/api/paas/v4" {
		t.Errorf("BaseURL = %s, want custom gateway", cfg.BaseURL)
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s", cfg.Timeout)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 3*time.Second {
		t.Errorf("RetryDelay = %v, want 3s", cfg.RetryDelay)
	}
	if cfg.BatchSize != 8 {
		t.Errorf("BatchSize = %d, want 8", cfg.BatchSize)
	}
	if cfg.MaxTokens != 4000 {
		t.Errorf("MaxTokens = %d, want 4000", cfg.MaxTokens)
	}
	if cfg.Concurrency != 4 {
		t.Errorf("Concurrency = %d, want 4", cfg.Concurrency)
	}
}

func TestLoadWithFile(t *testing.T) {
	os.Clearenv()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	text := `model: qwen-max
base_url: https://dashscope.aliyuncs.com/compatible-mode/v1
timeout: 90s
batch_size: 5
max_tokens: 8000
concurrency: 2
template: templates/ctex.tex
glossary: terms.txt
`
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := LoadWithFile(path)
	if err != nil {
		t.Fatalf("LoadWithFile() failed: %v", err)
	}

	if cfg.Model != "qwen-max" {
		t.Errorf("Model = %s, want qwen-max", cfg.Model)
	}
	if cfg.Timeout != 90*time.Second {
		t.Errorf("Timeout = %v, want 90s", cfg.Timeout)
	}
	if cfg.BatchSize != 5 {
		t.Errorf("BatchSize = %d, want 5", cfg.BatchSize)
	}
	if cfg.MaxTokens != 8000 {
		t.Errorf("MaxTokens = %d, want 8000", cfg.MaxTokens)
	}
	if cfg.Concurrency != 2 {
		t.Errorf("Concurrency = %d, want 2", cfg.Concurrency)
	}
	if cfg.TemplatePath != "templates/ctex.tex" {
		t.Errorf("TemplatePath = %s, want templates/ctex.tex", cfg.TemplatePath)
	}
	if cfg.GlossaryPath != "terms.txt" {
		t.Errorf("GlossaryPath = %s, want terms.txt", cfg.GlossaryPath)
	}
	// Fields absent from the file keep their defaults.
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want default 3", cfg.MaxRetries)
	}
}

func TestLoadWithFile_EnvWinsOverFile(t *testing.T) {
	os.Clearenv()
	os.Setenv("BEAMERTRANS_MODEL", "from-env")
	os.Setenv("BEAMERTRANS_BATCH_SIZE", "9")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("model: from-file\nbatch_size: 2\nmax_tokens: 500\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := LoadWithFile(path)
	if err != nil {
		t.Fatalf("LoadWithFile() failed: %v", err)
	}
	if cfg.Model != "from-env" {
		t.Errorf("Model = %s, want env to override file", cfg.Model)
	}
	if cfg.BatchSize != 9 {
		t.Errorf("BatchSize = %d, want env to override file", cfg.BatchSize)
	}
	if cfg.MaxTokens != 500 {
		t.Errorf("MaxTokens = %d, want file value 500", cfg.MaxTokens)
	}
}

func TestLoadWithFile_Errors(t *testing.T) {
	os.Clearenv()
	dir := t.TempDir()

	if _, err := LoadWithFile(filepath.Join(dir, "missing.yml")); err == nil {
		t.Error("LoadWithFile() error = nil for missing file, want error")
	}

	bad := filepath.Join(dir, "bad.yml")
	if err := os.WriteFile(bad, []byte("timeout: [not, a, duration]\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := LoadWithFile(bad); err == nil {
		t.Error("LoadWithFile() error = nil for malformed file, want error")
	}

	badDur := filepath.Join(dir, "baddur.yml")
	if err := os.WriteFile(badDur, []byte("timeout: soon\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := LoadWithFile(badDur); err == nil {
		t.Error("LoadWithFile() error = nil for bad duration, want error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
		{"retries too high", func(c *Config) { c.MaxRetries = 15 }},
		{"negative retries", func(c *Config) { c.MaxRetries = -1 }},
		{"negative retry delay", func(c *Config) { c.RetryDelay = -time.Second }},
		{"zero batch size", func(c *Config) { c.BatchSize = 0 }},
		{"zero max tokens", func(c *Config) { c.MaxTokens = 0 }},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }},
		{"absurd concurrency", func(c *Config) { c.Concurrency = 1000 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}

	if err := defaults().Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v, want nil", err)
	}
}
