package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		AI: AIConfig{
			Provider:   "gemini",
			Model:      "gemini-2.0-flash",
			MaxRetries: 2,
			RetryDelay: 5 * time.Second,
		},
		Screening: ScreeningConfig{
			MaxBatchSize:   5,
			CandidateDelay: 8 * time.Second,
		},
		App: AppConfig{
			LogLevel: "info",
		},
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.AI.Provider != "gemini" {
		t.Errorf("AI.Provider = %q, want gemini", cfg.AI.Provider)
	}
	if cfg.AI.MaxRetries != 2 {
		t.Errorf("AI.MaxRetries = %d, want 2", cfg.AI.MaxRetries)
	}
	if cfg.AI.RetryDelay != 5*time.Second {
		t.Errorf("AI.RetryDelay = %v, want 5s", cfg.AI.RetryDelay)
	}
	if cfg.Screening.MaxBatchSize != 5 {
		t.Errorf("Screening.MaxBatchSize = %d, want 5", cfg.Screening.MaxBatchSize)
	}
	if cfg.Screening.CandidateDelay != 8*time.Second {
		t.Errorf("Screening.CandidateDelay = %v, want 8s", cfg.Screening.CandidateDelay)
	}
	if cfg.App.DefaultFormat != "text" {
		t.Errorf("App.DefaultFormat = %q, want text", cfg.App.DefaultFormat)
	}
	if len(cfg.App.SupportedFormats) != 4 {
		t.Errorf("App.SupportedFormats = %v, want 4 formats", cfg.App.SupportedFormats)
	}
	if !cfg.AI.CircuitBreaker.Enabled {
		t.Error("AI.CircuitBreaker.Enabled = false, want true by default")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty provider", func(c *Config) { c.AI.Provider = "" }, true},
		{"empty model", func(c *Config) { c.AI.Model = "" }, true},
		{"zero retries", func(c *Config) { c.AI.MaxRetries = 0 }, true},
		{"negative retry delay", func(c *Config) { c.AI.RetryDelay = -time.Second }, true},
		{"zero batch size", func(c *Config) { c.Screening.MaxBatchSize = 0 }, true},
		{"negative candidate delay", func(c *Config) { c.Screening.CandidateDelay = -time.Second }, true},
		{"bad log level", func(c *Config) { c.App.LogLevel = "verbose" }, true},
		{"bad breaker threshold", func(c *Config) {
			c.AI.CircuitBreaker.Enabled = true
			c.AI.CircuitBreaker.FailureThreshold = 1.5
		}, true},
		{"disabled breaker skips threshold check", func(c *Config) {
			c.AI.CircuitBreaker.Enabled = false
			c.AI.CircuitBreaker.FailureThreshold = 1.5
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAPIKeyFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "from-env")

	cfg := validConfig()
	cfg.applyFallbacks()
	if cfg.AI.APIKey != "from-env" {
		t.Errorf("APIKey = %q, want from-env", cfg.AI.APIKey)
	}

	// An explicitly configured key wins over the environment.
	cfg = validConfig()
	cfg.AI.APIKey = "from-config"
	cfg.applyFallbacks()
	if cfg.AI.APIKey != "from-config" {
		t.Errorf("APIKey = %q, want from-config", cfg.AI.APIKey)
	}
}
