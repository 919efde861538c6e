package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
// API Key Precedence Order:
// 1. Config file values
// 2. Environment variables (RESUMESCREEN_AI_APIKEY, GEMINI_API_KEY)
// 3. Default values
type Config struct {
	AI            AIConfig            `mapstructure:"ai"`
	Screening     ScreeningConfig     `mapstructure:"screening"`
	App           AppConfig           `mapstructure:"app"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// AIConfig holds scoring-model configuration.
type AIConfig struct {
	Provider       string               `mapstructure:"provider"`
	Model          string               `mapstructure:"model"`
	APIKey         string               `mapstructure:"apiKey"`
	Timeout        time.Duration        `mapstructure:"timeout"`
	Temperature    float32              `mapstructure:"temperature"`
	MaxRetries     int                  `mapstructure:"maxRetries"`
	RetryDelay     time.Duration        `mapstructure:"retryDelay"`
	SystemPrompt   string               `mapstructure:"systemPrompt"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuitBreaker"`
}

// CircuitBreakerConfig represents circuit breaker configuration.
type CircuitBreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	MaxRequests      uint32        `mapstructure:"maxRequests"`
	Interval         time.Duration `mapstructure:"interval"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MinRequests      uint32        `mapstructure:"minRequests"`
	FailureThreshold float64       `mapstructure:"failureThreshold"`
}

// ScreeningConfig holds batch coordination settings. The batch cap and the
// inter-candidate delay exist to stay inside upstream rate and cost limits;
// pacing is deliberately sequential and fixed rather than concurrent.
type ScreeningConfig struct {
	MaxBatchSize   int           `mapstructure:"maxBatchSize"`
	CandidateDelay time.Duration `mapstructure:"candidateDelay"`
}

// AppConfig holds general application configuration.
type AppConfig struct {
	LogLevel         string   `mapstructure:"logLevel"`
	DefaultFormat    string   `mapstructure:"defaultFormat"`
	SupportedFormats []string `mapstructure:"supportedFormats"`
	MaxFileSize      int64    `mapstructure:"maxFileSize"`
}

// ObservabilityConfig holds tracing configuration.
type ObservabilityConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	ServiceName    string  `mapstructure:"serviceName"`
	ServiceVersion string  `mapstructure:"serviceVersion"`
	ConsoleOutput  bool    `mapstructure:"consoleOutput"`
	SampleRate     float64 `mapstructure:"sampleRate"`
	OTLP           OTLPConfig `mapstructure:"otlp"`
}

// OTLPConfig holds OTLP trace exporter configuration.
type OTLPConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
	Insecure bool   `mapstructure:"insecure"`
}

// LoadConfig loads configuration from defaults, an optional YAML config file
// and environment variables.
func LoadConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("RESUMESCREEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/resumescreen/")
	v.AddConfigPath("$HOME/.resumescreen")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyFallbacks()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.apiKey", "")
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.temperature", 0.2)
	v.SetDefault("ai.maxRetries", 2)
	v.SetDefault("ai.retryDelay", 5*time.Second)
	v.SetDefault("ai.systemPrompt", "")

	v.SetDefault("ai.circuitBreaker.enabled", true)
	v.SetDefault("ai.circuitBreaker.maxRequests", 3)
	v.SetDefault("ai.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("ai.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("ai.circuitBreaker.minRequests", 3)
	v.SetDefault("ai.circuitBreaker.failureThreshold", 0.6)

	v.SetDefault("screening.maxBatchSize", 5)
	v.SetDefault("screening.candidateDelay", 8*time.Second)

	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "text")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown", "csv"})
	v.SetDefault("app.maxFileSize", int64(10*1024*1024))

	v.SetDefault("observability.enabled", false)
	v.SetDefault("observability.serviceName", "resumescreen")
	v.SetDefault("observability.serviceVersion", "dev")
	v.SetDefault("observability.consoleOutput", false)
	v.SetDefault("observability.sampleRate", 1.0)
	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.endpoint", "localhost:4318")
	v.SetDefault("observability.otlp.insecure", true)
}

// applyFallbacks fills settings viper cannot express as defaults, including
// the conventional GEMINI_API_KEY environment variable.
func (c *Config) applyFallbacks() {
	if c.AI.APIKey == "" {
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			c.AI.APIKey = key
		}
	}
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	if c.AI.Provider == "" {
		return fmt.Errorf("ai.provider must not be empty")
	}
	if c.AI.Model == "" {
		return fmt.Errorf("ai.model must not be empty")
	}
	if c.AI.MaxRetries < 1 {
		return fmt.Errorf("ai.maxRetries must be at least 1, got %d", c.AI.MaxRetries)
	}
	if c.AI.RetryDelay < 0 {
		return fmt.Errorf("ai.retryDelay must not be negative")
	}
	if c.Screening.MaxBatchSize < 1 {
		return fmt.Errorf("screening.maxBatchSize must be at least 1, got %d", c.Screening.MaxBatchSize)
	}
	if c.Screening.CandidateDelay < 0 {
		return fmt.Errorf("screening.candidateDelay must not be negative")
	}
	if c.AI.CircuitBreaker.Enabled {
		if c.AI.CircuitBreaker.FailureThreshold <= 0 || c.AI.CircuitBreaker.FailureThreshold > 1 {
			return fmt.Errorf("ai.circuitBreaker.failureThreshold must be in (0,1], got %v",
				c.AI.CircuitBreaker.FailureThreshold)
		}
	}
	switch c.App.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("app.logLevel must be one of debug, info, warn, error; got %q", c.App.LogLevel)
	}
	return nil
}
