package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported language-model providers.
const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderLiteLLM   = "litellm"
	ProviderOllama    = "ollama"
	ProviderOpenAI    = "openai"
)

// Providers lists every accepted LLM provider name.
var Providers = []string{ProviderAnthropic, ProviderGemini, ProviderLiteLLM, ProviderOllama, ProviderOpenAI}

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Overseerr OverseerrConfig `mapstructure:"overseerr"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host        string          `mapstructure:"host"`
	Port        int             `mapstructure:"port"`
	CORSOrigins []string        `mapstructure:"cors_origins"`
	BodyLimit   string          `mapstructure:"body_limit"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig bounds prompt requests per client IP.
type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute"`
	Burst             int `mapstructure:"burst"`
}

// LLMConfig selects and parameterizes the language-model provider.
type LLMConfig struct {
	Provider    string        `mapstructure:"provider"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	BaseURL     string        `mapstructure:"base_url"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// OverseerrConfig points at the request backend.
type OverseerrConfig struct {
	URL     string        `mapstructure:"url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        4321,
			CORSOrigins: []string{"*"},
			BodyLimit:   "64K",
			RateLimit:   RateLimitConfig{RequestsPerMinute: 30, Burst: 5},
		},
		LLM: LLMConfig{
			Provider:    ProviderOpenAI,
			Temperature: 0.3,
			Timeout:     60 * time.Second,
		},
		Overseerr: OverseerrConfig{
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 30,
			Compress:   true,
		},
	}
}

// envAliases binds the unprefixed variable names the service has always read.
var envAliases = map[string]string{
	"llm.provider":      "LLM_PROVIDER",
	"llm.api_key":       "LLM_API_KEY",
	"llm.model":         "LLM_MODEL",
	"llm.base_url":      "LLM_BASE_URL",
	"llm.temperature":   "LLM_TEMPERATURE",
	"llm.timeout":       "LLM_TIMEOUT",
	"overseerr.url":     "OVERSEERR_URL",
	"overseerr.api_key": "OVERSEERR_API_KEY",
	"overseerr.timeout": "OVERSEERR_TIMEOUT",
	"server.port":       "PORT",
	"server.host":       "HOST",
	"logging.level":     "LOG_LEVEL",
	"logging.format":    "LOG_FORMAT",
	"logging.path":      "LOG_PATH",
}

// Load reads configuration from .env, the config file, and environment variables.
// Priority: environment variables > config file > defaults
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.promptseerr")
	}

	v.SetEnvPrefix("PROMPTSEERR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, alias := range envAliases {
		prefixed := "PROMPTSEERR_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, alias); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", alias, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.cors_origins", d.Server.CORSOrigins)
	v.SetDefault("server.body_limit", d.Server.BodyLimit)
	v.SetDefault("server.rate_limit.requests_per_minute", d.Server.RateLimit.RequestsPerMinute)
	v.SetDefault("server.rate_limit.burst", d.Server.RateLimit.Burst)

	v.SetDefault("llm.provider", d.LLM.Provider)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.temperature", d.LLM.Temperature)
	v.SetDefault("llm.timeout", d.LLM.Timeout)

	v.SetDefault("overseerr.url", "")
	v.SetDefault("overseerr.api_key", "")
	v.SetDefault("overseerr.timeout", d.Overseerr.Timeout)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.path", "")
	v.SetDefault("logging.max_size_mb", d.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", d.Logging.MaxBackups)
	v.SetDefault("logging.max_age_days", d.Logging.MaxAgeDays)
	v.SetDefault("logging.compress", d.Logging.Compress)
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var errs []error

	if !isProvider(c.LLM.Provider) {
		errs = append(errs, fmt.Errorf("llm.provider %q must be one of %s", c.LLM.Provider, strings.Join(Providers, ", ")))
	}
	if c.LLM.RequiresAPIKey() && strings.TrimSpace(c.LLM.APIKey) == "" {
		errs = append(errs, fmt.Errorf("llm.api_key is required for provider %q", c.LLM.Provider))
	}
	if c.LLM.BaseURL != "" {
		if err := checkURL(c.LLM.BaseURL); err != nil {
			errs = append(errs, fmt.Errorf("llm.base_url: %w", err))
		}
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 1 {
		errs = append(errs, fmt.Errorf("llm.temperature %v must be between 0 and 1", c.LLM.Temperature))
	}

	if err := checkURL(c.Overseerr.URL); err != nil {
		errs = append(errs, fmt.Errorf("overseerr.url: %w", err))
	}
	if strings.TrimSpace(c.Overseerr.APIKey) == "" {
		errs = append(errs, errors.New("overseerr.api_key is required"))
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}

	return errors.Join(errs...)
}

// RequiresAPIKey reports whether the provider is a hosted service.
func (c *LLMConfig) RequiresAPIKey() bool {
	switch c.Provider {
	case ProviderAnthropic, ProviderGemini, ProviderOpenAI:
		return true
	}
	return false
}

// Address returns the server address string.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func isProvider(name string) bool {
	for _, p := range Providers {
		if p == name {
			return true
		}
	}
	return false
}

func checkURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return errors.New("is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%q must be an absolute http(s) URL", raw)
	}
	return nil
}
