package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	API     APIConfig
	State   StateConfig
	Logger  LoggerConfig
	Payment PaymentConfig
	Locale  LocaleConfig
}

// APIConfig holds settings for the backend HTTP API.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// StateConfig holds settings for persisted client state.
type StateConfig struct {
	Dir string // directory holding the per-key JSON state files
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// PaymentConfig holds timeout/retry policy for payment-intent and
// checkout-session creation. A hung request there blocks checkout entirely,
// so these calls get a tighter deadline and bounded retries.
type PaymentConfig struct {
	Timeout    time.Duration
	MaxRetries int
}

// LocaleConfig holds display defaults.
type LocaleConfig struct {
	Currency string
	Language string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:5000"),
			Timeout: getEnvAsDuration("HTTP_TIMEOUT", 15*time.Second),
		},
		State: StateConfig{
			Dir: getEnv("STATE_DIR", defaultStateDir()),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Payment: PaymentConfig{
			Timeout:    getEnvAsDuration("PAYMENT_TIMEOUT", 10*time.Second),
			MaxRetries: getEnvAsInt("PAYMENT_MAX_RETRIES", 3),
		},
		Locale: LocaleConfig{
			Currency: getEnv("DEFAULT_CURRENCY", "USD"),
			Language: getEnv("DEFAULT_LANGUAGE", "en"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API base URL: %q", c.API.BaseURL)
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("HTTP timeout must be positive")
	}

	if c.State.Dir == "" {
		return fmt.Errorf("state directory is required")
	}

	if c.Payment.Timeout <= 0 {
		return fmt.Errorf("payment timeout must be positive")
	}

	if c.Payment.MaxRetries < 0 {
		return fmt.Errorf("payment max retries cannot be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Locale.Currency == "" {
		return fmt.Errorf("default currency is required")
	}

	return nil
}

// defaultStateDir returns the per-user state directory, falling back to the
// working directory when the home directory cannot be resolved.
func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stylekart"
	}
	return home + "/.stylekart"
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration retrieves an environment variable as a duration or returns a default value.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
