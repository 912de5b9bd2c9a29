package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Provider credentials. An empty key disables that source; it is not an
	// error to run with none configured.
	NewsAPIKey     string
	GuardianAPIKey string
	GeminiAPIKey   string

	// RSS settings
	FeedsConfigPath string

	// HTTP serving
	Port     string
	CacheTTL time.Duration // revalidation window for the aggregated set

	// Upstream fetch settings
	RequestTimeout time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration

	// Views
	TrendingLimit int

	// Digest settings
	MaxDigestRequests int // Gemini requests per day (0 = unlimited)

	Debug bool
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		FeedsConfigPath:   "configs/feeds.yaml",
		Port:              "8080",
		CacheTTL:          30 * time.Minute,
		RequestTimeout:    15 * time.Second,
		RetryAttempts:     2,
		RetryDelay:        2 * time.Second,
		TrendingLimit:     6,
		MaxDigestRequests: 50,
	}

	cfg.NewsAPIKey = os.Getenv("NEWSAPI_KEY")
	cfg.GuardianAPIKey = os.Getenv("GUARDIAN_API_KEY")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	cfg.FeedsConfigPath = getEnvOrDefault("FEEDS_CONFIG_PATH", cfg.FeedsConfigPath)
	cfg.Port = getEnvOrDefault("PORT", cfg.Port)

	if v := getEnvIntOrDefault("CACHE_TTL_SECONDS", 0); v > 0 {
		cfg.CacheTTL = time.Duration(v) * time.Second
	}
	if v := getEnvIntOrDefault("REQUEST_TIMEOUT_SECONDS", 0); v > 0 {
		cfg.RequestTimeout = time.Duration(v) * time.Second
	}
	if v := getEnvIntOrDefault("RETRY_ATTEMPTS", 0); v > 0 {
		cfg.RetryAttempts = v
	}
	if v := getEnvIntOrDefault("RETRY_DELAY_SECONDS", 0); v > 0 {
		cfg.RetryDelay = time.Duration(v) * time.Second
	}
	if v := getEnvIntOrDefault("TRENDING_LIMIT", 0); v > 0 {
		cfg.TrendingLimit = v
	}
	if v := getEnvIntOrDefault("MAX_DIGEST_REQUESTS", -1); v >= 0 {
		cfg.MaxDigestRequests = v
	}

	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache TTL must be positive")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	if c.TrendingLimit <= 0 {
		return fmt.Errorf("trending limit must be positive")
	}
	return nil
}
