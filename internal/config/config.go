package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the client
type Config struct {
	// Remote service
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Client-side request throttling
	RateLimitPerMinute int
	RateLimitBurst     int

	// Local state
	DataDir string

	Env string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:         getEnv("PESATRACK_API_URL", "http://localhost:8000"),
		HTTPTimeout:        time.Duration(getEnvInt("PESATRACK_HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		RateLimitPerMinute: getEnvInt("PESATRACK_RATE_LIMIT_PER_MINUTE", 120),
		RateLimitBurst:     getEnvInt("PESATRACK_RATE_LIMIT_BURST", 10),
		DataDir:            getEnv("PESATRACK_DATA_DIR", defaultDataDir()),
		Env:                getEnv("ENV", "development"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("PESATRACK_API_URL is required")
	}
	if c.DataDir == "" {
		return fmt.Errorf("PESATRACK_DATA_DIR is required")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("PESATRACK_RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pesatrack"
	}
	return filepath.Join(home, ".pesatrack")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
