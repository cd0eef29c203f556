package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the BookBazaar API server
type Config struct {
	// Server
	Port     string `env:"PORT" default:"5000"`
	Host     string `env:"HOST" default:"0.0.0.0"`
	LogLevel string `env:"LOG_LEVEL" default:"info"`

	// Database
	DatabaseHost     string `env:"DB_HOST" default:"bazaar-postgres"`
	DatabasePort     string `env:"DB_PORT" default:"5432"`
	DatabaseName     string `env:"DB_NAME" default:"bazaar_db"`
	DatabaseUser     string `env:"DB_USER" default:"bazaar_user"`
	DatabasePassword string `env:"DB_PASSWORD" required:"true"`
	DatabaseSSLMode  string `env:"DB_SSL_MODE" default:"require"`

	// Redis catalog cache
	RedisURL     string        `env:"REDIS_URL" default:""`
	CacheTTL     time.Duration `env:"CACHE_TTL" default:"5m"`
	EnableCache  bool          `env:"ENABLE_CACHE" default:"true"`

	// Tokens
	TokenSecret string        `env:"TOKEN_SECRET" required:"true"`
	TokenIssuer string        `env:"TOKEN_ISSUER" default:"bookbazaar"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" default:"24h"`

	// Bootstrap
	AdminEmail string `env:"ADMIN_EMAIL" default:""`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	config := &Config{}

	// Server configuration
	config.Port = getEnvOrDefault("PORT", "5000")
	config.Host = getEnvOrDefault("HOST", "0.0.0.0")
	config.LogLevel = getEnvOrDefault("LOG_LEVEL", "info")

	// Database configuration
	config.DatabaseHost = getEnvOrDefault("DB_HOST", "bazaar-postgres")
	config.DatabasePort = getEnvOrDefault("DB_PORT", "5432")
	config.DatabaseName = getEnvOrDefault("DB_NAME", "bazaar_db")
	config.DatabaseUser = getEnvOrDefault("DB_USER", "bazaar_user")
	config.DatabasePassword = os.Getenv("DB_PASSWORD")
	if config.DatabasePassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	config.DatabaseSSLMode = getEnvOrDefault("DB_SSL_MODE", "require")

	// Cache configuration
	config.RedisURL = os.Getenv("REDIS_URL")
	config.EnableCache = getBoolEnv("ENABLE_CACHE", true)

	var err error
	cacheTTLStr := getEnvOrDefault("CACHE_TTL", "5m")
	config.CacheTTL, err = time.ParseDuration(cacheTTLStr)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}

	// Token configuration
	config.TokenSecret = os.Getenv("TOKEN_SECRET")
	if config.TokenSecret == "" {
		return nil, fmt.Errorf("TOKEN_SECRET is required")
	}
	config.TokenIssuer = getEnvOrDefault("TOKEN_ISSUER", "bookbazaar")

	tokenTTLStr := getEnvOrDefault("TOKEN_TTL", "24h")
	config.TokenTTL, err = time.ParseDuration(tokenTTLStr)
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	config.AdminEmail = os.Getenv("ADMIN_EMAIL")

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid port: %s", c.Port)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535: %s", c.Port)
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	// Token secrets below 16 bytes are trivially brute-forceable
	if len(c.TokenSecret) < 16 {
		return fmt.Errorf("token secret must be at least 16 characters, got: %d", len(c.TokenSecret))
	}

	if c.TokenTTL < time.Minute {
		return fmt.Errorf("token TTL must be at least 1 minute, got: %v", c.TokenTTL)
	}

	if c.EnableCache && c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required when cache is enabled")
	}

	return nil
}

// DatabaseDSN builds the PostgreSQL connection string
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DatabaseUser,
		c.DatabasePassword,
		c.DatabaseHost,
		c.DatabasePort,
		c.DatabaseName,
		c.DatabaseSSLMode,
	)
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
