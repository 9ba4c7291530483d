// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
)

// Config holds all application configuration
type Config struct {
	Port       int
	DBPath     string
	StaticPath string // empty disables static file serving
	LogLevel   string
	LogFormat  string
	Currency   string // ISO 4217 code used when formatting amounts
}

// Addr returns the listen address for Port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads configuration from environment variables. A .env file, if the
// caller loaded one with godotenv, is already part of the environment.
func Load() (*Config, error) {
	cfg := &Config{
		DBPath:     getEnv("DB_PATH", "./data/ledger.db"),
		StaticPath: getEnv("STATIC_PATH", ""),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFormat:  getEnv("LOG_FORMAT", "text"),
		Currency:   strings.ToUpper(getEnv("CURRENCY", "USD")),
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT %q", os.Getenv("PORT"))
	}
	cfg.Port = port

	if cfg.DBPath == "" {
		return nil, fmt.Errorf("DB_PATH must not be empty")
	}
	switch strings.ToLower(cfg.LogFormat) {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: want text or json", cfg.LogFormat)
	}
	if money.GetCurrency(cfg.Currency) == nil {
		return nil, fmt.Errorf("invalid CURRENCY %q: not an ISO 4217 code", cfg.Currency)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
