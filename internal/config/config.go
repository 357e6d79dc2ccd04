// Package config handles application configuration from environment variables.
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
	Port        string
	Env         string
	OllamaURL   string
	OllamaModel string
	HTTPTimeout time.Duration
	CacheTTL    time.Duration
	StorePath   string

	LogLevel   string
	LogFile    string
	LogMaxSize int // megabytes, per rotated file
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "3000"),
		Env:         getEnv("ENV", "development"),
		OllamaURL:   getEnv("OLLAMA_URL", "http://localhost:11434/api/chat"),
		OllamaModel: getEnv("OLLAMA_MODEL", "llama3.2"),
		HTTPTimeout: getDurationEnv("HTTP_TIMEOUT_SECONDS", 30) * time.Second,
		CacheTTL:    getDurationEnv("CACHE_TTL_SECONDS", 60) * time.Second,
		StorePath:   getEnv("STORE_PATH", "nyc-legend-storage.json"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFile:     getEnv("LOG_FILE", ""),
		LogMaxSize:  getIntEnv("LOG_MAX_SIZE_MB", 20),
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if _, err := url.ParseRequestURI(c.OllamaURL); err != nil {
		return fmt.Errorf("invalid OLLAMA_URL: %w", err)
	}
	if c.OllamaModel == "" {
		return fmt.Errorf("OLLAMA_MODEL must not be empty")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultSeconds int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds)
		}
	}
	return time.Duration(defaultSeconds)
}
