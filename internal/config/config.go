// Package config provides environment-driven configuration for the job board.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// ServerConfig holds configuration for the API server process.
type ServerConfig struct {
	Port        int
	DatabaseURL string
	RedisURL    string // optional; empty disables the cache layer
}

// NewServerConfig reads server configuration from the environment.
// DATABASE_URL is required; PORT defaults to 8080; REDIS_URL is optional.
func NewServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{
		Port:        8080,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize validates the configuration.
func (c *ServerConfig) normalize() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	return nil
}

// ClientConfig holds configuration for API client consumers (CLI tools,
// dashboards). The base URL is the required external contract; consumers
// fail hard when it is absent.
type ClientConfig struct {
	BaseURL string
	Token   string // optional bearer token for authenticated calls
}

// NewClientConfig reads client configuration from the environment (API_URL,
// API_TOKEN).
func NewClientConfig() (*ClientConfig, error) {
	cfg := &ClientConfig{
		BaseURL: os.Getenv("API_URL"),
		Token:   os.Getenv("API_TOKEN"),
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("API_URL is required but not set")
	}
	return cfg, nil
}
