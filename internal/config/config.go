package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds all application configuration
type Config struct {
	ServerAddress string `json:"serverAddress"`
	DatabasePath  string `json:"databasePath"`
	DatabaseURL   string `json:"databaseUrl"`
	Auth          Auth   `json:"auth"`
}

// Auth holds identity-provider verification settings. The server never
// issues tokens; it only verifies tokens signed by the external
// provider.
type Auth struct {
	TokenSecret string `json:"tokenSecret"`
}

// UsePostgres returns true if PostgreSQL should be used
func (c *Config) UsePostgres() bool {
	return c.DatabaseURL != ""
}

// Default configuration
func defaultConfig() *Config {
	return &Config{
		ServerAddress: ":5000",
		DatabasePath:  "shopping-list.db",
	}
}

// Load loads configuration from file or environment
func Load() (*Config, error) {
	cfg := defaultConfig()

	// Try to load from config file
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.json"
	}

	if data, err := os.ReadFile(configPath); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	// Override from environment variables
	if addr := os.Getenv("SERVER_ADDRESS"); addr != "" {
		cfg.ServerAddress = addr
	}
	if dbPath := os.Getenv("DATABASE_PATH"); dbPath != "" {
		cfg.DatabasePath = dbPath
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.DatabaseURL = dbURL
	}
	if secret := os.Getenv("AUTH_TOKEN_SECRET"); secret != "" {
		cfg.Auth.TokenSecret = secret
	}

	if cfg.Auth.TokenSecret == "" {
		return nil, fmt.Errorf("auth token secret is required (set AUTH_TOKEN_SECRET)")
	}

	return cfg, nil
}
