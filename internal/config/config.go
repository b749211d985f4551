// Package config provides application configuration loaded from environment variables.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Keys    KeyServiceConfig
	Session SessionConfig
	App     AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	IdleTimeout  int // seconds
}

// BackendConfig points at the AAS service that owns all persistence,
// conversion and authentication.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

// KeyServiceConfig points at the API-key management service. The master key
// authorizes every request against it.
type KeyServiceConfig struct {
	BaseURL   string
	MasterKey string
}

// SessionConfig selects the session store backend and the cookie signing
// secret. Driver is "sqlite" or "postgres".
type SessionConfig struct {
	Driver string
	DSN    string
	Secret string
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev bool
}

// Load reads configuration from environment variables.
// It uses sensible defaults for local development.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "3000"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 30),
			IdleTimeout:  getEnvInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Backend: BackendConfig{
			BaseURL: getEnv("AAS_API_URL", "http://localhost:8080"),
			Timeout: time.Duration(getEnvInt("AAS_API_TIMEOUT", 30)) * time.Second,
		},
		Keys: KeyServiceConfig{
			BaseURL:   getEnv("APIKEY_URL", "http://localhost:8081"),
			MasterKey: getEnv("MASTER_KEY", ""),
		},
		Session: SessionConfig{
			Driver: getEnv("SESSION_DB_DRIVER", "sqlite"),
			DSN:    getEnv("SESSION_DB_DSN", "sessions.db"),
			Secret: getEnv("SESSION_SECRET", "devsessionsecret"),
		},
		App: AppConfig{
			Dev: getEnvBool("DEV", true),
		},
	}
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvBool returns the boolean value of an environment variable or a default.
// Accepts "1", "true", "yes" as true; everything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}
