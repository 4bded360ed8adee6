package cli

import (
	"errors"
	"os"
	"strconv"
)

// Config holds CLI configuration
type Config struct {
	StorageType string
	DatabaseURL string
	JWTSecret   string
	Host        string
	Port        int
}

// DefaultConfig returns a Config populated from the environment
func DefaultConfig() *Config {
	return &Config{
		StorageType: getEnvOrDefault("STORAGE_TYPE", "memory"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		Host:        getEnvOrDefault("HOST", ""),
		Port:        getEnvIntOrDefault("PORT", 8080),
	}
}

// requireDatabaseURL validates that a postgres connection string is set
func (c *Config) requireDatabaseURL() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	return nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}
	return val
}
