package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the ticket core.
type Config struct {
	Storage  StorageConfig
	Logger   LoggerConfig
	Defaults DefaultsConfig
}

// StorageConfig locates the backing file. The external resolver normally
// supplies an absolute path; a relative value, including the fallback, is
// interpreted against the process working directory.
type StorageConfig struct {
	Path string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// DefaultsConfig supplies field values for tickets created without them.
type DefaultsConfig struct {
	Priority string
	Type     string
	Privacy  string
}

// Load reads configuration from environment variables, applying defaults
// where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Storage: StorageConfig{
			Path: getEnv("TICKET_STORAGE_PATH", filepath.Join("data", "tickets.json")),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Defaults: DefaultsConfig{
			Priority: getEnv("TICKET_DEFAULT_PRIORITY", "medium"),
			Type:     getEnv("TICKET_DEFAULT_TYPE", "task"),
			Privacy:  getEnv("TICKET_DEFAULT_PRIVACY", "local-only"),
		},
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
