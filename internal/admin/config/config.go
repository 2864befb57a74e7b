package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseFile string        // Optional: path to SQLite database file (default: <user config dir>/realmctl/realmctl.db)
	LogLevel     string        // Log level (debug, info, warn, error) (default: info)
	LogFormat    string        // Log format (json, text) (default: text)
	HTTPTimeout  time.Duration // Per-request timeout for platform calls (default: 30s)
	PageSize     int           // page_size sent on paginated list requests (default: 200)
}

// Load reads configuration from a .env file when present, then the process
// environment. A missing .env file is not an error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, err
		}
	}

	cfg := Config{
		DatabaseFile: os.Getenv("REALMCTL_DATABASE_FILE"),
		LogLevel:     getEnvOrDefault("REALMCTL_LOG_LEVEL", "info"),
		LogFormat:    getEnvOrDefault("REALMCTL_LOG_FORMAT", "text"),
		HTTPTimeout:  getEnvDurationOrDefault("REALMCTL_HTTP_TIMEOUT", 30*time.Second),
		PageSize:     getEnvIntOrDefault("REALMCTL_PAGE_SIZE", 200),
	}

	if cfg.DatabaseFile == "" {
		path, err := defaultDatabaseFile()
		if err != nil {
			return Config{}, err
		}
		cfg.DatabaseFile = path
	}

	return cfg, nil
}

func defaultDatabaseFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "realmctl", "realmctl.db"), nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
