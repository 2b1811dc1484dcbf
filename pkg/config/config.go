package config

import (
	"fmt"
	"os"
	"strings"
)

// Store driver names accepted in STORE_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverJSONFile = "jsonfile"
)

// Config holds application configuration.
type Config struct {
	Port           string
	StoreDriver    string
	SQLitePath     string
	DataFile       string
	LogLevel       string
	AllowedOrigins []string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		StoreDriver:    getEnv("STORE_DRIVER", DriverSQLite),
		SQLitePath:     getEnv("SQLITE_PATH", "loanbook.db"),
		DataFile:       getEnv("DATA_FILE", "loan_data.json"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}

	switch cfg.StoreDriver {
	case DriverSQLite, DriverJSONFile:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q (want %q or %q)", cfg.StoreDriver, DriverSQLite, DriverJSONFile)
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
