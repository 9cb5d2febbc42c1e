package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	DataFile    string
	Log         LogConfig
}

type LogConfig struct {
	Level  string
	Format string // text or json
}

// Load reads configuration from the environment, after applying an optional .env file
func Load() *Config {
	// Missing .env is fine, the process environment still applies
	_ = godotenv.Load()

	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		DataFile:    getEnv("LEDGER_DATA_FILE", "data/inventario.json"),
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "text")),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}
