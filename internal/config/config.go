// Package config loads service configuration from the environment,
// with a .env file picked up automatically when present.
package config

import (
	"os"
	"strconv"

	_ "github.com/joho/godotenv/autoload"
)

// Storage driver names.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// DB holds connection settings for the postgres storage driver.
type DB struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

// Config is the full service configuration.
type Config struct {
	Port          int
	StorageDriver string
	DataFile      string
	DB            DB
}

// Load reads configuration from the environment, falling back to
// defaults suitable for local development.
func Load() Config {
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		port = 8080
	}

	return Config{
		Port:          port,
		StorageDriver: getEnv("TODO_STORAGE_DRIVER", DriverFile),
		DataFile:      getEnv("TODO_DATA_FILE", "todos.json"),
		DB: DB{
			Host:     getEnv("TODO_DB_HOST", "localhost"),
			Port:     getEnv("TODO_DB_PORT", "5432"),
			Username: getEnv("TODO_DB_USERNAME", "postgres"),
			Password: getEnv("TODO_DB_PASSWORD", ""),
			Database: getEnv("TODO_DB_DATABASE", "todos"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
