// Package config reads service settings from the environment. A .env file in
// the working directory is loaded first when present.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StorageDynamoDB = "dynamodb"

	LookupFallback = "fallback"
	LookupStrict   = "strict"

	// MapDisabled as MAP_TILE_URL turns map projection off
	MapDisabled = "none"
)

const defaultTileURL = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"

// Config holds every setting the service reads at start
type Config struct {
	Port          string
	PathPrefix    string
	StorageType   string
	DynamoTable   string
	AWSRegion     string
	KinesisStream string
	LookupPolicy  string
	MapTileURL    string
	DefaultTheme  string
	LogLevel      string
	LogFile       string
	LogMaxSizeMB  int
	CORSOrigin    string
}

// Load reads the configuration. Values present in the process environment win
// over the .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		PathPrefix:    getEnv("PATH_PREFIX", ""),
		StorageType:   strings.ToLower(getEnv("STORAGE_TYPE", StorageMemory)),
		DynamoTable:   getEnv("DYNAMODB_FLEET_TABLE", "fleet-dashboard"),
		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),
		KinesisStream: getEnv("KINESIS_DASHBOARD_EVENTS_STREAM", ""),
		LookupPolicy:  strings.ToLower(getEnv("LOOKUP_POLICY", LookupFallback)),
		MapTileURL:    getEnv("MAP_TILE_URL", defaultTileURL),
		DefaultTheme:  getEnv("DEFAULT_THEME", "light"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFile:       getEnv("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		CORSOrigin:    getEnv("CORS_ALLOWED_ORIGIN", "*"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageType {
	case StorageMemory, StorageDynamoDB:
	default:
		return fmt.Errorf("invalid STORAGE_TYPE %q: want %s or %s", c.StorageType, StorageMemory, StorageDynamoDB)
	}

	switch c.LookupPolicy {
	case LookupFallback, LookupStrict:
	default:
		return fmt.Errorf("invalid LOOKUP_POLICY %q: want %s or %s", c.LookupPolicy, LookupFallback, LookupStrict)
	}

	if c.StorageType == StorageDynamoDB && c.DynamoTable == "" {
		return errors.New("DYNAMODB_FLEET_TABLE must be set for dynamodb storage")
	}
	return nil
}

// StrictLookup reports whether unknown ids are errors instead of falling back
func (c *Config) StrictLookup() bool {
	return c.LookupPolicy == LookupStrict
}

// MapEnabled is false when the tile provider is switched off
func (c *Config) MapEnabled() bool {
	url := strings.TrimSpace(c.MapTileURL)
	return url != "" && !strings.EqualFold(url, MapDisabled)
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets integer from environment variable
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("Invalid integer, using default", "key", key, "provided", value, "default", defaultValue, "error", err)
		return defaultValue
	}
	return n
}
