// Package config loads server configuration from the environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/castlemilk/finhealth/internal/money"
)

// Store backends.
const (
	BackendMemory    = "memory"
	BackendFirestore = "firestore"
	BackendPostgres  = "postgres"
)

// NOTE: Default port is 8111 to avoid conflicts with other local services (not 8080)
const defaultPort = "8111"

var defaultAllowedOrigins = []string{
	"http://localhost:1234",
	"http://127.0.0.1:1234",
}

// Config holds application configuration.
type Config struct {
	Port               string
	Env                string
	StoreBackend       string
	ProjectID          string
	DatabaseURL        string
	SkipAuth           bool
	LogLevel           logrus.Level
	LogFormat          string
	DefaultCurrency    string
	SnapshotSchedule   string
	CacheMaxCost       int64
	CORSAllowedOrigins []string
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", defaultPort),
		Env:              getEnv("ENV", "production"),
		StoreBackend:     strings.ToLower(getEnv("STORE_BACKEND", BackendFirestore)),
		ProjectID:        getEnv("GOOGLE_CLOUD_PROJECT", "finhealth-dev"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		SkipAuth:         getEnv("SKIP_AUTH", "") == "true",
		LogFormat:        strings.ToLower(getEnv("LOG_FORMAT", "text")),
		SnapshotSchedule: "@daily",
	}

	// Set but empty disables the snapshot job.
	if v, ok := os.LookupEnv("SNAPSHOT_SCHEDULE"); ok {
		cfg.SnapshotSchedule = strings.TrimSpace(v)
	}

	if getEnv("USE_MEMORY_STORE", "") == "true" || cfg.Env == "local" {
		cfg.StoreBackend = BackendMemory
	}
	switch cfg.StoreBackend {
	case BackendMemory, BackendFirestore:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}

	cfg.DefaultCurrency, err = money.ParseCurrency(getEnv("DEFAULT_CURRENCY", "USD"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_CURRENCY: %w", err)
	}

	if cfg.SnapshotSchedule != "" {
		if _, err := cron.ParseStandard(cfg.SnapshotSchedule); err != nil {
			return nil, fmt.Errorf("invalid SNAPSHOT_SCHEDULE: %w", err)
		}
	}

	cfg.CacheMaxCost, err = strconv.ParseInt(getEnv("CACHE_MAX_COST", "10000"), 10, 64)
	if err != nil || cfg.CacheMaxCost <= 0 {
		return nil, fmt.Errorf("invalid CACHE_MAX_COST %q", os.Getenv("CACHE_MAX_COST"))
	}

	cfg.CORSAllowedOrigins = defaultAllowedOrigins
	if v := getEnv("CORS_ALLOWED_ORIGINS", ""); v != "" {
		cfg.CORSAllowedOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}

	return cfg, nil
}

// Logger builds the process logger described by the config.
func (c *Config) Logger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(c.LogLevel)
	if c.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}

// IsLocal reports whether the server runs against in-process storage.
func (c *Config) IsLocal() bool {
	return c.StoreBackend == BackendMemory
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultVal
}
