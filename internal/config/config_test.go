package config

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "ENV", "STORE_BACKEND", "USE_MEMORY_STORE", "GOOGLE_CLOUD_PROJECT",
		"DATABASE_URL", "SKIP_AUTH", "LOG_LEVEL", "LOG_FORMAT", "DEFAULT_CURRENCY",
		"SNAPSHOT_SCHEDULE", "CACHE_MAX_COST", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "firestore")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("DEFAULT_CURRENCY", "usd")
	t.Setenv("SNAPSHOT_SCHEDULE", "@daily")
	t.Setenv("CACHE_MAX_COST", "10000")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, BackendFirestore, cfg.StoreBackend)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.Equal(t, "USD", cfg.DefaultCurrency)
	assert.Equal(t, int64(10000), cfg.CacheMaxCost)
	assert.Equal(t, defaultAllowedOrigins, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.IsLocal())
}

func TestFromEnvUnsetScheduleRunsDaily(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "@daily", cfg.SnapshotSchedule)
}

func TestFromEnv(t *testing.T) {
	base := map[string]string{
		"STORE_BACKEND":     "firestore",
		"LOG_LEVEL":         "info",
		"LOG_FORMAT":        "text",
		"DEFAULT_CURRENCY":  "USD",
		"SNAPSHOT_SCHEDULE": "@daily",
		"CACHE_MAX_COST":    "100",
	}

	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "local env forces the memory store",
			env:  map[string]string{"ENV": "local"},
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.IsLocal())
			},
		},
		{
			name: "use memory store flag",
			env:  map[string]string{"USE_MEMORY_STORE": "true"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, BackendMemory, cfg.StoreBackend)
			},
		},
		{
			name:    "postgres needs a database url",
			env:     map[string]string{"STORE_BACKEND": "postgres"},
			wantErr: "DATABASE_URL",
		},
		{
			name: "postgres with a database url",
			env:  map[string]string{"STORE_BACKEND": "Postgres", "DATABASE_URL": "postgres://localhost/finhealth"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, BackendPostgres, cfg.StoreBackend)
			},
		},
		{
			name:    "unknown backend",
			env:     map[string]string{"STORE_BACKEND": "mongo"},
			wantErr: "STORE_BACKEND",
		},
		{
			name:    "bad currency",
			env:     map[string]string{"DEFAULT_CURRENCY": "DOLLARS"},
			wantErr: "DEFAULT_CURRENCY",
		},
		{
			name:    "bad schedule",
			env:     map[string]string{"SNAPSHOT_SCHEDULE": "every tuesday"},
			wantErr: "SNAPSHOT_SCHEDULE",
		},
		{
			name: "empty schedule disables snapshots",
			env:  map[string]string{"SNAPSHOT_SCHEDULE": ""},
			check: func(t *testing.T, cfg *Config) {
				assert.Empty(t, cfg.SnapshotSchedule)
			},
		},
		{
			name:    "bad log level",
			env:     map[string]string{"LOG_LEVEL": "loud"},
			wantErr: "LOG_LEVEL",
		},
		{
			name:    "bad cache cost",
			env:     map[string]string{"CACHE_MAX_COST": "-1"},
			wantErr: "CACHE_MAX_COST",
		},
		{
			name: "cors origins are split and trimmed",
			env:  map[string]string{"CORS_ALLOWED_ORIGINS": "https://a.example, https://b.example,"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
			},
		},
		{
			name: "json logging",
			env:  map[string]string{"LOG_FORMAT": "JSON", "LOG_LEVEL": "debug"},
			check: func(t *testing.T, cfg *Config) {
				log := cfg.Logger()
				assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
				assert.Equal(t, logrus.DebugLevel, log.Level)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range base {
				t.Setenv(k, v)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := FromEnv()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
