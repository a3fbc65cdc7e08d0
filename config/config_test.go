package config

import (
	"testing"
	"time"

	"uzazi-salama-backend/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5001", cfg.Port)
	assert.Equal(t, DataBackendPostgres, cfg.DataBackend)
	assert.Equal(t, 168*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, storage.StorageTypeLocal, cfg.Storage().Type)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATA_BACKEND", DataBackendMemory)
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DataBackendMemory, cfg.DataBackend)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown env", map[string]string{"APP_ENV": "qa"}},
		{"unknown backend", map[string]string{"DATA_BACKEND": "mongo"}},
		{"default secret in production", map[string]string{"APP_ENV": "production"}},
		{"s3 without bucket", map[string]string{"STORAGE_TYPE": "s3"}},
		{"unknown storage", map[string]string{"STORAGE_TYPE": "ftp"}},
		{"non-positive ttl", map[string]string{"JWT_TTL": "0s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestProductionWithSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "a-real-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestAllowedOrigins(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.AllowedOrigins())

	t.Setenv("CORS_ORIGINS", "https://uzazi.example, http://localhost:5173,,")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://uzazi.example", "http://localhost:5173"}, cfg.AllowedOrigins())
}
