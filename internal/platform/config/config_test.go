package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "memory", cfg.StoreBackend)
	assert.Equal(t, "orbit_finance_v5_data", cfg.StoreNamespace)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, 12, cfg.AIMaxTransactions)
	assert.Equal(t, "100-M", cfg.RateLimit)
	assert.False(t, cfg.EnforceAdminPolicy)
	assert.Empty(t, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("STORE_BACKEND", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/orbit-test.db")
	t.Setenv("JWT_EXPIRY_DURATION", "not-a-duration")
	t.Setenv("ENFORCE_ADMIN_POLICY", "true")
	t.Setenv("AI_MAX_TRANSACTIONS", "5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.test, https://b.test,")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.StoreBackend)
	assert.Equal(t, "/tmp/orbit-test.db", cfg.SQLitePath)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration, "invalid durations fall back")
	assert.True(t, cfg.EnforceAdminPolicy)
	assert.Equal(t, 5, cfg.AIMaxTransactions)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_Rejects(t *testing.T) {
	t.Setenv("STORE_BACKEND", "floppy")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("PGSQL_URL", "")
	_, err = LoadConfig()
	assert.Error(t, err)
}
