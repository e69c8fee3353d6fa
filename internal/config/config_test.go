package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 4, cfg.Processing.MaxConcurrentSegments)
	assert.Equal(t, "quantitationMethods.csv", cfg.Processing.MethodsInput)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_ENABLED", "true")
	t.Setenv("DATABASE_CONN_MAX_LIFETIME", "not-a-duration")
	t.Setenv("PROCESSING_VERBOSE", "true")
	t.Setenv("PROCESSING_DATA_DIR", "/data")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.True(t, cfg.Processing.Verbose)
	assert.Equal(t, "/data", cfg.Processing.DataDir)
}

func TestLoad_InvalidConcurrency(t *testing.T) {
	t.Setenv("PROCESSING_MAX_CONCURRENT_SEGMENTS", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{User: "u", Password: "p", Host: "db", Port: 5432, Name: "q", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/q?sslmode=disable", d.DSN())
}
