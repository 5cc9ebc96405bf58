package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("test-service")
	require.NoError(t, err)

	assert.Equal(t, "test-service", cfg.ServiceName)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, "test-service", cfg.DB.DBName)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 720, cfg.JWT.ExpirationHours)
	assert.True(t, cfg.JWT.CookieEnabled)
	assert.Equal(t, "test-service", cfg.Metrics.Prefix)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("DB_CONN_MAX_LIFETIME", "30m")
	t.Setenv("DB_LOG_LEVEL", "silent")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_EXPIRATION_HOURS", "24")
	t.Setenv("JWT_COOKIE_ENABLED", "false")

	cfg, err := Load("test-service")
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 25, cfg.DB.MaxOpenConns)
	assert.Equal(t, 30*time.Minute, cfg.DB.ConnMaxLifetime)
	assert.Equal(t, logger.Silent, cfg.DB.LogLevel)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 24, cfg.JWT.ExpirationHours)
	assert.False(t, cfg.JWT.CookieEnabled)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("DB_MAX_IDLE_CONNS", "not-a-number")
	t.Setenv("JWT_COOKIE_ENABLED", "not-a-bool")
	t.Setenv("DB_CONN_MAX_LIFETIME", "soon")

	cfg, err := Load("test-service")
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.DB.MaxIdleConns)
	assert.True(t, cfg.JWT.CookieEnabled)
	assert.Equal(t, time.Hour, cfg.DB.ConnMaxLifetime)
}

func TestDSN(t *testing.T) {
	cfg := DBConfig{
		Host: "localhost", Port: "5432", User: "postgres",
		Password: "pw", DBName: "hardware", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=pw dbname=hardware sslmode=disable",
		cfg.GetDSN())
}
