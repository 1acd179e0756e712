package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", config.HTTPPort)
	assert.Equal(t, 5*time.Second, config.LockTimeout)
	assert.Equal(t, "@every 1h", config.ReconcileSchedule)
	assert.Equal(t, "0 0 * * *", config.DriverCounterResetSchedule)
	assert.Empty(t, config.RedisAddr)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("LOCK_TIMEOUT", "250ms")
	t.Setenv("REDIS_ADDR", "redis:6379")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", config.HTTPPort)
	assert.Equal(t, 250*time.Millisecond, config.LockTimeout)
	assert.Equal(t, "redis:6379", config.RedisAddr)
	assert.Equal(t, "host=db port=5432 user=postgres password=secret dbname=lastmile sslmode=disable", config.DSN())
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("LOCK_TIMEOUT", "soon")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("LOCK_TIMEOUT", "0s")
	_, err = LoadConfig()
	assert.Error(t, err)
}
