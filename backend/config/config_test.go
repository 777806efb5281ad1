package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.StorageDriver)
	assert.Equal(t, "plain", cfg.PasswordMode)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("PASSWORD_MODE", "bcrypt")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "redis", cfg.StorageDriver)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, "bcrypt", cfg.PasswordMode)
}
