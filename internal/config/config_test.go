package config

import (
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Equal(t, "session", cfg.Auth.Mode)
	assert.Equal(t, 24*time.Hour, cfg.Auth.JWTExpiration)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
	assert.False(t, cfg.IsProduction())
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(envconfig.MapLookuper(map[string]string{
		"DB_DRIVER":      "sqlite",
		"DB_PATH":        "/tmp/test.db",
		"AUTH_MODE":      "jwt",
		"JWT_EXPIRATION": "2h",
		"GIN_MODE":       "release",
	}))
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "/tmp/test.db", cfg.DB.Path)
	assert.Equal(t, "jwt", cfg.Auth.Mode)
	assert.Equal(t, 2*time.Hour, cfg.Auth.JWTExpiration)
	assert.True(t, cfg.IsProduction())
}

func TestLoadWith_RejectsUnknownModes(t *testing.T) {
	_, err := LoadWith(envconfig.MapLookuper(map[string]string{"AUTH_MODE": "oauth"}))
	assert.Error(t, err)

	_, err = LoadWith(envconfig.MapLookuper(map[string]string{"DB_DRIVER": "mongo"}))
	assert.Error(t, err)
}
