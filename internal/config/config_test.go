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

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)

	assert.Equal(t, "sessionid", cfg.Session.CookieName)
	assert.Equal(t, 168*time.Hour, cfg.Session.MaxAge)
	assert.False(t, cfg.Session.SecureCookies)
	assert.NotEmpty(t, cfg.Session.Secret)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("ACCOUNTD_SESSION_MAXAGE", "24h")
	t.Setenv("ACCOUNTD_ENVIRONMENT", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 24*time.Hour, cfg.Session.MaxAge)
}
