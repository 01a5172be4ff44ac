package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "coderCookie", cfg.CookieName)
	require.Equal(t, time.Hour, cfg.CookieMaxAge)
	require.Equal(t, "tokenSecretJWT", cfg.JWTSecret)
	require.Empty(t, cfg.DatabaseURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("COOKIE_NAME", "sessionCookie")
	t.Setenv("COOKIE_MAX_AGE", "30m")
	t.Setenv("DATABASE_URL", "postgres://localhost/adoptme")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, "sessionCookie", cfg.CookieName)
	require.Equal(t, 30*time.Minute, cfg.CookieMaxAge)
	require.Equal(t, "postgres://localhost/adoptme", cfg.DatabaseURL)
}
