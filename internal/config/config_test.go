package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-session-server/internal/config"
)

func TestPortDefaultsAndPrefix(t *testing.T) {
	cfg := config.New()

	t.Setenv("PORT", "")
	require.Equal(t, ":8080", cfg.GetPort())

	t.Setenv("PORT", "9090")
	require.Equal(t, ":9090", cfg.GetPort())

	t.Setenv("PORT", ":9090")
	require.Equal(t, ":9090", cfg.GetPort())
}

func TestEnvDefaultsToDev(t *testing.T) {
	cfg := config.New()

	t.Setenv("ENV", "")
	require.Equal(t, "DEV", cfg.GetEnv())

	t.Setenv("ENV", "PROD")
	require.Equal(t, "PROD", cfg.GetEnv())
}

func TestAppName(t *testing.T) {
	cfg := config.New()

	t.Setenv("APP_NAME", "")
	require.Equal(t, "Go Session Server", cfg.GetAppName())

	t.Setenv("APP_NAME", "Sessions")
	require.Equal(t, "Sessions", cfg.GetAppName())
}

func TestMongoVars(t *testing.T) {
	cfg := config.New()

	t.Setenv("MONGO_URL", "mongodb://db.internal:27017/appdb")
	t.Setenv("MONGO_SSL", "true")
	t.Setenv("MONGO_PORT", "27018")
	t.Setenv("MONGO_COLLECTION", "websessions")

	require.Equal(t, "mongodb://db.internal:27017/appdb", cfg.GetMongoURL())
	require.True(t, cfg.GetMongoSSL())
	require.Equal(t, 27018, cfg.GetMongoPort())
	require.Equal(t, "websessions", cfg.GetMongoCollection())
}

func TestMongoVarsZeroValuesWhenUnset(t *testing.T) {
	cfg := config.New()

	t.Setenv("MONGO_URL", "")
	t.Setenv("MONGO_HOST", "")
	t.Setenv("MONGO_PORT", "")
	t.Setenv("MONGO_SSL", "")

	require.Empty(t, cfg.GetMongoURL())
	require.Empty(t, cfg.GetMongoHost())
	require.Zero(t, cfg.GetMongoPort())
	require.False(t, cfg.GetMongoSSL())
}

func TestSessionVars(t *testing.T) {
	cfg := config.New()

	t.Setenv("SESSION_COOKIE_NAME", "")
	t.Setenv("SESSION_MAX_AGE", "")
	require.Equal(t, "session_id", cfg.GetSessionCookieName())
	require.Equal(t, 24*time.Hour, cfg.GetSessionMaxAge())

	t.Setenv("SESSION_COOKIE_NAME", "sid")
	t.Setenv("SESSION_MAX_AGE", "90m")
	require.Equal(t, "sid", cfg.GetSessionCookieName())
	require.Equal(t, 90*time.Minute, cfg.GetSessionMaxAge())

	t.Setenv("SESSION_MAX_AGE", "not-a-duration")
	require.Equal(t, 24*time.Hour, cfg.GetSessionMaxAge())
}

func TestGetEnvAsIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("MONGO_PORT", "not-a-number")
	require.Equal(t, 0, config.New().GetMongoPort())
}
