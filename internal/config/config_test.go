package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
storage:
  dsn: postgres://localhost/learnhub
jwt:
  secret: test-secret
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, "memory", cfg.Cache.Kind)
	require.Equal(t, "file", cfg.Sessions.Kind)
	require.Equal(t, 15*time.Minute, cfg.AccessTTL())
	require.Equal(t, 720*time.Hour, cfg.RefreshTTL())
	require.Equal(t, []string{"openid", "email", "profile"}, cfg.Google.Scopes)
	require.False(t, cfg.Server.RateLimit.Enabled)
	require.Equal(t, 30, cfg.Server.RateLimit.Max)
	require.Equal(t, time.Minute, cfg.RateLimitWindow())
}

func TestLoadRequiresDSNAndSecret(t *testing.T) {
	_, err := Load(writeConfig(t, `
jwt:
  secret: s
`))
	require.Error(t, err)

	_, err = Load(writeConfig(t, `
storage:
  dsn: postgres://localhost/learnhub
`))
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9999")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("SESSIONS_KIND", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load(writeConfig(t, `
storage:
  dsn: postgres://localhost/learnhub
jwt:
  secret: yaml-secret
`))
	require.NoError(t, err)
	require.Equal(t, ":9999", cfg.Server.Addr)
	require.Equal(t, "env-secret", cfg.JWT.Secret)
	require.Equal(t, "redis", cfg.Sessions.Kind)
	require.Equal(t, "localhost:6379", cfg.Sessions.Redis.Addr)
}

func TestInvalidSessionsKind(t *testing.T) {
	_, err := Load(writeConfig(t, `
storage:
  dsn: postgres://localhost/learnhub
jwt:
  secret: s
sessions:
  kind: etcd
`))
	require.Error(t, err)
}
