package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("REALMCTL_DATABASE_FILE", "/tmp/realmctl-test.db")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/realmctl-test.db", cfg.DatabaseFile)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "text", cfg.LogFormat)
	require.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	require.Equal(t, 200, cfg.PageSize)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("REALMCTL_DATABASE_FILE", "/tmp/realmctl-test.db")
	t.Setenv("REALMCTL_LOG_LEVEL", "debug")
	t.Setenv("REALMCTL_LOG_FORMAT", "json")
	t.Setenv("REALMCTL_HTTP_TIMEOUT", "90s")
	t.Setenv("REALMCTL_PAGE_SIZE", "50")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, 90*time.Second, cfg.HTTPTimeout)
	require.Equal(t, 50, cfg.PageSize)
}

func TestLoadIgnoresBadValues(t *testing.T) {
	t.Setenv("REALMCTL_DATABASE_FILE", "/tmp/realmctl-test.db")
	t.Setenv("REALMCTL_HTTP_TIMEOUT", "soon")
	t.Setenv("REALMCTL_PAGE_SIZE", "-3")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	require.Equal(t, 200, cfg.PageSize)
}
