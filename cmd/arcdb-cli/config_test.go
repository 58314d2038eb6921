package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, []string{"127.0.0.1:7171"}, cfg.Options.Addr)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfigOverlay(t *testing.T) {
	path := writeConfig(t, `
addr = "db.internal:9999"
database = "analytics"
dial_timeout = "250ms"
log_level = "DEBUG"
tracing = true
`)
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"db.internal:9999"}, cfg.Options.Addr)
	assert.Equal(t, "analytics", cfg.Options.Database)
	assert.Equal(t, 250*time.Millisecond, cfg.Options.DialTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Options.EnableTracing)
}

func TestLoadConfigPartial(t *testing.T) {
	path := writeConfig(t, `addr = "10.0.0.5:7171"`)
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.5:7171"}, cfg.Options.Addr)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Zero(t, cfg.Options.DialTimeout)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := writeConfig(t, `dial_timeout = "soon"`)
	_, err = loadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dial_timeout")
}
