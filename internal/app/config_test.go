package app

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

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "server:\n  run-mode: debug\n")

	cfg, realpath, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path, realpath)

	assert.Equal(t, "debug", cfg.Server.RunMode)
	assert.Equal(t, ":9000", cfg.Server.HttpPort)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "http://localhost:8000", cfg.Remote.BaseURL)
	assert.Equal(t, "/", cfg.Guard.RedirectTarget)
	assert.Equal(t, []string{"/sharedNotes", "/notes", "/home", "/settings"}, cfg.Guard.ProtectedPrefixes)
	assert.Equal(t, "token", cfg.Session.CookieName)
	assert.Equal(t, "user", cfg.Session.UserCookieName)
	assert.True(t, cfg.Tracer.Enabled)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  http-port: ":8080"
remote:
  base-url: "https://notes.example.com"
  timeout: "30s"
guard:
  protected-prefixes:
    - /workspace
  redirect-target: /login
`)

	cfg, _, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.HttpPort)
	assert.Equal(t, "https://notes.example.com", cfg.Remote.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.GetRemoteTimeout())
	assert.Equal(t, []string{"/workspace"}, cfg.Guard.ProtectedPrefixes)
	assert.Equal(t, "/login", cfg.Guard.RedirectTarget)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestGetRemoteTimeoutFallback(t *testing.T) {
	cfg := &AppConfig{}
	cfg.Remote.Timeout = "not-a-duration"
	assert.Equal(t, 15*time.Second, cfg.GetRemoteTimeout())
}

func TestConfigSaveRoundTrip(t *testing.T) {
	path := writeConfig(t, "server:\n  run-mode: debug\n")

	cfg, _, err := LoadConfig(path)
	require.NoError(t, err)

	cfg.Remote.BaseURL = "http://changed.example.com"
	require.NoError(t, cfg.Save())

	reloaded, _, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://changed.example.com", reloaded.Remote.BaseURL)
}
