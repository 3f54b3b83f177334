package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("REMOTE_URL", "https://backend.example")
	t.Setenv("REMOTE_ANON_KEY", "anon")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://backend.example", cfg.RemoteURL)
	assert.Equal(t, "anon", cfg.RemoteAnonKey)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 12, cfg.CatalogInitialCount)
	assert.Equal(t, 3, cfg.CatalogIncrement)
}

func TestLoad_YAMLFile(t *testing.T) {
	t.Setenv("REMOTE_URL", "")
	t.Setenv("REMOTE_ANON_KEY", "")
	t.Setenv("HTTP_PORT", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
remote_url: https://backend.example
remote_anon_key: anon
http_port: "9090"
catalog_initial_count: 6
catalog_increment: 2
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 6, cfg.CatalogInitialCount)
	assert.Equal(t, 2, cfg.CatalogIncrement)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout, "default kept when file omits it")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("REMOTE_URL", "https://override.example")
	t.Setenv("REMOTE_ANON_KEY", "anon")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("remote_url: https://file.example\nremote_anon_key: anon\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://override.example", cfg.RemoteURL)
}

func TestLoad_MissingRemoteURL(t *testing.T) {
	t.Setenv("REMOTE_URL", "")
	t.Setenv("REMOTE_ANON_KEY", "")

	_, err := Load("")
	require.ErrorContains(t, err, "remote_url is required")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorContains(t, err, "read config file")
}
