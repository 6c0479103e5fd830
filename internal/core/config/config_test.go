package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "nope.yml"), dir)
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Broker.Host)
	assert.Equal(t, PortPlain, cfg.Broker.Port)
	assert.Equal(t, "#", cfg.Subscription)
	assert.Equal(t, 100, cfg.History.Capacity)
	assert.Equal(t, "text", cfg.Payload.Mode)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("broker:\n  host: broker.example.com\n  tls: true\n"), 0o644))

	cfg, err := Load(path, dir)
	require.NoError(t, err)

	assert.Equal(t, "broker.example.com", cfg.Broker.Host)
	// TLS with no explicit port picks the TLS default.
	assert.Equal(t, PortTLS, cfg.Broker.Port)
	assert.Equal(t, 60, cfg.Broker.KeepAlive)
	assert.Equal(t, "#", cfg.Subscription)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("broker: ["), 0o644))

	_, err := Load(path, dir)
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("subscription: \"a/#/b\"\n"), 0o644))

	_, err := Load(path, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestProfilesFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConfigDir = "/tmp/x"
	assert.Equal(t, "/tmp/x/profiles.json", cfg.ProfilesFile())
}
