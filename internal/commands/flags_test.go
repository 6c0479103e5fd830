package commands

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigDir_UsesXDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")

	got := DefaultConfigDir()
	want := filepath.Join("/tmp/xdg-config", "mqtt-inspector")
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestDefaultConfigDir_FallsBackToHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/tester")

	got := DefaultConfigDir()
	if !strings.HasSuffix(got, filepath.Join(".config", "mqtt-inspector")) {
		t.Errorf("expected path ending in .config/mqtt-inspector, got %q", got)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")

	got := DefaultConfigPath()
	want := filepath.Join("/tmp/xdg-config", "mqtt-inspector", "config.yaml")
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
