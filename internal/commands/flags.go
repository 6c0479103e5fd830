package commands

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/yeager/mqtt-inspector/internal/core/config"
	"github.com/yeager/mqtt-inspector/internal/core/profile"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	ConfigDir  string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Profiles is the saved-connection store
	Profiles profile.Store

	// Logger is the root logger configured in the Before hook
	Logger zerolog.Logger
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// DefaultConfigDir returns the default config directory using XDG_CONFIG_HOME.
func DefaultConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "mqtt-inspector")
}
