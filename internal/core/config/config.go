// Package config handles configuration loading and validation for
// mqtt-inspector.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Standard MQTT ports.
const (
	PortPlain = 1883
	PortTLS   = 8883
)

// Config holds the application configuration.
type Config struct {
	Broker       BrokerConfig  `yaml:"broker"`
	Subscription string        `yaml:"subscription"`
	History      HistoryConfig `yaml:"history"`
	Payload      PayloadConfig `yaml:"payload"`
	ConfigDir    string        `yaml:"-"` // set by caller, not from config file
}

// BrokerConfig holds connection settings for the broker.
type BrokerConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	TLS       bool   `yaml:"tls"`
	ClientID  string `yaml:"client_id"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	KeepAlive int    `yaml:"keep_alive"` // seconds
}

// HistoryConfig bounds the per-topic message history.
type HistoryConfig struct {
	Capacity int `yaml:"capacity"`
}

// PayloadConfig controls how payloads are rendered by default.
type PayloadConfig struct {
	Mode string `yaml:"mode"` // text, json, or hex
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Broker: BrokerConfig{
			Host:      "localhost",
			Port:      PortPlain,
			KeepAlive: 60,
		},
		Subscription: "#",
		History:      HistoryConfig{Capacity: 100},
		Payload:      PayloadConfig{Mode: "text"},
	}
}

// Load reads configuration from the given path and sets the config
// directory. If configPath is empty or doesn't exist, returns defaults with
// the provided configDir.
func Load(configPath, configDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.ConfigDir = configDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set configDir since Unmarshal may have cleared it
			cfg.ConfigDir = configDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Broker.Host == "" {
		c.Broker.Host = defaults.Broker.Host
	}
	if c.Broker.Port == 0 {
		if c.Broker.TLS {
			c.Broker.Port = PortTLS
		} else {
			c.Broker.Port = defaults.Broker.Port
		}
	}
	if c.Broker.KeepAlive == 0 {
		c.Broker.KeepAlive = defaults.Broker.KeepAlive
	}
	if c.Subscription == "" {
		c.Subscription = defaults.Subscription
	}
	if c.History.Capacity == 0 {
		c.History.Capacity = defaults.History.Capacity
	}
	if c.Payload.Mode == "" {
		c.Payload.Mode = defaults.Payload.Mode
	}
}

// ProfilesFile returns the path to the saved connection profiles.
func (c *Config) ProfilesFile() string {
	return filepath.Join(c.ConfigDir, "profiles.json")
}
