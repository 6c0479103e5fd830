package config

import (
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if strings.TrimSpace(c.Broker.Host) == "" {
		errs = errs.Append("broker.host", fmt.Errorf("cannot be empty"))
	}

	if c.Broker.Port < 1 || c.Broker.Port > 65535 {
		errs = errs.Append("broker.port", fmt.Errorf("must be between 1 and 65535, got %d", c.Broker.Port))
	}

	if c.Broker.KeepAlive < 0 {
		errs = errs.Append("broker.keep_alive", fmt.Errorf("cannot be negative"))
	}

	if err := ValidateFilter(c.Subscription); err != nil {
		errs = errs.Append("subscription", err)
	}

	if c.History.Capacity < 1 {
		errs = errs.Append("history.capacity", fmt.Errorf("must be at least 1, got %d", c.History.Capacity))
	}

	switch c.Payload.Mode {
	case "text", "json", "hex":
	default:
		errs = errs.Append("payload.mode", fmt.Errorf("must be text, json, or hex, got %q", c.Payload.Mode))
	}

	if c.ConfigDir == "" {
		errs = errs.Append("config_dir", fmt.Errorf("cannot be empty"))
	}

	return errs.ToError()
}

// ValidateFilter checks an MQTT subscription filter against the placement
// rules for wildcards: '#' only as the final segment, '+' only as a whole
// segment.
func ValidateFilter(filter string) error {
	if filter == "" {
		return fmt.Errorf("cannot be empty")
	}

	segments := strings.Split(filter, "/")
	for i, seg := range segments {
		if strings.Contains(seg, "#") {
			if seg != "#" || i != len(segments)-1 {
				return fmt.Errorf("'#' must be the final segment")
			}
		}
		if strings.Contains(seg, "+") && seg != "+" {
			return fmt.Errorf("'+' must occupy a whole segment")
		}
	}

	return nil
}
