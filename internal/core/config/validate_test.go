package config

import (
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a Config with all required fields set for testing.
func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.ConfigDir = t.TempDir()
	return &cfg
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig(t)
	assert.NoError(t, cfg.Validate())
}

func TestValidate_EmptyHost(t *testing.T) {
	cfg := validConfig(t)
	cfg.Broker.Host = "  "

	err := cfg.Validate()

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 1)
	assert.Equal(t, "broker.host", fieldErrs[0].Field)
}

func TestValidate_BadPortAndCapacity(t *testing.T) {
	cfg := validConfig(t)
	cfg.Broker.Port = 70000
	cfg.History.Capacity = 0

	err := cfg.Validate()

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 2)
	assert.Equal(t, "broker.port", fieldErrs[0].Field)
	assert.Equal(t, "history.capacity", fieldErrs[1].Field)
}

func TestValidate_BadPayloadMode(t *testing.T) {
	cfg := validConfig(t)
	cfg.Payload.Mode = "base64"

	err := cfg.Validate()

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 1)
	assert.Contains(t, fieldErrs[0].Err.Error(), "base64")
}

func TestValidateFilter(t *testing.T) {
	tests := []struct {
		name    string
		filter  string
		wantErr bool
	}{
		{name: "match all", filter: "#", wantErr: false},
		{name: "exact topic", filter: "home/temp", wantErr: false},
		{name: "single level wildcard", filter: "home/+/temp", wantErr: false},
		{name: "trailing multi level", filter: "home/#", wantErr: false},
		{name: "empty", filter: "", wantErr: true},
		{name: "hash not final", filter: "home/#/temp", wantErr: true},
		{name: "hash inside segment", filter: "home/te#mp", wantErr: true},
		{name: "plus inside segment", filter: "home/te+mp", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilter(tt.filter)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
