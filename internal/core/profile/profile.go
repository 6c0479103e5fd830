// Package profile defines saved broker connection profiles.
package profile

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a profile doesn't exist.
var ErrNotFound = errors.New("profile not found")

// Profile is a saved broker connection.
type Profile struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	TLS      bool   `json:"tls"`
	ClientID string `json:"client_id,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// Key identifies a profile. Two profiles for the same host and port are the
// same connection, so saving one replaces the other.
func (p Profile) Key() string {
	return fmt.Sprintf("%s:%d", p.Host, p.Port)
}

// DisplayName returns the profile's name, falling back to host:port.
func (p Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Key()
}

// Store persists connection profiles.
type Store interface {
	List(ctx context.Context) ([]Profile, error)
	Get(ctx context.Context, name string) (Profile, error)
	Save(ctx context.Context, p Profile) error
	Delete(ctx context.Context, name string) error
}
