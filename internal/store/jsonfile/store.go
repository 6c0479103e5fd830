// Package jsonfile provides a JSON file-based profile store.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/yeager/mqtt-inspector/internal/core/profile"
)

// ProfileFile is the root JSON structure stored on disk.
type ProfileFile struct {
	Profiles []profile.Profile `json:"profiles"`
}

// Store implements profile.Store using a JSON file for persistence.
type Store struct {
	path string
	mu   sync.RWMutex
}

// New creates a new JSON file store at the given path.
func New(path string) *Store {
	return &Store{path: path}
}

// List returns all profiles.
func (s *Store) List(ctx context.Context) ([]profile.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}

	return file.Profiles, nil
}

// Get returns a profile by name. Returns ErrNotFound if not found.
func (s *Store) Get(ctx context.Context, name string) (profile.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return profile.Profile{}, err
	}

	for _, p := range file.Profiles {
		if p.Name == name {
			return p, nil
		}
	}

	return profile.Profile{}, profile.ErrNotFound
}

// Save creates or updates a profile. Profiles are keyed by host and port, so
// saving a profile for an already-known broker replaces the existing entry.
func (s *Store) Save(ctx context.Context, p profile.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	found := false
	for i, existing := range file.Profiles {
		if existing.Key() == p.Key() {
			file.Profiles[i] = p
			found = true
			break
		}
	}
	if !found {
		file.Profiles = append(file.Profiles, p)
	}

	return s.save(file)
}

// Delete removes a profile by name. Returns ErrNotFound if not found.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	for i, p := range file.Profiles {
		if p.Name == name {
			file.Profiles = append(file.Profiles[:i], file.Profiles[i+1:]...)
			return s.save(file)
		}
	}

	return profile.ErrNotFound
}

// load reads the profile file from disk. A missing or unreadable file yields
// an empty ProfileFile so a bad profiles file never blocks startup.
func (s *Store) load() (ProfileFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ProfileFile{}, nil
		}
		return ProfileFile{}, fmt.Errorf("read profiles file: %w", err)
	}

	if len(data) == 0 {
		return ProfileFile{}, nil
	}

	var file ProfileFile
	if err := json.Unmarshal(data, &file); err != nil {
		// Corrupt file: start fresh rather than refusing to run.
		return ProfileFile{}, nil
	}

	return file, nil
}

// save writes the profile file to disk atomically.
// Uses write-to-temp-then-rename to prevent corruption from interrupted writes.
func (s *Store) save(file ProfileFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create profiles directory: %w", err)
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal profiles: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
