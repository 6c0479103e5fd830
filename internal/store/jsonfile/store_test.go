package jsonfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yeager/mqtt-inspector/internal/core/profile"
)

func TestStore_SaveAndGet(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "profiles.json"))
	ctx := context.Background()

	p := profile.Profile{
		Name:     "lab",
		Host:     "broker.example.com",
		Port:     1883,
		Username: "inspector",
	}

	if err := store.Save(ctx, p); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Get(ctx, "lab")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Host != "broker.example.com" {
		t.Errorf("Host = %q, want %q", got.Host, "broker.example.com")
	}
	if got.Username != "inspector" {
		t.Errorf("Username = %q, want %q", got.Username, "inspector")
	}
}

func TestStore_SaveReplacesSameBroker(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "profiles.json"))
	ctx := context.Background()

	if err := store.Save(ctx, profile.Profile{Name: "old", Host: "h", Port: 1883}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save(ctx, profile.Profile{Name: "new", Host: "h", Port: 1883, Username: "u"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	profiles, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("List returned %d profiles, want 1", len(profiles))
	}
	if profiles[0].Name != "new" {
		t.Errorf("Name = %q, want %q", profiles[0].Name, "new")
	}
}

func TestStore_DifferentPortsAreDistinct(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "profiles.json"))
	ctx := context.Background()

	if err := store.Save(ctx, profile.Profile{Name: "plain", Host: "h", Port: 1883}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save(ctx, profile.Profile{Name: "tls", Host: "h", Port: 8883, TLS: true}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	profiles, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("List returned %d profiles, want 2", len(profiles))
	}
}

func TestStore_GetNotFound(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "profiles.json"))

	_, err := store.Get(context.Background(), "nope")
	if !errors.Is(err, profile.ErrNotFound) {
		t.Errorf("Get error = %v, want ErrNotFound", err)
	}
}

func TestStore_Delete(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "profiles.json"))
	ctx := context.Background()

	if err := store.Save(ctx, profile.Profile{Name: "lab", Host: "h", Port: 1883}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Delete(ctx, "lab"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, "lab"); !errors.Is(err, profile.ErrNotFound) {
		t.Errorf("Delete error = %v, want ErrNotFound", err)
	}
}

func TestStore_CorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	store := New(path)
	profiles, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(profiles) != 0 {
		t.Errorf("List returned %d profiles, want 0", len(profiles))
	}
}

func TestStore_MissingFile(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "profiles.json"))

	profiles, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(profiles) != 0 {
		t.Errorf("List returned %d profiles, want 0", len(profiles))
	}
}
