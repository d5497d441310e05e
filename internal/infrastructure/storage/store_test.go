package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir(), "state.json")

	if got := store.Get("cookies"); got != "" {
		t.Errorf("Expected empty value before any Put, got %q", got)
	}

	if err := store.Put("cookies", "session=abc"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if got := store.Get("cookies"); got != "session=abc" {
		t.Errorf("Expected session=abc, got %q", got)
	}

	if err := store.Put("cookies", "session=def"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if got := store.Get("cookies"); got != "session=def" {
		t.Errorf("Expected overwrite to win, got %q", got)
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	first := NewStore(dir, "state.json")
	if err := first.Put("cookies", "session=abc"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	second := NewStore(dir, "state.json")
	if got := second.Get("cookies"); got != "session=abc" {
		t.Errorf("Expected persisted value, got %q", got)
	}
}

func TestStoreDelete(t *testing.T) {
	store := NewStore(t.TempDir(), "state.json")

	if err := store.Delete("missing"); err != nil {
		t.Errorf("Deleting an absent key should be a no-op, got %v", err)
	}

	store.Put("cookies", "session=abc")
	if err := store.Delete("cookies"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if got := store.Get("cookies"); got != "" {
		t.Errorf("Expected empty value after delete, got %q", got)
	}
}

func TestStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	store := NewStore(dir, "state.json")
	if got := store.Get("cookies"); got != "" {
		t.Errorf("Expected empty value from corrupt file, got %q", got)
	}

	// A Put must recover by rewriting the file.
	if err := store.Put("cookies", "session=abc"); err != nil {
		t.Fatalf("Put over corrupt file failed: %v", err)
	}
	if got := store.Get("cookies"); got != "session=abc" {
		t.Errorf("Expected recovery after Put, got %q", got)
	}
}
