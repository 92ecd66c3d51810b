package persistence

import (
	"os"
	"path/filepath"
	"testing"
)

type record struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

func TestJSONFileStore_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slot.json")
	store := NewJSONFileStore(path)

	want := record{Token: "abc", ExpiresAt: "2026-01-02T15:04:05Z"}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	var got record
	if err := store.Load(&got); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != want {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
}

func TestJSONFileStore_LoadMissing(t *testing.T) {
	store := NewJSONFileStore(filepath.Join(t.TempDir(), "missing.json"))

	var got record
	if err := store.Load(&got); err != ErrNotExists {
		t.Errorf("Load of missing file = %v, want ErrNotExists", err)
	}
}

func TestJSONFileStore_LoadEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	store := NewJSONFileStore(path)

	var got record
	if err := store.Load(&got); err != ErrNotExists {
		t.Errorf("Load of empty file = %v, want ErrNotExists", err)
	}
}

func TestJSONFileStore_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slot.json")
	store := NewJSONFileStore(path)

	// Write a record with extra fields, then save a plain record on top.
	if err := store.Save(map[string]string{
		"token":      "old",
		"expires_at": "2020-01-01T00:00:00Z",
		"stale":      "leftover",
	}); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(record{Token: "new", ExpiresAt: "2026-01-01T00:00:00Z"}); err != nil {
		t.Fatal(err)
	}

	var raw map[string]string
	if err := store.Load(&raw); err != nil {
		t.Fatal(err)
	}
	if _, ok := raw["stale"]; ok {
		t.Error("stale field survived an overwrite")
	}
	if raw["token"] != "new" {
		t.Errorf("token = %q, want %q", raw["token"], "new")
	}
}

func TestJSONFileStore_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "slot.json")
	store := NewJSONFileStore(path)

	if err := store.Save(record{Token: "x"}); err != nil {
		t.Fatalf("Save into missing dir failed: %v", err)
	}
}
