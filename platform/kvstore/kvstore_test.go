package kvstore

import (
	"path/filepath"
	"testing"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.db")

	store, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer store.Close()

	if _, ok, err := store.Get("missing"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := store.Set("onboarding_1", `{"status":"pending"}`); err != nil {
		t.Fatalf("Set: %v", err)
	}

	value, ok, err := store.Get("onboarding_1")
	if err != nil || !ok {
		t.Fatalf("Get after Set: ok=%v err=%v", ok, err)
	}
	if value != `{"status":"pending"}` {
		t.Fatalf("unexpected value %q", value)
	}
}

func TestSQLiteStoreOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.db")

	store, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer store.Close()

	if err := store.Set("onboarding_list", `["a"]`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Set("onboarding_list", `["a","b"]`); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}

	value, ok, _ := store.Get("onboarding_list")
	if !ok || value != `["a","b"]` {
		t.Fatalf("expected overwritten value, got %q ok=%v", value, ok)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	if err := store.Set("k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value, ok, err := store.Get("k")
	if err != nil || !ok || value != "v" {
		t.Fatalf("Get = %q ok=%v err=%v", value, ok, err)
	}
}
