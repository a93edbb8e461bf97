package storage

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

type backend struct {
	name string
	make func(t *testing.T) Provider
}

func backends() []backend {
	return []backend{
		{
			name: "json",
			make: func(t *testing.T) Provider {
				return NewJSONStore(filepath.Join(t.TempDir(), "thoughts.json"))
			},
		},
		{
			name: "sqlite",
			make: func(t *testing.T) Provider {
				return NewSQLiteStore(filepath.Join(t.TempDir(), "thoughts.db"))
			},
		},
	}
}

func setupStore(t *testing.T, b backend) Provider {
	store := b.make(t)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize %s store: %v", b.name, err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestProviderItems(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			store := setupStore(t, b)

			if _, ok, err := store.GetItem("missing"); err != nil || ok {
				t.Fatalf("GetItem(missing) = ok %v, err %v", ok, err)
			}

			if err := store.SetItem("b", "1"); err != nil {
				t.Fatalf("SetItem failed: %v", err)
			}
			if err := store.SetItem("a", "2"); err != nil {
				t.Fatalf("SetItem failed: %v", err)
			}
			// Overwrite is unconditional
			if err := store.SetItem("b", "3"); err != nil {
				t.Fatalf("SetItem overwrite failed: %v", err)
			}

			value, ok, err := store.GetItem("b")
			if err != nil || !ok || value != "3" {
				t.Errorf("GetItem(b) = %q, %v, %v; want 3", value, ok, err)
			}

			keys, err := store.Keys()
			if err != nil {
				t.Fatalf("Keys failed: %v", err)
			}
			if !reflect.DeepEqual(keys, []string{"a", "b"}) {
				t.Errorf("Keys() = %v", keys)
			}

			if err := store.RemoveItem("a"); err != nil {
				t.Fatalf("RemoveItem failed: %v", err)
			}
			if err := store.RemoveItem("never-set"); err != nil {
				t.Errorf("RemoveItem of absent key should succeed: %v", err)
			}
			if _, ok, _ := store.GetItem("a"); ok {
				t.Error("item a should be gone")
			}
		})
	}
}

func TestProviderPersistsAcrossReopen(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			store := setupStore(t, b)
			if err := store.SetItem("thoughts", "[]"); err != nil {
				t.Fatalf("SetItem failed: %v", err)
			}
			if err := store.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}

			reopened := New(store.GetConfigPath())
			if err := reopened.Load(); err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			defer reopened.Close()

			value, ok, err := reopened.GetItem("thoughts")
			if err != nil || !ok || value != "[]" {
				t.Errorf("GetItem after reopen = %q, %v, %v", value, ok, err)
			}
		})
	}
}

func TestLoadUninitialized(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			store := b.make(t)
			if err := store.Load(); !errors.Is(err, ErrNotInitialized) {
				t.Errorf("Load() error = %v, want ErrNotInitialized", err)
			}
		})
	}
}

func TestNotLoaded(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			store := b.make(t)
			if _, _, err := store.GetItem("x"); !errors.Is(err, ErrNotLoaded) {
				t.Errorf("GetItem error = %v, want ErrNotLoaded", err)
			}
			if err := store.SetItem("x", "y"); !errors.Is(err, ErrNotLoaded) {
				t.Errorf("SetItem error = %v, want ErrNotLoaded", err)
			}
		})
	}
}

func TestJSONStoreInitTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thoughts.json")
	if err := NewJSONStore(path).Init(); err != nil {
		t.Fatalf("first Init failed: %v", err)
	}
	if err := NewJSONStore(path).Init(); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("second Init error = %v, want ErrAlreadyInitialized", err)
	}
}

func TestSQLiteStoreInitIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thoughts.db")
	first := NewSQLiteStore(path)
	if err := first.Init(); err != nil {
		t.Fatalf("first Init failed: %v", err)
	}
	if err := first.SetItem("k", "v"); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}
	first.Close()

	second := NewSQLiteStore(path)
	if err := second.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	defer second.Close()

	if value, ok, _ := second.GetItem("k"); !ok || value != "v" {
		t.Errorf("existing data lost on re-init: %q %v", value, ok)
	}

	applied, err := second.Migrate()
	if err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("expected no pending migrations, got %d", applied)
	}

	var m Migrator = second
	current, latest, err := m.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if current != latest || current < 1 {
		t.Errorf("SchemaVersion() = %d, %d", current, latest)
	}
}

func TestNewSelectsBackend(t *testing.T) {
	tests := []struct {
		config string
		want   string
	}{
		{"/tmp/thoughts.json", "*storage.JSONStore"},
		{"/tmp/THOUGHTS.JSON", "*storage.JSONStore"},
		{"/tmp/thoughts.db", "*storage.SQLiteStore"},
		{"postgres://me@localhost/thoughts", "*storage.PostgresStore"},
		{"postgresql://me@localhost/thoughts", "*storage.PostgresStore"},
	}

	for _, tt := range tests {
		got := reflect.TypeOf(New(tt.config)).String()
		if got != tt.want {
			t.Errorf("New(%q) = %s, want %s", tt.config, got, tt.want)
		}
	}
}
