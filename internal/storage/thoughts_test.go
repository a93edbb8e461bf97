package storage

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/julianstephens/thoughts/internal/constants"
	"github.com/julianstephens/thoughts/internal/models"
)

func TestLoadThoughtsEmpty(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			store := setupStore(t, b)

			thoughts, err := LoadThoughts(store)
			if err != nil {
				t.Fatalf("LoadThoughts failed: %v", err)
			}
			if thoughts == nil || len(thoughts) != 0 {
				t.Errorf("expected empty non-nil list, got %#v", thoughts)
			}
		})
	}
}

func TestThoughtsRoundTrip(t *testing.T) {
	want := []models.Thought{
		{Key: 0, Value: "Hello", Liked: true, LastEditted: 1700000000000},
		{Key: 1, Value: "  ", Favorite: true, LastEditted: 1700000060000},
		{Key: 1, Value: "collides with the one above", LastEditted: 1700000120000},
	}

	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			store := setupStore(t, b)

			if err := SaveThoughts(store, want); err != nil {
				t.Fatalf("SaveThoughts failed: %v", err)
			}
			got, err := LoadThoughts(store)
			if err != nil {
				t.Fatalf("LoadThoughts failed: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, want)
			}
		})
	}
}

func TestSaveThoughtsNil(t *testing.T) {
	store := setupStore(t, backends()[0])

	if err := SaveThoughts(store, nil); err != nil {
		t.Fatalf("SaveThoughts failed: %v", err)
	}
	raw, _, _ := store.GetItem(constants.ThoughtsKey)
	if raw != "[]" {
		t.Errorf("nil list stored as %q, want []", raw)
	}
}

func TestLoadThoughtsMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"truncated", `[{"key":0,`},
		{"wrong shape", `{"key":0}`},
		{"wrong field type", `[{"key":"zero"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := setupStore(t, backends()[0])
			if err := store.SetItem(constants.ThoughtsKey, tt.raw); err != nil {
				t.Fatalf("SetItem failed: %v", err)
			}
			_, err := LoadThoughts(store)
			if err == nil || !strings.Contains(err.Error(), "failed to parse stored thoughts") {
				t.Errorf("expected parse error, got %v", err)
			}
		})
	}
}

func TestLoadThoughtsNull(t *testing.T) {
	store := setupStore(t, backends()[0])
	if err := store.SetItem(constants.ThoughtsKey, "null"); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}
	thoughts, err := LoadThoughts(store)
	if err != nil {
		t.Fatalf("LoadThoughts failed: %v", err)
	}
	if len(thoughts) != 0 {
		t.Errorf("expected empty list, got %v", thoughts)
	}
}

func TestNextKey(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "thoughts.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer store.Close()

	n, err := LoadNextKey(store)
	if err != nil || n != 0 {
		t.Fatalf("LoadNextKey on fresh store = %d, %v", n, err)
	}

	if err := SaveNextKey(store, 42); err != nil {
		t.Fatalf("SaveNextKey failed: %v", err)
	}
	n, err = LoadNextKey(store)
	if err != nil || n != 42 {
		t.Errorf("LoadNextKey = %d, %v; want 42", n, err)
	}

	if err := store.SetItem(constants.NextKeyKey, "forty-two"); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}
	if _, err := LoadNextKey(store); err == nil {
		t.Error("expected error for malformed counter")
	}
}
