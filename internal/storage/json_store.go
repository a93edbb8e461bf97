package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/julianstephens/thoughts/internal/constants"
)

type Store struct {
	Version int               `json:"version"`
	Items   map[string]string `json:"items"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("%w at %s", ErrAlreadyInitialized, s.path)
	}

	s.store = &Store{
		Version: constants.StoreVersion,
		Items:   make(map[string]string),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	store := &Store{}
	if err := json.Unmarshal(data, store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if store.Items == nil {
		store.Items = make(map[string]string)
	}

	s.store = store
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes to a temp file and renames it over the store so a failed
// write never leaves a truncated file behind.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetItem(key string) (string, bool, error) {
	if s.store == nil {
		return "", false, ErrNotLoaded
	}
	value, ok := s.store.Items[key]
	return value, ok, nil
}

func (s *JSONStore) SetItem(key, value string) error {
	if s.store == nil {
		return ErrNotLoaded
	}

	prev, had := s.store.Items[key]
	s.store.Items[key] = value
	if err := s.save(); err != nil {
		if had {
			s.store.Items[key] = prev
		} else {
			delete(s.store.Items, key)
		}
		return err
	}
	return nil
}

func (s *JSONStore) RemoveItem(key string) error {
	if s.store == nil {
		return ErrNotLoaded
	}

	prev, had := s.store.Items[key]
	if !had {
		return nil
	}
	delete(s.store.Items, key)
	if err := s.save(); err != nil {
		s.store.Items[key] = prev
		return err
	}
	return nil
}

func (s *JSONStore) Keys() ([]string, error) {
	if s.store == nil {
		return nil, ErrNotLoaded
	}

	keys := make([]string, 0, len(s.store.Items))
	for k := range s.store.Items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
