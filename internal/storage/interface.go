package storage

import "errors"

var (
	ErrNotLoaded          = errors.New("storage not loaded")
	ErrNotInitialized     = errors.New("storage not initialized, run 'thoughts init' first")
	ErrAlreadyInitialized = errors.New("storage already initialized")
)

// Provider is a string key-value store, the local equivalent of a browser's
// localStorage. Implementations are not safe for concurrent use.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Items
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}
