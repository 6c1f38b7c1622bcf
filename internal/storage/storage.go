package storage

import (
	"errors"
	"fmt"

	"pr_tracker/internal/app"
)

// ErrUnsupportedBackend is returned by Open for an unknown backend name
var ErrUnsupportedBackend = errors.New("unsupported storage backend")

// KeyValueStore is a synchronous string key-value slot store.
// No transactionality is guaranteed across keys.
type KeyValueStore interface {
	// Get returns the value stored under key; ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
}

// Closer is implemented by stores holding external resources
type Closer interface {
	Close() error
}

// Open creates the key-value store for the configured backend
func Open(backend, path string) (KeyValueStore, error) {
	switch backend {
	case app.BackendSQLite:
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case app.BackendFile:
		f, err := NewFileStore(path)
		if err != nil {
			return nil, err
		}
		return f, nil
	case app.BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, backend)
	}
}

// Close releases resources held by kv, if any
func Close(kv KeyValueStore) error {
	if c, ok := kv.(Closer); ok {
		return c.Close()
	}
	return nil
}
