package storage

import (
	"sync"
)

// MemoryStore is an in-process KeyValueStore.
// FailWrites makes every Set return the given error, mimicking a full or unavailable slot.
type MemoryStore struct {
	mu         sync.RWMutex
	data       map[string]string
	failWrites error
	writes     int
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.failWrites != nil {
		return m.failWrites
	}
	m.data[key] = value
	return nil
}

func (m *MemoryStore) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// FailWrites makes subsequent Set calls fail with err; nil restores normal writes
func (m *MemoryStore) FailWrites(err error) {
	m.mu.Lock()
	m.failWrites = err
	m.mu.Unlock()
}

// Writes returns the number of Set calls, successful or not
func (m *MemoryStore) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}
