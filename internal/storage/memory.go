package storage

import "context"

// MemoryStore is a map-backed store for tests and ephemeral runs.
type MemoryStore struct {
	values map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

// Load returns the value stored under key, with ok=false when absent.
func (m *MemoryStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}
	v, ok := m.values[key]
	return v, ok, nil
}

// Save writes the value under key, replacing any previous value.
func (m *MemoryStore) Save(_ context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	m.values[key] = cp
	return nil
}

// SaveAll writes every key/value pair as one unit. Validation happens
// before any write, so a rejected batch leaves the store untouched.
func (m *MemoryStore) SaveAll(_ context.Context, values map[string][]byte) error {
	for key := range values {
		if key == "" {
			return ErrEmptyKey
		}
	}
	for key, value := range values {
		cp := make([]byte, len(value))
		copy(cp, value)
		m.values[key] = cp
	}
	return nil
}
