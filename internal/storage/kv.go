package storage

import "sync"

// KV is a whole-value key-value store. Get returns (nil, nil) when the
// key is absent; callers decide what an absent value means.
type KV interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Close() error
}

// Memory is an in-process KV used in tests and as a fallback when no
// database path is configured. Contents are lost on close.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

// Get returns the stored value, or (nil, nil) if the key is absent
func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return nil, nil
	}

	// Return a copy to prevent external modification
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Put stores value under key, replacing any previous value
func (m *Memory) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	m.values[key] = stored
	return nil
}

// Close is a no-op for the in-memory store
func (m *Memory) Close() error {
	return nil
}
