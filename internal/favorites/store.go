package favorites

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/kreyollingua/pale/internal/storage"
)

// storageKey is the single key holding the favorites list as a JSON array
const storageKey = "favorites"

// MaxEntries bounds the list. Adding past the bound evicts the oldest
// entry. The expected list size is a few dozen; the bound only guards
// against unbounded growth.
const MaxEntries = 200

// Store is the persisted favorites list. Mutations are serialized by a
// single mutex so two concurrent writes cannot interleave; the whole list
// is written on every mutation and the last completed write wins.
type Store struct {
	kv storage.KV

	mu    sync.Mutex
	items []string
}

// Load reads the persisted list from kv. A missing key, a storage error
// or a value that fails to deserialize all yield an empty list; loading
// never fails.
func Load(kv storage.KV) *Store {
	s := &Store{kv: kv, items: []string{}}

	data, err := kv.Get(storageKey)
	if err != nil || data == nil {
		return s
	}

	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return s
	}

	s.items = items
	return s
}

// Add inserts item at the front of the list. Empty items and items
// already present are no-ops. When the list is at capacity the oldest
// entry is evicted.
func (s *Store) Add(item string) error {
	if item == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if existing == item {
			return nil
		}
	}

	s.items = append([]string{item}, s.items...)
	if len(s.items) > MaxEntries {
		s.items = s.items[:MaxEntries]
	}

	return s.persist()
}

// Remove deletes all exact matches of item from the list
func (s *Store) Remove(item string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	removed := false
	for _, existing := range s.items {
		if existing == item {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}

	if !removed {
		return nil
	}

	s.items = kept
	return s.persist()
}

// Contains reports whether item is in the list (exact match)
func (s *Store) Contains(item string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if existing == item {
			return true
		}
	}
	return false
}

// Items returns a copy of the list, newest first
func (s *Store) Items() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of saved phrases
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// persist writes the whole list. The in-memory mutation stands even if
// the write fails; the caller decides how to surface the error.
// Must be called with s.mu held.
func (s *Store) persist() error {
	data, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}

	if err := s.kv.Put(storageKey, data); err != nil {
		return fmt.Errorf("failed to persist favorites: %w", err)
	}

	return nil
}
