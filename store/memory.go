package store

import (
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore implements Store with an in-memory map. Used for tests and
// development; nothing survives the process. Values round-trip through
// JSON so type behavior matches the SQLite store.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte

	// FailPuts makes every Put return an error. Lets tests exercise the
	// persistence-failure path.
	FailPuts bool
}

func NewMemory() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

func (s *MemoryStore) Get(key string, out any) (bool, error) {
	s.mu.RLock()
	raw, ok := s.records[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("decode record %q: %w", key, err)
	}
	return true, nil
}

func (s *MemoryStore) Put(key string, v any) error {
	if s.FailPuts {
		return fmt.Errorf("write record %q: store unavailable", key)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode record %q: %w", key, err)
	}
	s.mu.Lock()
	s.records[key] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Reset() error {
	s.mu.Lock()
	s.records = make(map[string][]byte)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Close() error { return nil }
