package kv

import "sync"

// MemoryStore keeps values in a map. Nothing survives the process.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]Value
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]Value)}
}

func (s *MemoryStore) Snapshot() (map[string]Value, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyValues(s.values), nil
}

func (s *MemoryStore) Apply(batch *Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Swap in a fully built map so readers never see half a batch
	next := copyValues(s.values)
	batch.applyTo(next)
	s.values = next
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
