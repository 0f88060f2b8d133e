package otp

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps pending codes in a process-local map. It is the default
// store and is not shared across server instances; deployments running more
// than one replica should use the Redis store instead.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	rec      Record
	deadline time.Time
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Put(_ context.Context, key string, rec Record, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{rec: rec, deadline: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return Record{}, ErrNoRecord
	}

	// Entries past their TTL are evicted lazily on access.
	if time.Now().After(entry.deadline) {
		delete(s.entries, key)
		return Record{}, ErrNoRecord
	}

	return entry.rec, nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
