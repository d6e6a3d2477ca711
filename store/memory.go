// ABOUTME: In-memory Store implementation for tests
// ABOUTME: Tracks per-collection read/write counts to verify batching discipline
package store

import (
	"context"
	"sync"
)

// MemoryStore holds collection documents in a map. It counts reads and writes
// per collection so tests can assert the one-read-one-write batching contract.
type MemoryStore struct {
	mu     sync.Mutex
	docs   map[string][]byte
	reads  map[string]int
	writes map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:   make(map[string][]byte),
		reads:  make(map[string]int),
		writes: make(map[string]int),
	}
}

func (s *MemoryStore) ReadCollection(_ context.Context, name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads[name]++
	doc, ok := s.docs[name]
	if !ok {
		return nil, nil
	}
	cp := make([]byte, len(doc))
	copy(cp, doc)
	return cp, nil
}

func (s *MemoryStore) WriteCollection(_ context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes[name]++
	cp := make([]byte, len(data))
	copy(cp, data)
	s.docs[name] = cp
	return nil
}

// Reads returns how many times the named collection has been read.
func (s *MemoryStore) Reads(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads[name]
}

// Writes returns how many times the named collection has been written.
func (s *MemoryStore) Writes(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes[name]
}

// ResetCounts zeroes the read/write counters without touching the documents.
func (s *MemoryStore) ResetCounts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads = make(map[string]int)
	s.writes = make(map[string]int)
}
