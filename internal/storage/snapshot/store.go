// Package snapshot
package snapshot

import "sync"

// Store keeps the most recent value of T. Values are replaced whole, never
// modified in place, so a reader sees either the old value or the new one.
type Store[T any] struct {
	mu      sync.RWMutex
	data    T
	version uint64
}

func (s *Store[T]) Set(v T) {
	s.mu.Lock()
	s.data = v
	s.version++
	s.mu.Unlock()
}

// Load reports false until the first Set.
func (s *Store[T]) Load() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data, s.version > 0
}

// Current returns the value, the number of Set calls so far and whether any
// Set happened, all from the same moment.
func (s *Store[T]) Current() (T, uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data, s.version, s.version > 0
}

// Version counts Set calls.
func (s *Store[T]) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
