package store

import (
	"sync"

	"soilpico/internal/modules/history/types"
)

// DefaultCapacity bounds the in-memory history when no explicit capacity is
// configured.
const DefaultCapacity = 500

// Store is the bounded in-memory reading history. Appends go to the tail;
// once the capacity is reached the oldest readings are evicted from the
// head. HTTP handlers and the sampling tick touch the store from different
// goroutines, so all operations hold the mutex and reads return copies.
type Store struct {
	mu       sync.RWMutex
	readings []types.Reading
	capacity int
}

func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		readings: make([]types.Reading, 0, capacity),
		capacity: capacity,
	}
}

// Append adds a reading at the tail and evicts from the head until the
// store is back at capacity. It never fails.
func (s *Store) Append(r types.Reading) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readings = append(s.readings, r)
	if over := len(s.readings) - s.capacity; over > 0 {
		s.readings = append(s.readings[:0], s.readings[over:]...)
	}
}

// Replace swaps the entire contents, keeping only the newest entries if the
// input exceeds capacity. Used once at startup to install the loaded
// history.
func (s *Store) Replace(readings []types.Reading) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if over := len(readings) - s.capacity; over > 0 {
		readings = readings[over:]
	}
	s.readings = append(s.readings[:0], readings...)
}

// Clear empties the store. Idempotent.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readings = s.readings[:0]
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.readings)
}

// Snapshot returns a copy of the full contents in chronological order.
func (s *Store) Snapshot() []types.Reading {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Reading, len(s.readings))
	copy(out, s.readings)
	return out
}

// Window returns a copy of the last min(n, len) readings in chronological
// order.
func (s *Store) Window(n int) []types.Reading {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n < 0 {
		n = 0
	}
	if n > len(s.readings) {
		n = len(s.readings)
	}
	out := make([]types.Reading, n)
	copy(out, s.readings[len(s.readings)-n:])
	return out
}
