package cache

import (
	"sync"
)

// Observer receives cache events. The metrics collector implements it.
type Observer interface {
	Hit(kind Kind)
	Miss(kind Kind)
	Invalidated(kind Kind)
}

type nopObserver struct{}

func (nopObserver) Hit(Kind)         {}
func (nopObserver) Miss(Kind)        {}
func (nopObserver) Invalidated(Kind) {}

// Option configures a Store.
type Option func(*Store)

// WithObserver reports hits, misses and invalidations to o.
func WithObserver(o Observer) Option {
	return func(s *Store) {
		if o != nil {
			s.observer = o
		}
	}
}

// Store is a thread-safe in-memory key/value cache of serialized results.
// Entries never expire and are never evicted; they disappear only through Delete
// or Invalidate.
type Store struct {
	mu       sync.RWMutex
	entries  map[Key][]byte
	epoch    uint64
	observer Observer
}

// NewStore creates an empty cache.
func NewStore(opts ...Option) *Store {
	s := &Store{
		entries:  make(map[Key][]byte),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Has reports whether a value is stored under key.
func (s *Store) Has(key Key) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.entries[key]
	return ok
}

// Get returns a copy of the value stored under key.
func (s *Store) Get(key Key) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true
}

// Set stores value under key, overwriting any previous entry.
func (s *Store) Set(key Key, value []byte) {
	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = stored
}

// SetIfEpoch stores value under key only if no Delete or Invalidate ran since
// Epoch returned epoch. It reports whether the value was stored.
func (s *Store) SetIfEpoch(key Key, value []byte, epoch uint64) bool {
	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch != epoch {
		return false
	}
	s.entries[key] = stored
	return true
}

// Epoch returns a counter that advances on every Delete and Invalidate.
// Capture it before computing a value and store with SetIfEpoch so a result
// built from data a concurrent mutation replaced is not cached.
func (s *Store) Epoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.epoch
}

// Delete removes key. Deleting a missing key is a no-op.
func (s *Store) Delete(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	s.epoch++
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}
