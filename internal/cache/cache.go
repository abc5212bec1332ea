// Package cache is the per-filter-key result store. It is process-local and
// in-memory only; every run of the program starts cold.
package cache

import (
	"sync"
	"time"

	"github.com/Hummusful/kitzer/internal/feed"
)

// DefaultTTL matches the web client's five-minute window.
const DefaultTTL = 5 * time.Minute

type entry struct {
	items    []feed.Item
	storedAt time.Time
}

// Store holds one result set per filter key. Entries are replaced wholesale,
// never partially updated.
type Store struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

// New constructs a store with a TTL fixed for its lifetime.
func New(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the cached items for key. An expired entry is evicted and
// reported as a miss.
func (s *Store) Get(key string) ([]feed.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if s.now().Sub(e.storedAt) >= s.ttl {
		delete(s.entries, key)
		return nil, false
	}
	return e.items, true
}

// Set replaces the entry for key.
func (s *Store) Set(key string, items []feed.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{items: items, storedAt: s.now()}
}
