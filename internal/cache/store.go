package cache

import (
	"sync"
	"time"
)

const (
	// DefaultMaxEntries bounds the store when no explicit capacity is configured.
	DefaultMaxEntries = 1024
)

type entry struct {
	value     any
	expiresAt time.Time
	seq       uint64
}

// Store is an in-memory key/value store with per-entry expiry and a bounded
// number of live entries. Expired entries are dropped lazily on read. When an
// insert would exceed the capacity bound, roughly 10% of the entries (at least
// one) are evicted in oldest-inserted-first order; nothing in the service
// depends on a particular eviction order.
type Store struct {
	mu         sync.Mutex
	entries    map[string]entry
	maxEntries int
	nextSeq    uint64
	now        func() time.Time
}

// NewStore creates a store holding at most maxEntries live entries.
// Non-positive capacities fall back to DefaultMaxEntries.
func NewStore(maxEntries int) *Store {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Store{
		entries:    make(map[string]entry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns the value stored under key. An entry whose expiry has passed is
// treated as absent and removed as a side effect.
func (s *Store) Get(key string) (any, bool) {
	if s == nil {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if !s.now().Before(item.expiresAt) {
		delete(s.entries, key)
		return nil, false
	}
	return item.value, true
}

// Set stores value under key for the given TTL. A non-positive TTL disables
// caching for this call and leaves the store untouched.
func (s *Store) Set(key string, value any, ttl time.Duration) {
	if s == nil || ttl <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; !exists && len(s.entries) >= s.maxEntries {
		s.evictLocked()
	}

	s.nextSeq++
	s.entries[key] = entry{
		value:     value,
		expiresAt: s.now().Add(ttl),
		seq:       s.nextSeq,
	}
}

// Len reports the number of physically present entries, expired or not.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// evictLocked removes roughly 10% of entries (at least one), expired entries
// first, then oldest-inserted. Caller must hold s.mu.
func (s *Store) evictLocked() {
	count := len(s.entries) / 10
	if count < 1 {
		count = 1
	}

	now := s.now()
	for key, item := range s.entries {
		if count == 0 {
			return
		}
		if !now.Before(item.expiresAt) {
			delete(s.entries, key)
			count--
		}
	}

	for count > 0 && len(s.entries) > 0 {
		oldestKey := ""
		oldestSeq := uint64(0)
		first := true
		for key, item := range s.entries {
			if first || item.seq < oldestSeq {
				oldestKey = key
				oldestSeq = item.seq
				first = false
			}
		}
		delete(s.entries, oldestKey)
		count--
	}
}
