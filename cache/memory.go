package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     []byte
	typ       Type
	expiresAt time.Time
}

// MemoryStore is an in-process Store. Expiry is lazy: entries are dropped
// when read past their TTL or swept during Stats. There is no LRU bound, so
// the keyspace can grow until invalidation or expiry; callers are expected to
// keep keys enumerable (see the key helpers in this package).
//
// Each process holds its own MemoryStore, so invalidation on one instance is
// not visible to others. Deployments running more than one replica should
// select the redis backend instead.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryStore creates an empty store. Stores are cheap; tests can build
// isolated instances freely.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !s.now().Before(e.expiresAt) {
		s.mu.Lock()
		// Re-check under the write lock; Set may have refreshed the entry.
		if cur, ok := s.entries[key]; ok && !s.now().Before(cur.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, typ Type, ttl time.Duration) {
	s.mu.Lock()
	s.entries[key] = entry{
		value:     value,
		typ:       typ,
		expiresAt: s.now().Add(ttl),
	}
	s.mu.Unlock()
}

func (s *MemoryStore) InvalidateType(_ context.Context, typ Type, identifiers ...string) {
	s.mu.Lock()
	for key, e := range s.entries {
		if e.typ == typ {
			delete(s.entries, key)
		}
	}
	for _, id := range identifiers {
		delete(s.entries, identifierKey(typ, id))
	}
	s.mu.Unlock()
}

func (s *MemoryStore) InvalidateAll(_ context.Context) {
	s.mu.Lock()
	s.entries = make(map[string]entry)
	s.mu.Unlock()
}

// Stats reports live entries only and sweeps out expired ones while counting.
func (s *MemoryStore) Stats(_ context.Context) Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := Stats{ByType: make(map[Type]int)}
	now := s.now()
	for key, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, key)
			continue
		}
		stats.Entries++
		stats.ByType[e.typ]++
		stats.ApproxBytes += int64(len(key) + len(e.value))
	}
	return stats
}
