package ratelimiter

import (
	"hash/fnv"
	"sync"
	"time"
)

const defaultShardCount = 16

// entry wraps per-key state with the access time the reaper consults.
type entry[T any] struct {
	state      T
	lastAccess time.Time
}

// shard is one independently locked partition of the key space.
type shard[T any] struct {
	mu   sync.Mutex
	keys map[string]*entry[T]
}

// shardedMap partitions key state by an FNV-1a hash of the key so that
// callers hitting unrelated keys do not serialize on a single lock.
type shardedMap[T any] struct {
	shards []*shard[T]
}

func newShardedMap[T any](n int) *shardedMap[T] {
	m := &shardedMap[T]{shards: make([]*shard[T], n)}
	for i := range m.shards {
		m.shards[i] = &shard[T]{keys: make(map[string]*entry[T])}
	}
	return m
}

func (m *shardedMap[T]) shard(key string) *shard[T] {
	h := fnv.New32a()
	h.Write([]byte(key))
	return m.shards[h.Sum32()%uint32(len(m.shards))]
}

// update runs fn on the key's state with the shard lock held, inserting
// fresh state from init on first observation of the key. Lookup and insert
// happen under the same lock acquisition, so two callers racing on a new key
// can never initialize it twice. fn must not block or call back into the map.
func (m *shardedMap[T]) update(key string, now time.Time, init func() T, fn func(*T)) {
	s := m.shard(key)
	s.mu.Lock()
	e, ok := s.keys[key]
	if !ok {
		e = &entry[T]{state: init()}
		s.keys[key] = e
	}
	e.lastAccess = now
	fn(&e.state)
	s.mu.Unlock()
}

// size returns the number of keys currently tracked.
func (m *shardedMap[T]) size() int {
	n := 0
	for _, s := range m.shards {
		s.mu.Lock()
		n += len(s.keys)
		s.mu.Unlock()
	}
	return n
}

// evictIdle removes entries last touched at or before cutoff and returns how
// many were dropped. Each shard is locked in turn; admissions on other
// shards proceed untouched while one shard is swept.
func (m *shardedMap[T]) evictIdle(cutoff time.Time) int {
	removed := 0
	for _, s := range m.shards {
		s.mu.Lock()
		for k, e := range s.keys {
			if !e.lastAccess.After(cutoff) {
				delete(s.keys, k)
				removed++
			}
		}
		s.mu.Unlock()
	}
	return removed
}
