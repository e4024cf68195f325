// Package accumulator provides a map split into independently locked shards
// so that many goroutines can add partial scores for different keys without
// contending on one lock.
package accumulator

import (
	"sync"

	"golang.org/x/exp/constraints"
)

type shard[K constraints.Integer, V any] struct {
	mu sync.Mutex
	m  map[K]V
}

// Map is a sharded K -> V map. A key always lives in shard key mod n.
type Map[K constraints.Integer, V any] struct {
	shards []shard[K, V]
}

// New creates a Map with n shards; n < 1 is treated as 1.
func New[K constraints.Integer, V any](n int) *Map[K, V] {
	if n < 1 {
		n = 1
	}
	shards := make([]shard[K, V], n)
	for i := range shards {
		shards[i].m = make(map[K]V)
	}
	return &Map[K, V]{shards: shards}
}

func (m *Map[K, V]) shardFor(key K) *shard[K, V] {
	return &m.shards[uint64(key)%uint64(len(m.shards))]
}

// Handle is exclusive access to one entry. The shard stays locked until
// Release; Value must not be used after that.
type Handle[K constraints.Integer, V any] struct {
	Value *V
	s     *shard[K, V]
	key   K
}

// Access locks key's shard, inserts the zero value if key is missing and
// returns a handle to the entry. Callers must Release the handle.
func (m *Map[K, V]) Access(key K) *Handle[K, V] {
	s := m.shardFor(key)
	s.mu.Lock()
	v := s.m[key]
	return &Handle[K, V]{Value: &v, s: s, key: key}
}

// Release writes the value back and unlocks the shard.
func (h *Handle[K, V]) Release() {
	h.s.m[h.key] = *h.Value
	h.s.mu.Unlock()
}

// Update runs fn on key's entry while holding its shard lock.
func (m *Map[K, V]) Update(key K, fn func(v *V)) {
	h := m.Access(key)
	defer h.Release()
	fn(h.Value)
}

func (m *Map[K, V]) Get(key K) (V, bool) {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return v, ok
}

// Delete removes key, if present.
func (m *Map[K, V]) Delete(key K) {
	s := m.shardFor(key)
	s.mu.Lock()
	delete(s.m, key)
	s.mu.Unlock()
}

// BuildOrdinaryMap merges all shards into one plain map. It locks each shard
// in turn, so concurrent writers should have finished first for a
// consistent snapshot.
func (m *Map[K, V]) BuildOrdinaryMap() map[K]V {
	out := make(map[K]V)
	for i := range m.shards {
		s := &m.shards[i]
		s.mu.Lock()
		for k, v := range s.m {
			out[k] = v
		}
		s.mu.Unlock()
	}
	return out
}

func (m *Map[K, V]) ShardCount() int {
	return len(m.shards)
}
