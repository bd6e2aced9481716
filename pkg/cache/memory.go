package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/viccon/sturdyc"
)

// MemoryConfig configures the in-process store.
type MemoryConfig struct {
	Capacity           int
	NumShards          int
	TTL                time.Duration
	EvictionPercentage int
}

// DefaultMemoryConfig returns sizes suitable for a single small instance.
func DefaultMemoryConfig() MemoryConfig {
	return MemoryConfig{
		Capacity:           10000,
		NumShards:          64,
		TTL:                DefaultTTL,
		EvictionPercentage: 10,
	}
}

// MemoryStore keeps entries in a sturdyc client and the tag index in maps.
//
// sturdyc applies one TTL to the whole client, so the per-call ttl passed to
// SetTagged is ignored here.
type MemoryStore struct {
	client *sturdyc.Client[[]byte]

	mu       sync.Mutex
	index    map[string]map[string]struct{} // tag -> keys
	versions map[string]int64               // tag -> generation
	pruneAt  map[string]int                 // tag -> index size that triggers the next prune
}

// minPruneSize is the smallest tag index that gets swept for evicted keys.
const minPruneSize = 64

// NewMemoryStore validates cfg and builds the sturdyc client.
func NewMemoryStore(cfg MemoryConfig) (*MemoryStore, error) {
	if cfg.Capacity <= 0 {
		return nil, errors.New("memory cache capacity must be greater than 0")
	}
	if cfg.NumShards <= 0 {
		return nil, errors.New("memory cache shards must be greater than 0")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("memory cache ttl must be greater than 0")
	}
	if cfg.EvictionPercentage < 1 || cfg.EvictionPercentage > 100 {
		return nil, errors.New("memory cache eviction percentage must be between 1 and 100")
	}

	return &MemoryStore{
		client:   sturdyc.New[[]byte](cfg.Capacity, cfg.NumShards, cfg.TTL, cfg.EvictionPercentage),
		index:    make(map[string]map[string]struct{}),
		versions: make(map[string]int64),
		pruneAt:  make(map[string]int),
	}, nil
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, ok := m.client.Get(key)
	return value, ok, nil
}

func (m *MemoryStore) TagVersions(_ context.Context, tags []string) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]int64, len(tags))
	for i, tag := range tags {
		out[i] = m.versions[tag]
	}
	return out, nil
}

func (m *MemoryStore) SetTagged(_ context.Context, key string, value []byte, tags []string, versions []int64, _ time.Duration) (bool, error) {
	if len(tags) != len(versions) {
		return false, errors.New("tags and versions length mismatch")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, tag := range tags {
		if m.versions[tag] != versions[i] {
			return false, nil
		}
	}

	m.client.Set(key, value)
	for _, tag := range tags {
		keys, ok := m.index[tag]
		if !ok {
			keys = make(map[string]struct{})
			m.index[tag] = keys
		}
		keys[key] = struct{}{}
		m.pruneLocked(tag, keys)
	}
	return true, nil
}

// pruneLocked drops keys sturdyc has already evicted or expired.
// The threshold doubles with the surviving size, so sweeps stay amortized O(1) per write.
func (m *MemoryStore) pruneLocked(tag string, keys map[string]struct{}) {
	limit := m.pruneAt[tag]
	if limit < minPruneSize {
		limit = minPruneSize
	}
	if len(keys) < limit {
		return
	}

	for k := range keys {
		if _, ok := m.client.Get(k); !ok {
			delete(keys, k)
		}
	}
	m.pruneAt[tag] = max(minPruneSize, 2*len(keys))
}

func (m *MemoryStore) InvalidateTags(_ context.Context, tags ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, tag := range tags {
		m.versions[tag]++
		for key := range m.index[tag] {
			m.client.Delete(key)
		}
		delete(m.index, tag)
		delete(m.pruneAt, tag)
	}
	return nil
}

func (m *MemoryStore) Ping(context.Context) error {
	return nil
}
