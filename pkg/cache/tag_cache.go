package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultTTL bounds how long an entry can outlive a missed invalidation.
const DefaultTTL = 10 * time.Minute

// TagCache is a read-through cache whose entries are invalidated by tag.
type TagCache struct {
	store Store
	ttl   time.Duration
}

// NewTagCache wraps a Store. ttl <= 0 falls back to DefaultTTL.
func NewTagCache(store Store, ttl time.Duration) *TagCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TagCache{store: store, ttl: ttl}
}

// ComputeFunc produces the value for a cache miss.
type ComputeFunc[T any] func(ctx context.Context) (T, error)

// GetOrCompute returns the cached value for key, or runs compute and stores its
// result tagged with tags.
//
// Tag generations are read before compute runs. If any of them is bumped by an
// Invalidate before the store happens, the result is returned but not cached.
// Errors from compute are returned as-is and never cached.
func GetOrCompute[T any](ctx context.Context, c *TagCache, key string, tags []string, compute ComputeFunc[T]) (T, error) {
	var zero T

	raw, found, err := c.store.Get(ctx, key)
	if err != nil {
		CacheErrors.WithLabelValues("get").Inc()
		return zero, fmt.Errorf("cache get %q: %w", key, err)
	}

	if found {
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			CacheHits.Inc()
			return cached, nil
		}
		// Payload shape changed between deploys, recompute and overwrite
		CacheErrors.WithLabelValues("decode").Inc()
		log.Warn().Str("key", key).Msg("Discarding undecodable cache entry")
	}

	CacheMisses.Inc()

	versions, err := c.store.TagVersions(ctx, tags)
	if err != nil {
		CacheErrors.WithLabelValues("versions").Inc()
		return zero, fmt.Errorf("cache tag versions: %w", err)
	}

	value, err := compute(ctx)
	if err != nil {
		return zero, err
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return zero, fmt.Errorf("cache encode %q: %w", key, err)
	}

	stored, err := c.store.SetTagged(ctx, key, payload, tags, versions, c.ttl)
	if err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		return zero, fmt.Errorf("cache set %q: %w", key, err)
	}
	if !stored {
		CacheStaleWrites.Inc()
		log.Debug().Str("key", key).Strs("tags", tags).Msg("Cache refill skipped, tag invalidated during compute")
	}

	return value, nil
}

// Invalidate drops every entry carrying any of tags.
func (c *TagCache) Invalidate(ctx context.Context, tags ...string) error {
	if len(tags) == 0 {
		return nil
	}

	if err := c.store.InvalidateTags(ctx, tags...); err != nil {
		CacheErrors.WithLabelValues("invalidate").Inc()
		return fmt.Errorf("cache invalidate %v: %w", tags, err)
	}

	for _, tag := range tags {
		CacheInvalidations.WithLabelValues(tag).Inc()
	}
	log.Debug().Strs("tags", tags).Msg("Cache tags invalidated")
	return nil
}

// Ping checks the backing store.
func (c *TagCache) Ping(ctx context.Context) error {
	return c.store.Ping(ctx)
}
