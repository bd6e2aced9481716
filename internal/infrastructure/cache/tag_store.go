package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key layout:
//
//	<ns>:v:<key>      cached payload (string, PX ttl)
//	<ns>:tag:<tag>    set of payload keys carrying the tag
//	<ns>:tagv:<tag>   tag generation counter
//
// The scripts touch payload keys read from the tag sets, so they assume a
// single Redis node (no cluster slot checks).

// KEYS = [payload, version_1..version_n, set_1..set_n]
// ARGV = [value, ttl_ms, n, expected_1..expected_n]
var setTaggedScript = redis.NewScript(`
local n = tonumber(ARGV[3])
for i = 1, n do
	local current = redis.call('GET', KEYS[1 + i]) or '0'
	if current ~= ARGV[3 + i] then
		return 0
	end
end
local ttl = tonumber(ARGV[2])
redis.call('SET', KEYS[1], ARGV[1], 'PX', ttl)
for i = 1, n do
	local set = KEYS[1 + n + i]
	redis.call('SADD', set, KEYS[1])
	if redis.call('PTTL', set) < ttl then
		redis.call('PEXPIRE', set, ttl)
	end
end
return 1
`)

// KEYS = [version_1, set_1, version_2, set_2, ...]
var invalidateScript = redis.NewScript(`
for i = 1, #KEYS, 2 do
	redis.call('INCR', KEYS[i])
	local members = redis.call('SMEMBERS', KEYS[i + 1])
	for _, member in ipairs(members) do
		redis.call('DEL', member)
	end
	redis.call('DEL', KEYS[i + 1])
end
return 1
`)

// RedisTagStore implements pkg/cache.Store on Redis.
type RedisTagStore struct {
	client    *redis.Client
	namespace string
}

func NewRedisTagStore(client *redis.Client, namespace string) *RedisTagStore {
	if namespace == "" {
		namespace = "catalog"
	}
	return &RedisTagStore{client: client, namespace: namespace}
}

func (s *RedisTagStore) payloadKey(key string) string { return s.namespace + ":v:" + key }
func (s *RedisTagStore) setKey(tag string) string     { return s.namespace + ":tag:" + tag }
func (s *RedisTagStore) versionKey(tag string) string { return s.namespace + ":tagv:" + tag }

func (s *RedisTagStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.payloadKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *RedisTagStore) TagVersions(ctx context.Context, tags []string) ([]int64, error) {
	out := make([]int64, len(tags))
	if len(tags) == 0 {
		return out, nil
	}

	keys := make([]string, len(tags))
	for i, tag := range tags {
		keys[i] = s.versionKey(tag)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for i, v := range values {
		if v == nil {
			continue
		}
		str, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected version type %T for tag %q", v, tags[i])
		}
		n, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse version for tag %q: %w", tags[i], err)
		}
		out[i] = n
	}
	return out, nil
}

func (s *RedisTagStore) SetTagged(ctx context.Context, key string, value []byte, tags []string, versions []int64, ttl time.Duration) (bool, error) {
	if len(tags) != len(versions) {
		return false, errors.New("tags and versions length mismatch")
	}

	n := len(tags)
	keys := make([]string, 0, 1+2*n)
	keys = append(keys, s.payloadKey(key))
	for _, tag := range tags {
		keys = append(keys, s.versionKey(tag))
	}
	for _, tag := range tags {
		keys = append(keys, s.setKey(tag))
	}

	args := make([]interface{}, 0, 3+n)
	args = append(args, value, ttl.Milliseconds(), n)
	for _, v := range versions {
		args = append(args, strconv.FormatInt(v, 10))
	}

	stored, err := setTaggedScript.Run(ctx, s.client, keys, args...).Int()
	if err != nil {
		return false, err
	}
	return stored == 1, nil
}

func (s *RedisTagStore) InvalidateTags(ctx context.Context, tags ...string) error {
	if len(tags) == 0 {
		return nil
	}

	keys := make([]string, 0, 2*len(tags))
	for _, tag := range tags {
		keys = append(keys, s.versionKey(tag), s.setKey(tag))
	}
	return invalidateScript.Run(ctx, s.client, keys).Err()
}

func (s *RedisTagStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
