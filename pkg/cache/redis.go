package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/refyne/refyne-go/pkg/logging"
)

const redisKeyPrefix = "refyne:cache:"

// RedisStore is a Store backed by Redis, for sharing the response cache
// across processes. Entries are stored as JSON with a Redis TTL covering the
// full serve window (freshness plus stale-while-revalidate); freshness is
// re-evaluated on every read so stale hits behave exactly like the in-memory
// store's.
//
// Capacity is left to Redis (maxmemory eviction policy) rather than tracked
// client-side.
type RedisStore struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisStore creates a RedisStore on an existing Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	if client == nil {
		panic("redis client cannot be nil")
	}
	return &RedisStore{
		client: client,
		logger: logging.NewLogger("cache-redis"),
	}
}

// Get returns a usable entry or nil. Backend errors degrade to misses.
func (s *RedisStore) Get(ctx context.Context, key string) *Entry {
	data, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			CacheErrors.WithLabelValues("get").Inc()
			s.logger.Warn().Err(err).Msg("Redis get failed, treating as miss")
		}
		CacheMisses.Inc()
		return nil
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		CacheErrors.WithLabelValues("get").Inc()
		s.logger.Warn().Err(err).Str("key", key).Msg("Corrupt cache entry, treating as miss")
		CacheMisses.Inc()
		return nil
	}

	now := time.Now().Unix()
	switch {
	case entry.FreshAt(now):
		CacheHits.WithLabelValues("fresh").Inc()
		return &entry
	case entry.UsableAt(now):
		CacheHits.WithLabelValues("stale").Inc()
		return &entry
	default:
		CacheMisses.Inc()
		return nil
	}
}

// Set stores the entry with a TTL spanning freshness and the
// stale-while-revalidate window. No-store and already-expired entries are
// discarded.
func (s *RedisStore) Set(ctx context.Context, key string, entry *Entry) {
	if entry == nil || entry.CacheControl.NoStore {
		return
	}

	ttl := time.Until(time.Unix(entry.ExpiresAt, 0))
	if swr := entry.CacheControl.StaleWhileRevalidate; swr != nil {
		ttl += time.Duration(*swr) * time.Second
	}
	if ttl <= 0 {
		return
	}

	data, err := json.Marshal(entry)
	if err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		s.logger.Warn().Err(err).Msg("Marshal cache entry failed")
		return
	}

	if err := s.client.Set(ctx, redisKeyPrefix+key, data, ttl).Err(); err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		s.logger.Warn().Err(err).Msg("Redis set failed")
	}
}

// Delete removes the entry for key.
func (s *RedisStore) Delete(ctx context.Context, key string) {
	if err := s.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		CacheErrors.WithLabelValues("delete").Inc()
		s.logger.Warn().Err(err).Msg("Redis delete failed")
	}
}

// Size returns the number of cache keys currently stored.
func (s *RedisStore) Size(ctx context.Context) int {
	keys, err := s.client.Keys(ctx, redisKeyPrefix+"*").Result()
	if err != nil {
		CacheErrors.WithLabelValues("size").Inc()
		s.logger.Warn().Err(err).Msg("Redis size scan failed")
		return 0
	}
	return len(keys)
}

// Clear removes all cache keys under the store's prefix.
func (s *RedisStore) Clear(ctx context.Context) {
	keys, err := s.client.Keys(ctx, redisKeyPrefix+"*").Result()
	if err != nil {
		CacheErrors.WithLabelValues("clear").Inc()
		s.logger.Warn().Err(err).Msg("Redis clear scan failed")
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		CacheErrors.WithLabelValues("clear").Inc()
		s.logger.Warn().Err(err).Msg("Redis clear failed")
	}
}
