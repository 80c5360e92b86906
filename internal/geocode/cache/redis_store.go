package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"courier-route-service/internal/domain"
)

const redisKeyPrefix = "geocode:"

// Redis-backed geocode cache, the primary store when a cache service is
// configured. Results are stored as JSON under a "geocode:" key prefix with
// no TTL, matching the process-cache semantics of MemoryStore while letting
// multiple instances share one cache.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Get(ctx context.Context, key string) (domain.GeocodingResult, bool, error) {
	raw, err := r.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return domain.GeocodingResult{}, false, nil
	}
	if err != nil {
		return domain.GeocodingResult{}, false, fmt.Errorf("redis geocode cache: get %q: %w", key, err)
	}

	var res domain.GeocodingResult
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		return domain.GeocodingResult{}, false, fmt.Errorf("redis geocode cache: decode %q: %w", key, err)
	}

	return res, true, nil
}

func (r *RedisStore) Put(ctx context.Context, key string, res domain.GeocodingResult) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("redis geocode cache: encode %q: %w", key, err)
	}

	if err := r.client.Set(ctx, redisKeyPrefix+key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis geocode cache: set %q: %w", key, err)
	}

	return nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	keys, err := r.scanKeys(ctx)
	if err != nil {
		return fmt.Errorf("redis geocode cache: clear: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis geocode cache: delete entries: %w", err)
	}

	return nil
}

func (r *RedisStore) Len(ctx context.Context) (int, error) {
	keys, err := r.scanKeys(ctx)
	if err != nil {
		return 0, fmt.Errorf("redis geocode cache: len: %w", err)
	}

	return len(keys), nil
}

// scanKeys walks the keyspace with SCAN (never KEYS) so a shared Redis is
// not blocked by large databases.
func (r *RedisStore) scanKeys(ctx context.Context) ([]string, error) {
	var keys []string

	iter := r.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	return keys, nil
}
