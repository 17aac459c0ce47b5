package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/paystreet/fx/pkg/cache"
	"github.com/paystreet/fx/pkg/domain/fx"
)

// RedisRateCache implements cache.RateCache on Redis, for deployments where
// rates should survive restarts or be shared across instances. Keys are
// stored without expiry so stale entries remain readable for the fallback
// tier.
type RedisRateCache struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// NewRedisRateCache creates a RedisRateCache from redis.Options.
func NewRedisRateCache(opt *redis.Options, prefix string, logger *slog.Logger) *RedisRateCache {
	return &RedisRateCache{
		client: redis.NewClient(opt),
		prefix: prefix,
		logger: logger,
	}
}

func (c *RedisRateCache) key(key string) string {
	return c.prefix + key
}

// Get retrieves a rate from Redis, regardless of its age.
func (c *RedisRateCache) Get(key string) (*fx.Rate, error) {
	ctx := context.Background()
	val, err := c.client.Get(ctx, c.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Redis cache get error", "key", key, "error", err)
		return nil, err
	}

	var rate fx.Rate
	if err := json.Unmarshal([]byte(val), &rate); err != nil {
		c.logger.Error("Redis cache unmarshal error", "key", key, "error", err)
		return nil, err
	}
	return &rate, nil
}

// Set stores a rate, replacing any existing entry for the key.
func (c *RedisRateCache) Set(key string, rate *fx.Rate) error {
	ctx := context.Background()
	b, err := json.Marshal(rate)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(key), b, 0).Err()
}

// Clear removes all rate entries under the cache prefix and returns how many
// were removed.
func (c *RedisRateCache) Clear() (int, error) {
	ctx := context.Background()
	var (
		cursor  uint64
		cleared int
	)
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+"*", 100).Result()
		if err != nil {
			return cleared, err
		}
		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			cleared += int(n)
			if err != nil {
				return cleared, err
			}
		}
		cursor = next
		if cursor == 0 {
			return cleared, nil
		}
	}
}

var _ cache.RateCache = (*RedisRateCache)(nil)
