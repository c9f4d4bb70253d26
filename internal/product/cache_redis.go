package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hardwarehub-be/internal/logger"
	"hardwarehub-be/internal/metrics"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	redisKeyPrefix     = "products:list"
	redisGenerationKey = redisKeyPrefix + ":gen"
)

// RedisCache shares list pages between instances. Invalidation bumps a
// generation counter so stale keys are never read again and expire by TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	stats  metrics.CacheStats
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, redisGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *RedisCache) key(gen int64, key string) string {
	return fmt.Sprintf("%s:%d:%s", redisKeyPrefix, gen, key)
}

func (c *RedisCache) Get(ctx context.Context, key string) (*ListResult, bool) {
	log := logger.FromCtx(ctx).With(zap.String("component", "product_cache"))

	gen, err := c.generation(ctx)
	if err != nil {
		log.Warn("redis generation lookup failed", zap.Error(err))
		c.stats.Misses.Inc()
		return nil, false
	}

	raw, err := c.client.Get(ctx, c.key(gen, key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn("redis get failed", zap.Error(err))
		}
		c.stats.Misses.Inc()
		return nil, false
	}

	var v ListResult
	if err := json.Unmarshal(raw, &v); err != nil {
		log.Warn("redis payload decode failed", zap.Error(err))
		c.stats.Misses.Inc()
		return nil, false
	}

	c.stats.Hits.Inc()
	return &v, true
}

func (c *RedisCache) Set(ctx context.Context, key string, v *ListResult) {
	if v == nil {
		return
	}
	log := logger.FromCtx(ctx).With(zap.String("component", "product_cache"))

	gen, err := c.generation(ctx)
	if err != nil {
		log.Warn("redis generation lookup failed", zap.Error(err))
		return
	}

	payload, err := json.Marshal(v)
	if err != nil {
		log.Warn("redis payload encode failed", zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, c.key(gen, key), payload, c.ttl).Err(); err != nil {
		log.Warn("redis set failed", zap.Error(err))
	}
}

func (c *RedisCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, redisGenerationKey).Err(); err != nil {
		logger.FromCtx(ctx).Error("redis invalidate failed", zap.Error(err))
		return
	}
	c.stats.Invalidations.Inc()
}

func (c *RedisCache) Stats() metrics.CacheSnapshot {
	return c.stats.Snapshot()
}
