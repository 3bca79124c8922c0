package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	keyPrefix = "weather:"
	scanCount = 100
)

// RedisClient is a cache backend shared between instances. Expiry is delegated to
// redis TTLs, so maxSize is only reported, never enforced here.
type RedisClient[T any] struct {
	client     *redis.Client
	logger     zerolog.Logger
	expiration time.Duration
	maxSize    int
}

func NewRedisClient[T any](
	client *redis.Client,
	logger zerolog.Logger,
	expiration time.Duration,
	maxSize int,
) *RedisClient[T] {
	return &RedisClient[T]{client: client, logger: logger, expiration: expiration, maxSize: maxSize}
}

func (c *RedisClient[T]) Set(
	ctx context.Context,
	key string,
	value T,
) error {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Error().
			Ctx(ctx).
			Err(err).
			Msg("failed to marshal value for cache")
		return err
	}

	c.logger.Debug().
		Ctx(ctx).
		Str("key", key).
		Int("bytes", len(data)).
		Dur("expiration", c.expiration).
		Msg("writing to cache")

	if err := c.client.Set(ctx, keyPrefix+key, data, c.expiration).Err(); err != nil {
		c.logger.Error().
			Ctx(ctx).
			Str("key", key).
			Err(err).
			Msg("cache write failed")
		return err
	}
	return nil
}

//nolint:ireturn
func (c *RedisClient[T]) Get(ctx context.Context, key string) (T, error) {
	var zero T

	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, ErrCacheMiss
	}
	if err != nil {
		c.logger.Error().
			Ctx(ctx).
			Str("key", key).
			Err(err).
			Msg("cache read failed")
		return zero, err
	}

	result := new(T)
	if err := json.Unmarshal(data, result); err != nil {
		c.logger.Error().
			Ctx(ctx).
			Str("key", key).
			Err(err).
			Msg("failed to unmarshal cached data")
		return zero, fmt.Errorf("unmarshal: %w", err)
	}

	return *result, nil
}

// Clear removes every key under the weather prefix.
func (c *RedisClient[T]) Clear(ctx context.Context) error {
	dropped := 0
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", scanCount).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("delete %s: %w", iter.Val(), err)
		}
		dropped++
	}
	if err := iter.Err(); err != nil {
		c.logger.Error().Ctx(ctx).Err(err).Msg("cache clear failed")
		return fmt.Errorf("scan: %w", err)
	}

	c.logger.Info().
		Ctx(ctx).
		Int("dropped", dropped).
		Msg("cache cleared")
	return nil
}

func (c *RedisClient[T]) Stats(ctx context.Context) Stats {
	size := 0
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", scanCount).Iterator()
	for iter.Next(ctx) {
		size++
	}
	if err := iter.Err(); err != nil {
		c.logger.Error().Ctx(ctx).Err(err).Msg("cache stats scan failed")
	}

	return Stats{Size: size, MaxSize: c.maxSize, TTLMs: c.expiration.Milliseconds()}
}
