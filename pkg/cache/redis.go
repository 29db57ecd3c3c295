package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/losm/pkg/buildinfo"
)

// RedisCache stores entries in Redis, letting several machines share loaded
// snapshots. Expiry is delegated to Redis key TTLs.
type RedisCache struct {
	client *redis.Client
	addr   string
}

// NewRedisCache connects to the Redis server at addr and verifies it answers
// a PING. Connection failures are retried with backoff and reported wrapping
// [ErrNetwork].
func NewRedisCache(ctx context.Context, addr string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		ClientName:  buildinfo.UserAgent(),
		DialTimeout: 2 * time.Second,
		MaxRetries:  -1, // retries happen in RetryWithBackoff
	})

	err := RetryWithBackoff(ctx, func() error {
		return classify(client.Ping(ctx).Err())
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("redis %s: %w", addr, err)
	}
	return &RedisCache{client: client, addr: addr}, nil
}

// Addr returns the server address.
func (c *RedisCache) Addr() string { return c.addr }

// Get retrieves a value from the cache.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, unwrapRetryable(classify(err))
	}
	return data, true, nil
}

// Set stores a value in the cache.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return unwrapRetryable(classify(c.client.Set(ctx, key, data, ttl).Err()))
}

// Delete removes a value from the cache.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return unwrapRetryable(classify(c.client.Del(ctx, key).Err()))
}

// Close closes the connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// classify marks transport failures as retryable network errors. Errors the
// server sent back (wrong type, auth) pass through unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var serverErr redis.Error
	if errors.As(err, &serverErr) {
		return err
	}
	return Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
}

// unwrapRetryable strips the retry marker for calls that are not retried.
func unwrapRetryable(err error) error {
	var re *RetryableError
	if errors.As(err, &re) {
		return re.Err
	}
	return err
}

var _ Cache = (*RedisCache)(nil)
