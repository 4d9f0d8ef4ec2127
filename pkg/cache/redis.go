package cache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores entries in Redis under a key prefix.
type RedisCache struct {
	client  redis.UniversalClient
	prefix  string
	backoff Backoff
}

// RedisOption configures a RedisCache.
type RedisOption func(*RedisCache)

// WithPrefix namespaces every key. The default is "stackchart:".
func WithPrefix(p string) RedisOption { return func(c *RedisCache) { c.prefix = p } }

// WithBackoff replaces DefaultBackoff for transient network failures.
func WithBackoff(b Backoff) RedisOption { return func(c *RedisCache) { c.backoff = b } }

// NewRedisCache connects to the server at url and pings it once.
//
// The url takes the form redis://[user:pass@]host:port/db (rediss:// for
// TLS). Keys are prefixed with "stackchart:" unless WithPrefix says
// otherwise. A server that cannot be reached fails with an error wrapping
// ErrUnavailable:
//
//	rc, err := cache.NewRedisCache(ctx, os.Getenv("STACKCHART_REDIS"))
//	if errors.Is(err, cache.ErrUnavailable) {
//	    // fall back to the file cache
//	}
func NewRedisCache(ctx context.Context, url string, opts ...RedisOption) (*RedisCache, error) {
	o, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	c := NewRedisCacheFromClient(redis.NewClient(o), opts...)
	if err := c.client.Ping(ctx).Err(); err != nil {
		c.client.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", ErrUnavailable, o.Addr, err)
	}
	return c, nil
}

// NewRedisCacheFromClient wraps an existing client. The cache owns it and
// closes it in Close.
func NewRedisCacheFromClient(client redis.UniversalClient, opts ...RedisOption) *RedisCache {
	c := &RedisCache{client: client, prefix: "stackchart:", backoff: DefaultBackoff}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Get reads key, retrying transient network errors.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := RetryWithBackoff(ctx, c.backoff, func() error {
		b, err := c.client.Get(ctx, c.prefix+key).Bytes()
		if err != nil {
			return classify(err)
		}
		data = b
		return nil
	})
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set writes key. A ttl of zero never expires.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return RetryWithBackoff(ctx, c.backoff, func() error {
		return classify(c.client.Set(ctx, c.prefix+key, data, ttl).Err())
	})
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return classify(c.client.Del(ctx, c.prefix+key).Err())
}

// Clear deletes every key under the prefix and returns how many were
// removed.
func (c *RedisCache) Clear(ctx context.Context) (int, error) {
	var n int
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 256).Iterator()
	for iter.Next(ctx) {
		removed, err := c.client.Del(ctx, iter.Val()).Result()
		if err != nil {
			return n, err
		}
		n += int(removed)
	}
	return n, iter.Err()
}

func (c *RedisCache) Close() error { return c.client.Close() }

// classify marks network failures retryable.
func classify(err error) error {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return Retryable(err)
	}
	var oe *net.OpError
	if errors.As(err, &oe) {
		return Retryable(err)
	}
	return err
}

var _ Cache = (*RedisCache)(nil)
