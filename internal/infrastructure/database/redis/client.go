// Package redis provides the Redis client and the rate-limit store backed
// by it, used by deployments that prefer shared counters over document
// reads for admission control.
package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/wishwell/wishwell/internal/config"
	"github.com/wishwell/wishwell/pkg/errors"
)

// Client wraps a connected go-redis client with the configured key prefix.
type Client struct {
	rdb    *redis.Client
	prefix string
}

// NewClient connects and pings the server.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCacheError, "ping redis")
	}
	return &Client{rdb: rdb, prefix: cfg.KeyPrefix}, nil
}

// Raw exposes the underlying go-redis client.
func (c *Client) Raw() *redis.Client { return c.rdb }

// Key applies the configured prefix.
func (c *Client) Key(parts string) string {
	if c.prefix == "" {
		return parts
	}
	return c.prefix + ":" + parts
}

// Close releases the connection pool.
func (c *Client) Close() error {
	if err := c.rdb.Close(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "close redis")
	}
	return nil
}

// Ping verifies the connection is still healthy.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "ping redis")
	}
	return nil
}
