// internal/infrastructure/database/redis/connection.go
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/novastore/internal/config"
)

const clientName = "novastore"

// Client owns the one Redis pool the process opens. It backs the session
// slices when STORAGE_DRIVER=redis (see KV) and the per-IP request counters
// of the rate limiter (see Limiter); either role alone is enough to open it.
type Client struct {
	rdb  *redis.Client
	addr string
	log  *logrus.Entry
}

// NewConnection dials Redis and fails unless the first PING succeeds
func NewConnection(cfg *config.Config, log *logrus.Logger) (*Client, error) {
	opts := options(cfg)
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.DialTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opts.Addr, err)
	}

	entry := log.WithFields(logrus.Fields{
		"component": "redis",
		"addr":      opts.Addr,
		"db":        opts.DB,
	})
	entry.WithFields(logrus.Fields{
		"session_kv":   cfg.Storage.Driver == config.StorageRedis,
		"rate_limiter": cfg.Security.RateLimitPerMinute > 0,
	}).Info("Redis connection established")

	return &Client{rdb: rdb, addr: opts.Addr, log: entry}, nil
}

// options maps the Redis section of the config onto client options
func options(cfg *config.Config) *redis.Options {
	return &redis.Options{
		Addr:         cfg.GetRedisAddr(),
		ClientName:   clientName,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
	}
}

// KV returns the session slice store over this pool
func (c *Client) KV(prefix string) *KV {
	return NewKV(c.rdb, prefix)
}

// Limiter returns the raw client the rate limit middleware pipelines
// INCR/EXPIRE against
func (c *Client) Limiter() *redis.Client {
	return c.rdb
}

// Health pings Redis for the /health endpoint
func (c *Client) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis %s: %w", c.addr, err)
	}
	return nil
}

// Close drains the pool
func (c *Client) Close() error {
	stats := c.rdb.PoolStats()
	c.log.WithFields(logrus.Fields{
		"hits":     stats.Hits,
		"misses":   stats.Misses,
		"timeouts": stats.Timeouts,
	}).Info("Closing Redis connection")
	return c.rdb.Close()
}
