package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Cache is a best-effort Redis façade. A missing Redis configuration is
// a valid, permanent state rather than an error: every read degrades to
// a miss and every write becomes a no-op. Callers must always work
// without it.
type Cache struct {
	client *redis.Client
}

// Config holds the Redis connection settings. An empty Addr means
// caching is disabled.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// New creates a cache. With an empty address, the returned cache is
// usable but never stores anything.
func New(cfg Config) *Cache {
	if cfg.Addr == "" {
		logrus.Info("Redis not configured, cache disabled")
		return &Cache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Cache{client: client}
}

// Enabled reports whether a backing client is configured.
func (c *Cache) Enabled() bool {
	return c.client != nil
}

// Get returns the cached value for key and whether it was present.
// Errors are logged and reported as a miss.
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	if c.client == nil {
		return "", false
	}

	value, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Cache get failed, treating as miss")
		return "", false
	}
	return value, true
}

// Set stores a value with a TTL. Errors are logged and swallowed.
func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if c.client == nil {
		return
	}

	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Cache set failed")
	}
}

// Del removes keys. Errors are logged and swallowed.
func (c *Cache) Del(ctx context.Context, keys ...string) {
	if c.client == nil || len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logrus.WithError(err).Warn("Cache del failed")
	}
}

// Close releases the underlying client, if any.
func (c *Cache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
