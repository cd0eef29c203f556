// Package rediscache provides the Redis-backed catalog cache.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"bookbazaar/app/domain"
	"bookbazaar/app/port"
)

const keyPrefix = "catalog:books:"

// Cache implements port.CatalogCache using Redis.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New creates a Redis catalog cache from a URL.
func New(url string, ttl time.Duration, logger *slog.Logger) (*Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	return NewWithClient(redis.NewClient(opts), ttl, logger), nil
}

// NewWithClient creates a cache around an existing client.
func NewWithClient(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "catalog_cache"),
	}
}

// Close closes the Redis connection.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Ping checks the Redis connection.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// GetBooks returns the cached listing for a key, reporting the miss
// separately from real failures.
func (c *Cache) GetBooks(ctx context.Context, key string) ([]domain.Book, bool, error) {
	payload, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cache: %w", err)
	}

	var books []domain.Book
	if err := json.Unmarshal(payload, &books); err != nil {
		// A corrupt entry behaves like a miss so the caller refills it
		c.logger.Warn("dropping corrupt cache entry", "key", key, "error", err)
		return nil, false, nil
	}
	return books, true, nil
}

// SetBooks stores a listing under a key with the configured TTL
func (c *Cache) SetBooks(ctx context.Context, key string, books []domain.Book) error {
	payload, err := json.Marshal(books)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	if err := c.client.Set(ctx, keyPrefix+key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

// InvalidateBooks drops every cached listing. Called after any catalog
// write so readers never see a deleted or edited book from cache.
func (c *Cache) InvalidateBooks(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}

	c.logger.Debug("catalog cache invalidated", "keys", len(keys))
	return nil
}

var _ port.CatalogCache = (*Cache)(nil)
