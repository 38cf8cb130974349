package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fileshare/internal/server/models"
	"github.com/redis/go-redis/v9"
)

// RedisFileCache implements FileCache over a Redis instance.
type RedisFileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisFileCache connects to the Redis instance at addr. Entries expire
// after ttl.
func NewRedisFileCache(addr string, ttl time.Duration) *RedisFileCache {
	return &RedisFileCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

func (c *RedisFileCache) Get(ctx context.Context, id string) (*models.File, error) {
	val, err := c.client.Get(ctx, c.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	file := &models.File{}
	if err := json.Unmarshal([]byte(val), file); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return file, nil
}

func (c *RedisFileCache) Set(ctx context.Context, file *models.File) error {
	data, err := json.Marshal(file)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, c.key(file.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *RedisFileCache) Delete(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (c *RedisFileCache) key(id string) string {
	return "file:" + id
}
