package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"go-course-store/internal/model"
)

const catalogKey = "catalog:listing"

// CatalogCache keeps the serialized course listing in Redis so GET
// /api/courses responses can be shared between instances. A nil client
// disables the cache; every lookup is then a miss.
type CatalogCache struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewCatalogCache(client *goredis.Client, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CatalogCache{client: client, ttl: ttl}
}

func (c *CatalogCache) Enabled() bool {
	return c != nil && c.client != nil
}

func (c *CatalogCache) Get(ctx context.Context) ([]model.Category, error) {
	if !c.Enabled() {
		return nil, nil
	}

	raw, err := c.client.Get(ctx, catalogKey).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get catalog cache: %w", err)
	}

	var categories []model.Category
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, fmt.Errorf("decode catalog cache: %w", err)
	}
	return categories, nil
}

func (c *CatalogCache) Set(ctx context.Context, categories []model.Category) error {
	if !c.Enabled() {
		return nil
	}

	raw, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("encode catalog cache: %w", err)
	}

	if err := c.client.Set(ctx, catalogKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set catalog cache: %w", err)
	}
	return nil
}

func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}

	if err := c.client.Del(ctx, catalogKey).Err(); err != nil {
		return fmt.Errorf("invalidate catalog cache: %w", err)
	}
	return nil
}
