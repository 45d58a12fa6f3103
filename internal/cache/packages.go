// Package cache holds the redis-backed package snapshot cache. Reads of
// single packages are hot in the admin UI; mutations invalidate.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/GanehsaConsulting/cms-admin-api/internal/model"
)

type PackageCache interface {
	Get(ctx context.Context, id int64) (*model.Package, bool, error)
	Set(ctx context.Context, pkg *model.Package) error
	Invalidate(ctx context.Context, id int64) error
}

const packageKeyPattern = "package:%d"

type redisPackageCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPackageCache(client *redis.Client, ttl time.Duration) PackageCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &redisPackageCache{client: client, ttl: ttl}
}

func (c *redisPackageCache) Get(ctx context.Context, id int64) (*model.Package, bool, error) {
	data, err := c.client.Get(ctx, fmt.Sprintf(packageKeyPattern, id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get cached package: %w", err)
	}

	var pkg model.Package
	if err := json.Unmarshal([]byte(data), &pkg); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached package: %w", err)
	}
	return &pkg, true, nil
}

func (c *redisPackageCache) Set(ctx context.Context, pkg *model.Package) error {
	data, err := json.Marshal(pkg)
	if err != nil {
		return fmt.Errorf("failed to marshal package: %w", err)
	}
	return c.client.Set(ctx, fmt.Sprintf(packageKeyPattern, pkg.ID), data, c.ttl).Err()
}

func (c *redisPackageCache) Invalidate(ctx context.Context, id int64) error {
	return c.client.Del(ctx, fmt.Sprintf(packageKeyPattern, id)).Err()
}

// Noop returns a cache that stores nothing, for deployments without
// redis configured.
func Noop() PackageCache {
	return noopCache{}
}

type noopCache struct{}

func (noopCache) Get(context.Context, int64) (*model.Package, bool, error) { return nil, false, nil }
func (noopCache) Set(context.Context, *model.Package) error               { return nil }
func (noopCache) Invalidate(context.Context, int64) error                 { return nil }
