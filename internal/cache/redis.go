package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Domenick1991/tourtrek/config"
	"github.com/Domenick1991/tourtrek/internal/domain"
	"github.com/redis/go-redis/v9"
)

const featuredKey = "cache:packages:featured"

type RedisCache struct {
	client      redis.Cmdable
	featuredTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig) *RedisCache {
	return &RedisCache{
		client:      redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		featuredTTL: cfg.FeaturedTTL(),
	}
}

// GetFeatured returns nil, nil on a cache miss.
func (c *RedisCache) GetFeatured(ctx context.Context) ([]domain.TourPackage, error) {
	data, err := c.client.Get(ctx, featuredKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var packages []domain.TourPackage
	if err := json.Unmarshal(data, &packages); err != nil {
		return nil, err
	}
	return packages, nil
}

func (c *RedisCache) SetFeatured(ctx context.Context, packages []domain.TourPackage) error {
	payload, err := json.Marshal(packages)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, featuredKey, payload, c.featuredTTL).Err()
}

func (c *RedisCache) InvalidateFeatured(ctx context.Context) error {
	return c.client.Del(ctx, featuredKey).Err()
}

func (c *RedisCache) Close() error {
	if closer, ok := c.client.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
