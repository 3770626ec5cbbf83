package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"appfab/internal/model"
)

const galleryKey = "gallery:public"

// GalleryCache keeps the public gallery listing in redis for a short TTL.
// It is invalidated whenever a public app is inserted.
type GalleryCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewGalleryCache(client *redisv9.Client, ttl time.Duration) *GalleryCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &GalleryCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *GalleryCache) Get(ctx context.Context) ([]model.App, bool, error) {
	raw, err := c.client.Get(ctx, galleryKey).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get gallery failed: %w", err)
	}

	var apps []model.App
	if err := json.Unmarshal([]byte(raw), &apps); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached gallery failed: %w", err)
	}
	return apps, true, nil
}

func (c *GalleryCache) Set(ctx context.Context, apps []model.App) error {
	payload, err := json.Marshal(apps)
	if err != nil {
		return fmt.Errorf("marshal gallery cache failed: %w", err)
	}
	if err := c.client.Set(ctx, galleryKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set gallery failed: %w", err)
	}
	return nil
}

func (c *GalleryCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, galleryKey).Err(); err != nil {
		return fmt.Errorf("redis delete gallery failed: %w", err)
	}
	return nil
}
