package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"subsentry/internal/currency"
	"subsentry/internal/domain"
)

const rateSnapshotKey = "rates:snapshot"

// RateCache shares one rate snapshot between processes with a TTL matching
// the upstream refresh policy (~24h).
type RateCache struct {
	client RedisClient
	ttl    time.Duration
}

func NewRateCache(client RedisClient, ttl time.Duration) *RateCache {
	return &RateCache{client: client, ttl: ttl}
}

func (c *RateCache) Store(ctx context.Context, snap currency.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, rateSnapshotKey, data, c.ttl)
}

func (c *RateCache) Get(ctx context.Context) (currency.Snapshot, error) {
	data, err := c.client.Get(ctx, rateSnapshotKey)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return currency.Snapshot{}, domain.ErrNotFound
		}
		return currency.Snapshot{}, err
	}
	var snap currency.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return currency.Snapshot{}, err
	}
	return snap, nil
}

func (c *RateCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, rateSnapshotKey)
}
