package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lastmile/internal/core/domain/model/kernel"

	"github.com/go-redis/redis/v8"
)

// TrackingCache maps tracking numbers to parcel ids. The mapping never
// changes once a parcel exists, so entries are only ever added.
type TrackingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTrackingCache(client *redis.Client, ttl time.Duration) *TrackingCache {
	return &TrackingCache{client: client, ttl: ttl}
}

func (c *TrackingCache) Put(ctx context.Context, trackingNumber string, parcelID kernel.UUID) error {
	return c.client.Set(ctx, trackingKey(trackingNumber), parcelID.String(), c.ttl).Err()
}

// Get returns false on a cache miss.
func (c *TrackingCache) Get(ctx context.Context, trackingNumber string) (kernel.UUID, bool, error) {
	value, err := c.client.Get(ctx, trackingKey(trackingNumber)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return kernel.UUID{}, false, nil
		}
		return kernel.UUID{}, false, err
	}

	id, err := kernel.UUIDFromString(value)
	if err != nil {
		return kernel.UUID{}, false, err
	}
	return id, true, nil
}

func trackingKey(trackingNumber string) string {
	return fmt.Sprintf("lastmile:tracking:%s", trackingNumber)
}
