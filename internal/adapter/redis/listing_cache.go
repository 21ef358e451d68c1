package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mejbahuddintamim/bdrent-server/internal/domain/entity"
	"github.com/mejbahuddintamim/bdrent-server/internal/repository"
	"github.com/redis/go-redis/v9"
)

const listingKeyPrefix = "listing:"

type listingCache struct {
	client *redis.Client
}

func NewListingCache(client *redis.Client) repository.ListingCache {
	return &listingCache{client: client}
}

func (c *listingCache) Get(ctx context.Context, id string) (*entity.Listing, error) {
	data, err := c.client.Get(ctx, listingKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, err
	}

	var listing entity.Listing
	if err := json.Unmarshal(data, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (c *listingCache) Set(ctx context.Context, listing *entity.Listing, ttl time.Duration) error {
	data, err := json.Marshal(listing)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, listingKeyPrefix+listing.ID, data, ttl).Err()
}

func (c *listingCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, listingKeyPrefix+id).Err()
}
