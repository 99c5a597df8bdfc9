package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	contactKeyPrefix = "helpdesk:contact:"
	contactTTL       = 24 * time.Hour
)

// ContactCache stores resolved remote contact ids keyed by user email,
// so the sync pipeline does not hit the remote directory on every
// sweep.
type ContactCache struct {
	client *redis.Client
}

func NewContactCache(client *redis.Client) *ContactCache {
	return &ContactCache{client: client}
}

// Get returns the cached contact id for an email, or (0, nil) on a
// cache miss.
func (c *ContactCache) Get(ctx context.Context, email string) (int64, error) {
	id, err := c.client.Get(ctx, contactKeyPrefix+email).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read contact cache: %w", err)
	}
	return id, nil
}

// Set records a resolved contact id.
func (c *ContactCache) Set(ctx context.Context, email string, contactID int64) error {
	if err := c.client.Set(ctx, contactKeyPrefix+email, contactID, contactTTL).Err(); err != nil {
		return fmt.Errorf("failed to store contact cache: %w", err)
	}
	return nil
}
