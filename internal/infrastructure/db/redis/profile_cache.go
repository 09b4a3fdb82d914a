package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/credential-service/internal/core/domain"
)

const (
	profileKeyPrefix  = "profile:"
	defaultProfileTTL = 5 * time.Minute
)

// ProfileCache caches the public part of an account keyed by its ID.
// Key format: profile:<account_id>
type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProfileCache wraps client. A non-positive ttl selects five minutes.
func NewProfileCache(client *redis.Client, ttl time.Duration) *ProfileCache {
	if ttl <= 0 {
		ttl = defaultProfileTTL
	}
	return &ProfileCache{client: client, ttl: ttl}
}

// cachedProfile never carries the password hash.
type cachedProfile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Get returns (nil, nil) on a miss or a corrupted entry.
func (c *ProfileCache) Get(ctx context.Context, id string) (*domain.Account, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("profile cache get: %w", err)
	}

	var cached cachedProfile
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, nil //nolint:nilerr // corrupted entry is a miss
	}

	return &domain.Account{
		ID:        cached.ID,
		Email:     cached.Email,
		CreatedAt: cached.CreatedAt,
	}, nil
}

func (c *ProfileCache) Set(ctx context.Context, account *domain.Account) error {
	data, err := json.Marshal(cachedProfile{
		ID:        account.ID,
		Email:     account.Email,
		CreatedAt: account.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	if err := c.client.Set(ctx, c.key(account.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("profile cache set: %w", err)
	}
	return nil
}

// Delete evicts the cached profile; a missing key is not an error.
func (c *ProfileCache) Delete(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("profile cache delete: %w", err)
	}
	return nil
}

func (c *ProfileCache) key(id string) string {
	return profileKeyPrefix + id
}
