package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alchemorsel/pantry/internal/domain/pantry"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// MatchCache caches recipe match results in Redis, keyed by owner and
// ingredient-list fingerprint. Every key is tracked in a per-owner
// index set so a single inventory mutation can drop all of the owner's
// cached scores.
type MatchCache struct {
	client *redis.Client
}

// NewMatchCache creates a Redis match cache.
func NewMatchCache(client *redis.Client) *MatchCache {
	return &MatchCache{client: client}
}

func matchKey(ownerID uuid.UUID, fingerprint string) string {
	return fmt.Sprintf("pantry:match:%s:%s", ownerID, fingerprint)
}

func indexKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("pantry:match-index:%s", ownerID)
}

// Get returns the cached result, or nil on a miss.
func (c *MatchCache) Get(ctx context.Context, ownerID uuid.UUID, fingerprint string) (*pantry.RecipeMatch, error) {
	data, err := c.client.Get(ctx, matchKey(ownerID, fingerprint)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	var result pantry.RecipeMatch
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &result, nil
}

// Set stores the result and records its key in the owner index.
func (c *MatchCache) Set(ctx context.Context, ownerID uuid.UUID, fingerprint string, result pantry.RecipeMatch, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	key := matchKey(ownerID, fingerprint)
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key, data, ttl)
	pipe.SAdd(ctx, indexKey(ownerID), key)
	pipe.Expire(ctx, indexKey(ownerID), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// InvalidateOwner drops every cached result for the owner.
func (c *MatchCache) InvalidateOwner(ctx context.Context, ownerID uuid.UUID) error {
	idx := indexKey(ownerID)
	keys, err := c.client.SMembers(ctx, idx).Result()
	if err != nil {
		return fmt.Errorf("cache index read: %w", err)
	}
	keys = append(keys, idx)
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
