package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// TermCacheTTL is the time-to-live for cached glossary terms.
	TermCacheTTL = 24 * time.Hour

	termCacheKeyPrefix = "glossary:term"
)

// CachedTerm is the denormalized read model stored in Redis as a hash.
type CachedTerm struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TermCache provides structured read/write operations for term cache entries.
// Key format: "glossary:term:{id}"
type TermCache struct {
	client *RedisClient
}

// NewTermCache creates a TermCache backed by the given RedisClient.
func NewTermCache(r *RedisClient) *TermCache {
	return &TermCache{client: r}
}

// Get retrieves a cached term by id.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *TermCache) Get(ctx context.Context, id int64) (*CachedTerm, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	termID, err := strconv.ParseInt(vals["id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, vals["updated_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse updated_at: %w", err)
	}

	return &CachedTerm{
		ID:          termID,
		Name:        vals["name"],
		Description: vals["description"],
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// Set writes a cached term as a Redis hash with a 24-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *TermCache) Set(ctx context.Context, term *CachedTerm) error {
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, c.key(term.ID),
		"id", strconv.FormatInt(term.ID, 10),
		"name", term.Name,
		"description", term.Description,
		"created_at", term.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at", term.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, c.key(term.ID), TermCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached term. Used on update and delete so stale reads
// never outlive a write.
func (c *TermCache) Delete(ctx context.Context, id int64) error {
	if err := c.client.Client().Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (c *TermCache) key(id int64) string {
	return fmt.Sprintf("%s:%d", termCacheKeyPrefix, id)
}
