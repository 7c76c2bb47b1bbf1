package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"squadbuilder/internal/microservices/http-api/models"

	"github.com/redis/go-redis/v9"
)

const catalogCacheKey = "catalog:players"

// CatalogCache caches the full player listing in Redis. Catalog rows are
// immutable once imported, so a TTL'd copy can never go stale mid-lifetime;
// the TTL only bounds how long a fresh seed run takes to show up. Rating
// aggregates are never cached anywhere.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache connects to Redis and verifies the connection.
func NewCatalogCache(addr, password string, ttl time.Duration) (*CatalogCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &CatalogCache{client: rdb, ttl: ttl}, nil
}

// Get returns the cached listing and whether it was present. A nil cache or
// any Redis failure behaves as a miss; the caller falls through to Postgres.
func (c *CatalogCache) Get(ctx context.Context) ([]models.Player, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, catalogCacheKey).Bytes()
	if err != nil {
		return nil, false
	}

	var players []models.Player
	if err := json.Unmarshal(raw, &players); err != nil {
		return nil, false
	}
	return players, true
}

// Set stores the listing. Failures are swallowed; caching is best-effort.
func (c *CatalogCache) Set(ctx context.Context, players []models.Player) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(players)
	if err != nil {
		return
	}
	c.client.Set(ctx, catalogCacheKey, raw, c.ttl)
}
