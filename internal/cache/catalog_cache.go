package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-tour-booking/internal/model"
	apperrors "go-tour-booking/pkg/app_errors"

	"github.com/redis/go-redis/v9"
)

const DefaultCatalogTTL = 5 * time.Minute

// CatalogCache fronts the catalog repository with a per-tour snapshot cache.
// Misses return ErrCacheMiss so the caller can fall through to Postgres.
type CatalogCache interface {
	GetTicketTypes(ctx context.Context, tourID int) ([]model.TicketType, error)
	SetTicketTypes(ctx context.Context, tourID int, ticketTypes []model.TicketType) error
	Invalidate(ctx context.Context, tourID int) error
}

type RedisCatalogCacheImpl struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCatalogCache builds a Redis-backed catalog cache. ttl <= 0 uses
// DefaultCatalogTTL.
func NewRedisCatalogCache(client *redis.Client, ttl time.Duration) CatalogCache {
	if ttl <= 0 {
		ttl = DefaultCatalogTTL
	}
	return &RedisCatalogCacheImpl{
		client: client,
		ttl:    ttl,
	}
}

func (c *RedisCatalogCacheImpl) getCatalogKey(tourID int) string {
	return fmt.Sprintf("tour:%d:catalog", tourID)
}

func (c *RedisCatalogCacheImpl) GetTicketTypes(ctx context.Context, tourID int) ([]model.TicketType, error) {
	key := c.getCatalogKey(tourID)
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, apperrors.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var ticketTypes []model.TicketType
	if err := json.Unmarshal(payload, &ticketTypes); err != nil {
		// corrupt entry: treat as a miss so the repository refills it
		return nil, apperrors.ErrCacheMiss
	}
	return ticketTypes, nil
}

func (c *RedisCatalogCacheImpl) SetTicketTypes(ctx context.Context, tourID int, ticketTypes []model.TicketType) error {
	payload, err := json.Marshal(ticketTypes)
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	return c.client.Set(ctx, c.getCatalogKey(tourID), payload, c.ttl).Err()
}

func (c *RedisCatalogCacheImpl) Invalidate(ctx context.Context, tourID int) error {
	return c.client.Del(ctx, c.getCatalogKey(tourID)).Err()
}
