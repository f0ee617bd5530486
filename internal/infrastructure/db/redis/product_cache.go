package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/chickensystem/restaurant-api/internal/api/metrics"
	"github.com/chickensystem/restaurant-api/internal/core/domain"
	"github.com/chickensystem/restaurant-api/internal/core/ports"
)

const (
	productTTL  = 5 * time.Minute
	notFoundTTL = time.Minute
	notFound    = "notfound"
)

// CachedProductRepository decorates a ports.ProductRepository with a
// read-through cache for single-product lookups. Redis failures degrade to
// the underlying repository.
type CachedProductRepository struct {
	ports.ProductRepository
	client *redis.Client
	log    zerolog.Logger
}

func NewCachedProductRepository(repo ports.ProductRepository, client *redis.Client, log zerolog.Logger) *CachedProductRepository {
	return &CachedProductRepository{ProductRepository: repo, client: client, log: log}
}

func (c *CachedProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	key := productKey(id)

	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if string(data) == notFound {
			metrics.ProductCacheTotal.WithLabelValues("hit").Inc()
			return nil, domain.ErrProductNotFound
		}
		var p domain.Product
		if err := json.Unmarshal(data, &p); err == nil {
			metrics.ProductCacheTotal.WithLabelValues("hit").Inc()
			return &p, nil
		}
		c.log.Warn().Str("key", key).Msg("discarding undecodable cached product")
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn().Err(err).Msg("product cache unavailable, reading through")
	}
	metrics.ProductCacheTotal.WithLabelValues("miss").Inc()

	p, err := c.ProductRepository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.set(ctx, key, notFound, notFoundTTL)
		}
		return nil, err
	}

	if encoded, err := json.Marshal(p); err == nil {
		c.set(ctx, key, encoded, productTTL)
	}
	return p, nil
}

// Create drops a negative entry that may exist for the new id.
func (c *CachedProductRepository) Create(ctx context.Context, p *domain.Product) error {
	if err := c.ProductRepository.Create(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx, p.ID)
	return nil
}

func (c *CachedProductRepository) Update(ctx context.Context, p *domain.Product) error {
	err := c.ProductRepository.Update(ctx, p)
	c.invalidate(ctx, p.ID)
	return err
}

func (c *CachedProductRepository) Delete(ctx context.Context, id string) error {
	err := c.ProductRepository.Delete(ctx, id)
	c.invalidate(ctx, id)
	return err
}

func (c *CachedProductRepository) set(ctx context.Context, key string, value any, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("failed to cache product")
	}
}

func (c *CachedProductRepository) invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, productKey(id)).Err(); err != nil {
		c.log.Warn().Err(err).Str("product_id", id).Msg("failed to invalidate cached product")
	}
}

func productKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}
