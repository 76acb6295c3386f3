package repositories

import (
	"context"
	"time"

	"github.com/shashiranjanraj/shopdesk/app/models"
	"github.com/shashiranjanraj/shopdesk/pkg/cache"
	"github.com/shashiranjanraj/shopdesk/pkg/logger"
)

// CachedProducts is a read-through cache in front of a ProductRepository.
// Only FindByID is cached; writes evict the entry. When the cache is
// unavailable every call goes straight to the wrapped repository.
type CachedProducts struct {
	ProductRepository
	cache *cache.Store
	ttl   time.Duration
}

// NewCachedProducts wraps next. A nil or disabled cache returns next as is.
func NewCachedProducts(next ProductRepository, c *cache.Store, ttl time.Duration) ProductRepository {
	if !c.Available() {
		return next
	}
	return &CachedProducts{ProductRepository: next, cache: c, ttl: ttl}
}

func productKey(id models.ID) string { return "product:" + id.String() }

func (c *CachedProducts) FindByID(ctx context.Context, id models.ID) (models.Product, error) {
	var p models.Product
	if c.cache.Get(ctx, productKey(id), &p) {
		return p, nil
	}

	p, err := c.ProductRepository.FindByID(ctx, id)
	if err != nil {
		return p, err
	}
	if err := c.cache.Set(ctx, productKey(id), p, c.ttl); err != nil {
		logger.WithCtx(ctx).Warn("product cache: set failed", "id", id.String(), "error", err)
	}
	return p, nil
}

func (c *CachedProducts) Update(ctx context.Context, p *models.Product) error {
	if err := c.ProductRepository.Update(ctx, p); err != nil {
		return err
	}
	c.evict(ctx, p.ID)
	return nil
}

func (c *CachedProducts) Delete(ctx context.Context, id models.ID) error {
	if err := c.ProductRepository.Delete(ctx, id); err != nil {
		return err
	}
	c.evict(ctx, id)
	return nil
}

func (c *CachedProducts) evict(ctx context.Context, id models.ID) {
	if err := c.cache.Del(ctx, productKey(id)); err != nil {
		logger.WithCtx(ctx).Warn("product cache: evict failed", "id", id.String(), "error", err)
	}
}
