package cache

import (
	"context"
	"time"

	"vajanpos/backend/internal/domain"
)

// CatalogCache fronts the product catalog. A miss is (nil, false, nil);
// callers fall through to the repository and re-populate.
type CatalogCache interface {
	Get(ctx context.Context, key string) ([]domain.CatalogItem, bool, error)
	Set(ctx context.Context, key string, items []domain.CatalogItem, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// NoopCatalogCache disables caching. Every Get misses.
type NoopCatalogCache struct{}

func (NoopCatalogCache) Get(_ context.Context, _ string) ([]domain.CatalogItem, bool, error) {
	return nil, false, nil
}

func (NoopCatalogCache) Set(_ context.Context, _ string, _ []domain.CatalogItem, _ time.Duration) error {
	return nil
}

func (NoopCatalogCache) Invalidate(_ context.Context, _ string) error {
	return nil
}
