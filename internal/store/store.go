package store

import (
	"context"
	"errors"

	"vajanpos/backend/internal/domain"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidProduct = errors.New("invalid product")
)

// Repository persists the catalog and the billing configuration. The
// billing core only ever reads from it; mutation happens through the
// catalog and settings endpoints.
type Repository interface {
	ListProducts(ctx context.Context) ([]domain.CatalogItem, error)
	GetProductByID(ctx context.Context, id string) (*domain.CatalogItem, error)
	CreateProduct(ctx context.Context, item domain.CatalogItem) (*domain.CatalogItem, error)
	DeleteProduct(ctx context.Context, id string) error
	GetBillingConfig(ctx context.Context) (domain.BillingConfig, error)
	UpdateBusinessIdentity(ctx context.Context, req domain.BusinessUpdateRequest) (domain.BillingConfig, error)
	UpdateGSTPercentage(ctx context.Context, req domain.GSTUpdateRequest) (domain.BillingConfig, error)
}
