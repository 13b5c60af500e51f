package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"vajanpos/backend/internal/domain"
	"vajanpos/backend/internal/store"
)

type Store struct {
	mu       sync.RWMutex
	order    []string
	products map[string]domain.CatalogItem
	config   domain.BillingConfig
}

func New() *Store {
	return &Store{
		order:    make([]string, 0, 32),
		products: make(map[string]domain.CatalogItem),
	}
}

// NewSeeded returns a store pre-loaded with a small demo menu so the
// backend is usable without PostgreSQL.
func NewSeeded() *Store {
	s := New()

	seed := []domain.CatalogItem{
		{ID: "itm-chai-01", Name: "Masala Chai", UnitPrice: decimal.NewFromInt(20)},
		{ID: "itm-samosa-01", Name: "Samosa", UnitPrice: decimal.NewFromInt(25)},
		{ID: "itm-vadapav-01", Name: "Vada Pav", UnitPrice: decimal.NewFromInt(30)},
		{ID: "itm-thali-01", Name: "Veg Thali", UnitPrice: decimal.NewFromInt(120)},
		{ID: "itm-paneer-01", Name: "Paneer Tikka", UnitPrice: decimal.NewFromInt(160)},
		{ID: "itm-lassi-01", Name: "Sweet Lassi", UnitPrice: decimal.NewFromInt(60)},
		{ID: "itm-dosa-01", Name: "Masala Dosa", UnitPrice: decimal.NewFromInt(90)},
		{ID: "itm-water-01", Name: "Mineral Water", UnitPrice: decimal.NewFromInt(15)},
	}
	for _, item := range seed {
		s.order = append(s.order, item.ID)
		s.products[item.ID] = item
	}

	s.config = domain.BillingConfig{
		GSTPercentage: decimal.NewFromInt(5),
	}

	return s
}

func (s *Store) ListProducts(_ context.Context) ([]domain.CatalogItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.CatalogItem, 0, len(s.order))
	for _, id := range s.order {
		items = append(items, s.products[id])
	}
	return items, nil
}

func (s *Store) GetProductByID(_ context.Context, id string) (*domain.CatalogItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.products[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copyItem := item
	return &copyItem, nil
}

func (s *Store) CreateProduct(_ context.Context, item domain.CatalogItem) (*domain.CatalogItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.ID == "" || strings.TrimSpace(item.Name) == "" || item.UnitPrice.IsNegative() {
		return nil, store.ErrInvalidProduct
	}
	if _, exists := s.products[item.ID]; exists {
		return nil, store.ErrInvalidProduct
	}

	s.order = append(s.order, item.ID)
	s.products[item.ID] = item
	created := item
	return &created, nil
}

func (s *Store) DeleteProduct(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return store.ErrNotFound
	}
	delete(s.products, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) GetBillingConfig(_ context.Context) (domain.BillingConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.config, nil
}

func (s *Store) UpdateBusinessIdentity(_ context.Context, req domain.BusinessUpdateRequest) (domain.BillingConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.config.BusinessName = strings.TrimSpace(req.BusinessName)
	s.config.Address = strings.TrimSpace(req.Address)
	s.config.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	return s.config, nil
}

func (s *Store) UpdateGSTPercentage(_ context.Context, req domain.GSTUpdateRequest) (domain.BillingConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.GSTPercentage.IsNegative() || req.GSTPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return domain.BillingConfig{}, store.ErrInvalidProduct
	}
	s.config.GSTPercentage = req.GSTPercentage
	return s.config, nil
}
