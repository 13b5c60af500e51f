package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"vajanpos/backend/internal/billing"
	"vajanpos/backend/internal/cache"
	"vajanpos/backend/internal/domain"
	"vajanpos/backend/internal/printer"
	"vajanpos/backend/internal/receipt"
	"vajanpos/backend/internal/store"
)

const (
	catalogCacheKey = "catalog:v1"
	catalogCacheTTL = 5 * time.Minute
)

// Service ties the counter flow together: catalog and settings reads go
// through the repository (fronted by the cache), selection state lives
// in the cart, and bill creation runs through the commit controller.
type Service struct {
	repo       store.Repository
	cache      cache.CatalogCache
	dispatcher printer.Dispatcher

	cart    *billing.Cart
	commits *billing.CommitController
}

func New(ctx context.Context, repo store.Repository, catalogCache cache.CatalogCache, dispatcher printer.Dispatcher) (*Service, error) {
	catalog, err := repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	cart := billing.NewCart(catalog)
	return &Service{
		repo:       repo,
		cache:      catalogCache,
		dispatcher: dispatcher,
		cart:       cart,
		commits:    billing.NewCommitController(cart),
	}, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.CatalogItem, error) {
	if items, hit, err := s.cache.Get(ctx, catalogCacheKey); err != nil {
		log.Printf("catalog cache get failed: %v", err)
	} else if hit {
		return items, nil
	}

	items, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, catalogCacheKey, items, catalogCacheTTL); err != nil {
		log.Printf("catalog cache set failed: %v", err)
	}
	return items, nil
}

func (s *Service) CreateProduct(ctx context.Context, req domain.ProductCreateRequest) (*domain.CatalogItem, error) {
	if strings.TrimSpace(req.Name) == "" || req.UnitPrice.IsNegative() {
		return nil, store.ErrInvalidProduct
	}

	created, err := s.repo.CreateProduct(ctx, domain.CatalogItem{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		UnitPrice: req.UnitPrice,
		ImageURL:  strings.TrimSpace(req.ImageURL),
	})
	if err != nil {
		return nil, err
	}

	s.afterCatalogChange(ctx)
	return created, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.afterCatalogChange(ctx)
	return nil
}

// afterCatalogChange drops the cached catalog and re-keys the cart. Any
// in-progress selection is cleared; the cart must never reference an
// item the catalog no longer has.
func (s *Service) afterCatalogChange(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, catalogCacheKey); err != nil {
		log.Printf("catalog cache invalidate failed: %v", err)
	}
	catalog, err := s.repo.ListProducts(ctx)
	if err != nil {
		log.Printf("cart reload failed, keeping previous catalog keys: %v", err)
		return
	}
	s.cart.Reload(catalog)
}

func (s *Service) GetSettings(ctx context.Context) (domain.BillingConfig, error) {
	return s.repo.GetBillingConfig(ctx)
}

func (s *Service) UpdateBusiness(ctx context.Context, req domain.BusinessUpdateRequest) (domain.BillingConfig, error) {
	return s.repo.UpdateBusinessIdentity(ctx, req)
}

func (s *Service) UpdateGST(ctx context.Context, req domain.GSTUpdateRequest) (domain.BillingConfig, error) {
	return s.repo.UpdateGSTPercentage(ctx, req)
}

func (s *Service) CartView() domain.CartView {
	return s.cart.View()
}

func (s *Service) IncrementItem(id string) (int, error) {
	return s.cart.Increment(id)
}

func (s *Service) DecrementItem(id string) (int, error) {
	return s.cart.Decrement(id)
}

func (s *Service) ToggleItem(id string) (int, error) {
	return s.cart.Toggle(id)
}

// ResetCart clears the selection manually. It is refused while a commit
// is running; the controller owns the cart during a commit.
func (s *Service) ResetCart() error {
	if s.commits.Committing() {
		return billing.ErrCommitInProgress
	}
	s.cart.Reset()
	return nil
}

// CartSummary prices the current selection through the same path a
// commit uses, so the totals shown before printing match the receipt.
func (s *Service) CartSummary(ctx context.Context) (domain.CartSummary, error) {
	catalog, err := s.ListProducts(ctx)
	if err != nil {
		return domain.CartSummary{}, err
	}
	cfg := s.billingConfig(ctx)
	return billing.Summarize(s.cart.Quantities(), catalog, cfg)
}

// CreateBill runs the full commit: freeze the selection, render the
// receipt, hand it to the print sink, and reset the cart only when the
// sink confirms. A dispatch failure leaves the cart intact for retry.
func (s *Service) CreateBill(ctx context.Context, req domain.CreateBillRequest) (domain.CreateBillResponse, error) {
	mode := req.PaymentMode
	if mode == "" {
		mode = domain.PaymentModeCash
	}
	if !mode.Valid() {
		return domain.CreateBillResponse{}, billing.ErrInvalidPaymentMode
	}

	catalog, err := s.ListProducts(ctx)
	if err != nil {
		return domain.CreateBillResponse{}, err
	}
	cfg := s.billingConfig(ctx)

	var doc domain.Document
	snap, err := s.commits.Commit(ctx, catalog, cfg, mode, func(ctx context.Context, snap domain.BillSnapshot) error {
		doc = receipt.Render(snap)
		return s.dispatcher.Dispatch(ctx, doc)
	})
	if err != nil {
		return domain.CreateBillResponse{}, err
	}

	log.Printf("bill %d committed: %d items, total %s, paid by %s",
		snap.BillNumber, snap.ItemCount, snap.GrandTotal.StringFixed(2), snap.PaymentMode)

	return domain.CreateBillResponse{
		BillNumber:    snap.BillNumber,
		Timestamp:     snap.Timestamp.Format(time.RFC3339),
		PaymentMode:   snap.PaymentMode,
		ItemCount:     snap.ItemCount,
		TotalQuantity: snap.TotalQuantity,
		Subtotal:      snap.Subtotal,
		TaxAmount:     snap.TaxAmount,
		GrandTotal:    snap.GrandTotal,
		PreviewText:   doc.Text,
	}, nil
}

// billingConfig fetches the settings snapshot for a render. A fetch
// failure is logged and degrades to the zero config; the renderer fills
// in the default identity and charges no tax.
func (s *Service) billingConfig(ctx context.Context) domain.BillingConfig {
	cfg, err := s.repo.GetBillingConfig(ctx)
	if err != nil {
		log.Printf("billing config fetch failed, using defaults: %v", err)
		return domain.BillingConfig{}
	}
	return cfg
}
