package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"vajanpos/backend/internal/billing"
	"vajanpos/backend/internal/cache"
	"vajanpos/backend/internal/domain"
	"vajanpos/backend/internal/store"
	"vajanpos/backend/internal/store/memory"
)

type fakeDispatcher struct {
	err  error
	docs []domain.Document
}

func (d *fakeDispatcher) Dispatch(_ context.Context, doc domain.Document) error {
	if d.err != nil {
		return d.err
	}
	d.docs = append(d.docs, doc)
	return nil
}

func newTestService(t *testing.T, dispatcher *fakeDispatcher) (*Service, *memory.Store) {
	t.Helper()
	ctx := context.Background()

	repo := memory.New()
	seed := []domain.CatalogItem{
		{ID: "itm-thali", Name: "Veg Thali", UnitPrice: decimal.NewFromInt(100)},
		{ID: "itm-lassi", Name: "Sweet Lassi", UnitPrice: decimal.NewFromInt(50)},
		{ID: "itm-samosa", Name: "Samosa", UnitPrice: decimal.NewFromInt(25)},
	}
	for _, item := range seed {
		if _, err := repo.CreateProduct(ctx, item); err != nil {
			t.Fatalf("seed product %s: %v", item.ID, err)
		}
	}
	if _, err := repo.UpdateGSTPercentage(ctx, domain.GSTUpdateRequest{GSTPercentage: decimal.NewFromInt(5)}); err != nil {
		t.Fatalf("seed gst: %v", err)
	}

	svc, err := New(ctx, repo, cache.NoopCatalogCache{}, dispatcher)
	if err != nil {
		t.Fatalf("service.New: %v", err)
	}
	return svc, repo
}

func TestCreateBillResetsCart(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	svc, _ := newTestService(t, dispatcher)

	if _, err := svc.IncrementItem("itm-thali"); err != nil {
		t.Fatalf("increment: %v", err)
	}
	if _, err := svc.IncrementItem("itm-thali"); err != nil {
		t.Fatalf("increment: %v", err)
	}
	if _, err := svc.IncrementItem("itm-lassi"); err != nil {
		t.Fatalf("increment: %v", err)
	}

	resp, err := svc.CreateBill(context.Background(), domain.CreateBillRequest{PaymentMode: domain.PaymentModeCash})
	if err != nil {
		t.Fatalf("CreateBill: %v", err)
	}

	if got := resp.Subtotal.StringFixed(2); got != "250.00" {
		t.Fatalf("subtotal = %s, want 250.00", got)
	}
	if got := resp.TaxAmount.StringFixed(2); got != "12.50" {
		t.Fatalf("tax = %s, want 12.50", got)
	}
	if got := resp.GrandTotal.StringFixed(2); got != "262.50" {
		t.Fatalf("grand total = %s, want 262.50", got)
	}
	if resp.BillNumber < 1 || resp.BillNumber > 1000 {
		t.Fatalf("bill number %d outside [1,1000]", resp.BillNumber)
	}
	if !strings.Contains(resp.PreviewText, "THANK YOU VISIT AGAIN") {
		t.Fatalf("preview missing closing message:\n%s", resp.PreviewText)
	}

	if svc.CartView().HasAnySelection {
		t.Fatal("cart not cleared after successful bill")
	}
	if len(dispatcher.docs) != 1 {
		t.Fatalf("dispatched %d documents, want 1", len(dispatcher.docs))
	}
}

func TestCreateBillDispatchFailureKeepsCart(t *testing.T) {
	dispatcher := &fakeDispatcher{err: errors.New("bridge offline")}
	svc, _ := newTestService(t, dispatcher)

	if _, err := svc.IncrementItem("itm-samosa"); err != nil {
		t.Fatalf("increment: %v", err)
	}

	_, err := svc.CreateBill(context.Background(), domain.CreateBillRequest{})
	if !errors.Is(err, billing.ErrPrintDispatch) {
		t.Fatalf("err = %v, want ErrPrintDispatch", err)
	}

	view := svc.CartView()
	if !view.HasAnySelection || view.Quantities["itm-samosa"] != 1 {
		t.Fatalf("cart changed by failed bill: %+v", view)
	}
}

func TestCreateBillEmptyCart(t *testing.T) {
	svc, _ := newTestService(t, &fakeDispatcher{})

	_, err := svc.CreateBill(context.Background(), domain.CreateBillRequest{})
	if !errors.Is(err, billing.ErrEmptySelection) {
		t.Fatalf("err = %v, want ErrEmptySelection", err)
	}
}

func TestCreateBillInvalidPaymentMode(t *testing.T) {
	svc, _ := newTestService(t, &fakeDispatcher{})

	if _, err := svc.IncrementItem("itm-thali"); err != nil {
		t.Fatalf("increment: %v", err)
	}
	_, err := svc.CreateBill(context.Background(), domain.CreateBillRequest{PaymentMode: "barter"})
	if !errors.Is(err, billing.ErrInvalidPaymentMode) {
		t.Fatalf("err = %v, want ErrInvalidPaymentMode", err)
	}
}

func TestCartSummaryMatchesBill(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	svc, _ := newTestService(t, dispatcher)

	svc.IncrementItem("itm-thali")
	svc.IncrementItem("itm-thali")
	svc.IncrementItem("itm-lassi")

	summary, err := svc.CartSummary(context.Background())
	if err != nil {
		t.Fatalf("CartSummary: %v", err)
	}

	resp, err := svc.CreateBill(context.Background(), domain.CreateBillRequest{PaymentMode: domain.PaymentModeElectronic})
	if err != nil {
		t.Fatalf("CreateBill: %v", err)
	}

	if !summary.Subtotal.Equal(resp.Subtotal) || !summary.TaxAmount.Equal(resp.TaxAmount) || !summary.GrandTotal.Equal(resp.GrandTotal) {
		t.Fatalf("summary %+v diverges from bill %+v", summary, resp)
	}
}

func TestCreateProductReloadsCart(t *testing.T) {
	svc, _ := newTestService(t, &fakeDispatcher{})

	svc.IncrementItem("itm-thali")

	created, err := svc.CreateProduct(context.Background(), domain.ProductCreateRequest{
		Name:      "Filter Coffee",
		UnitPrice: decimal.NewFromInt(40),
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created product has no id")
	}

	view := svc.CartView()
	if view.HasAnySelection {
		t.Fatal("selection survived catalog change")
	}
	if _, ok := view.Quantities[created.ID]; !ok {
		t.Fatalf("new product %s missing from cart keys", created.ID)
	}
}

func TestDeleteProductReloadsCart(t *testing.T) {
	svc, _ := newTestService(t, &fakeDispatcher{})

	svc.IncrementItem("itm-lassi")

	if err := svc.DeleteProduct(context.Background(), "itm-lassi"); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}

	if _, err := svc.IncrementItem("itm-lassi"); !errors.Is(err, billing.ErrInvalidItem) {
		t.Fatalf("deleted item still in cart: %v", err)
	}
}

func TestDeleteUnknownProduct(t *testing.T) {
	svc, _ := newTestService(t, &fakeDispatcher{})

	if err := svc.DeleteProduct(context.Background(), "ghost"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	svc, _ := newTestService(t, &fakeDispatcher{})

	cfg, err := svc.UpdateBusiness(context.Background(), domain.BusinessUpdateRequest{
		BusinessName: "  Sharma Snacks ",
		Address:      "12 Station Road",
		PhoneNumber:  "9876543210",
	})
	if err != nil {
		t.Fatalf("UpdateBusiness: %v", err)
	}
	if cfg.BusinessName != "Sharma Snacks" {
		t.Fatalf("business name = %q, want trimmed", cfg.BusinessName)
	}

	if _, err := svc.UpdateGST(context.Background(), domain.GSTUpdateRequest{GSTPercentage: decimal.NewFromInt(101)}); !errors.Is(err, store.ErrInvalidProduct) {
		t.Fatalf("gst over 100 accepted: %v", err)
	}

	got, err := svc.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if !got.GSTPercentage.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("gst = %s, want 5 (unchanged by rejected update)", got.GSTPercentage)
	}
}
