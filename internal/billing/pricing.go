package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"vajanpos/backend/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// ComputeSnapshot prices a selection against the catalog and billing
// config and freezes the result into an immutable BillSnapshot. Lines
// follow catalog order, never tap order; only quantities above zero
// produce a line. Tax is computed on the aggregate subtotal and rounded
// to two places exactly once; per-line amounts are never rounded.
func ComputeSnapshot(
	quantities map[string]int,
	catalog []domain.CatalogItem,
	cfg domain.BillingConfig,
	mode domain.PaymentMode,
	billNumber int,
	at time.Time,
) (domain.BillSnapshot, error) {
	lines := make([]domain.LineItem, 0, len(catalog))
	subtotal := decimal.Zero
	totalQty := 0

	for _, item := range catalog {
		qty := quantities[item.ID]
		if qty <= 0 {
			continue
		}
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
		lines = append(lines, domain.LineItem{
			ItemID:    item.ID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  qty,
			LineTotal: lineTotal,
		})
		subtotal = subtotal.Add(lineTotal)
		totalQty += qty
	}

	if len(lines) == 0 {
		return domain.BillSnapshot{}, ErrEmptySelection
	}

	tax := decimal.Zero
	if cfg.GSTPercentage.IsPositive() {
		tax = subtotal.Mul(cfg.GSTPercentage).Div(hundred).Round(2)
	}

	return domain.BillSnapshot{
		BillNumber:    billNumber,
		Timestamp:     at,
		BusinessName:  cfg.BusinessName,
		Address:       cfg.Address,
		PhoneNumber:   cfg.PhoneNumber,
		PaymentMode:   mode,
		GSTPercentage: cfg.GSTPercentage,
		Lines:         lines,
		ItemCount:     len(lines),
		TotalQuantity: totalQty,
		Subtotal:      subtotal,
		TaxAmount:     tax,
		GrandTotal:    subtotal.Add(tax),
	}, nil
}

// Summarize reuses the commit pricing path to produce the pre-print
// totals view, so the summary the operator sees cannot drift from what
// a commit taken at the same instant would print.
func Summarize(quantities map[string]int, catalog []domain.CatalogItem, cfg domain.BillingConfig) (domain.CartSummary, error) {
	snap, err := ComputeSnapshot(quantities, catalog, cfg, domain.PaymentModeCash, 0, time.Time{})
	if err != nil {
		return domain.CartSummary{}, err
	}
	return domain.CartSummary{
		ItemCount:     snap.ItemCount,
		TotalQuantity: snap.TotalQuantity,
		Subtotal:      snap.Subtotal,
		TaxAmount:     snap.TaxAmount,
		GrandTotal:    snap.GrandTotal,
	}, nil
}
