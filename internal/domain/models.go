package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CatalogItem is a sellable product. The billing core treats it as
// read-only; creation and deletion happen through the catalog endpoints.
type CatalogItem struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ImageURL  string          `json:"image_url,omitempty"`
}

// BillingConfig is the business identity and tax snapshot fetched before
// a receipt is rendered. Empty identity fields fall back to the default
// identity at render time, so printing is never blocked by missing
// configuration.
type BillingConfig struct {
	BusinessName  string          `json:"business_name"`
	Address       string          `json:"address"`
	PhoneNumber   string          `json:"phone_number"`
	GSTPercentage decimal.Decimal `json:"gst_percentage"`
}

// PaymentMode is the closed set of accepted tender types.
type PaymentMode string

const (
	PaymentModeCash       PaymentMode = "cash"
	PaymentModeElectronic PaymentMode = "electronic"
)

func (m PaymentMode) Valid() bool {
	return m == PaymentModeCash || m == PaymentModeElectronic
}

// LineItem is one catalog item at a selected quantity inside a bill.
type LineItem struct {
	ItemID    string          `json:"item_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// BillSnapshot is the immutable, point-in-time projection of a cart
// joined against the catalog and billing config. Once constructed it is
// the single source of truth for what gets rendered and printed; later
// cart mutations can never reach it.
type BillSnapshot struct {
	BillNumber    int             `json:"bill_number"`
	Timestamp     time.Time       `json:"timestamp"`
	BusinessName  string          `json:"business_name"`
	Address       string          `json:"address"`
	PhoneNumber   string          `json:"phone_number"`
	PaymentMode   PaymentMode     `json:"payment_mode"`
	GSTPercentage decimal.Decimal `json:"gst_percentage"`
	Lines         []LineItem      `json:"lines"`
	ItemCount     int             `json:"item_count"`
	TotalQuantity int             `json:"total_quantity"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// Document is a rendered receipt sized for a narrow thermal printer.
// Text is the human-readable preview; EscposBase64 carries the raw
// printer bytes for the hardware bridge.
type Document struct {
	BillNumber   int      `json:"bill_number"`
	Width        int      `json:"width"`
	Lines        []string `json:"lines"`
	Text         string   `json:"text"`
	EscposBase64 string   `json:"escpos_base64"`
}

type ProductCreateRequest struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ImageURL  string          `json:"image_url,omitempty"`
}

type BusinessUpdateRequest struct {
	BusinessName string `json:"business_name"`
	Address      string `json:"address"`
	PhoneNumber  string `json:"phone_number"`
}

type GSTUpdateRequest struct {
	GSTPercentage decimal.Decimal `json:"gst_percentage"`
}

// CartView is the read model for the current selection.
type CartView struct {
	Quantities      map[string]int `json:"quantities"`
	HasAnySelection bool           `json:"has_any_selection"`
}

// CartSummary is the pre-print totals view. It is computed through the
// same pricing path as a commit, so it cannot drift from what a commit
// taken at the same instant would print.
type CartSummary struct {
	ItemCount     int             `json:"item_count"`
	TotalQuantity int             `json:"total_quantity"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

type CreateBillRequest struct {
	PaymentMode PaymentMode `json:"payment_mode"`
}

type CreateBillResponse struct {
	BillNumber    int             `json:"bill_number"`
	Timestamp     string          `json:"timestamp"`
	PaymentMode   PaymentMode     `json:"payment_mode"`
	ItemCount     int             `json:"item_count"`
	TotalQuantity int             `json:"total_quantity"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	PreviewText   string          `json:"preview_text"`
}
