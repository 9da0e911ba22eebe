package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// AddCartItemRequest carries a single scanner token — a barcode scan or a
// manually typed id/sku — resolved against the catalog before adding.
type AddCartItemRequest struct {
	Token string `json:"token" validate:"required,min=1,max=64"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CartLineResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartResponse returns the cart lines plus totals recomputed from the
// current cart contents and settings.
type CartResponse struct {
	Lines          []CartLineResponse `json:"lines"`
	ItemCount      int                `json:"item_count"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	DiscountPct    decimal.Decimal    `json:"discount_pct"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	TaxPct         decimal.Decimal    `json:"tax_pct"`
	TaxAmount      decimal.Decimal    `json:"tax_amount"`
	Total          decimal.Decimal    `json:"total"`
	Currency       string             `json:"currency"`
}
