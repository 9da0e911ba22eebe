package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	ID       string          `json:"id"       validate:"omitempty,max=24"`
	SKU      string          `json:"sku"      validate:"omitempty,max=24"`
	Name     string          `json:"name"     validate:"required,min=1,max=120"`
	Category string          `json:"category" validate:"required,min=1,max=60"`
	Price    decimal.Decimal `json:"price"    validate:"min=0"`
	Stock    int             `json:"stock"    validate:"min=0"`
	Expiry   *string         `json:"expiry"   validate:"omitempty,datetime=2006-01-02"`
}

type UpdateProductRequest struct {
	Name     *string          `json:"name"     validate:"omitempty,min=1,max=120"`
	Category *string          `json:"category" validate:"omitempty,min=1,max=60"`
	Price    *decimal.Decimal `json:"price"`
	Stock    *int             `json:"stock"    validate:"omitempty,min=0"`
	Expiry   *string          `json:"expiry"   validate:"omitempty,datetime=2006-01-02"`
}

type AdjustStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Reason string `json:"reason" validate:"omitempty,max=200"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

// ProductFilter is bound from the query string of GET /v1/products.
// Category "all" (or empty) matches every category; Query is a
// case-insensitive substring match over name, id and sku.
type ProductFilter struct {
	Category string `form:"category"`
	Query    string `form:"q"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID       string          `json:"id"`
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	Expiry   *string         `json:"expiry"` // YYYY-MM-DD, null when the product never expires
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type CategoryListResponse struct {
	Categories []string `json:"categories"` // always starts with the "all" sentinel
}

// StockAlertResponse is one row of the low-stock / expiry alert views.
type StockAlertResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Stock         int     `json:"stock"`
	Expiry        *string `json:"expiry,omitempty"`
	DaysUntilExpiry *int  `json:"days_until_expiry,omitempty"`
}

type StockMovementResponse struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	Type        string  `json:"type"`
	Quantity    int     `json:"quantity"`
	StockBefore int     `json:"stock_before"`
	StockAfter  int     `json:"stock_after"`
	Reason      string  `json:"reason"`
	ReceiptID   *string `json:"receipt_id,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// PriceCheckResponse is returned by the public price lookup endpoint.
type PriceCheckResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	Category string          `json:"category"`
	Currency string          `json:"currency"`
}
