package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CheckoutRequest finalizes the operator's cart. CashGiven arrives as free
// text (numeric keypad widgets send strings); non-numeric input is treated
// as zero during validation.
type CheckoutRequest struct {
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=cash card"`
	CashGiven     string  `json:"cash_given"     validate:"omitempty,max=32"`
	CustomerEmail *string `json:"customer_email" validate:"omitempty,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ReceiptItemResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type ReceiptResponse struct {
	ID             string                `json:"id"`
	Timestamp      string                `json:"timestamp"`
	Items          []ReceiptItemResponse `json:"items"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	DiscountPct    decimal.Decimal       `json:"discount_pct"`
	DiscountAmount decimal.Decimal       `json:"discount_amount"`
	TaxPct         decimal.Decimal       `json:"tax_pct"`
	TaxAmount      decimal.Decimal       `json:"tax_amount"`
	Total          decimal.Decimal       `json:"total"`
	PaymentMethod  string                `json:"payment_method"`
	CashGiven      *decimal.Decimal      `json:"cash_given,omitempty"`
	Change         *decimal.Decimal      `json:"change,omitempty"`
	Currency       string                `json:"currency"`
	Cashier        string                `json:"cashier"`
}
