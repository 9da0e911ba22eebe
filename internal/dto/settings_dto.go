package dto

import "github.com/shopspring/decimal"

type UpdateSettingsRequest struct {
	TaxPct      *decimal.Decimal `json:"tax_pct"      validate:"omitempty"`
	DiscountPct *decimal.Decimal `json:"discount_pct" validate:"omitempty"`
	Currency    *string          `json:"currency"     validate:"omitempty,min=1,max=8"`
}

type SettingsResponse struct {
	TaxPct      decimal.Decimal `json:"tax_pct"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
	Currency    string          `json:"currency"`
}
