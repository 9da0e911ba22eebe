package service

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PricingResult is derived from the cart and settings on every change; it is
// never stored. Amounts carry full precision — rounding to 2 decimal places
// happens only at receipt/display time so rounding error does not compound
// across subtotal → discount → tax.
type PricingResult struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
}

var oneHundred = decimal.NewFromInt(100)

// ComputePricing maps (cart lines, discount %, tax %) to totals. Pure: no
// side effects, no failure modes. Negative percentages are treated as zero,
// matching the "missing/invalid settings are zero" rule.
//
//	subtotal = Σ unitPrice × quantity
//	discount = subtotal × discountPct/100
//	taxable  = max(0, subtotal − discount)
//	tax      = taxable × taxPct/100
//	total    = taxable + tax
func ComputePricing(lines []CartLine, discountPct, taxPct decimal.Decimal) PricingResult {
	if discountPct.IsNegative() {
		discountPct = decimal.Zero
	}
	if taxPct.IsNegative() {
		taxPct = decimal.Zero
	}

	subtotal := decimal.Zero
	for _, ln := range lines {
		subtotal = subtotal.Add(ln.UnitPrice.Mul(decimal.NewFromInt(int64(ln.Quantity))))
	}

	discount := subtotal.Mul(discountPct).Div(oneHundred)
	taxable := subtotal.Sub(discount)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	tax := taxable.Mul(taxPct).Div(oneHundred)

	return PricingResult{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxAmount:      tax,
		Total:          taxable.Add(tax),
	}
}

// ParseCashAmount coerces free-text cash input (barcode keypads and manual
// entry send strings) to a decimal. Non-numeric input counts as zero.
func ParseCashAmount(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// RoundMoney rounds to 2 decimal places; used only at the receipt/display
// boundary.
func RoundMoney(d decimal.Decimal) decimal.Decimal { return d.Round(2) }
