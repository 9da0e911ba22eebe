package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable catalog item. The ID is a human-readable code
// generated from the category (e.g. "GRC-002"); the SKU is the scannable
// barcode. Expiry is optional — a product with no expiry never expires.
type Product struct {
	ID        string `gorm:"primaryKey"`
	SKU       string `gorm:"uniqueIndex;not null"`
	Name      string `gorm:"index;not null"`
	Category  string          `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock     int             `gorm:"not null;default:0"`
	Expiry    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsExpired reports whether the product's expiry date lies strictly before
// today. Comparison is at date granularity, not instant granularity.
func (p *Product) IsExpired(now time.Time) bool {
	if p.Expiry == nil {
		return false
	}
	today := now.Truncate(24 * time.Hour)
	return today.After(p.Expiry.Truncate(24 * time.Hour))
}

// DaysUntilExpiry returns whole days from today until expiry. Negative when
// already expired. ok is false when the product has no expiry date.
func (p *Product) DaysUntilExpiry(now time.Time) (days int, ok bool) {
	if p.Expiry == nil {
		return 0, false
	}
	today := now.Truncate(24 * time.Hour)
	return int(p.Expiry.Truncate(24 * time.Hour).Sub(today).Hours() / 24), true
}
