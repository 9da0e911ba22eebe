package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt is the immutable record of a completed sale. Created exactly once
// by the checkout committer and never updated afterwards. All monetary
// amounts are rounded to 2 decimal places at construction time.
type Receipt struct {
	ID             string `gorm:"primaryKey"` // time-based transaction identifier
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountPct    decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TaxPct         decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMethod  string          `gorm:"not null"`
	CashGiven      *decimal.Decimal `gorm:"type:decimal(12,2)"` // cash payments only
	Change         *decimal.Decimal `gorm:"type:decimal(12,2)"` // cash payments only
	Currency       string           `gorm:"not null"`
	CashierID      string           `gorm:"index"`
	CashierName    string
	CreatedAt      time.Time

	Items []ReceiptItem `gorm:"foreignKey:ReceiptID"`
}

// ReceiptItem is a snapshot of one cart line at the moment of sale.
// UnitPrice is the denormalized add-time price, not the live catalog price.
type ReceiptItem struct {
	ID        uint   `gorm:"primaryKey"`
	ReceiptID string `gorm:"index;not null"`
	ProductID string `gorm:"not null"`
	Name      string `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity  int             `gorm:"not null"`
	LineTotal decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
