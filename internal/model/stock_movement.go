package model

import (
	"time"

	"github.com/google/uuid"
)

// StockMovement is an audit row recorded for every stock change — one per
// sold line at checkout and one per manual admin adjustment.
type StockMovement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID   string    `gorm:"index;not null"`
	Type        string    `gorm:"not null"` // sale | adjustment
	Quantity    int       `gorm:"not null"` // signed delta
	StockBefore int       `gorm:"not null"`
	StockAfter  int       `gorm:"not null"`
	Reason      string
	ReceiptID   *string `gorm:"index"`
	CreatedAt   time.Time
}
