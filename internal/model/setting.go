package model

import "time"

// Setting is one persisted key-value pair (tax percentage, discount
// percentage, currency label). Absence of a key means "use the default".
type Setting struct {
	Key       string `gorm:"primaryKey"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}
