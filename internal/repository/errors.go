package repository

import "errors"

// ErrNotFound is returned when a referenced record does not exist.
// Services translate gorm.ErrRecordNotFound into this sentinel so callers
// never depend on the storage driver.
var ErrNotFound = errors.New("record not found")
