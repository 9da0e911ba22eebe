package service

import "errors"

// Domain failure sentinels. Every failing operation leaves the cart and the
// catalog exactly as they were; handlers match with errors.Is and translate
// to HTTP statuses.
var (
	// ErrExpiredProduct blocks selling goods past their expiry date.
	ErrExpiredProduct = errors.New("product is expired")
	// ErrInsufficientStock means a requested quantity exceeds available stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalidState marks an invariant breach, e.g. a stock change that
	// would drive stock negative.
	ErrInvalidState = errors.New("invalid state")
	// ErrCheckoutNotEligible is returned when the checkout validator fails
	// at commit time.
	ErrCheckoutNotEligible = errors.New("checkout not eligible")
	// ErrUnauthorized means the operator's role lacks permission.
	ErrUnauthorized = errors.New("unauthorized")
)
