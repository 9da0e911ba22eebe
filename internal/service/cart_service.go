package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/seanvillas05-art/pos-app1/internal/model"
	"github.com/seanvillas05-art/pos-app1/internal/repository"

	"github.com/shopspring/decimal"
)

// CartLine is one product entry in the active transaction. Name and
// UnitPrice are denormalized at add time; later catalog price edits do not
// retroactively change lines already in the cart. Quantity checks always
// re-read live stock, never the denormalized copy.
type CartLine struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// reservable is the single "can this quantity be reserved against this
// product" predicate. Add, UpdateQuantity and the checkout validator all go
// through it so the stock invariant cannot drift between call sites.
func reservable(p *model.Product, qty int) error {
	if qty > p.Stock {
		return fmt.Errorf("%s: %w (requested %d, available %d)", p.Name, ErrInsufficientStock, qty, p.Stock)
	}
	return nil
}

// CartService manages one cart per operator. Carts are transient in-process
// state: they never outlive a checkout or clear, and the engine assumes a
// single active operator per cart (one logical mutation completes before the
// next begins).
type CartService interface {
	// Add puts one unit of the product in the operator's cart, incrementing
	// an existing line or inserting a new one. Fails with ErrExpiredProduct
	// or ErrInsufficientStock; the cart is unchanged on failure.
	Add(ctx context.Context, operatorID string, productID string) error
	// UpdateQuantity sets a line's quantity, clamped to a minimum of 1.
	// Fails with ErrInsufficientStock when the quantity exceeds live stock;
	// the prior quantity is kept on failure.
	UpdateQuantity(ctx context.Context, operatorID, productID string, quantity int) error
	Remove(operatorID, productID string)
	Clear(operatorID string)
	// Lines returns a copy of the cart in insertion order.
	Lines(operatorID string) []CartLine
	// ItemCount is the sum of all line quantities.
	ItemCount(operatorID string) int
}

type cartService struct {
	products repository.ProductRepository

	mu    sync.Mutex
	carts map[string][]CartLine
}

func NewCartService(products repository.ProductRepository) CartService {
	return &cartService{
		products: products,
		carts:    make(map[string][]CartLine),
	}
}

func (s *cartService) Add(ctx context.Context, operatorID, productID string) error {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if p.IsExpired(time.Now()) {
		return fmt.Errorf("%s: %w", p.Name, ErrExpiredProduct)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[operatorID]
	for i := range lines {
		if lines[i].ProductID == productID {
			if err := reservable(p, lines[i].Quantity+1); err != nil {
				return err
			}
			lines[i].Quantity++
			return nil
		}
	}

	if err := reservable(p, 1); err != nil {
		return err
	}
	s.carts[operatorID] = append(lines, CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  1,
	})
	return nil
}

func (s *cartService) UpdateQuantity(ctx context.Context, operatorID, productID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[operatorID]
	for i := range lines {
		if lines[i].ProductID == productID {
			if err := reservable(p, quantity); err != nil {
				return err
			}
			lines[i].Quantity = quantity
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *cartService) Remove(operatorID, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[operatorID]
	for i := range lines {
		if lines[i].ProductID == productID {
			s.carts[operatorID] = append(lines[:i], lines[i+1:]...)
			return
		}
	}
}

func (s *cartService) Clear(operatorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, operatorID)
}

func (s *cartService) Lines(operatorID string) []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[operatorID]
	out := make([]CartLine, len(lines))
	copy(out, lines)
	return out
}

func (s *cartService) ItemCount(operatorID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, ln := range s.carts[operatorID] {
		count += ln.Quantity
	}
	return count
}
