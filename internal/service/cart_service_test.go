package service

import (
	"context"
	"testing"

	"github.com/seanvillas05-art/pos-app1/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const operator = "op-1"

func TestCartAdd_NewLineAndIncrement(t *testing.T) {
	repo := newStubProductRepo()
	seedProduct(repo, "GRC-002", "Cooking Oil 1L", "Grocery", 120, 30, nil)
	cart := NewCartService(repo)
	ctx := context.Background()

	require.NoError(t, cart.Add(ctx, operator, "GRC-002"))
	require.NoError(t, cart.Add(ctx, operator, "GRC-002"))

	got := cart.Lines(operator)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Quantity)
	assert.Equal(t, "Cooking Oil 1L", got[0].Name)
	assert.True(t, got[0].UnitPrice.Equal(decimal.NewFromInt(120)))
	assert.Equal(t, 2, cart.ItemCount(operator))
}

func TestCartAdd_UnknownProduct(t *testing.T) {
	cart := NewCartService(newStubProductRepo())
	err := cart.Add(context.Background(), operator, "NOPE-001")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCartAdd_ExpiredProductRejected(t *testing.T) {
	repo := newStubProductRepo()
	seedProduct(repo, "DRY-001", "Fresh Milk 1L", "Dairy", 95, 10, daysFromNow(-2))
	cart := NewCartService(repo)

	err := cart.Add(context.Background(), operator, "DRY-001")
	assert.ErrorIs(t, err, ErrExpiredProduct)
	assert.Empty(t, cart.Lines(operator))
}

func TestCartAdd_ExpiringTodayStillSellable(t *testing.T) {
	repo := newStubProductRepo()
	seedProduct(repo, "BKD-001", "White Bread Loaf", "Bakery", 55, 5, daysFromNow(0))
	cart := NewCartService(repo)

	assert.NoError(t, cart.Add(context.Background(), operator, "BKD-001"))
}

func TestCartAdd_OutOfStockRejected(t *testing.T) {
	repo := newStubProductRepo()
	seedProduct(repo, "GRC-001", "Rice 5kg", "Grocery", 250, 0, nil)
	cart := NewCartService(repo)

	err := cart.Add(context.Background(), operator, "GRC-001")
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Empty(t, cart.Lines(operator))
}

func TestCartAdd_CannotExceedStock(t *testing.T) {
	repo := newStubProductRepo()
	seedProduct(repo, "BKD-002", "Banana Muffin", "Bakery", 35, 2, nil)
	cart := NewCartService(repo)
	ctx := context.Background()

	require.NoError(t, cart.Add(ctx, operator, "BKD-002"))
	require.NoError(t, cart.Add(ctx, operator, "BKD-002"))
	err := cart.Add(ctx, operator, "BKD-002")
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 2, cart.Lines(operator)[0].Quantity)
}

func TestCartUpdateQuantity_StockAware(t *testing.T) {
	repo := newStubProductRepo()
	seedProduct(repo, "HHD-002", "Laundry Powder 1kg", "Household", 110, 3, nil)
	cart := NewCartService(repo)
	ctx := context.Background()
	require.NoError(t, cart.Add(ctx, operator, "HHD-002"))

	// Beyond live stock: rejected, prior quantity preserved
	err := cart.UpdateQuantity(ctx, operator, "HHD-002", 5)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 1, cart.Lines(operator)[0].Quantity)

	require.NoError(t, cart.UpdateQuantity(ctx, operator, "HHD-002", 3))
	assert.Equal(t, 3, cart.Lines(operator)[0].Quantity)

	// Zero or negative clamps to one
	require.NoError(t, cart.UpdateQuantity(ctx, operator, "HHD-002", 0))
	assert.Equal(t, 1, cart.Lines(operator)[0].Quantity)
}

func TestCartUpdateQuantity_MissingLine(t *testing.T) {
	repo := newStubProductRepo()
	seedProduct(repo, "GRC-003", "Sugar 1kg", "Grocery", 65, 10, nil)
	cart := NewCartService(repo)

	err := cart.UpdateQuantity(context.Background(), operator, "GRC-003", 2)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCartPriceDenormalizedAtAddTime(t *testing.T) {
	repo := newStubProductRepo()
	p := seedProduct(repo, "BEV-002", "Cola 1.5L", "Beverage", 75, 20, nil)
	cart := NewCartService(repo)
	ctx := context.Background()
	require.NoError(t, cart.Add(ctx, operator, "BEV-002"))

	// Admin price edit after the item is in the cart
	p.Price = decimal.NewFromInt(90)
	require.NoError(t, repo.Update(ctx, p))

	assert.True(t, cart.Lines(operator)[0].UnitPrice.Equal(decimal.NewFromInt(75)))
}

func TestCartRemoveAndClear(t *testing.T) {
	repo := newStubProductRepo()
	seedProduct(repo, "GRC-001", "Rice 5kg", "Grocery", 250, 10, nil)
	seedProduct(repo, "GRC-003", "Sugar 1kg", "Grocery", 65, 10, nil)
	cart := NewCartService(repo)
	ctx := context.Background()
	require.NoError(t, cart.Add(ctx, operator, "GRC-001"))
	require.NoError(t, cart.Add(ctx, operator, "GRC-003"))

	cart.Remove(operator, "GRC-001")
	got := cart.Lines(operator)
	require.Len(t, got, 1)
	assert.Equal(t, "GRC-003", got[0].ProductID)

	// Removing an absent line is a no-op
	cart.Remove(operator, "GRC-001")
	assert.Len(t, cart.Lines(operator), 1)

	cart.Clear(operator)
	assert.Empty(t, cart.Lines(operator))
	assert.Equal(t, 0, cart.ItemCount(operator))
}

func TestCartsAreIsolatedPerOperator(t *testing.T) {
	repo := newStubProductRepo()
	seedProduct(repo, "GRC-001", "Rice 5kg", "Grocery", 250, 10, nil)
	cart := NewCartService(repo)
	ctx := context.Background()

	require.NoError(t, cart.Add(ctx, "op-a", "GRC-001"))
	assert.Empty(t, cart.Lines("op-b"))
	cart.Clear("op-b")
	assert.Len(t, cart.Lines("op-a"), 1)
}
