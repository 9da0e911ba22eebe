package service

import (
	"context"
	"testing"

	"github.com/seanvillas05-art/pos-app1/internal/dto"
	"github.com/seanvillas05-art/pos-app1/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(repo *stubProductRepo) (CatalogService, *stubMovementRepo) {
	movements := &stubMovementRepo{}
	return NewCatalogService(repo, movements, nil), movements
}

func strPtr(s string) *string { return &s }

func TestCatalogCreate_GeneratesSequentialID(t *testing.T) {
	repo := newStubProductRepo()
	seedProduct(repo, "GRC-001", "Rice 5kg", "Grocery", 250, 40, nil)
	svc, _ := newCatalog(repo)

	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:     "Cooking Oil 1L",
		Category: "Grocery",
		Price:    decimal.NewFromInt(120),
		Stock:    30,
	})
	require.NoError(t, err)
	assert.Equal(t, "GRC-002", resp.ID)
	assert.Equal(t, "GRC-002", resp.SKU, "sku defaults to the generated id")
}

func TestCatalogCreate_SkipsIDCollisions(t *testing.T) {
	repo := newStubProductRepo()
	// Two GRC products but the count-derived candidate GRC-003 is taken
	seedProduct(repo, "GRC-001", "Rice 5kg", "Grocery", 250, 40, nil)
	seedProduct(repo, "GRC-003", "Flour 1kg", "Grocery", 48, 20, nil)
	svc, _ := newCatalog(repo)

	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:     "Sugar 1kg",
		Category: "Grocery",
		Price:    decimal.NewFromInt(65),
	})
	require.NoError(t, err)
	assert.Equal(t, "GRC-004", resp.ID)
}

func TestCatalogCreate_ShortCategoryPadded(t *testing.T) {
	repo := newStubProductRepo()
	svc, _ := newCatalog(repo)

	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name:     "Mystery Item",
		Category: "Go",
		Price:    decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.Equal(t, "GOX-001", resp.ID)
}

func TestCatalogCreate_ExplicitIDCollision(t *testing.T) {
	repo := newStubProductRepo()
	seedProduct(repo, "GRC-001", "Rice 5kg", "Grocery", 250, 40, nil)
	svc, _ := newCatalog(repo)

	_, err := svc.Create(context.Background(), dto.CreateProductRequest{
		ID:       "grc-001",
		Name:     "Duplicate",
		Category: "Grocery",
		Price:    decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCatalogCreate_Validation(t *testing.T) {
	svc, _ := newCatalog(newStubProductRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateProductRequest{Name: "   ", Category: "Grocery"})
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = svc.Create(ctx, dto.CreateProductRequest{Name: "X", Category: "Grocery", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = svc.Create(ctx, dto.CreateProductRequest{Name: "X", Category: "Grocery", Expiry: strPtr("31-12-2026")})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCatalogResolve(t *testing.T) {
	repo := newStubProductRepo()
	p := seedProduct(repo, "GRC-002", "Cooking Oil 1L", "Grocery", 120, 30, nil)
	p.SKU = "4800888123456"
	require.NoError(t, repo.Update(context.Background(), p))
	svc, _ := newCatalog(repo)
	ctx := context.Background()

	bySKU, err := svc.Resolve(ctx, "4800888123456")
	require.NoError(t, err)
	assert.Equal(t, "GRC-002", bySKU.ID)

	// ID match is case-insensitive and whitespace-tolerant
	byID, err := svc.Resolve(ctx, "  grc-002 ")
	require.NoError(t, err)
	assert.Equal(t, "GRC-002", byID.ID)

	_, err = svc.Resolve(ctx, "no-such-token")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCatalogSearchAndCategories(t *testing.T) {
	repo := newStubProductRepo()
	seedProduct(repo, "GRC-001", "Rice 5kg", "Grocery", 250, 40, nil)
	seedProduct(repo, "BEV-001", "Orange Juice 1L", "Beverage", 85, 18, nil)
	svc, _ := newCatalog(repo)
	ctx := context.Background()

	all, err := svc.Search(ctx, dto.ProductFilter{Category: "all", Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)

	byQuery, err := svc.Search(ctx, dto.ProductFilter{Query: "juice", Page: 1, Limit: 50})
	require.NoError(t, err)
	require.Len(t, byQuery.Data, 1)
	assert.Equal(t, "BEV-001", byQuery.Data[0].ID)

	cats, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"all", "Beverage", "Grocery"}, cats)
}

func TestCatalogUpdate(t *testing.T) {
	repo := newStubProductRepo()
	seedProduct(repo, "GRC-001", "Rice 5kg", "Grocery", 250, 40, nil)
	svc, _ := newCatalog(repo)
	ctx := context.Background()

	newPrice := decimal.NewFromInt(260)
	resp, err := svc.Update(ctx, "GRC-001", dto.UpdateProductRequest{
		Name:  strPtr("Premium Rice 5kg"),
		Price: &newPrice,
	})
	require.NoError(t, err)
	assert.Equal(t, "Premium Rice 5kg", resp.Name)
	assert.True(t, resp.Price.Equal(newPrice))

	_, err = svc.Update(ctx, "GRC-999", dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCatalogRemove(t *testing.T) {
	repo := newStubProductRepo()
	seedProduct(repo, "GRC-001", "Rice 5kg", "Grocery", 250, 40, nil)
	svc, _ := newCatalog(repo)
	ctx := context.Background()

	require.NoError(t, svc.Remove(ctx, "GRC-001"))
	assert.ErrorIs(t, svc.Remove(ctx, "GRC-001"), repository.ErrNotFound)
}

func TestCatalogAdjustStock(t *testing.T) {
	repo := newStubProductRepo()
	seedProduct(repo, "GRC-001", "Rice 5kg", "Grocery", 250, 10, nil)
	svc, movements := newCatalog(repo)
	ctx := context.Background()

	resp, err := svc.AdjustStock(ctx, "GRC-001", 5, "delivery")
	require.NoError(t, err)
	assert.Equal(t, 15, resp.Stock)

	resp, err = svc.AdjustStock(ctx, "GRC-001", -3, "damaged goods")
	require.NoError(t, err)
	assert.Equal(t, 12, resp.Stock)

	// A delta that would drive stock negative changes nothing
	_, err = svc.AdjustStock(ctx, "GRC-001", -20, "typo")
	assert.ErrorIs(t, err, ErrInvalidState)
	p, _ := repo.FindByID(ctx, "GRC-001")
	assert.Equal(t, 12, p.Stock)

	require.Len(t, movements.movements, 2)
	assert.Equal(t, "adjustment", movements.movements[0].Type)
	assert.Equal(t, 5, movements.movements[0].Quantity)
	assert.Equal(t, -3, movements.movements[1].Quantity)
	assert.Equal(t, 15, movements.movements[1].StockBefore)
	assert.Equal(t, 12, movements.movements[1].StockAfter)
}

func TestCatalogMovements(t *testing.T) {
	repo := newStubProductRepo()
	seedProduct(repo, "GRC-001", "Rice 5kg", "Grocery", 250, 10, nil)
	svc, _ := newCatalog(repo)
	ctx := context.Background()

	_, err := svc.AdjustStock(ctx, "GRC-001", 2, "restock")
	require.NoError(t, err)

	rows, err := svc.Movements(ctx, "GRC-001", 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "restock", rows[0].Reason)

	_, err = svc.Movements(ctx, "GRC-999", 10)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCatalogAlertViews(t *testing.T) {
	repo := newStubProductRepo()
	seedProduct(repo, "HHD-002", "Laundry Powder 1kg", "Household", 110, 4, nil)
	seedProduct(repo, "GRC-001", "Rice 5kg", "Grocery", 250, 40, nil)
	seedProduct(repo, "DRY-001", "Fresh Milk 1L", "Dairy", 95, 24, daysFromNow(5))
	seedProduct(repo, "BKD-001", "White Bread Loaf", "Bakery", 55, 15, daysFromNow(-2))
	svc, _ := newCatalog(repo)
	ctx := context.Background()

	low, err := svc.LowStock(ctx, 5)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "HHD-002", low[0].ID)

	expiring, err := svc.ExpiringSoon(ctx, 7)
	require.NoError(t, err)
	require.Len(t, expiring, 1)
	assert.Equal(t, "DRY-001", expiring[0].ID)
	require.NotNil(t, expiring[0].DaysUntilExpiry)
	assert.Equal(t, 5, *expiring[0].DaysUntilExpiry)

	expired, err := svc.Expired(ctx)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, "BKD-001", expired[0].ID)
}
