package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/seanvillas05-art/pos-app1/internal/dto"
	"github.com/seanvillas05-art/pos-app1/internal/model"
	"github.com/seanvillas05-art/pos-app1/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// stubProductRepo is an in-memory ProductRepository for testing.
type stubProductRepo struct {
	products map[string]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*model.Product)}
}

func (r *stubProductRepo) seed(p model.Product) *model.Product {
	cp := p
	r.products[cp.ID] = &cp
	return &cp
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) FindByIDFold(_ context.Context, id string) (*model.Product, error) {
	for _, p := range r.products {
		if strings.EqualFold(p.ID, id) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubProductRepo) FindBySKU(_ context.Context, sku string) (*model.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubProductRepo) Search(_ context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var out []model.Product
	q := strings.ToLower(filter.Query)
	for _, p := range r.products {
		if filter.Category != "" && filter.Category != "all" && p.Category != filter.Category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.ID), q) &&
			!strings.Contains(strings.ToLower(p.SKU), q) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) ListCategories(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var cats []string
	for _, p := range r.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			cats = append(cats, p.Category)
		}
	}
	sort.Strings(cats)
	return cats, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) ExistsID(_ context.Context, id string) (bool, error) {
	_, ok := r.products[id]
	return ok, nil
}

func (r *stubProductRepo) CountByIDPrefix(_ context.Context, prefix string) (int64, error) {
	var n int64
	for id := range r.products {
		if strings.HasPrefix(id, prefix) {
			n++
		}
	}
	return n, nil
}

func (r *stubProductRepo) LowStock(_ context.Context, threshold int) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.Stock <= threshold {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubProductRepo) ExpiringBefore(_ context.Context, from, until time.Time) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.Expiry == nil {
			continue
		}
		e := p.Expiry.Truncate(24 * time.Hour)
		if !e.Before(from) && !e.After(until) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubProductRepo) ExpiredBefore(_ context.Context, today time.Time) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.Expiry != nil && p.Expiry.Truncate(24*time.Hour).Before(today) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubProductRepo) DeductStockTx(_ *gorm.DB, id string, qty int) (int64, error) {
	p, ok := r.products[id]
	if !ok || p.Stock < qty {
		return 0, nil
	}
	p.Stock -= qty
	return 1, nil
}

func (r *stubProductRepo) AddStockTx(_ *gorm.DB, id string, qty int) error {
	p, ok := r.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Stock += qty
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// stubReceiptRepo keeps committed receipts in insertion order.
type stubReceiptRepo struct {
	receipts []*model.Receipt
}

func (r *stubReceiptRepo) CreateTx(_ *gorm.DB, receipt *model.Receipt) error {
	r.receipts = append(r.receipts, receipt)
	return nil
}

func (r *stubReceiptRepo) FindByID(_ context.Context, id string) (*model.Receipt, error) {
	for _, receipt := range r.receipts {
		if receipt.ID == id {
			return receipt, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubReceiptRepo) Latest(_ context.Context) (*model.Receipt, error) {
	if len(r.receipts) == 0 {
		return nil, repository.ErrNotFound
	}
	return r.receipts[len(r.receipts)-1], nil
}

var _ repository.ReceiptRepository = (*stubReceiptRepo)(nil)

// stubMovementRepo captures stock movement rows for assertion.
type stubMovementRepo struct {
	movements []model.StockMovement
}

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) Create(_ context.Context, m *model.StockMovement) error {
	return r.CreateTx(nil, m)
}

func (r *stubMovementRepo) ListByProduct(_ context.Context, productID string, limit int) ([]model.StockMovement, error) {
	if limit < 1 {
		limit = 50
	}
	var out []model.StockMovement
	for i := len(r.movements) - 1; i >= 0 && len(out) < limit; i-- {
		if r.movements[i].ProductID == productID {
			out = append(out, r.movements[i])
		}
	}
	return out, nil
}

var _ repository.StockMovementRepository = (*stubMovementRepo)(nil)

// stubSettingsRepo is an in-memory key-value store.
type stubSettingsRepo struct {
	values map[string]string
}

func newStubSettingsRepo() *stubSettingsRepo {
	return &stubSettingsRepo{values: make(map[string]string)}
}

func (r *stubSettingsRepo) Load(_ context.Context, key string) (string, error) {
	v, ok := r.values[key]
	if !ok {
		return "", repository.ErrNotFound
	}
	return v, nil
}

func (r *stubSettingsRepo) Save(_ context.Context, key, value string) error {
	r.values[key] = value
	return nil
}

var _ repository.SettingsRepository = (*stubSettingsRepo)(nil)

// stubUserRepo backs auth tests.
type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username && u.Active {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

// seedProduct is shorthand for the common test fixture shape.
func seedProduct(repo *stubProductRepo, id, name, category string, price int64, stock int, expiry *time.Time) *model.Product {
	return repo.seed(model.Product{
		ID:       id,
		SKU:      id,
		Name:     name,
		Category: category,
		Price:    decimal.NewFromInt(price),
		Stock:    stock,
		Expiry:   expiry,
	})
}

func daysFromNow(days int) *time.Time {
	t := time.Now().AddDate(0, 0, days)
	return &t
}
