package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/seanvillas05-art/pos-app1/internal/dto"
	"github.com/seanvillas05-art/pos-app1/internal/model"
	"github.com/seanvillas05-art/pos-app1/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const expiryDateLayout = "2006-01-02"

// CatalogService is the business logic contract for the product catalog:
// lookup and search for the sale path, admin mutations, and the derived
// low-stock / expiry views.
type CatalogService interface {
	Get(ctx context.Context, id string) (*dto.ProductResponse, error)
	// Resolve maps a scanner token to a product: exact SKU match first,
	// then case-insensitive id match.
	Resolve(ctx context.Context, token string) (*model.Product, error)
	Search(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	// Categories returns the distinct categories present, prefixed with the
	// "all" sentinel.
	Categories(ctx context.Context) ([]string, error)
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Remove(ctx context.Context, id string) error
	// AdjustStock applies a signed delta. A delta that would drive stock
	// negative fails with ErrInvalidState and changes nothing.
	AdjustStock(ctx context.Context, id string, delta int, reason string) (*dto.ProductResponse, error)
	Movements(ctx context.Context, id string, limit int) ([]dto.StockMovementResponse, error)

	LowStock(ctx context.Context, threshold int) ([]dto.StockAlertResponse, error)
	ExpiringSoon(ctx context.Context, withinDays int) ([]dto.StockAlertResponse, error)
	Expired(ctx context.Context) ([]dto.StockAlertResponse, error)
}

type catalogService struct {
	repo      repository.ProductRepository
	movements repository.StockMovementRepository
	rdb       *redis.Client
}

func NewCatalogService(repo repository.ProductRepository, movements repository.StockMovementRepository, rdb *redis.Client) CatalogService {
	return &catalogService{repo: repo, movements: movements, rdb: rdb}
}

func (s *catalogService) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *catalogService) Resolve(ctx context.Context, token string) (*model.Product, error) {
	token = strings.TrimSpace(token)
	if p, err := s.repo.FindBySKU(ctx, token); err == nil {
		return p, nil
	}
	return s.repo.FindByIDFold(ctx, token)
}

func (s *catalogService) Search(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	products, total, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		data = append(data, *productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *catalogService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return append([]string{"all"}, categories...), nil
}

func (s *catalogService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrInvalidState)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidState)
	}

	expiry, err := parseExpiry(req.Expiry)
	if err != nil {
		return nil, err
	}

	id := strings.ToUpper(strings.TrimSpace(req.ID))
	if id == "" {
		id, err = s.nextID(ctx, req.Category)
		if err != nil {
			return nil, err
		}
	} else if exists, err := s.repo.ExistsID(ctx, id); err != nil {
		return nil, err
	} else if exists {
		return nil, fmt.Errorf("%w: product id %s already exists", ErrInvalidState, id)
	}

	sku := strings.TrimSpace(req.SKU)
	if sku == "" {
		sku = id
	}

	p := &model.Product{
		ID:       id,
		SKU:      sku,
		Name:     name,
		Category: strings.TrimSpace(req.Category),
		Price:    req.Price,
		Stock:    req.Stock,
		Expiry:   expiry,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *catalogService) Update(ctx context.Context, id string, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: product name is required", ErrInvalidState)
		}
		p.Name = name
	}
	if req.Category != nil {
		p.Category = strings.TrimSpace(*req.Category)
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidState)
		}
		p.Price = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, fmt.Errorf("%w: stock must not be negative", ErrInvalidState)
		}
		p.Stock = *req.Stock
	}
	if req.Expiry != nil {
		expiry, err := parseExpiry(req.Expiry)
		if err != nil {
			return nil, err
		}
		p.Expiry = expiry
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidatePriceCache(ctx, p)
	return productToResponse(p), nil
}

func (s *catalogService) Remove(ctx context.Context, id string) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidatePriceCache(ctx, p)
	return nil
}

func (s *catalogService) AdjustStock(ctx context.Context, id string, delta int, reason string) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Stock+delta < 0 {
		return nil, fmt.Errorf("%w: stock would become negative (%d%+d)", ErrInvalidState, p.Stock, delta)
	}

	before := p.Stock
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if delta < 0 {
			affected, err := s.repo.DeductStockTx(tx, id, -delta)
			if err != nil {
				return err
			}
			if affected == 0 {
				return fmt.Errorf("%w: stock changed concurrently", ErrInvalidState)
			}
		} else if err := s.repo.AddStockTx(tx, id, delta); err != nil {
			return err
		}
		return s.movements.CreateTx(tx, &model.StockMovement{
			ProductID:   id,
			Type:        "adjustment",
			Quantity:    delta,
			StockBefore: before,
			StockAfter:  before + delta,
			Reason:      reason,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	p.Stock = before + delta
	s.invalidatePriceCache(ctx, p)
	return productToResponse(p), nil
}

func (s *catalogService) Movements(ctx context.Context, id string, limit int) ([]dto.StockMovementResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	movements, err := s.movements.ListByProduct(ctx, id, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.StockMovementResponse{
			ID:          m.ID.String(),
			ProductID:   m.ProductID,
			Type:        m.Type,
			Quantity:    m.Quantity,
			StockBefore: m.StockBefore,
			StockAfter:  m.StockAfter,
			Reason:      m.Reason,
			ReceiptID:   m.ReceiptID,
			CreatedAt:   m.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

func (s *catalogService) LowStock(ctx context.Context, threshold int) ([]dto.StockAlertResponse, error) {
	products, err := s.repo.LowStock(ctx, threshold)
	if err != nil {
		return nil, err
	}
	return productsToAlerts(products), nil
}

func (s *catalogService) ExpiringSoon(ctx context.Context, withinDays int) ([]dto.StockAlertResponse, error) {
	today := time.Now().Truncate(24 * time.Hour)
	until := today.AddDate(0, 0, withinDays)
	products, err := s.repo.ExpiringBefore(ctx, today, until)
	if err != nil {
		return nil, err
	}
	return productsToAlerts(products), nil
}

func (s *catalogService) Expired(ctx context.Context) ([]dto.StockAlertResponse, error) {
	today := time.Now().Truncate(24 * time.Hour)
	products, err := s.repo.ExpiredBefore(ctx, today)
	if err != nil {
		return nil, err
	}
	return productsToAlerts(products), nil
}

// nextID builds a catalog id from the category: a 3-letter uppercase prefix
// plus a zero-padded sequence, incrementing past existing collisions
// (e.g. Groceries → GRC-001, GRC-002, …).
func (s *catalogService) nextID(ctx context.Context, category string) (string, error) {
	prefix := categoryPrefix(category)
	count, err := s.repo.CountByIDPrefix(ctx, prefix+"-")
	if err != nil {
		return "", err
	}
	seq := count + 1
	for {
		id := fmt.Sprintf("%s-%03d", prefix, seq)
		exists, err := s.repo.ExistsID(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
		seq++
	}
}

// categoryPrefix keeps the first three letters of the category, uppercased,
// padded with 'X' for very short names.
func categoryPrefix(category string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(category) {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
			if b.Len() >= 3 {
				break
			}
		}
	}
	for b.Len() < 3 {
		b.WriteByte('X')
	}
	return b.String()
}

// invalidatePriceCache drops the public price-check cache entries for a
// product after admin edits. Best effort: a stale entry only survives
// until its TTL.
func (s *catalogService) invalidatePriceCache(ctx context.Context, p *model.Product) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, "price:"+p.SKU, "price:"+strings.ToUpper(p.ID)).Err(); err != nil {
		log.Warn().Err(err).Str("product_id", p.ID).Msg("price cache invalidation failed")
	}
}

func parseExpiry(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := time.Parse(expiryDateLayout, strings.TrimSpace(*raw))
	if err != nil {
		return nil, fmt.Errorf("%w: expiry must be YYYY-MM-DD", ErrInvalidState)
	}
	return &t, nil
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	var expiry *string
	if p.Expiry != nil {
		v := p.Expiry.Format(expiryDateLayout)
		expiry = &v
	}
	return &dto.ProductResponse{
		ID:       p.ID,
		SKU:      p.SKU,
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price,
		Stock:    p.Stock,
		Expiry:   expiry,
	}
}

func productsToAlerts(products []model.Product) []dto.StockAlertResponse {
	now := time.Now()
	out := make([]dto.StockAlertResponse, 0, len(products))
	for i := range products {
		p := &products[i]
		alert := dto.StockAlertResponse{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category,
			Stock:    p.Stock,
		}
		if p.Expiry != nil {
			v := p.Expiry.Format(expiryDateLayout)
			alert.Expiry = &v
			if days, ok := p.DaysUntilExpiry(now); ok {
				alert.DaysUntilExpiry = &days
			}
		}
		out = append(out, alert)
	}
	return out
}
