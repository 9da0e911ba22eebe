package service

import (
	"context"
	"fmt"

	"github.com/seanvillas05-art/pos-app1/internal/dto"
	"github.com/seanvillas05-art/pos-app1/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	keyTaxPct      = "tax_pct"
	keyDiscountPct = "discount_pct"
	keyCurrency    = "currency"

	defaultCurrency = "$"
)

// SettingsService reads and writes operator-tunable settings through the
// key-value persistence port. Missing keys, unparseable values and load
// failures all fall back to defaults — settings I/O never propagates errors
// into the sale path.
type SettingsService interface {
	Get(ctx context.Context) dto.SettingsResponse
	Update(ctx context.Context, req dto.UpdateSettingsRequest) (dto.SettingsResponse, error)
}

type settingsService struct {
	repo repository.SettingsRepository
}

func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) Get(ctx context.Context) dto.SettingsResponse {
	return dto.SettingsResponse{
		TaxPct:      s.loadPct(ctx, keyTaxPct),
		DiscountPct: s.loadPct(ctx, keyDiscountPct),
		Currency:    s.loadCurrency(ctx),
	}
}

func (s *settingsService) Update(ctx context.Context, req dto.UpdateSettingsRequest) (dto.SettingsResponse, error) {
	if req.TaxPct != nil {
		if err := s.savePct(ctx, keyTaxPct, *req.TaxPct); err != nil {
			return dto.SettingsResponse{}, err
		}
	}
	if req.DiscountPct != nil {
		if err := s.savePct(ctx, keyDiscountPct, *req.DiscountPct); err != nil {
			return dto.SettingsResponse{}, err
		}
	}
	if req.Currency != nil {
		if err := s.repo.Save(ctx, keyCurrency, *req.Currency); err != nil {
			return dto.SettingsResponse{}, err
		}
	}
	return s.Get(ctx), nil
}

func (s *settingsService) savePct(ctx context.Context, key string, pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(oneHundred) {
		return fmt.Errorf("%w: %s must be between 0 and 100", ErrInvalidState, key)
	}
	return s.repo.Save(ctx, key, pct.String())
}

func (s *settingsService) loadPct(ctx context.Context, key string) decimal.Decimal {
	raw, err := s.repo.Load(ctx, key)
	if err != nil {
		return decimal.Zero
	}
	pct, err := decimal.NewFromString(raw)
	if err != nil || pct.IsNegative() {
		log.Warn().Str("key", key).Str("value", raw).Msg("unparseable setting, using zero")
		return decimal.Zero
	}
	return pct
}

func (s *settingsService) loadCurrency(ctx context.Context) string {
	raw, err := s.repo.Load(ctx, keyCurrency)
	if err != nil || raw == "" {
		return defaultCurrency
	}
	return raw
}
