package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/seanvillas05-art/pos-app1/internal/dto"
	"github.com/seanvillas05-art/pos-app1/internal/model"
	"github.com/seanvillas05-art/pos-app1/internal/repository"
	"github.com/seanvillas05-art/pos-app1/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	PaymentCash = "cash"
	PaymentCard = "card"
)

// Identity is the operator completing the sale, taken from the auth token.
type Identity struct {
	ID       string
	Username string
}

// CheckoutService gates and commits sales. CompleteSale is all-or-nothing:
// either every line's stock is deducted and a receipt exists, or nothing
// changed. Clearing the cart afterwards is the caller's responsibility, which
// keeps the committer inspectable without side effects on operator state.
type CheckoutService interface {
	// CanCheckout reports whether the cart+payment state is sale-eligible.
	CanCheckout(ctx context.Context, lines []CartLine, paymentMethod string, cashGiven, total decimal.Decimal) bool
	CompleteSale(ctx context.Context, cashier Identity, lines []CartLine, paymentMethod, cashGivenRaw string, customerEmail *string) (*dto.ReceiptResponse, error)
	Receipt(ctx context.Context, id string) (*dto.ReceiptResponse, error)
	LatestReceipt(ctx context.Context) (*dto.ReceiptResponse, error)
}

type checkoutService struct {
	products   repository.ProductRepository
	receipts   repository.ReceiptRepository
	movements  repository.StockMovementRepository
	settings   SettingsService
	dispatcher *worker.Dispatcher
}

func NewCheckoutService(
	products repository.ProductRepository,
	receipts repository.ReceiptRepository,
	movements repository.StockMovementRepository,
	settings SettingsService,
	dispatcher *worker.Dispatcher,
) CheckoutService {
	return &checkoutService{
		products:   products,
		receipts:   receipts,
		movements:  movements,
		settings:   settings,
		dispatcher: dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available, or calls
// fn(nil) directly when db is nil (unit test mode with in-memory stubs).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// validate re-checks every precondition against live catalog state. It runs
// at checkout time, not just add time, so admin stock edits made while items
// sat in the cart are caught here.
func (s *checkoutService) validate(ctx context.Context, lines []CartLine, paymentMethod string, cashGiven, total decimal.Decimal) error {
	if len(lines) == 0 {
		return errors.New("cart is empty")
	}
	now := time.Now()
	for _, ln := range lines {
		p, err := s.products.FindByID(ctx, ln.ProductID)
		if err != nil {
			return fmt.Errorf("product %s: %w", ln.ProductID, err)
		}
		if p.IsExpired(now) {
			return fmt.Errorf("%s: %w", p.Name, ErrExpiredProduct)
		}
		if err := reservable(p, ln.Quantity); err != nil {
			return err
		}
	}
	if paymentMethod == PaymentCash && cashGiven.LessThan(total) {
		return fmt.Errorf("cash given %s is less than total %s", cashGiven.StringFixed(2), total.StringFixed(2))
	}
	return nil
}

func (s *checkoutService) CanCheckout(ctx context.Context, lines []CartLine, paymentMethod string, cashGiven, total decimal.Decimal) bool {
	return s.validate(ctx, lines, paymentMethod, cashGiven, total) == nil
}

func (s *checkoutService) CompleteSale(ctx context.Context, cashier Identity, lines []CartLine, paymentMethod, cashGivenRaw string, customerEmail *string) (*dto.ReceiptResponse, error) {
	settings := s.settings.Get(ctx)
	pricing := ComputePricing(lines, settings.DiscountPct, settings.TaxPct)
	cashGiven := ParseCashAmount(cashGivenRaw)

	// Re-run the validator; a failure here performs zero mutation.
	if err := s.validate(ctx, lines, paymentMethod, cashGiven, pricing.Total); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCheckoutNotEligible, err)
	}

	// Capture pre-sale stock for the audit rows. Single-writer model: no
	// other mutation interleaves between this read and the transaction.
	stockBefore := make(map[string]int, len(lines))
	for _, ln := range lines {
		p, err := s.products.FindByID(ctx, ln.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCheckoutNotEligible, err)
		}
		stockBefore[ln.ProductID] = p.Stock
	}

	now := time.Now()
	receipt := &model.Receipt{
		ID:             newReceiptID(now),
		Subtotal:       RoundMoney(pricing.Subtotal),
		DiscountPct:    settings.DiscountPct,
		DiscountAmount: RoundMoney(pricing.DiscountAmount),
		TaxPct:         settings.TaxPct,
		TaxAmount:      RoundMoney(pricing.TaxAmount),
		Total:          RoundMoney(pricing.Total),
		PaymentMethod:  paymentMethod,
		Currency:       settings.Currency,
		CashierID:      cashier.ID,
		CashierName:    cashier.Username,
		CreatedAt:      now,
	}
	if paymentMethod == PaymentCash {
		given := RoundMoney(cashGiven)
		change := RoundMoney(cashGiven.Sub(pricing.Total))
		if change.IsNegative() {
			change = decimal.Zero
		}
		receipt.CashGiven = &given
		receipt.Change = &change
	}
	for _, ln := range lines {
		receipt.Items = append(receipt.Items, model.ReceiptItem{
			ProductID: ln.ProductID,
			Name:      ln.Name,
			UnitPrice: ln.UnitPrice,
			Quantity:  ln.Quantity,
			LineTotal: RoundMoney(ln.UnitPrice.Mul(decimal.NewFromInt(int64(ln.Quantity)))),
		})
	}

	txErr := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		for _, ln := range lines {
			// Conditional decrement: the WHERE guard refuses to go below
			// zero. Validation just confirmed quantity <= stock, so zero
			// affected rows means a concurrent mutation and the whole
			// transaction rolls back.
			affected, err := s.products.DeductStockTx(tx, ln.ProductID, ln.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return fmt.Errorf("%w: stock for %s changed during checkout", ErrInvalidState, ln.ProductID)
			}

			before := stockBefore[ln.ProductID]
			receiptRef := receipt.ID
			if err := s.movements.CreateTx(tx, &model.StockMovement{
				ProductID:   ln.ProductID,
				Type:        "sale",
				Quantity:    -ln.Quantity,
				StockBefore: before,
				StockAfter:  before - ln.Quantity,
				Reason:      fmt.Sprintf("Sale %s", receipt.ID),
				ReceiptID:   &receiptRef,
			}); err != nil {
				return err
			}
		}
		return s.receipts.CreateTx(tx, receipt)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Hand the receipt to the rendering collaborator. Best effort: the
	// committed sale does not depend on it.
	if s.dispatcher != nil {
		payload := worker.ReceiptJobPayload{ReceiptID: receipt.ID}
		if customerEmail != nil {
			payload.CustomerEmail = *customerEmail
		}
		if err := s.dispatcher.EnqueueReceipt(ctx, payload); err != nil {
			log.Warn().Err(err).Str("receipt_id", receipt.ID).Msg("failed to enqueue receipt job")
		}
	}

	return receiptToResponse(receipt), nil
}

func (s *checkoutService) Receipt(ctx context.Context, id string) (*dto.ReceiptResponse, error) {
	r, err := s.receipts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return receiptToResponse(r), nil
}

func (s *checkoutService) LatestReceipt(ctx context.Context) (*dto.ReceiptResponse, error) {
	r, err := s.receipts.Latest(ctx)
	if err != nil {
		return nil, err
	}
	return receiptToResponse(r), nil
}

// newReceiptID builds a time-based transaction identifier with a short
// random suffix guarding against same-second sales.
func newReceiptID(now time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("TXN-%s-%s", now.Format("20060102-150405"), suffix)
}

func receiptToResponse(r *model.Receipt) *dto.ReceiptResponse {
	items := make([]dto.ReceiptItemResponse, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, dto.ReceiptItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal,
		})
	}
	return &dto.ReceiptResponse{
		ID:             r.ID,
		Timestamp:      r.CreatedAt.Format("2006-01-02 15:04:05"),
		Items:          items,
		Subtotal:       r.Subtotal,
		DiscountPct:    r.DiscountPct,
		DiscountAmount: r.DiscountAmount,
		TaxPct:         r.TaxPct,
		TaxAmount:      r.TaxAmount,
		Total:          r.Total,
		PaymentMethod:  r.PaymentMethod,
		CashGiven:      r.CashGiven,
		Change:         r.Change,
		Currency:       r.Currency,
		Cashier:        r.CashierName,
	}
}
