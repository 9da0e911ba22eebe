package repository

import (
	"context"
	"errors"

	"github.com/seanvillas05-art/pos-app1/internal/model"

	"gorm.io/gorm"
)

// ReceiptRepository persists completed sale snapshots. Receipts are
// insert-only; there is no update path.
type ReceiptRepository interface {
	// CreateTx is called inside the checkout transaction so the receipt and
	// the stock decrements commit or roll back together.
	CreateTx(tx *gorm.DB, r *model.Receipt) error
	FindByID(ctx context.Context, id string) (*model.Receipt, error)
	Latest(ctx context.Context) (*model.Receipt, error)
}

type receiptRepo struct{ db *gorm.DB }

func NewReceiptRepository(db *gorm.DB) ReceiptRepository { return &receiptRepo{db: db} }

func (r *receiptRepo) CreateTx(tx *gorm.DB, receipt *model.Receipt) error {
	return tx.Create(receipt).Error
}

func (r *receiptRepo) FindByID(ctx context.Context, id string) (*model.Receipt, error) {
	var receipt model.Receipt
	err := r.db.WithContext(ctx).Preload("Items").First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &receipt, err
}

func (r *receiptRepo) Latest(ctx context.Context) (*model.Receipt, error) {
	var receipt model.Receipt
	err := r.db.WithContext(ctx).Preload("Items").
		Order("created_at DESC").First(&receipt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &receipt, err
}
