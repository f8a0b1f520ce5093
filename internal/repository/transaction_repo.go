package repository

import (
	"context"
	"fmt"

	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/dto"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, t *model.Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
	List(ctx context.Context, filter dto.TransactionFilter) ([]model.Transaction, int64, error)
	// ListAll returns the full history with items, oldest first — the input
	// to ledger derivation and summary aggregation.
	ListAll(ctx context.Context) ([]model.Transaction, error)
	ListRecent(ctx context.Context, limit int) ([]model.Transaction, error)
	NextCode(ctx context.Context, tx *gorm.DB) (string, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type transactionRepo struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) TransactionRepository { return &transactionRepo{db: db} }

func (r *transactionRepo) DB() *gorm.DB { return r.db }

func (r *transactionRepo) Create(ctx context.Context, tx *gorm.DB, t *model.Transaction) error {
	return tx.WithContext(ctx).Create(t).Error
}

func (r *transactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	var t model.Transaction
	err := r.db.WithContext(ctx).Preload("Items").First(&t, id).Error
	return &t, err
}

func (r *transactionRepo) List(ctx context.Context, filter dto.TransactionFilter) ([]model.Transaction, int64, error) {
	var txs []model.Transaction
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Transaction{})

	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Date != "" {
		q = q.Where("DATE(date) = ?", filter.Date)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items").
		Order("date DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&txs).Error

	return txs, total, err
}

func (r *transactionRepo) ListAll(ctx context.Context) ([]model.Transaction, error) {
	var txs []model.Transaction
	err := r.db.WithContext(ctx).Preload("Items").Order("date ASC").Find(&txs).Error
	return txs, err
}

func (r *transactionRepo) ListRecent(ctx context.Context, limit int) ([]model.Transaction, error) {
	var txs []model.Transaction
	err := r.db.WithContext(ctx).Preload("Items").Order("date DESC").Limit(limit).Find(&txs).Error
	return txs, err
}

func (r *transactionRepo) NextCode(ctx context.Context, tx *gorm.DB) (string, error) {
	// Uses a PostgreSQL sequence for atomic code generation.
	var num int
	if err := tx.WithContext(ctx).Raw("SELECT nextval('transactions_code_seq')").Scan(&num).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("TRX-%d", num), nil
}
