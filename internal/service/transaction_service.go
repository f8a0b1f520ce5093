package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/dto"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/model"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionService interface {
	RegisterPurchase(ctx context.Context, req dto.RegisterPurchaseRequest) (*dto.TransactionResponse, error)
	RegisterExpense(ctx context.Context, req dto.RegisterExpenseRequest) (*dto.TransactionResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.TransactionResponse, error)
	List(ctx context.Context, filter dto.TransactionFilter) (*dto.TransactionListResponse, error)
}

type transactionService struct {
	txRepo       repository.TransactionRepository
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	reports      ReportService
}

func NewTransactionService(
	txRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	reports ReportService,
) TransactionService {
	return &transactionService{
		txRepo:       txRepo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		reports:      reports,
	}
}

// ── RegisterPurchase ──────────────────────────────────────────────────────────
// A stock purchase moves cash into inventory: the product's stock is
// incremented in the same transaction that records the business event.

func (s *transactionService) RegisterPurchase(ctx context.Context, req dto.RegisterPurchaseRequest) (*dto.TransactionResponse, error) {
	if req.TotalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("total pembelian harus lebih besar dari nol")
	}

	pid, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product_id tidak valid: %w", err)
	}
	p, err := s.productRepo.FindByID(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("produk %s tidak ditemukan", req.ProductID)
	}

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Pembelian stok %s (%d unit)", p.Name, req.Quantity)
	}

	var trx model.Transaction
	txErr := runTx(ctx, s.txRepo.DB(), func(tx *gorm.DB) error {
		code, err := s.txRepo.NextCode(ctx, tx)
		if err != nil {
			return err
		}

		trx = model.Transaction{
			Code:        code,
			Date:        time.Now(),
			Type:        model.TxPurchase,
			TotalAmount: req.TotalAmount,
			Description: description,
		}
		if err := s.txRepo.Create(ctx, tx, &trx); err != nil {
			return err
		}

		before, err := s.productRepo.FindByIDTx(tx, pid)
		stockBefore := p.Stock
		if err == nil && before != nil {
			stockBefore = before.Stock
		}

		if err := s.productRepo.UpdateStockTx(tx, pid, req.Quantity); err != nil {
			return fmt.Errorf("gagal menambah stok %s: %w", p.Name, err)
		}

		ref := trx.ID
		mov := &model.StockMovement{
			ProductID:   pid,
			Type:        "pembelian",
			Quantity:    req.Quantity,
			StockBefore: stockBefore,
			StockAfter:  stockBefore + req.Quantity,
			Reason:      fmt.Sprintf("Pembelian %s", code),
			RefID:       &ref,
		}
		return s.movementRepo.CreateTx(tx, mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.reports != nil {
		s.reports.InvalidateSummary(ctx)
	}
	return txToResponse(&trx), nil
}

// ── RegisterExpense ───────────────────────────────────────────────────────────

func (s *transactionService) RegisterExpense(ctx context.Context, req dto.RegisterExpenseRequest) (*dto.TransactionResponse, error) {
	if req.TotalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("total beban harus lebih besar dari nol")
	}

	var trx model.Transaction
	txErr := runTx(ctx, s.txRepo.DB(), func(tx *gorm.DB) error {
		code, err := s.txRepo.NextCode(ctx, tx)
		if err != nil {
			return err
		}
		category := req.Category
		trx = model.Transaction{
			Code:        code,
			Date:        time.Now(),
			Type:        model.TxExpense,
			TotalAmount: req.TotalAmount,
			Description: req.Description,
			Category:    &category,
		}
		return s.txRepo.Create(ctx, tx, &trx)
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.reports != nil {
		s.reports.InvalidateSummary(ctx)
	}
	return txToResponse(&trx), nil
}

func (s *transactionService) GetByID(ctx context.Context, id uuid.UUID) (*dto.TransactionResponse, error) {
	trx, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("transaksi tidak ditemukan")
	}
	return txToResponse(trx), nil
}

func (s *transactionService) List(ctx context.Context, filter dto.TransactionFilter) (*dto.TransactionListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	txs, total, err := s.txRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(txs))
	for i := range txs {
		items = append(items, *txToResponse(&txs[i]))
	}
	return &dto.TransactionListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── Converters ────────────────────────────────────────────────────────────────

func txToResponse(t *model.Transaction) *dto.TransactionResponse {
	items := make([]dto.TransactionItemResponse, 0, len(t.Items))
	for _, item := range t.Items {
		items = append(items, dto.TransactionItemResponse{
			ProductID:          item.ProductID.String(),
			ProductName:        item.ProductName,
			Quantity:           item.Quantity,
			PriceAtTransaction: item.PriceAtTransaction,
			CostAtTransaction:  item.CostAtTransaction,
		})
	}
	return &dto.TransactionResponse{
		ID:          t.ID.String(),
		Code:        t.Code,
		Date:        t.Date.Format(time.RFC3339),
		Type:        t.Type,
		TotalAmount: t.TotalAmount,
		Description: t.Description,
		Category:    t.Category,
		Items:       items,
	}
}
