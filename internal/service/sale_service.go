package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/dto"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/ledger"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/model"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/repository"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleService interface {
	RegisterSale(ctx context.Context, req dto.RegisterSaleRequest) (*dto.TransactionResponse, error)
}

type saleService struct {
	txRepo       repository.TransactionRepository
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	reports      ReportService
	dispatcher   *worker.Dispatcher
}

func NewSaleService(
	txRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	reports ReportService,
	dispatcher *worker.Dispatcher,
) SaleService {
	return &saleService{
		txRepo:       txRepo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		reports:      reports,
		dispatcher:   dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── RegisterSale ──────────────────────────────────────────────────────────────
// Checkout flow:
//   1. Resolve each product; reject inactive products and insufficient stock
//   2. Snapshot name, sell price and unit cost per line; total = Σ(price × qty)
//   3. BEGIN TX: nextval code, create transaction+items, decrement stock,
//      record stock movements
//   4. COMMIT, then invalidate the cached summary
//   5. (async) enqueue low-stock alerts for lines that crossed the threshold

func (s *saleService) RegisterSale(ctx context.Context, req dto.RegisterSaleRequest) (*dto.TransactionResponse, error) {
	if len(req.Items) == 0 {
		return nil, errors.New("penjualan harus memiliki minimal satu item")
	}

	// 1–2. Resolve products and build snapshots (pre-flight, outside TX)
	type resolvedItem struct {
		product  *model.Product
		quantity int
	}

	resolved := make([]resolvedItem, 0, len(req.Items))
	total := decimal.Zero

	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product_id tidak valid: %w", err)
		}
		p, err := s.productRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("produk %s tidak ditemukan", item.ProductID)
		}
		if !p.Active {
			return nil, fmt.Errorf("produk %s nonaktif dan tidak dapat dijual", p.Name)
		}
		if p.Stock < item.Quantity {
			return nil, fmt.Errorf("stok %s tidak mencukupi (tersisa %d)", p.Name, p.Stock)
		}
		total = total.Add(p.SellPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		resolved = append(resolved, resolvedItem{product: p, quantity: item.Quantity})
	}

	description := req.Description
	if description == "" {
		description = "Penjualan POS"
	}

	// 3. ACID transaction
	var trx model.Transaction
	txErr := runTx(ctx, s.txRepo.DB(), func(tx *gorm.DB) error {
		code, err := s.txRepo.NextCode(ctx, tx)
		if err != nil {
			return err
		}

		trx = model.Transaction{
			Code:        code,
			Date:        time.Now(),
			Type:        model.TxSale,
			TotalAmount: total,
			Description: description,
		}
		for _, r := range resolved {
			trx.Items = append(trx.Items, model.TransactionItem{
				ProductID:          r.product.ID,
				ProductName:        r.product.Name,
				Quantity:           r.quantity,
				PriceAtTransaction: r.product.SellPrice,
				CostAtTransaction:  r.product.BuyPrice,
			})
		}

		if err := s.txRepo.Create(ctx, tx, &trx); err != nil {
			return err
		}

		for _, r := range resolved {
			// Re-read stock INSIDE tx for the movement record
			before, err := s.productRepo.FindByIDTx(tx, r.product.ID)
			stockBefore := r.product.Stock
			if err == nil && before != nil {
				stockBefore = before.Stock
			}
			if stockBefore < r.quantity {
				return fmt.Errorf("stok %s tidak mencukupi (tersisa %d)", r.product.Name, stockBefore)
			}

			if err := s.productRepo.UpdateStockTx(tx, r.product.ID, -r.quantity); err != nil {
				return fmt.Errorf("gagal mengurangi stok %s: %w", r.product.Name, err)
			}

			ref := trx.ID
			mov := &model.StockMovement{
				ProductID:   r.product.ID,
				Type:        "penjualan",
				Quantity:    -r.quantity,
				StockBefore: stockBefore,
				StockAfter:  stockBefore - r.quantity,
				Reason:      fmt.Sprintf("Penjualan %s", code),
				RefID:       &ref,
			}
			if err := s.movementRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// 4. Derived reports are stale now
	if s.reports != nil {
		s.reports.InvalidateSummary(ctx)
	}

	// 5. Low-stock alerts (best-effort — fire & forget)
	if s.dispatcher != nil {
		for _, r := range resolved {
			remaining := r.product.Stock - r.quantity
			if remaining > ledger.LowStockThreshold {
				continue
			}
			_ = s.dispatcher.EnqueueLowStockAlert(ctx, worker.LowStockAlertPayload{
				ProductID:   r.product.ID.String(),
				ProductName: r.product.Name,
				SKU:         r.product.SKU,
				Stock:       remaining,
			})
		}
	}

	return txToResponse(&trx), nil
}
