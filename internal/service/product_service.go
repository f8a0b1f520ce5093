package service

import (
	"context"
	"errors"
	"time"

	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/dto"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/ledger"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/model"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductService defines the business logic contract for the catalog.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	GetBySKU(ctx context.Context, sku string) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest) (*dto.ProductResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Movements(ctx context.Context, id uuid.UUID, limit int) ([]model.StockMovement, error)
}

type productService struct {
	repo         repository.ProductRepository
	movementRepo repository.StockMovementRepository
	reports      ReportService
}

func NewProductService(
	repo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	reports ReportService,
) ProductService {
	return &productService{repo: repo, movementRepo: movementRepo, reports: reports}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if existing, err := s.repo.FindBySKU(ctx, req.SKU); err == nil && existing != nil {
		return nil, errors.New("SKU sudah terdaftar")
	}

	p := &model.Product{
		SKU:       req.SKU,
		Name:      req.Name,
		Category:  req.Category,
		Stock:     req.Stock,
		BuyPrice:  req.BuyPrice,
		SellPrice: req.SellPrice,
		Active:    true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	if s.reports != nil {
		s.reports.InvalidateSummary(ctx)
	}
	return productToResponse(p), nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("produk tidak ditemukan")
	}
	return productToResponse(p), nil
}

func (s *productService) GetBySKU(ctx context.Context, sku string) (*dto.ProductResponse, error) {
	p, err := s.repo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, errors.New("produk tidak ditemukan")
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, *productToResponse(&products[i]))
	}
	return &dto.ProductListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// Update edits the LIVE catalog values. Historical transactions carry their
// own price/cost snapshots, so past ledger and profit figures do not move.
// Inventory valuation does, since it is always stock × current cost.
func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("produk tidak ditemukan")
	}

	p.Name = req.Name
	p.Category = req.Category
	p.BuyPrice = req.BuyPrice
	p.SellPrice = req.SellPrice

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	if s.reports != nil {
		s.reports.InvalidateSummary(ctx)
	}
	return productToResponse(p), nil
}

// AdjustStock applies a signed correction outside the sale/purchase flows
// (opname, damage, loss) and records it as a movement. Stock delta and
// movement row commit in the same transaction: a stock change without its
// audit row must never be observable.
func (s *productService) AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("produk tidak ditemukan")
	}
	if p.Stock+req.Delta < 0 {
		return nil, errors.New("penyesuaian akan membuat stok negatif")
	}

	stockAfter := p.Stock + req.Delta
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Re-read INSIDE tx so the movement reflects the committed stock
		before, err := s.repo.FindByIDTx(tx, p.ID)
		stockBefore := p.Stock
		if err == nil && before != nil {
			stockBefore = before.Stock
		}
		if stockBefore+req.Delta < 0 {
			return errors.New("penyesuaian akan membuat stok negatif")
		}
		stockAfter = stockBefore + req.Delta

		if err := s.repo.UpdateStockTx(tx, p.ID, req.Delta); err != nil {
			return err
		}

		mov := &model.StockMovement{
			ProductID:   p.ID,
			Type:        "penyesuaian",
			Quantity:    req.Delta,
			StockBefore: stockBefore,
			StockAfter:  stockAfter,
			Reason:      req.Reason,
		}
		return s.movementRepo.CreateTx(tx, mov)
	})
	if txErr != nil {
		return nil, txErr
	}
	p.Stock = stockAfter

	if s.reports != nil {
		s.reports.InvalidateSummary(ctx)
	}
	return productToResponse(p), nil
}

func (s *productService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("produk tidak ditemukan")
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	if s.reports != nil {
		s.reports.InvalidateSummary(ctx)
	}
	return nil
}

func (s *productService) Movements(ctx context.Context, id uuid.UUID, limit int) ([]model.StockMovement, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	return s.movementRepo.ListByProduct(ctx, id, limit)
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID.String(),
		SKU:       p.SKU,
		Name:      p.Name,
		Category:  p.Category,
		Stock:     p.Stock,
		BuyPrice:  p.BuyPrice,
		SellPrice: p.SellPrice,
		LowStock:  p.Stock <= ledger.LowStockThreshold,
		Active:    p.Active,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}
