package dto

import "github.com/shopspring/decimal"

// ProductFilter is bound from the query string of GET /v1/products.
type ProductFilter struct {
	Name     string `form:"name"`
	Category string `form:"category"`
	SKU      string `form:"sku"`
	Active   string `form:"active"` // "false" = nonaktif, "all" = semua, default aktif
	LowStock bool   `form:"low_stock"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CreateProductRequest struct {
	SKU       string          `json:"sku"        validate:"required"`
	Name      string          `json:"name"       validate:"required"`
	Category  string          `json:"category"   validate:"required"`
	Stock     int             `json:"stock"      validate:"min=0"`
	BuyPrice  decimal.Decimal `json:"buy_price"  validate:"min=0"`
	SellPrice decimal.Decimal `json:"sell_price" validate:"min=0"`
}

type UpdateProductRequest struct {
	Name      string          `json:"name"       validate:"required"`
	Category  string          `json:"category"   validate:"required"`
	BuyPrice  decimal.Decimal `json:"buy_price"  validate:"min=0"`
	SellPrice decimal.Decimal `json:"sell_price" validate:"min=0"`
}

// AdjustStockRequest applies a signed delta with a mandatory reason,
// recorded as a stock movement.
type AdjustStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Reason string `json:"reason" validate:"required,min=3"`
}

type ProductResponse struct {
	ID        string          `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Stock     int             `json:"stock"`
	BuyPrice  decimal.Decimal `json:"buy_price"`
	SellPrice decimal.Decimal `json:"sell_price"`
	LowStock  bool            `json:"low_stock"`
	Active    bool            `json:"active"`
	CreatedAt string          `json:"created_at"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
