package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

type SaleItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
}

// RegisterSaleRequest is the checkout payload. Prices are NOT accepted from
// the client — the service snapshots the catalog's current sell price and
// cost per line.
type RegisterSaleRequest struct {
	Items       []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	Description string            `json:"description"`
}

type RegisterPurchaseRequest struct {
	ProductID   string          `json:"product_id"   validate:"required,uuid"`
	Quantity    int             `json:"quantity"     validate:"required,min=1"`
	TotalAmount decimal.Decimal `json:"total_amount" validate:"required"`
	Description string          `json:"description"`
}

type RegisterExpenseRequest struct {
	TotalAmount decimal.Decimal `json:"total_amount" validate:"required"`
	Category    string          `json:"category"     validate:"required"`
	Description string          `json:"description"  validate:"required,min=3"`
}

// TransactionFilter is bound from the query string of GET /v1/transactions.
type TransactionFilter struct {
	Type  string `form:"type"  validate:"omitempty,oneof=PENJUALAN PEMBELIAN PENGELUARAN_OP"`
	Date  string `form:"date"` // YYYY-MM-DD; empty = all
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type TransactionItemResponse struct {
	ProductID          string          `json:"product_id"`
	ProductName        string          `json:"product_name"`
	Quantity           int             `json:"quantity"`
	PriceAtTransaction decimal.Decimal `json:"price_at_transaction"`
	CostAtTransaction  decimal.Decimal `json:"cost_at_transaction"`
}

type TransactionResponse struct {
	ID          string                    `json:"id"`
	Code        string                    `json:"code"`
	Date        string                    `json:"date"`
	Type        string                    `json:"type"`
	TotalAmount decimal.Decimal           `json:"total_amount"`
	Description string                    `json:"description"`
	Category    *string                   `json:"category,omitempty"`
	Items       []TransactionItemResponse `json:"items,omitempty"`
}

type TransactionListResponse struct {
	Data  []TransactionResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}
