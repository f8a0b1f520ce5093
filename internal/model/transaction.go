package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction types — the wire values match the original bookkeeping data
// and must not be renamed.
const (
	TxSale     = "PENJUALAN"
	TxPurchase = "PEMBELIAN"
	TxExpense  = "PENGELUARAN_OP"
)

// Transaction is an immutable business event: a sale, a stock purchase, or an
// operating expense. Once created it is never updated — the ledger and the
// financial summary are derived from it on demand.
type Transaction struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// Code is the human-facing reference (TRX-1001, …) from a DB sequence.
	Code        string          `gorm:"uniqueIndex;not null"`
	Date        time.Time       `gorm:"index;not null"`
	Type        string          `gorm:"type:varchar(20);index;not null"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Description string          `gorm:"not null"`
	// Category classifies expenses (Utilitas, Sewa, …); nil for other types.
	Category  *string `gorm:"type:varchar(50)"`
	CreatedAt time.Time

	// Items are present for sales only.
	Items []TransactionItem `gorm:"foreignKey:TransactionID"`
}

// TransactionItem is one line of a sale. ProductName, PriceAtTransaction and
// CostAtTransaction are copies taken at checkout time: editing the product
// later must never change historical ledger or summary figures.
type TransactionItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TransactionID uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null"`
	ProductName   string    `gorm:"not null"`
	Quantity      int       `gorm:"not null"`
	// Unit sell price and unit cost frozen at transaction time.
	PriceAtTransaction decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CostAtTransaction  decimal.Decimal `gorm:"type:decimal(14,2);not null"`
}

// CostTotal returns Σ(costAtTransaction × quantity) over the sale's items.
func (t *Transaction) CostTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range t.Items {
		total = total.Add(item.CostAtTransaction.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
