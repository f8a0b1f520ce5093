package model

import (
	"time"

	"github.com/google/uuid"
)

// StockMovement records every stock change on a product. Created
// automatically on sales, purchases, and manual adjustments. Movements are
// never modified or deleted — corrections create inverse entries.
type StockMovement struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Type      string    `gorm:"not null"` // "penjualan" | "pembelian" | "penyesuaian"
	Quantity  int       `gorm:"not null"` // positive = in, negative = out
	StockBefore int     `gorm:"not null"`
	StockAfter  int     `gorm:"not null"`
	Reason      string
	// RefID links to the originating Transaction when applicable.
	RefID     *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

// TableName overrides GORM's default pluralization.
func (StockMovement) TableName() string { return "stock_movements" }
