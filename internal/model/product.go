package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Stock and prices are the LIVE values —
// historical figures on transactions come from TransactionItem snapshots,
// never from here.
type Product struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU      string    `gorm:"uniqueIndex;not null"`
	Name     string    `gorm:"index;not null"`
	Category string    `gorm:"not null"`
	Stock    int       `gorm:"not null;default:0"`
	// BuyPrice is the unit cost (HPP basis); SellPrice the unit list price.
	BuyPrice  decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	SellPrice decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Active    bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
