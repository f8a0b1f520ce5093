package infra

import (
	"fmt"

	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx. Schema management
// lives in RunMigrations so tests and the seed tool can reuse it.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return db, nil
}

// RunMigrations applies the schema. Also used by integration tests against a
// throwaway database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Product{},
		&model.Transaction{},
		&model.TransactionItem{},
		&model.StockMovement{},
		&model.User{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}

	// Display codes (TRX-1001, …) come from a dedicated sequence so that
	// concurrent checkouts never collide.
	if err := db.Exec(`CREATE SEQUENCE IF NOT EXISTS transactions_code_seq START 1001`).Error; err != nil {
		return fmt.Errorf("create code sequence: %w", err)
	}
	return nil
}
