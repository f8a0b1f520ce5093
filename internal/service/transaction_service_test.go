package service_test

import (
	"context"
	"testing"

	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/dto"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/model"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTxSvc() (service.TransactionService, *stubTransactionRepo, *stubProductRepo, *stubMovementRepo) {
	productRepo := newStubProductRepo()
	txRepo := newStubTransactionRepo()
	movementRepo := &stubMovementRepo{}
	svc := service.NewTransactionService(txRepo, productRepo, movementRepo, nil)
	return svc, txRepo, productRepo, movementRepo
}

func TestRegisterPurchase_IncrementsStock(t *testing.T) {
	svc, txRepo, productRepo, movementRepo := buildTxSvc()
	monitor := productRepo.add(model.Product{
		SKU: "MON-004", Name: "Monitor LG 24 inch", Category: "Monitor",
		Stock: 12, BuyPrice: decimal.NewFromInt(1800000), SellPrice: decimal.NewFromInt(2300000), Active: true,
	})

	resp, err := svc.RegisterPurchase(context.Background(), dto.RegisterPurchaseRequest{
		ProductID:   monitor.ID.String(),
		Quantity:    10,
		TotalAmount: decimal.NewFromInt(18000000),
	})
	require.NoError(t, err)
	assert.Equal(t, model.TxPurchase, resp.Type)
	assert.Empty(t, resp.Items)

	updated, _ := productRepo.FindByID(context.Background(), monitor.ID)
	assert.Equal(t, 22, updated.Stock)

	require.Len(t, txRepo.transactions, 1)
	require.Len(t, movementRepo.movements, 1)
	mov := movementRepo.movements[0]
	assert.Equal(t, "pembelian", mov.Type)
	assert.Equal(t, 10, mov.Quantity)
	assert.Equal(t, 12, mov.StockBefore)
	assert.Equal(t, 22, mov.StockAfter)
}

func TestRegisterPurchase_DefaultDescription(t *testing.T) {
	svc, txRepo, productRepo, _ := buildTxSvc()
	monitor := productRepo.add(model.Product{
		SKU: "MON-004", Name: "Monitor LG 24 inch", Category: "Monitor",
		Stock: 12, BuyPrice: decimal.NewFromInt(1800000), SellPrice: decimal.NewFromInt(2300000), Active: true,
	})

	_, err := svc.RegisterPurchase(context.Background(), dto.RegisterPurchaseRequest{
		ProductID:   monitor.ID.String(),
		Quantity:    5,
		TotalAmount: decimal.NewFromInt(9000000),
	})
	require.NoError(t, err)
	assert.Equal(t, "Pembelian stok Monitor LG 24 inch (5 unit)", txRepo.transactions[0].Description)
}

func TestRegisterPurchase_RejectsUnknownProduct(t *testing.T) {
	svc, _, _, _ := buildTxSvc()
	_, err := svc.RegisterPurchase(context.Background(), dto.RegisterPurchaseRequest{
		ProductID:   "3b1f7c9e-0000-4000-8000-000000000000",
		Quantity:    1,
		TotalAmount: decimal.NewFromInt(100000),
	})
	require.Error(t, err)
}

func TestRegisterPurchase_RejectsNonPositiveAmount(t *testing.T) {
	svc, _, productRepo, _ := buildTxSvc()
	monitor := productRepo.add(model.Product{
		SKU: "MON-004", Name: "Monitor LG 24 inch", Category: "Monitor",
		Stock: 12, BuyPrice: decimal.NewFromInt(1800000), SellPrice: decimal.NewFromInt(2300000), Active: true,
	})
	_, err := svc.RegisterPurchase(context.Background(), dto.RegisterPurchaseRequest{
		ProductID:   monitor.ID.String(),
		Quantity:    1,
		TotalAmount: decimal.Zero,
	})
	require.Error(t, err)
}

func TestRegisterExpense_StoresCategory(t *testing.T) {
	svc, txRepo, _, _ := buildTxSvc()

	resp, err := svc.RegisterExpense(context.Background(), dto.RegisterExpenseRequest{
		TotalAmount: decimal.NewFromInt(500000),
		Category:    "Utilitas",
		Description: "Biaya Listrik & Air",
	})
	require.NoError(t, err)
	assert.Equal(t, model.TxExpense, resp.Type)
	require.NotNil(t, resp.Category)
	assert.Equal(t, "Utilitas", *resp.Category)

	require.Len(t, txRepo.transactions, 1)
	assert.Equal(t, "Biaya Listrik & Air", txRepo.transactions[0].Description)
}

func TestRegisterExpense_RejectsNonPositiveAmount(t *testing.T) {
	svc, _, _, _ := buildTxSvc()
	_, err := svc.RegisterExpense(context.Background(), dto.RegisterExpenseRequest{
		TotalAmount: decimal.NewFromInt(-100),
		Category:    "Utilitas",
		Description: "Koreksi",
	})
	require.Error(t, err)
}
