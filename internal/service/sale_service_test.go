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

func buildSaleSvc() (service.SaleService, *stubTransactionRepo, *stubProductRepo, *stubMovementRepo) {
	productRepo := newStubProductRepo()
	txRepo := newStubTransactionRepo()
	movementRepo := &stubMovementRepo{}
	svc := service.NewSaleService(txRepo, productRepo, movementRepo, nil, nil)
	return svc, txRepo, productRepo, movementRepo
}

func TestRegisterSale_SnapshotsPriceAndCost(t *testing.T) {
	svc, txRepo, productRepo, _ := buildSaleSvc()
	laptop := productRepo.add(model.Product{
		SKU: "LPT-001", Name: "Laptop ASUS Vivobook", Category: "Laptop",
		Stock: 15, BuyPrice: decimal.NewFromInt(7500000), SellPrice: decimal.NewFromInt(8900000), Active: true,
	})

	resp, err := svc.RegisterSale(context.Background(), dto.RegisterSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: laptop.ID.String(), Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, model.TxSale, resp.Type)
	assert.True(t, decimal.NewFromInt(17800000).Equal(resp.TotalAmount))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Laptop ASUS Vivobook", resp.Items[0].ProductName)
	assert.True(t, decimal.NewFromInt(8900000).Equal(resp.Items[0].PriceAtTransaction))
	assert.True(t, decimal.NewFromInt(7500000).Equal(resp.Items[0].CostAtTransaction))

	require.Len(t, txRepo.transactions, 1)
	assert.Equal(t, "TRX-1001", txRepo.transactions[0].Code)
}

func TestRegisterSale_DecrementsStockAndRecordsMovement(t *testing.T) {
	svc, _, productRepo, movementRepo := buildSaleSvc()
	mouse := productRepo.add(model.Product{
		SKU: "ACC-003", Name: "Mouse Logitech Wireless", Category: "Aksesoris",
		Stock: 50, BuyPrice: decimal.NewFromInt(120000), SellPrice: decimal.NewFromInt(185000), Active: true,
	})

	_, err := svc.RegisterSale(context.Background(), dto.RegisterSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: mouse.ID.String(), Quantity: 3}},
	})
	require.NoError(t, err)

	updated, err := productRepo.FindByID(context.Background(), mouse.ID)
	require.NoError(t, err)
	assert.Equal(t, 47, updated.Stock)

	require.Len(t, movementRepo.movements, 1)
	mov := movementRepo.movements[0]
	assert.Equal(t, "penjualan", mov.Type)
	assert.Equal(t, -3, mov.Quantity)
	assert.Equal(t, 50, mov.StockBefore)
	assert.Equal(t, 47, mov.StockAfter)
}

func TestRegisterSale_RejectsInsufficientStock(t *testing.T) {
	svc, txRepo, productRepo, _ := buildSaleSvc()
	phone := productRepo.add(model.Product{
		SKU: "HP-002", Name: "Samsung Galaxy S24", Category: "Smartphone",
		Stock: 1, BuyPrice: decimal.NewFromInt(12000000), SellPrice: decimal.NewFromInt(14500000), Active: true,
	})

	_, err := svc.RegisterSale(context.Background(), dto.RegisterSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: phone.ID.String(), Quantity: 2}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stok")
	assert.Empty(t, txRepo.transactions)

	unchanged, _ := productRepo.FindByID(context.Background(), phone.ID)
	assert.Equal(t, 1, unchanged.Stock)
}

func TestRegisterSale_RejectsInactiveProduct(t *testing.T) {
	svc, _, productRepo, _ := buildSaleSvc()
	old := productRepo.add(model.Product{
		SKU: "OLD-001", Name: "Produk Lama", Category: "Aksesoris",
		Stock: 10, BuyPrice: decimal.NewFromInt(10000), SellPrice: decimal.NewFromInt(20000), Active: false,
	})

	_, err := svc.RegisterSale(context.Background(), dto.RegisterSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: old.ID.String(), Quantity: 1}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonaktif")
}

func TestRegisterSale_RejectsEmptyCart(t *testing.T) {
	svc, _, _, _ := buildSaleSvc()
	_, err := svc.RegisterSale(context.Background(), dto.RegisterSaleRequest{})
	require.Error(t, err)
}

func TestRegisterSale_DefaultDescription(t *testing.T) {
	svc, txRepo, productRepo, _ := buildSaleSvc()
	cable := productRepo.add(model.Product{
		SKU: "ACC-005", Name: "Kabel HDMI 2m", Category: "Aksesoris",
		Stock: 100, BuyPrice: decimal.NewFromInt(35000), SellPrice: decimal.NewFromInt(75000), Active: true,
	})

	_, err := svc.RegisterSale(context.Background(), dto.RegisterSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: cable.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Penjualan POS", txRepo.transactions[0].Description)
}

func TestRegisterSale_SequentialCodes(t *testing.T) {
	svc, txRepo, productRepo, _ := buildSaleSvc()
	cable := productRepo.add(model.Product{
		SKU: "ACC-005", Name: "Kabel HDMI 2m", Category: "Aksesoris",
		Stock: 100, BuyPrice: decimal.NewFromInt(35000), SellPrice: decimal.NewFromInt(75000), Active: true,
	})

	for i := 0; i < 3; i++ {
		_, err := svc.RegisterSale(context.Background(), dto.RegisterSaleRequest{
			Items: []dto.SaleItemRequest{{ProductID: cable.ID.String(), Quantity: 1}},
		})
		require.NoError(t, err)
	}
	require.Len(t, txRepo.transactions, 3)
	assert.Equal(t, "TRX-1001", txRepo.transactions[0].Code)
	assert.Equal(t, "TRX-1002", txRepo.transactions[1].Code)
	assert.Equal(t, "TRX-1003", txRepo.transactions[2].Code)
}
