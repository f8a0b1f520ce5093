package ledger

import (
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/model"

	"github.com/shopspring/decimal"
)

// FinancialSummary is a derived snapshot over the full transaction history
// and the current catalog. It is recomputed whole on every call, never
// updated incrementally.
type FinancialSummary struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalCOGS      decimal.Decimal `json:"total_cogs"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	NetProfit      decimal.Decimal `json:"net_profit"`
	LowStockCount  int             `json:"low_stock_count"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
}

// Summarize folds revenue, cost of goods sold and expenses out of the
// transaction history, and inventory valuation out of the LIVE catalog.
// Purchases contribute to none of the flow figures — they only move stock,
// which shows up in InventoryValue. Inventory is valued at current stock ×
// current unit cost, so unlike the frozen COGS figures it shifts when a
// product's buy price is edited.
func Summarize(transactions []model.Transaction, products []model.Product) FinancialSummary {
	revenue := decimal.Zero
	cogs := decimal.Zero
	expenses := decimal.Zero

	for i := range transactions {
		tx := &transactions[i]
		switch tx.Type {
		case model.TxSale:
			revenue = revenue.Add(tx.TotalAmount)
			cogs = cogs.Add(tx.CostTotal())
		case model.TxExpense:
			expenses = expenses.Add(tx.TotalAmount)
		}
	}

	inventoryValue := decimal.Zero
	lowStock := 0
	for i := range products {
		p := &products[i]
		inventoryValue = inventoryValue.Add(p.BuyPrice.Mul(decimal.NewFromInt(int64(p.Stock))))
		if p.Stock <= LowStockThreshold {
			lowStock++
		}
	}

	return FinancialSummary{
		TotalRevenue:   revenue,
		TotalCOGS:      cogs,
		TotalExpenses:  expenses,
		NetProfit:      revenue.Sub(cogs).Sub(expenses),
		LowStockCount:  lowStock,
		InventoryValue: inventoryValue,
	}
}
