package ledger

import (
	"testing"
	"time"

	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func saleTx(date time.Time, total int64, items ...model.TransactionItem) model.Transaction {
	return model.Transaction{
		ID:          uuid.New(),
		Code:        "TRX-1001",
		Date:        date,
		Type:        model.TxSale,
		TotalAmount: d(total),
		Description: "Penjualan LPT-001 x2",
		Items:       items,
	}
}

func TestDeriveSaleWithItems(t *testing.T) {
	// The 17.8M laptop sale: 2 units @ 8.9M, cost 7.5M each.
	tx := saleTx(time.Now(), 17_800_000, model.TransactionItem{
		ProductID:          uuid.New(),
		ProductName:        "Laptop ASUS Vivobook",
		Quantity:           2,
		PriceAtTransaction: d(8_900_000),
		CostAtTransaction:  d(7_500_000),
	})

	entries := Derive([]model.Transaction{tx})
	require.Len(t, entries, 4)

	assert.Equal(t, AccountCash, entries[0].Account)
	assert.True(t, entries[0].Debit.Equal(d(17_800_000)))
	assert.True(t, entries[0].Credit.IsZero())
	assert.Equal(t, "Penerimaan Penjualan (Penjualan LPT-001 x2)", entries[0].Description)

	assert.Equal(t, AccountRevenue, entries[1].Account)
	assert.True(t, entries[1].Credit.Equal(d(17_800_000)))

	assert.Equal(t, AccountCOGS, entries[2].Account)
	assert.True(t, entries[2].Debit.Equal(d(15_000_000)))

	assert.Equal(t, AccountInventory, entries[3].Account)
	assert.True(t, entries[3].Credit.Equal(d(15_000_000)))

	// All four entries reference the source transaction.
	for _, e := range entries {
		assert.Equal(t, tx.ID, e.RefID)
		assert.Equal(t, tx.Date, e.Date)
	}
}

func TestDeriveSaleBalance(t *testing.T) {
	tx := saleTx(time.Now(), 370_000, model.TransactionItem{
		Quantity:           2,
		PriceAtTransaction: d(185_000),
		CostAtTransaction:  d(120_000),
	})

	entries := Derive([]model.Transaction{tx})

	debits, credits := decimal.Zero, decimal.Zero
	for _, e := range entries {
		debits = debits.Add(e.Debit)
		credits = credits.Add(e.Credit)
	}
	// With the HPP pair, Σdebit == Σcredit == total + cost.
	assert.True(t, debits.Equal(credits))
	assert.True(t, debits.Equal(d(370_000+240_000)))
}

func TestDeriveSaleWithoutItems(t *testing.T) {
	// No item detail: only the revenue pair, no HPP entries.
	tx := saleTx(time.Now(), 75_000)

	entries := Derive([]model.Transaction{tx})
	require.Len(t, entries, 2)
	assert.Equal(t, AccountCash, entries[0].Account)
	assert.Equal(t, AccountRevenue, entries[1].Account)
	assert.True(t, entries[0].Debit.Equal(entries[1].Credit))
}

func TestDeriveSaleEmptyDescriptionFallsBackToPOS(t *testing.T) {
	tx := saleTx(time.Now(), 75_000)
	tx.Description = ""

	entries := Derive([]model.Transaction{tx})
	require.NotEmpty(t, entries)
	assert.Equal(t, "Penerimaan Penjualan (POS)", entries[0].Description)
}

func TestDerivePurchase(t *testing.T) {
	tx := model.Transaction{
		ID:          uuid.New(),
		Date:        time.Now(),
		Type:        model.TxPurchase,
		TotalAmount: d(3_600_000),
		Description: "Restock Monitor LG",
	}

	entries := Derive([]model.Transaction{tx})
	require.Len(t, entries, 2)

	assert.Equal(t, AccountInventory, entries[0].Account)
	assert.True(t, entries[0].Debit.Equal(d(3_600_000)))
	assert.Equal(t, "Pembelian Stok", entries[0].Description)

	assert.Equal(t, AccountCash, entries[1].Account)
	assert.True(t, entries[1].Credit.Equal(d(3_600_000)))
	assert.Equal(t, "Pembayaran Tunai", entries[1].Description)
}

func TestDeriveExpense(t *testing.T) {
	tx := model.Transaction{
		ID:          uuid.New(),
		Date:        time.Now(),
		Type:        model.TxExpense,
		TotalAmount: d(500_000),
		Description: "Biaya Listrik & Air",
	}

	entries := Derive([]model.Transaction{tx})
	require.Len(t, entries, 2)

	assert.Equal(t, AccountOpExpense, entries[0].Account)
	assert.True(t, entries[0].Debit.Equal(d(500_000)))
	assert.Equal(t, "Biaya Listrik & Air", entries[0].Description)

	assert.Equal(t, AccountCash, entries[1].Account)
	assert.True(t, entries[1].Credit.Equal(d(500_000)))
	assert.Equal(t, "Pembayaran Beban", entries[1].Description)
}

func TestDeriveSkipsUnknownType(t *testing.T) {
	known := model.Transaction{ID: uuid.New(), Date: time.Now(), Type: model.TxExpense, TotalAmount: d(100)}
	unknown := model.Transaction{ID: uuid.New(), Date: time.Now(), Type: "RETUR_PENJUALAN", TotalAmount: d(999)}

	entries := Derive([]model.Transaction{unknown, known})
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, known.ID, e.RefID)
	}
}

func TestDeriveEmptyInput(t *testing.T) {
	assert.Empty(t, Derive(nil))
	assert.Empty(t, Derive([]model.Transaction{}))
}

func TestDeriveOrdering(t *testing.T) {
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	older := saleTx(base, 100_000)
	newer := model.Transaction{
		ID:          uuid.New(),
		Date:        base.Add(48 * time.Hour),
		Type:        model.TxExpense,
		TotalAmount: d(50_000),
		Description: "Sewa",
	}

	// Input is oldest-first; output must be newest-first with each
	// transaction's entries contiguous and in emission order.
	entries := Derive([]model.Transaction{older, newer})
	require.Len(t, entries, 4)

	assert.Equal(t, newer.ID, entries[0].RefID)
	assert.Equal(t, newer.ID, entries[1].RefID)
	assert.Equal(t, AccountOpExpense, entries[0].Account)
	assert.Equal(t, AccountCash, entries[1].Account)

	assert.Equal(t, older.ID, entries[2].RefID)
	assert.Equal(t, older.ID, entries[3].RefID)
	assert.Equal(t, AccountCash, entries[2].Account)
	assert.Equal(t, AccountRevenue, entries[3].Account)
}

func TestDeriveOrderingTiesKeepEmissionOrder(t *testing.T) {
	ts := time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC)
	first := saleTx(ts, 10_000)
	second := model.Transaction{ID: uuid.New(), Date: ts, Type: model.TxExpense, TotalAmount: d(5_000), Description: "Parkir"}

	entries := Derive([]model.Transaction{first, second})
	require.Len(t, entries, 4)
	// Identical timestamps: stable sort preserves emission order.
	assert.Equal(t, first.ID, entries[0].RefID)
	assert.Equal(t, first.ID, entries[1].RefID)
	assert.Equal(t, second.ID, entries[2].RefID)
	assert.Equal(t, second.ID, entries[3].RefID)
}

func TestDeriveIDsMonotonicPerCall(t *testing.T) {
	tx := saleTx(time.Now(), 75_000)

	first := Derive([]model.Transaction{tx})
	second := Derive([]model.Transaction{tx})
	require.Len(t, first, 2)
	require.Len(t, second, 2)

	// The counter restarts on every call and IDs follow emission order.
	assert.Equal(t, "LE-1", first[0].ID)
	assert.Equal(t, "LE-2", first[1].ID)
	assert.Equal(t, first[0].ID, second[0].ID)
}

func TestDeriveSingleSidedEntries(t *testing.T) {
	txs := []model.Transaction{
		saleTx(time.Now(), 17_800_000, model.TransactionItem{
			Quantity: 2, PriceAtTransaction: d(8_900_000), CostAtTransaction: d(7_500_000),
		}),
		{ID: uuid.New(), Date: time.Now(), Type: model.TxPurchase, TotalAmount: d(240_000)},
		{ID: uuid.New(), Date: time.Now(), Type: model.TxExpense, TotalAmount: d(500_000), Description: "Internet"},
	}

	for _, e := range Derive(txs) {
		// Exactly one side of every entry carries an amount.
		assert.True(t, e.Debit.IsZero() != e.Credit.IsZero(), "entry %s has both or neither side set", e.ID)
	}
}
