package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry is one line of the general journal. Entries are derived from
// transactions on every call and never persisted; exactly one of Debit and
// Credit is nonzero.
type Entry struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	RefID       uuid.UUID       `json:"ref_id"`
	Description string          `json:"description"`
	Account     string          `json:"account"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// Derive expands each transaction into its double-entry journal lines and
// returns them most recent first. Entry IDs come from a counter scoped to
// this call — they have no meaning across calls.
//
// Expansion per type:
//
//	PENJUALAN       debit Kas / credit Pendapatan for the total; when the sale
//	                carries items, an HPP pair follows (debit HPP / credit
//	                Persediaan for the snapshot cost sum).
//	PEMBELIAN       debit Persediaan / credit Kas (cash purchase).
//	PENGELUARAN_OP  debit Beban Operasional / credit Kas.
//
// Unknown types produce no entries. A sale without item detail emits only the
// revenue pair: there is no cost basis to recognize, so inventory on the
// books is untouched — callers that want inventory impact must populate items.
func Derive(transactions []model.Transaction) []Entry {
	entries := make([]Entry, 0, len(transactions)*2)
	counter := 1

	push := func(tx *model.Transaction, description, account string, debit, credit decimal.Decimal) {
		entries = append(entries, Entry{
			ID:          fmt.Sprintf("LE-%d", counter),
			Date:        tx.Date,
			RefID:       tx.ID,
			Description: description,
			Account:     account,
			Debit:       debit,
			Credit:      credit,
		})
		counter++
	}

	for i := range transactions {
		tx := &transactions[i]
		switch tx.Type {
		case model.TxSale:
			desc := tx.Description
			if desc == "" {
				desc = "POS"
			}
			push(tx, fmt.Sprintf("Penerimaan Penjualan (%s)", desc), AccountCash, tx.TotalAmount, decimal.Zero)
			push(tx, "Pendapatan Penjualan", AccountRevenue, decimal.Zero, tx.TotalAmount)

			// HPP pair — perpetual method, from the item cost snapshots.
			if len(tx.Items) > 0 {
				cost := tx.CostTotal()
				push(tx, "Beban Pokok Penjualan", AccountCOGS, cost, decimal.Zero)
				push(tx, "Pengurangan Stok", AccountInventory, decimal.Zero, cost)
			}

		case model.TxPurchase:
			push(tx, "Pembelian Stok", AccountInventory, tx.TotalAmount, decimal.Zero)
			push(tx, "Pembayaran Tunai", AccountCash, decimal.Zero, tx.TotalAmount)

		case model.TxExpense:
			push(tx, tx.Description, AccountOpExpense, tx.TotalAmount, decimal.Zero)
			push(tx, "Pembayaran Beban", AccountCash, decimal.Zero, tx.TotalAmount)

		default:
			// Tolerated no-op: a type this version does not know how to book.
		}
	}

	// Most recent transaction first. The stable sort keeps each transaction's
	// entries contiguous and in emission order, including on date ties.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return entries
}
