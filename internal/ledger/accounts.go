// Package ledger is the bookkeeping core: it converts the transaction history
// into a balanced double-entry general journal and folds transactions and the
// live catalog into a financial summary. Both operations are pure functions —
// no I/O, no shared state — so callers re-run them whenever their copy of the
// data changes.
package ledger

// Chart of accounts. The labels are fixed strings carried over from the
// store's existing books — downstream consumers match on them verbatim.
const (
	AccountCash      = "101 - Kas / Bank"
	AccountInventory = "105 - Persediaan Barang"
	AccountRevenue   = "401 - Pendapatan Usaha"
	AccountCOGS      = "501 - Harga Pokok Penjualan"
	AccountOpExpense = "601 - Beban Operasional"
)

// LowStockThreshold: products with stock at or below this count as low stock.
const LowStockThreshold = 5
