package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/ledger"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/model"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/service"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/worker"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildReportSvc() (service.ReportService, *stubTransactionRepo, *stubProductRepo) {
	productRepo := newStubProductRepo()
	txRepo := newStubTransactionRepo()
	svc := service.NewReportService(txRepo, productRepo, nil, testPDFDir, nil)
	return svc, txRepo, productRepo
}

// stubDispatcher captures enqueued mail jobs instead of pushing to Redis.
type stubDispatcher struct{ emails []worker.EmailJobPayload }

func (d *stubDispatcher) EnqueueEmail(_ context.Context, payload interface{}) error {
	d.emails = append(d.emails, payload.(worker.EmailJobPayload))
	return nil
}

var _ service.EmailDispatcher = (*stubDispatcher)(nil)

const testPDFDir = "/tmp/elektronik-shata-test"

func seedHistory(txRepo *stubTransactionRepo) {
	now := time.Now()
	category := "Utilitas"
	sale := &model.Transaction{
		Code: "TRX-1001", Date: now.Add(-48 * time.Hour), Type: model.TxSale,
		TotalAmount: decimal.NewFromInt(17800000),
		Description: "Penjualan LPT-001 x2",
		Items: []model.TransactionItem{{
			ProductName: "Laptop ASUS Vivobook", Quantity: 2,
			PriceAtTransaction: decimal.NewFromInt(8900000),
			CostAtTransaction:  decimal.NewFromInt(7500000),
		}},
	}
	expense := &model.Transaction{
		Code: "TRX-1002", Date: now.Add(-24 * time.Hour), Type: model.TxExpense,
		TotalAmount: decimal.NewFromInt(500000),
		Description: "Biaya Listrik & Air", Category: &category,
	}
	_ = txRepo.Create(context.Background(), nil, sale)
	_ = txRepo.Create(context.Background(), nil, expense)
}

func TestGetJournal_DerivesBalancedEntries(t *testing.T) {
	svc, txRepo, _ := buildReportSvc()
	seedHistory(txRepo)

	resp, err := svc.GetJournal(context.Background())
	require.NoError(t, err)
	// Sale with items → 4 entries, expense → 2
	assert.Equal(t, 6, resp.Count)
	require.Len(t, resp.Entries, 6)

	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for _, e := range resp.Entries {
		totalDebit = totalDebit.Add(e.Debit)
		totalCredit = totalCredit.Add(e.Credit)
	}
	assert.True(t, totalDebit.Equal(totalCredit), "journal must balance: debit %s credit %s", totalDebit, totalCredit)

	// Newest transaction first
	assert.Equal(t, ledger.AccountOpExpense, resp.Entries[0].Account)
}

func TestGetJournal_EmptyHistory(t *testing.T) {
	svc, _, _ := buildReportSvc()
	resp, err := svc.GetJournal(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Count)
}

func TestGetSummary_ComputesFigures(t *testing.T) {
	svc, txRepo, productRepo := buildReportSvc()
	seedHistory(txRepo)
	productRepo.add(model.Product{
		SKU: "LPT-001", Name: "Laptop ASUS Vivobook", Category: "Laptop",
		Stock: 13, BuyPrice: decimal.NewFromInt(7500000), SellPrice: decimal.NewFromInt(8900000), Active: true,
	})
	productRepo.add(model.Product{
		SKU: "ACC-005", Name: "Kabel HDMI 2m", Category: "Aksesoris",
		Stock: 4, BuyPrice: decimal.NewFromInt(35000), SellPrice: decimal.NewFromInt(75000), Active: true,
	})

	resp, err := svc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.False(t, resp.Cached)

	s := resp.Summary
	assert.True(t, decimal.NewFromInt(17800000).Equal(s.TotalRevenue))
	assert.True(t, decimal.NewFromInt(15000000).Equal(s.TotalCOGS))
	assert.True(t, decimal.NewFromInt(500000).Equal(s.TotalExpenses))
	assert.True(t, decimal.NewFromInt(2300000).Equal(s.NetProfit))
	// 13×7.5M + 4×35K
	assert.True(t, decimal.NewFromInt(97640000).Equal(s.InventoryValue))
	assert.Equal(t, 1, s.LowStockCount)
}

func TestGetSummary_RecomputesAfterNewTransaction(t *testing.T) {
	svc, txRepo, _ := buildReportSvc()
	seedHistory(txRepo)

	first, err := svc.GetSummary(context.Background())
	require.NoError(t, err)

	category := "Sewa"
	_ = txRepo.Create(context.Background(), nil, &model.Transaction{
		Code: "TRX-1003", Date: time.Now(), Type: model.TxExpense,
		TotalAmount: decimal.NewFromInt(1000000),
		Description: "Sewa Toko", Category: &category,
	})

	second, err := svc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.True(t, first.Summary.NetProfit.Sub(decimal.NewFromInt(1000000)).Equal(second.Summary.NetProfit))
}

func TestExportJournalPDF_WritesFile(t *testing.T) {
	svc, txRepo, _ := buildReportSvc()
	seedHistory(txRepo)

	path, err := svc.ExportJournalPDF(context.Background())
	require.NoError(t, err)
	assert.Contains(t, path, "jurnal_umum_")
}

func TestEmailJournalPDF_QueuesDelivery(t *testing.T) {
	productRepo := newStubProductRepo()
	txRepo := newStubTransactionRepo()
	dispatcher := &stubDispatcher{}
	svc := service.NewReportService(txRepo, productRepo, nil, testPDFDir, dispatcher)
	seedHistory(txRepo)

	err := svc.EmailJournalPDF(context.Background(), "supervisor@elektronikshata.id")
	require.NoError(t, err)

	require.Len(t, dispatcher.emails, 1)
	job := dispatcher.emails[0]
	assert.Equal(t, "supervisor@elektronikshata.id", job.ToEmail)
	assert.Contains(t, job.PDFPath, "jurnal_umum_")
	assert.NotEmpty(t, job.Subject)
}

func TestEmailJournalPDF_WithoutDispatcher(t *testing.T) {
	svc, txRepo, _ := buildReportSvc()
	seedHistory(txRepo)

	err := svc.EmailJournalPDF(context.Background(), "supervisor@elektronikshata.id")
	assert.Error(t, err)
}
