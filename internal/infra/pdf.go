package infra

// pdf.go — General journal export using go-pdf/fpdf.
// Renders the derived double-entry journal as an A4 table:
//   - Store name header and export timestamp
//   - One row per ledger entry (date, ref, account/description, debit, credit)
//   - Grand totals line (Σdebit == Σcredit for a balanced book)
//
// The output file is saved to storagePath/jurnal_umum_{timestamp}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/ledger"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerateJournalPDF renders the general journal to a PDF file and returns
// the absolute path of the generated file.
func GenerateJournalPDF(entries []ledger.Entry, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("jurnal_umum_%s.pdf", time.Now().Format("20060102_150405"))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Elektronik Shata", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Jurnal Umum", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Dicetak: "+time.Now().Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	// ── Column layout ─────────────────────────────────────────────────────────
	colDate := contentW * 0.12
	colRef := contentW * 0.10
	colAccount := contentW * 0.42
	colAmount := contentW * 0.18

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(colDate, 6, "Tanggal", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colRef, 6, "Ref", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colAccount, 6, "Akun / Keterangan", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colAmount, 6, "Debit", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colAmount, 6, "Kredit", "B", 1, "R", false, 0, "")

	// ── Entry rows ────────────────────────────────────────────────────────────
	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	pdf.SetFont("Helvetica", "", 8)
	for _, e := range entries {
		ref := e.RefID.String()
		if len(ref) > 8 {
			ref = ref[:8]
		}
		account := e.Account
		if len(account) > 34 {
			account = account[:33] + "…"
		}
		pdf.CellFormat(colDate, 5, e.Date.Format("02/01/2006"), "", 0, "L", false, 0, "")
		pdf.CellFormat(colRef, 5, ref, "", 0, "L", false, 0, "")
		pdf.CellFormat(colAccount, 5, account, "", 0, "L", false, 0, "")
		pdf.CellFormat(colAmount, 5, formatAmount(e.Debit), "", 0, "R", false, 0, "")
		pdf.CellFormat(colAmount, 5, formatAmount(e.Credit), "", 1, "R", false, 0, "")

		// Description on its own indented line, like the journal screen.
		pdf.SetFont("Helvetica", "I", 7)
		pdf.CellFormat(colDate+colRef, 4, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(colAccount+colAmount*2, 4, e.Description, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)

		totalDebit = totalDebit.Add(e.Debit)
		totalCredit = totalCredit.Add(e.Credit)
	}

	// ── Totals ────────────────────────────────────────────────────────────────
	pdf.Ln(2)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(colDate+colRef+colAccount, 7, "TOTAL", "", 0, "L", false, 0, "")
	pdf.CellFormat(colAmount, 7, formatAmount(totalDebit), "", 0, "R", false, 0, "")
	pdf.CellFormat(colAmount, 7, formatAmount(totalCredit), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}

func formatAmount(v decimal.Decimal) string {
	if v.IsZero() {
		return "-"
	}
	return "Rp " + v.StringFixed(0)
}
