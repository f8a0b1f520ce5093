package handler

import (
	"net/http"

	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/apierror"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/dto"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// Journal handles GET /v1/reports/journal — the derived general journal.
func (h *ReportsHandler) Journal(c *gin.Context) {
	resp, err := h.svc.GetJournal(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Gagal menyusun jurnal umum"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// JournalPDF handles GET /v1/reports/journal/pdf — renders and streams the
// journal as a PDF download.
func (h *ReportsHandler) JournalPDF(c *gin.Context) {
	path, err := h.svc.ExportJournalPDF(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Gagal membuat PDF jurnal"))
		return
	}
	c.FileAttachment(path, "jurnal_umum.pdf")
}

// EmailJournal handles POST /v1/reports/journal/email — renders the journal
// PDF and queues it for async delivery through the worker pool.
func (h *ReportsHandler) EmailJournal(c *gin.Context) {
	var req dto.EmailJournalRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.EmailJournalPDF(c.Request.Context(), req.ToEmail); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Gagal menjadwalkan pengiriman jurnal"))
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "Jurnal umum sedang dikirim ke " + req.ToEmail})
}

// Summary handles GET /v1/reports/summary.
func (h *ReportsHandler) Summary(c *gin.Context) {
	resp, err := h.svc.GetSummary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Gagal menyusun ringkasan keuangan"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
