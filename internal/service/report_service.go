package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/dto"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/infra"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/ledger"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/repository"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	summaryCacheKey = "cache:report:summary"
	summaryCacheTTL = 5 * time.Minute
)

// ReportService derives the general journal and the financial summary from
// the full transaction history. Nothing here is stored — every call is a
// recompute over the immutable events, so edits to the catalog or new
// transactions are always reflected.
type ReportService interface {
	GetJournal(ctx context.Context) (*dto.JournalResponse, error)
	GetSummary(ctx context.Context) (*dto.SummaryResponse, error)
	// InvalidateSummary drops the cached summary after any write that
	// changes the history or the catalog.
	InvalidateSummary(ctx context.Context)
	ExportJournalPDF(ctx context.Context) (string, error)
	// EmailJournalPDF renders the journal and queues it for mail delivery.
	EmailJournalPDF(ctx context.Context, toEmail string) error
}

// EmailDispatcher enqueues outbound mail jobs. Satisfied by *worker.Dispatcher.
type EmailDispatcher interface {
	EnqueueEmail(ctx context.Context, payload interface{}) error
}

var _ EmailDispatcher = (*worker.Dispatcher)(nil)

type reportService struct {
	txRepo      repository.TransactionRepository
	productRepo repository.ProductRepository
	rdb         *redis.Client
	pdfPath     string
	dispatcher  EmailDispatcher
}

func NewReportService(
	txRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	rdb *redis.Client,
	pdfPath string,
	dispatcher EmailDispatcher,
) ReportService {
	return &reportService{
		txRepo:      txRepo,
		productRepo: productRepo,
		rdb:         rdb,
		pdfPath:     pdfPath,
		dispatcher:  dispatcher,
	}
}

func (s *reportService) GetJournal(ctx context.Context) (*dto.JournalResponse, error) {
	txs, err := s.txRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	entries := ledger.Derive(txs)
	return &dto.JournalResponse{Entries: entries, Count: len(entries)}, nil
}

func (s *reportService) GetSummary(ctx context.Context) (*dto.SummaryResponse, error) {
	// Cache hit — skip the recompute entirely
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, summaryCacheKey).Bytes(); err == nil {
			var cached ledger.FinancialSummary
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &dto.SummaryResponse{Summary: cached, Cached: true}, nil
			}
		}
	}

	txs, err := s.txRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := ledger.Summarize(txs, products)

	if s.rdb != nil {
		if raw, err := json.Marshal(summary); err == nil {
			if err := s.rdb.Set(ctx, summaryCacheKey, raw, summaryCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("report: failed to cache summary")
			}
		}
	}

	return &dto.SummaryResponse{Summary: summary, Cached: false}, nil
}

func (s *reportService) InvalidateSummary(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, summaryCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("report: failed to invalidate summary cache")
	}
}

func (s *reportService) ExportJournalPDF(ctx context.Context) (string, error) {
	txs, err := s.txRepo.ListAll(ctx)
	if err != nil {
		return "", err
	}
	entries := ledger.Derive(txs)
	return infra.GenerateJournalPDF(entries, s.pdfPath)
}

func (s *reportService) EmailJournalPDF(ctx context.Context, toEmail string) error {
	if s.dispatcher == nil {
		return errors.New("pengiriman email tidak tersedia")
	}
	path, err := s.ExportJournalPDF(ctx)
	if err != nil {
		return err
	}
	return s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
		ToEmail: toEmail,
		Subject: "Jurnal Umum - Elektronik Shata",
		Body:    fmt.Sprintf("Terlampir jurnal umum Elektronik Shata per %s.", time.Now().Format("02-01-2006")),
		PDFPath: path,
	})
}
