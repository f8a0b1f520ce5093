package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/dto"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/infra"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/ledger"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/model"
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ErrAdvisorUnavailable is returned when the AI backend is down or the
// circuit breaker is open. Handlers map it to 503.
var ErrAdvisorUnavailable = errors.New("layanan konsultan AI sedang tidak tersedia")

// AdvisorService answers free-form bookkeeping questions by sending the
// current financial snapshot plus the user's query to Gemini. The model is
// strictly advisory — it never writes anything back.
type AdvisorService interface {
	Ask(ctx context.Context, req dto.AdvisorRequest) (*dto.AdvisorResponse, error)
}

type advisorService struct {
	reports     ReportService
	txRepo      repository.TransactionRepository
	productRepo repository.ProductRepository
	gemini      *infra.GeminiClient
	cb          *infra.CircuitBreaker
}

func NewAdvisorService(
	reports ReportService,
	txRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	gemini *infra.GeminiClient,
	cb *infra.CircuitBreaker,
) AdvisorService {
	return &advisorService{
		reports:     reports,
		txRepo:      txRepo,
		productRepo: productRepo,
		gemini:      gemini,
		cb:          cb,
	}
}

// advisorContext is the JSON snapshot embedded in the prompt. Capped at the
// last 5 transactions and top 5 products to keep token usage bounded.
type advisorContext struct {
	Summary            ledger.FinancialSummary  `json:"summary"`
	RecentTransactions []advisorTransaction     `json:"recent_transactions"`
	TopProducts        []advisorProduct         `json:"top_products"`
}

type advisorTransaction struct {
	Code        string          `json:"code"`
	Date        string          `json:"date"`
	Type        string          `json:"type"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Description string          `json:"description"`
}

type advisorProduct struct {
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Stock     int             `json:"stock"`
	BuyPrice  decimal.Decimal `json:"buy_price"`
	SellPrice decimal.Decimal `json:"sell_price"`
}

func (s *advisorService) Ask(ctx context.Context, req dto.AdvisorRequest) (*dto.AdvisorResponse, error) {
	contextJSON, err := s.buildContext(ctx)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Bertindaklah sebagai Konsultan Akuntansi Senior untuk Toko Elektronik "Elektronik Shata".

Konteks Data Keuangan Saat Ini (JSON):
%s

Pertanyaan User: "%s"

Instruksi:
1. Jawablah dalam Bahasa Indonesia yang profesional namun mudah dimengerti.
2. Berikan analisis mendalam berdasarkan data di atas.
3. Jika user bertanya tentang keuntungan, hitung margin laba kotor.
4. Berikan rekomendasi taktis (misal: restock barang, kurangi biaya operasional).
5. Jangan gunakan markdown yang rumit, gunakan paragraf dan bullet points sederhana.`,
		contextJSON, req.Query)

	var answer string
	cbErr := s.cb.Execute(func() error {
		text, err := s.gemini.Generate(ctx, prompt)
		if err != nil {
			return err
		}
		answer = text
		return nil
	})
	if cbErr != nil {
		if errors.Is(cbErr, infra.ErrCircuitOpen) {
			log.Warn().Msg("advisor: circuit breaker open, rejecting request")
			return nil, ErrAdvisorUnavailable
		}
		if errors.Is(cbErr, infra.ErrNoAPIKey) {
			return nil, errors.New("API Key tidak ditemukan. Harap konfigurasi GEMINI_API_KEY di environment")
		}
		log.Error().Err(cbErr).Msg("advisor: generate failed")
		return nil, ErrAdvisorUnavailable
	}

	return &dto.AdvisorResponse{Answer: answer}, nil
}

func (s *advisorService) buildContext(ctx context.Context) (string, error) {
	summaryResp, err := s.reports.GetSummary(ctx)
	if err != nil {
		return "", err
	}

	recent, err := s.txRepo.ListRecent(ctx, 5)
	if err != nil {
		return "", err
	}

	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return "", err
	}
	top := topByStockValue(products, 5)

	payload := advisorContext{
		Summary:            summaryResp.Summary,
		RecentTransactions: make([]advisorTransaction, 0, len(recent)),
		TopProducts:        make([]advisorProduct, 0, len(top)),
	}
	for _, t := range recent {
		payload.RecentTransactions = append(payload.RecentTransactions, advisorTransaction{
			Code:        t.Code,
			Date:        t.Date.Format("2006-01-02"),
			Type:        t.Type,
			TotalAmount: t.TotalAmount,
			Description: t.Description,
		})
	}
	for _, p := range top {
		payload.TopProducts = append(payload.TopProducts, advisorProduct{
			Name:      p.Name,
			Category:  p.Category,
			Stock:     p.Stock,
			BuyPrice:  p.BuyPrice,
			SellPrice: p.SellPrice,
		})
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// topByStockValue returns up to n products ranked by stock × cost, a rough
// proxy for where the store's capital is tied up.
func topByStockValue(products []model.Product, n int) []model.Product {
	ranked := make([]model.Product, len(products))
	copy(ranked, products)
	sort.Slice(ranked, func(i, j int) bool {
		vi := ranked[i].BuyPrice.Mul(decimal.NewFromInt(int64(ranked[i].Stock)))
		vj := ranked[j].BuyPrice.Mul(decimal.NewFromInt(int64(ranked[j].Stock)))
		return vi.GreaterThan(vj)
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
