package dto

import (
	"github.com/ShataAbiyyuPrasetyo/Elektronik-Shata/internal/ledger"
)

// JournalResponse wraps the derived general journal.
type JournalResponse struct {
	Entries []ledger.Entry `json:"entries"`
	Count   int            `json:"count"`
}

// SummaryResponse carries the financial summary plus cache metadata so
// clients can tell a cached snapshot from a fresh recompute.
type SummaryResponse struct {
	Summary ledger.FinancialSummary `json:"summary"`
	Cached  bool                    `json:"cached"`
}

// EmailJournalRequest asks for the journal PDF to be mailed to an address.
type EmailJournalRequest struct {
	ToEmail string `json:"to_email" validate:"required,email"`
}

// AdvisorRequest is the user's free-form consultation question.
type AdvisorRequest struct {
	Query string `json:"query" validate:"required,min=3,max=2000"`
}

type AdvisorResponse struct {
	Answer string `json:"answer"`
}
