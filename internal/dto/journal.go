package dto

import (
	"time"

	"github.com/finovo/erp-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineResponse is the API representation of a journal entry line.
type JournalLineResponse struct {
	LineID       string          `json:"lineID"`
	AccountID    string          `json:"accountID"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	LineNumber   int             `json:"lineNumber"`
}

// JournalEntryResponse is the API representation of a journal entry.
type JournalEntryResponse struct {
	EntryID      string                `json:"entryID"`
	CompanyID    string                `json:"companyID"`
	EntryNumber  string                `json:"entryNumber"`
	EntryDate    time.Time             `json:"entryDate"`
	Description  string                `json:"description"`
	SourceKind   domain.DocumentKind   `json:"sourceKind"`
	SourceID     string                `json:"sourceID"`
	TotalDebit   decimal.Decimal       `json:"totalDebit"`
	TotalCredit  decimal.Decimal       `json:"totalCredit"`
	Status       domain.EntryStatus    `json:"status"`
	PostedAt     *time.Time            `json:"postedAt,omitempty"`
	ReversedByID *string               `json:"reversedByID,omitempty"`
	ReversalOfID *string               `json:"reversalOfID,omitempty"`
	Lines        []JournalLineResponse `json:"lines,omitempty"`
}

// ToJournalEntryResponse converts a domain JournalEntry (optionally with
// lines) to its API representation.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:      e.EntryID,
		CompanyID:    e.CompanyID,
		EntryNumber:  e.EntryNumber,
		EntryDate:    e.EntryDate,
		Description:  e.Description,
		SourceKind:   e.SourceKind,
		SourceID:     e.SourceID,
		TotalDebit:   e.TotalDebit,
		TotalCredit:  e.TotalCredit,
		Status:       e.Status,
		PostedAt:     e.PostedAt,
		ReversedByID: e.ReversedByID,
		ReversalOfID: e.ReversalOfID,
	}
	for _, line := range e.Lines {
		resp.Lines = append(resp.Lines, JournalLineResponse{
			LineID:       line.LineID,
			AccountID:    line.AccountID,
			Description:  line.Description,
			DebitAmount:  line.DebitAmount,
			CreditAmount: line.CreditAmount,
			LineNumber:   line.LineNumber,
		})
	}
	return resp
}

// ToJournalEntryResponses converts a slice of entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	out := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToJournalEntryResponse(&entries[i])
	}
	return out
}
