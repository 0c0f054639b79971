package repositories

import (
	"context"

	"github.com/finovo/erp-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalRepositoryFacade defines the persistence operations for journal
// entries and their lines. SaveEntry is the single atomic write of the
// posting engine: entry + lines + account balance deltas + source-document
// status CAS all commit or roll back together.
type JournalRepositoryFacade interface {
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal, docUpdate *DocumentStatusUpdate, reversal *ReversalLink) error
	FindEntryByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error)
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)
	ListEntriesByCompany(ctx context.Context, companyID string, limit int) ([]domain.JournalEntry, error)
	// NextEntryNumber reserves the next value of the entry number sequence.
	// Sequence gaps from rolled-back postings are acceptable.
	NextEntryNumber(ctx context.Context) (string, error)
}
