package services

import (
	"context"

	"github.com/finovo/erp-backend/internal/core/domain"
	"github.com/finovo/erp-backend/internal/dto"
)

// PostingSvcFacade is the ledger posting engine: it converts business
// documents and payments into balanced journal entries and applies the
// balance deltas atomically.
type PostingSvcFacade interface {
	// PostDocument posts an eligible document, returning the created entry.
	PostDocument(ctx context.Context, rc domain.RequestContext, kind domain.DocumentKind, documentID string) (*domain.JournalEntry, error)
	// PostPayment records a payment against a posted bill or invoice and
	// posts its two-line entry, transitioning the document to PAID.
	PostPayment(ctx context.Context, rc domain.RequestContext, req dto.CreatePaymentRequest) (*domain.Payment, error)
}

// JournalSvcFacade defines read and correction operations on journal entries.
type JournalSvcFacade interface {
	// GetEntryByID returns an entry with its lines populated.
	GetEntryByID(ctx context.Context, rc domain.RequestContext, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, rc domain.RequestContext, limit int) ([]domain.JournalEntry, error)
	// ReverseEntry creates a balancing entry with swapped sides and marks
	// the original CANCELLED. Posted rows are never mutated in place.
	ReverseEntry(ctx context.Context, rc domain.RequestContext, entryID string) (*domain.JournalEntry, error)
}
