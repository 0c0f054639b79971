package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finovo/erp-backend/internal/apperrors"
	"github.com/finovo/erp-backend/internal/core/domain"
	portsrepo "github.com/finovo/erp-backend/internal/core/ports/repositories"
	"github.com/finovo/erp-backend/internal/middleware"
	"github.com/finovo/erp-backend/internal/utils/accounting"
)

// JournalService implements journal entry reads and the reversing-entry
// correction flow. Posted entries are never mutated; a reversal is a new
// entry with swapped sides that cancels the original.
type JournalService struct {
	journalRepo  portsrepo.JournalRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	documentRepo portsrepo.DocumentRepositoryFacade
}

// NewJournalService creates a new JournalService.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	documentRepo portsrepo.DocumentRepositoryFacade,
) *JournalService {
	return &JournalService{
		journalRepo:  journalRepo,
		accountRepo:  accountRepo,
		documentRepo: documentRepo,
	}
}

// GetEntryByID returns an entry with its lines populated.
func (s *JournalService) GetEntryByID(ctx context.Context, rc domain.RequestContext, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, rc.CompanyID, entryID)
	if err != nil {
		return nil, err
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entry lines: %w", err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries returns the company's journal, newest first.
func (s *JournalService) ListEntries(ctx context.Context, rc domain.RequestContext, limit int) ([]domain.JournalEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.journalRepo.ListEntriesByCompany(ctx, rc.CompanyID, limit)
}

// ReverseEntry creates a balancing entry with debit and credit sides
// swapped, marks the original CANCELLED and, when the source document is
// still POSTED, moves it to CANCELLED in the same transaction. Entries that
// were already reversed, or whose document has since been paid, are
// rejected.
func (s *JournalService) ReverseEntry(ctx context.Context, rc domain.RequestContext, entryID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.journalRepo.FindEntryByID(ctx, rc.CompanyID, entryID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.EntryPosted {
		return nil, apperrors.NewConflictError(fmt.Sprintf("cannot reverse entry in status %s", original.Status))
	}
	if original.ReversedByID != nil {
		return nil, apperrors.NewConflictError("entry has already been reversed")
	}

	originalLines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entry lines: %w", err)
	}
	if len(originalLines) == 0 {
		return nil, apperrors.NewInternalServerError("posted entry has no lines")
	}

	// Account types are needed to sign the balance deltas of the swapped
	// lines. Each account appears once per entry in practice.
	accountTypes := make(map[string]domain.AccountType, len(originalLines))
	for _, line := range originalLines {
		if _, ok := accountTypes[line.AccountID]; ok {
			continue
		}
		account, err := s.accountRepo.FindAccountByID(ctx, rc.CompanyID, line.AccountID)
		if err != nil {
			return nil, fmt.Errorf("failed to load account %s: %w", line.AccountID, err)
		}
		accountTypes[line.AccountID] = account.AccountType
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     rc.UserID,
		LastUpdatedAt: now,
		LastUpdatedBy: rc.UserID,
	}

	reversingID := uuid.NewString()
	reversingLines := make([]domain.JournalLine, 0, len(originalLines))
	balanceChanges := make(map[string]decimal.Decimal, len(originalLines))
	for i, line := range originalLines {
		reversed := domain.JournalLine{
			LineID:       uuid.NewString(),
			EntryID:      reversingID,
			AccountID:    line.AccountID,
			Description:  fmt.Sprintf("Reversal: %s", line.Description),
			DebitAmount:  line.CreditAmount,
			CreditAmount: line.DebitAmount,
			LineNumber:   i + 1,
			AuditFields:  audit,
		}
		reversingLines = append(reversingLines, reversed)

		signed, err := accounting.CalculateSignedAmount(reversed, accountTypes[line.AccountID])
		if err != nil {
			return nil, apperrors.NewInternalServerError(err.Error())
		}
		balanceChanges[line.AccountID] = balanceChanges[line.AccountID].Add(signed)
	}

	if err := accounting.ValidateEntryBalance(reversingLines); err != nil {
		return nil, apperrors.NewInternalServerError(fmt.Sprintf("reversal does not balance: %v", err))
	}

	entryNumber, err := s.journalRepo.NextEntryNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve entry number: %w", err)
	}

	postedAt := now
	originalID := original.EntryID
	reversing := domain.JournalEntry{
		EntryID:      reversingID,
		CompanyID:    rc.CompanyID,
		EntryNumber:  entryNumber,
		EntryDate:    now,
		Description:  fmt.Sprintf("Reversal of %s: %s", original.EntryNumber, original.Description),
		SourceKind:   original.SourceKind,
		SourceID:     original.SourceID,
		TotalDebit:   original.TotalCredit,
		TotalCredit:  original.TotalDebit,
		Status:       domain.EntryPosted,
		PostedAt:     &postedAt,
		ReversalOfID: &originalID,
		AuditFields:  audit,
	}

	docUpdate := &portsrepo.DocumentStatusUpdate{
		Kind:         original.SourceKind,
		DocumentID:   original.SourceID,
		CompanyID:    rc.CompanyID,
		FromStatuses: []domain.DocumentStatus{domain.DocPosted},
		ToStatus:     domain.DocCancelled,
	}
	reversal := &portsrepo.ReversalLink{
		OriginalEntryID:  original.EntryID,
		ReversingEntryID: reversingID,
	}

	if err := s.journalRepo.SaveEntry(ctx, reversing, reversingLines, balanceChanges, docUpdate, reversal); err != nil {
		logger.Error("failed to reverse entry", "error", err, "entryID", entryID)
		return nil, err
	}

	reversing.Lines = reversingLines
	logger.Info("entry reversed",
		"originalEntryID", original.EntryID,
		"reversingEntryID", reversingID,
		"entryNumber", entryNumber,
	)
	return &reversing, nil
}
