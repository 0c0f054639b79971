package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finovo/erp-backend/internal/apperrors"
	"github.com/finovo/erp-backend/internal/core/domain"
	portsrepo "github.com/finovo/erp-backend/internal/core/ports/repositories"
	"github.com/finovo/erp-backend/internal/core/services"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo  *MockJournalRepository
	mockAccountRepo  *MockAccountRepository
	mockDocumentRepo *MockDocumentRepository
	service          *services.JournalService

	companyID string
	userID    string
	rc        domain.RequestContext

	expenseAccount domain.Account
	payableAccount domain.Account
}

func (s *JournalServiceTestSuite) SetupTest() {
	s.mockJournalRepo = new(MockJournalRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockDocumentRepo = new(MockDocumentRepository)
	s.service = services.NewJournalService(s.mockJournalRepo, s.mockAccountRepo, s.mockDocumentRepo)

	s.companyID = uuid.NewString()
	s.userID = uuid.NewString()
	s.rc = domain.RequestContext{UserID: s.userID, CompanyID: s.companyID}

	s.expenseAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   s.companyID,
		Name:        domain.AccountNameOperatingExpenses,
		AccountType: domain.Expense,
		IsActive:    true,
	}
	s.payableAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   s.companyID,
		Name:        domain.AccountNameAccountsPayable,
		AccountType: domain.Liability,
		IsActive:    true,
	}
}

func (s *JournalServiceTestSuite) postedEntry() (*domain.JournalEntry, []domain.JournalLine) {
	postedAt := time.Now().Add(-time.Hour)
	entry := &domain.JournalEntry{
		EntryID:     uuid.NewString(),
		CompanyID:   s.companyID,
		EntryNumber: "JE-000010",
		EntryDate:   postedAt,
		Description: "Office equipment",
		SourceKind:  domain.KindBill,
		SourceID:    uuid.NewString(),
		TotalDebit:  decimal.NewFromInt(1000),
		TotalCredit: decimal.NewFromInt(1000),
		Status:      domain.EntryPosted,
		PostedAt:    &postedAt,
	}
	lines := []domain.JournalLine{
		{
			LineID:      uuid.NewString(),
			EntryID:     entry.EntryID,
			AccountID:   s.expenseAccount.AccountID,
			Description: "Office equipment",
			DebitAmount: decimal.NewFromInt(1000),
			LineNumber:  1,
		},
		{
			LineID:       uuid.NewString(),
			EntryID:      entry.EntryID,
			AccountID:    s.payableAccount.AccountID,
			Description:  "Office equipment",
			CreditAmount: decimal.NewFromInt(1000),
			LineNumber:   2,
		},
	}
	return entry, lines
}

func (s *JournalServiceTestSuite) TestGetEntryLoadsLines() {
	ctx := context.Background()
	entry, lines := s.postedEntry()

	s.mockJournalRepo.On("FindEntryByID", ctx, s.companyID, entry.EntryID).Return(entry, nil).Once()
	s.mockJournalRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(lines, nil).Once()

	got, err := s.service.GetEntryByID(ctx, s.rc, entry.EntryID)

	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Len(got.Lines, 2)
}

func (s *JournalServiceTestSuite) TestReverseEntrySwapsSidesAndCancelsDocument() {
	ctx := context.Background()
	entry, lines := s.postedEntry()

	s.mockJournalRepo.On("FindEntryByID", ctx, s.companyID, entry.EntryID).Return(entry, nil).Once()
	s.mockJournalRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(lines, nil).Once()
	s.mockAccountRepo.On("FindAccountByID", ctx, s.companyID, s.expenseAccount.AccountID).Return(&s.expenseAccount, nil).Once()
	s.mockAccountRepo.On("FindAccountByID", ctx, s.companyID, s.payableAccount.AccountID).Return(&s.payableAccount, nil).Once()
	s.mockJournalRepo.On("NextEntryNumber", ctx).Return("JE-000011", nil).Once()

	var savedEntry domain.JournalEntry
	var savedLines []domain.JournalLine
	var savedChanges map[string]decimal.Decimal
	var savedDocUpdate *portsrepo.DocumentStatusUpdate
	var savedReversal *portsrepo.ReversalLink
	s.mockJournalRepo.On("SaveEntry", ctx,
		mock.AnythingOfType("domain.JournalEntry"),
		mock.AnythingOfType("[]domain.JournalLine"),
		mock.AnythingOfType("map[string]decimal.Decimal"),
		mock.AnythingOfType("*repositories.DocumentStatusUpdate"),
		mock.AnythingOfType("*repositories.ReversalLink"),
	).Run(func(args mock.Arguments) {
		savedEntry = args.Get(1).(domain.JournalEntry)
		savedLines = args.Get(2).([]domain.JournalLine)
		savedChanges = args.Get(3).(map[string]decimal.Decimal)
		savedDocUpdate = args.Get(4).(*portsrepo.DocumentStatusUpdate)
		savedReversal = args.Get(5).(*portsrepo.ReversalLink)
	}).Return(nil).Once()

	reversing, err := s.service.ReverseEntry(ctx, s.rc, entry.EntryID)

	s.Require().NoError(err)
	s.Require().NotNil(reversing)
	s.Equal("JE-000011", reversing.EntryNumber)
	s.Require().NotNil(reversing.ReversalOfID)
	s.Equal(entry.EntryID, *reversing.ReversalOfID)

	// Sides swap: the expense line is now a credit, the payable line a debit.
	s.Require().Len(savedLines, 2)
	s.True(savedLines[0].CreditAmount.Equal(decimal.NewFromInt(1000)))
	s.True(savedLines[0].DebitAmount.IsZero())
	s.True(savedLines[1].DebitAmount.Equal(decimal.NewFromInt(1000)))
	s.True(savedEntry.TotalDebit.Equal(savedEntry.TotalCredit))

	// Balances roll back to where they were before the original posting.
	s.True(savedChanges[s.expenseAccount.AccountID].Equal(decimal.NewFromInt(-1000)))
	s.True(savedChanges[s.payableAccount.AccountID].Equal(decimal.NewFromInt(-1000)))

	s.Require().NotNil(savedDocUpdate)
	s.Equal(domain.DocCancelled, savedDocUpdate.ToStatus)
	s.Equal([]domain.DocumentStatus{domain.DocPosted}, savedDocUpdate.FromStatuses)

	s.Require().NotNil(savedReversal)
	s.Equal(entry.EntryID, savedReversal.OriginalEntryID)
	s.Equal(reversing.EntryID, savedReversal.ReversingEntryID)
}

func (s *JournalServiceTestSuite) TestReverseRejectsAlreadyReversedEntry() {
	ctx := context.Background()
	entry, _ := s.postedEntry()
	reversedBy := uuid.NewString()
	entry.ReversedByID = &reversedBy

	s.mockJournalRepo.On("FindEntryByID", ctx, s.companyID, entry.EntryID).Return(entry, nil).Once()

	reversing, err := s.service.ReverseEntry(ctx, s.rc, entry.EntryID)

	s.Require().Error(err)
	s.Nil(reversing)
	s.ErrorIs(err, apperrors.ErrInvalidState)
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestReverseRejectsCancelledEntry() {
	ctx := context.Background()
	entry, _ := s.postedEntry()
	entry.Status = domain.EntryCancelled

	s.mockJournalRepo.On("FindEntryByID", ctx, s.companyID, entry.EntryID).Return(entry, nil).Once()

	reversing, err := s.service.ReverseEntry(ctx, s.rc, entry.EntryID)

	s.Require().Error(err)
	s.Nil(reversing)
	s.ErrorIs(err, apperrors.ErrInvalidState)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
