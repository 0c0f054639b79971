package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/finovo/erp-backend/internal/core/domain"
	portsrepo "github.com/finovo/erp-backend/internal/core/ports/repositories"
	portssvc "github.com/finovo/erp-backend/internal/core/ports/services"
	"github.com/finovo/erp-backend/internal/dto"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryWithTx = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByName(ctx context.Context, companyID string, accountType domain.AccountType, name string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, accountType, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, companyID string, limit int) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, companyID, accountID, userID string, now time.Time) error {
	args := m.Called(ctx, companyID, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine, balanceChanges map[string]decimal.Decimal, docUpdate *portsrepo.DocumentStatusUpdate, reversal *portsrepo.ReversalLink) error {
	args := m.Called(ctx, entry, lines, balanceChanges, docUpdate, reversal)
	return args.Error(0)
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntriesByCompany(ctx context.Context, companyID string, limit int) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) NextEntryNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// --- Mock DocumentRepository ---

type MockDocumentRepository struct {
	mock.Mock
}

var _ portsrepo.DocumentRepositoryFacade = (*MockDocumentRepository)(nil)

func (m *MockDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, companyID, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, companyID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListDocuments(ctx context.Context, companyID string, kind domain.DocumentKind, limit int) ([]domain.Document, error) {
	args := m.Called(ctx, companyID, kind, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) UpdateDocumentStatus(ctx context.Context, update portsrepo.DocumentStatusUpdate, userID string, now time.Time) error {
	args := m.Called(ctx, update, userID, now)
	return args.Error(0)
}

func (m *MockDocumentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockDocumentRepository) FindPaymentByID(ctx context.Context, companyID, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, companyID, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

// --- Mock ApprovalRepository ---

type MockApprovalRepository struct {
	mock.Mock
}

var _ portsrepo.ApprovalRepositoryFacade = (*MockApprovalRepository)(nil)

func (m *MockApprovalRepository) SaveWorkflow(ctx context.Context, workflow domain.ApprovalWorkflow, levels []domain.ApprovalLevel) error {
	args := m.Called(ctx, workflow, levels)
	return args.Error(0)
}

func (m *MockApprovalRepository) FindWorkflowByID(ctx context.Context, companyID, workflowID string) (*domain.ApprovalWorkflow, error) {
	args := m.Called(ctx, companyID, workflowID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalWorkflow), args.Error(1)
}

func (m *MockApprovalRepository) FindMatchingWorkflow(ctx context.Context, companyID string, wfType domain.WorkflowType, amount decimal.Decimal) (*domain.ApprovalWorkflow, error) {
	args := m.Called(ctx, companyID, wfType, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalWorkflow), args.Error(1)
}

func (m *MockApprovalRepository) ListWorkflows(ctx context.Context, companyID string, limit int) ([]domain.ApprovalWorkflow, error) {
	args := m.Called(ctx, companyID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalWorkflow), args.Error(1)
}

func (m *MockApprovalRepository) DeactivateWorkflow(ctx context.Context, companyID, workflowID, userID string, now time.Time) error {
	args := m.Called(ctx, companyID, workflowID, userID, now)
	return args.Error(0)
}

func (m *MockApprovalRepository) FindLevelsByWorkflowID(ctx context.Context, workflowID string) ([]domain.ApprovalLevel, error) {
	args := m.Called(ctx, workflowID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalLevel), args.Error(1)
}

func (m *MockApprovalRepository) CreateRequest(ctx context.Context, request domain.ApprovalRequest, docUpdate portsrepo.DocumentStatusUpdate) error {
	args := m.Called(ctx, request, docUpdate)
	return args.Error(0)
}

func (m *MockApprovalRepository) FindRequestByID(ctx context.Context, companyID, requestID string) (*domain.ApprovalRequest, error) {
	args := m.Called(ctx, companyID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRequest), args.Error(1)
}

func (m *MockApprovalRepository) ListRequestsByApprover(ctx context.Context, companyID, approverID string, status domain.RequestStatus, limit int) ([]domain.ApprovalRequest, error) {
	args := m.Called(ctx, companyID, approverID, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalRequest), args.Error(1)
}

func (m *MockApprovalRepository) TransitionRequest(ctx context.Context, transition portsrepo.RequestTransition, docUpdate *portsrepo.DocumentStatusUpdate) error {
	args := m.Called(ctx, transition, docUpdate)
	return args.Error(0)
}

// --- Mock PostingService ---

type MockPostingService struct {
	mock.Mock
}

var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

func (m *MockPostingService) PostDocument(ctx context.Context, rc domain.RequestContext, kind domain.DocumentKind, documentID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, rc, kind, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockPostingService) PostPayment(ctx context.Context, rc domain.RequestContext, req dto.CreatePaymentRequest) (*domain.Payment, error) {
	args := m.Called(ctx, rc, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

// --- Mock ApprovalService ---

type MockApprovalService struct {
	mock.Mock
}

var _ portssvc.ApprovalSvcFacade = (*MockApprovalService)(nil)

func (m *MockApprovalService) CreateWorkflow(ctx context.Context, rc domain.RequestContext, req dto.CreateWorkflowRequest) (*domain.ApprovalWorkflow, error) {
	args := m.Called(ctx, rc, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalWorkflow), args.Error(1)
}

func (m *MockApprovalService) ListWorkflows(ctx context.Context, rc domain.RequestContext, limit int) ([]domain.ApprovalWorkflow, error) {
	args := m.Called(ctx, rc, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalWorkflow), args.Error(1)
}

func (m *MockApprovalService) DeactivateWorkflow(ctx context.Context, rc domain.RequestContext, workflowID string) error {
	args := m.Called(ctx, rc, workflowID)
	return args.Error(0)
}

func (m *MockApprovalService) SubmitForApproval(ctx context.Context, rc domain.RequestContext, kind domain.DocumentKind, documentID string) (*domain.ApprovalRequest, error) {
	args := m.Called(ctx, rc, kind, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRequest), args.Error(1)
}

func (m *MockApprovalService) ProcessApproval(ctx context.Context, rc domain.RequestContext, requestID string, action dto.ApprovalAction, comments string) (*domain.ApprovalRequest, error) {
	args := m.Called(ctx, rc, requestID, action, comments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRequest), args.Error(1)
}

func (m *MockApprovalService) CancelRequest(ctx context.Context, rc domain.RequestContext, requestID string) error {
	args := m.Called(ctx, rc, requestID)
	return args.Error(0)
}

func (m *MockApprovalService) GetRequestByID(ctx context.Context, rc domain.RequestContext, requestID string) (*domain.ApprovalRequest, error) {
	args := m.Called(ctx, rc, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalRequest), args.Error(1)
}

func (m *MockApprovalService) ListPendingForApprover(ctx context.Context, rc domain.RequestContext, limit int) ([]domain.ApprovalRequest, error) {
	args := m.Called(ctx, rc, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApprovalRequest), args.Error(1)
}

// --- Mock Notifier ---

type MockNotifier struct {
	mock.Mock
}

var _ portssvc.Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) RequestAssigned(ctx context.Context, request domain.ApprovalRequest) {
	m.Called(ctx, request)
}

func (m *MockNotifier) RequestCompleted(ctx context.Context, request domain.ApprovalRequest) {
	m.Called(ctx, request)
}

func (m *MockNotifier) RequestRejected(ctx context.Context, request domain.ApprovalRequest) {
	m.Called(ctx, request)
}
