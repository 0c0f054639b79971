package repositories

import (
	"context"
	"time"

	"github.com/finovo/erp-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ApprovalRepositoryFacade defines persistence operations for approval
// workflows, levels and requests.
type ApprovalRepositoryFacade interface {
	// SaveWorkflow persists a workflow and its levels atomically.
	SaveWorkflow(ctx context.Context, workflow domain.ApprovalWorkflow, levels []domain.ApprovalLevel) error
	FindWorkflowByID(ctx context.Context, companyID, workflowID string) (*domain.ApprovalWorkflow, error)
	// FindMatchingWorkflow selects the active workflow of the given type
	// with the highest threshold_amount <= amount; equal thresholds break
	// the tie by earliest creation. Returns ErrNotFound when no workflow
	// matches (the caller auto-approves in that case).
	FindMatchingWorkflow(ctx context.Context, companyID string, wfType domain.WorkflowType, amount decimal.Decimal) (*domain.ApprovalWorkflow, error)
	ListWorkflows(ctx context.Context, companyID string, limit int) ([]domain.ApprovalWorkflow, error)
	DeactivateWorkflow(ctx context.Context, companyID, workflowID, userID string, now time.Time) error
	FindLevelsByWorkflowID(ctx context.Context, workflowID string) ([]domain.ApprovalLevel, error)

	// CreateRequest inserts the request and applies the document status CAS
	// (DRAFT -> PENDING_APPROVAL with the request link) in one transaction.
	CreateRequest(ctx context.Context, request domain.ApprovalRequest, docUpdate DocumentStatusUpdate) error
	FindRequestByID(ctx context.Context, companyID, requestID string) (*domain.ApprovalRequest, error)
	ListRequestsByApprover(ctx context.Context, companyID, approverID string, status domain.RequestStatus, limit int) ([]domain.ApprovalRequest, error)
	// TransitionRequest applies the request CAS and, when docUpdate is
	// non-nil, the document CAS in the same transaction.
	TransitionRequest(ctx context.Context, transition RequestTransition, docUpdate *DocumentStatusUpdate) error
}
