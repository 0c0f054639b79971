package services

import (
	"context"

	"github.com/finovo/erp-backend/internal/core/domain"
	"github.com/finovo/erp-backend/internal/dto"
)

// ApprovalSvcFacade is the approval workflow engine: workflow
// administration plus the request state machine.
type ApprovalSvcFacade interface {
	CreateWorkflow(ctx context.Context, rc domain.RequestContext, req dto.CreateWorkflowRequest) (*domain.ApprovalWorkflow, error)
	ListWorkflows(ctx context.Context, rc domain.RequestContext, limit int) ([]domain.ApprovalWorkflow, error)
	DeactivateWorkflow(ctx context.Context, rc domain.RequestContext, workflowID string) error

	// SubmitForApproval routes a draft document into the matching workflow.
	// A nil request with nil error means no workflow matched and the
	// document auto-approved.
	SubmitForApproval(ctx context.Context, rc domain.RequestContext, kind domain.DocumentKind, documentID string) (*domain.ApprovalRequest, error)
	// ProcessApproval applies an approve or reject action by the current
	// approver and returns the request in its new state.
	ProcessApproval(ctx context.Context, rc domain.RequestContext, requestID string, action dto.ApprovalAction, comments string) (*domain.ApprovalRequest, error)
	// CancelRequest moves a still-pending request to CANCELLED. Invoked by
	// the originating document's cancel action.
	CancelRequest(ctx context.Context, rc domain.RequestContext, requestID string) error
	GetRequestByID(ctx context.Context, rc domain.RequestContext, requestID string) (*domain.ApprovalRequest, error)
	ListPendingForApprover(ctx context.Context, rc domain.RequestContext, limit int) ([]domain.ApprovalRequest, error)
}

// Notifier receives fire-and-forget hooks on request state changes.
// Implementations must never block or fail the calling transition.
type Notifier interface {
	RequestAssigned(ctx context.Context, request domain.ApprovalRequest)
	RequestCompleted(ctx context.Context, request domain.ApprovalRequest)
	RequestRejected(ctx context.Context, request domain.ApprovalRequest)
}
