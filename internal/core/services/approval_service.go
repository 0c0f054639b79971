package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finovo/erp-backend/internal/apperrors"
	"github.com/finovo/erp-backend/internal/core/domain"
	portsrepo "github.com/finovo/erp-backend/internal/core/ports/repositories"
	portssvc "github.com/finovo/erp-backend/internal/core/ports/services"
	"github.com/finovo/erp-backend/internal/dto"
	"github.com/finovo/erp-backend/internal/middleware"
)

// approvalDueIn is the default window an assignee has before a request is
// considered overdue.
const approvalDueIn = 72 * time.Hour

// ApprovalService is the approval workflow engine: workflow administration
// plus the request state machine. Every state change goes through a
// compare-and-swap transition in the repository so concurrent decisions on
// the same request cannot both apply.
type ApprovalService struct {
	approvalRepo portsrepo.ApprovalRepositoryFacade
	documentRepo portsrepo.DocumentRepositoryFacade
	notifier     portssvc.Notifier
}

// NewApprovalService creates a new ApprovalService.
func NewApprovalService(
	approvalRepo portsrepo.ApprovalRepositoryFacade,
	documentRepo portsrepo.DocumentRepositoryFacade,
	notifier portssvc.Notifier,
) *ApprovalService {
	return &ApprovalService{
		approvalRepo: approvalRepo,
		documentRepo: documentRepo,
		notifier:     notifier,
	}
}

// CreateWorkflow persists a workflow and its ordered levels.
func (s *ApprovalService) CreateWorkflow(ctx context.Context, rc domain.RequestContext, req dto.CreateWorkflowRequest) (*domain.ApprovalWorkflow, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.ThresholdAmount.IsNegative() {
		return nil, apperrors.NewBadRequestError("threshold amount cannot be negative")
	}
	if err := validateLevels(req.Levels); err != nil {
		return nil, err
	}

	now := time.Now()
	workflow := domain.ApprovalWorkflow{
		WorkflowID:      uuid.NewString(),
		CompanyID:       rc.CompanyID,
		Name:            req.Name,
		Type:            req.WorkflowType,
		ThresholdAmount: req.ThresholdAmount,
		IsActive:        true,
		AutoEscalate:    req.AutoEscalate,
		RequireAll:      req.RequireAll,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     rc.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: rc.UserID,
		},
	}

	levels := make([]domain.ApprovalLevel, 0, len(req.Levels))
	for _, l := range req.Levels {
		levels = append(levels, domain.ApprovalLevel{
			LevelID:         uuid.NewString(),
			WorkflowID:      workflow.WorkflowID,
			Level:           l.Level,
			ApproverRole:    l.ApproverRole,
			ApproverID:      l.ApproverID,
			EscalationHours: l.EscalationHours,
		})
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].Level < levels[j].Level })

	if err := s.approvalRepo.SaveWorkflow(ctx, workflow, levels); err != nil {
		logger.Error("failed to save workflow", "error", err, "name", req.Name)
		return nil, fmt.Errorf("failed to save workflow: %w", err)
	}
	workflow.Levels = levels

	logger.Info("workflow created",
		"workflowID", workflow.WorkflowID,
		"type", workflow.Type,
		"threshold", workflow.ThresholdAmount,
		"levels", len(levels),
	)
	return &workflow, nil
}

// validateLevels enforces unique, contiguous level numbers starting at 1,
// each with a concrete approver.
func validateLevels(levels []dto.WorkflowLevelRequest) error {
	if len(levels) == 0 {
		return apperrors.NewBadRequestError("workflow requires at least one level")
	}
	seen := make(map[int]bool, len(levels))
	for _, l := range levels {
		if l.Level < 1 {
			return apperrors.NewBadRequestError("level numbers start at 1")
		}
		if seen[l.Level] {
			return apperrors.NewBadRequestError(fmt.Sprintf("duplicate level %d", l.Level))
		}
		seen[l.Level] = true
		if l.ApproverID == "" {
			return apperrors.NewBadRequestError(fmt.Sprintf("level %d has no approver", l.Level))
		}
	}
	for i := 1; i <= len(levels); i++ {
		if !seen[i] {
			return apperrors.NewBadRequestError(fmt.Sprintf("level numbers must be contiguous, missing %d", i))
		}
	}
	return nil
}

// ListWorkflows returns the company's workflows.
func (s *ApprovalService) ListWorkflows(ctx context.Context, rc domain.RequestContext, limit int) ([]domain.ApprovalWorkflow, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.approvalRepo.ListWorkflows(ctx, rc.CompanyID, limit)
}

// DeactivateWorkflow stops a workflow from matching new submissions.
// Requests already in flight keep their level chain.
func (s *ApprovalService) DeactivateWorkflow(ctx context.Context, rc domain.RequestContext, workflowID string) error {
	if _, err := s.approvalRepo.FindWorkflowByID(ctx, rc.CompanyID, workflowID); err != nil {
		return err
	}
	return s.approvalRepo.DeactivateWorkflow(ctx, rc.CompanyID, workflowID, rc.UserID, time.Now())
}

// SubmitForApproval routes a draft document into the matching workflow.
// When no active workflow's threshold covers the amount the document
// auto-approves and no request is created (nil, nil).
func (s *ApprovalService) SubmitForApproval(ctx context.Context, rc domain.RequestContext, kind domain.DocumentKind, documentID string) (*domain.ApprovalRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	doc, err := s.documentRepo.FindDocumentByID(ctx, rc.CompanyID, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Kind != kind {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("document %s is a %s, not a %s", documentID, doc.Kind, kind))
	}
	if doc.Status != domain.DocDraft {
		return nil, apperrors.NewConflictError(fmt.Sprintf("cannot submit %s in status %s", doc.Kind, doc.Status))
	}

	wfType := domain.WorkflowTypeForKind(kind)
	now := time.Now()

	workflow, err := s.approvalRepo.FindMatchingWorkflow(ctx, rc.CompanyID, wfType, doc.Total)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Below every threshold: auto-approve without a request.
			update := portsrepo.DocumentStatusUpdate{
				Kind:         doc.Kind,
				DocumentID:   doc.DocumentID,
				CompanyID:    rc.CompanyID,
				FromStatuses: []domain.DocumentStatus{domain.DocDraft},
				ToStatus:     domain.DocApproved,
			}
			if err := s.documentRepo.UpdateDocumentStatus(ctx, update, rc.UserID, now); err != nil {
				return nil, err
			}
			logger.Info("document auto-approved, no workflow matched",
				"documentID", documentID, "kind", kind, "amount", doc.Total)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to match workflow: %w", err)
	}

	levels, err := s.approvalRepo.FindLevelsByWorkflowID(ctx, workflow.WorkflowID)
	if err != nil {
		return nil, fmt.Errorf("failed to load workflow levels: %w", err)
	}
	if len(levels) == 0 {
		return nil, apperrors.NewInternalServerError(fmt.Sprintf("workflow %s has no levels", workflow.WorkflowID))
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].Level < levels[j].Level })
	first := levels[0]

	request := domain.ApprovalRequest{
		RequestID:    uuid.NewString(),
		CompanyID:    rc.CompanyID,
		WorkflowID:   workflow.WorkflowID,
		RequestorID:  rc.UserID,
		ApproverID:   first.ApproverID,
		DocumentKind: doc.Kind,
		DocumentID:   doc.DocumentID,
		Amount:       doc.Total,
		Description:  doc.Description,
		Priority:     domain.PriorityForAmount(wfType, doc.Total),
		DueDate:      now.Add(approvalDueIn),
		Status:       domain.RequestPending,
		CurrentLevel: first.Level,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     rc.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: rc.UserID,
		},
	}

	requestID := request.RequestID
	docUpdate := portsrepo.DocumentStatusUpdate{
		Kind:              doc.Kind,
		DocumentID:        doc.DocumentID,
		CompanyID:         rc.CompanyID,
		FromStatuses:      []domain.DocumentStatus{domain.DocDraft},
		ToStatus:          domain.DocPendingApproval,
		ApprovalRequestID: &requestID,
	}

	if err := s.approvalRepo.CreateRequest(ctx, request, docUpdate); err != nil {
		logger.Error("failed to create approval request", "error", err, "documentID", documentID)
		return nil, err
	}

	s.notifier.RequestAssigned(ctx, request)
	logger.Info("approval request created",
		"requestID", request.RequestID,
		"workflowID", workflow.WorkflowID,
		"approverID", request.ApproverID,
		"priority", request.Priority,
	)
	return &request, nil
}

// ProcessApproval applies an approve or reject decision by the current
// approver. Approval advances to the next level or completes the chain;
// rejection at any level is final.
func (s *ApprovalService) ProcessApproval(ctx context.Context, rc domain.RequestContext, requestID string, action dto.ApprovalAction, comments string) (*domain.ApprovalRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	request, err := s.approvalRepo.FindRequestByID(ctx, rc.CompanyID, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != domain.RequestPending {
		return nil, apperrors.NewConflictError(fmt.Sprintf("request is %s, no further decisions possible", request.Status))
	}
	if request.ApproverID != rc.UserID {
		return nil, apperrors.NewForbiddenError("only the assigned approver can act on this request")
	}

	now := time.Now()
	mergedComments := mergeComments(request.Comments, rc.UserID, request.CurrentLevel, comments)

	switch action {
	case dto.ActionReject:
		transition := portsrepo.RequestTransition{
			RequestID:     request.RequestID,
			CompanyID:     rc.CompanyID,
			ExpectedLevel: request.CurrentLevel,
			NewStatus:     domain.RequestRejected,
			NewLevel:      request.CurrentLevel,
			NewApproverID: request.ApproverID,
			Comments:      mergedComments,
			RejectedAt:    &now,
			UpdatedBy:     rc.UserID,
			UpdatedAt:     now,
		}
		docUpdate := &portsrepo.DocumentStatusUpdate{
			Kind:         request.DocumentKind,
			DocumentID:   request.DocumentID,
			CompanyID:    rc.CompanyID,
			FromStatuses: []domain.DocumentStatus{domain.DocPendingApproval},
			ToStatus:     domain.DocRejected,
		}
		if err := s.approvalRepo.TransitionRequest(ctx, transition, docUpdate); err != nil {
			return nil, err
		}
		request.Status = domain.RequestRejected
		request.Comments = mergedComments
		request.RejectedAt = &now
		s.notifier.RequestRejected(ctx, *request)
		logger.Info("approval request rejected", "requestID", requestID, "level", request.CurrentLevel)
		return request, nil

	case dto.ActionApprove:
		levels, err := s.approvalRepo.FindLevelsByWorkflowID(ctx, request.WorkflowID)
		if err != nil {
			return nil, fmt.Errorf("failed to load workflow levels: %w", err)
		}
		sort.Slice(levels, func(i, j int) bool { return levels[i].Level < levels[j].Level })

		var next *domain.ApprovalLevel
		for i := range levels {
			if levels[i].Level > request.CurrentLevel {
				next = &levels[i]
				break
			}
		}

		if next != nil {
			transition := portsrepo.RequestTransition{
				RequestID:     request.RequestID,
				CompanyID:     rc.CompanyID,
				ExpectedLevel: request.CurrentLevel,
				NewStatus:     domain.RequestPending,
				NewLevel:      next.Level,
				NewApproverID: next.ApproverID,
				Comments:      mergedComments,
				UpdatedBy:     rc.UserID,
				UpdatedAt:     now,
			}
			if err := s.approvalRepo.TransitionRequest(ctx, transition, nil); err != nil {
				return nil, err
			}
			request.CurrentLevel = next.Level
			request.ApproverID = next.ApproverID
			request.Comments = mergedComments
			s.notifier.RequestAssigned(ctx, *request)
			logger.Info("approval advanced", "requestID", requestID, "level", next.Level, "approverID", next.ApproverID)
			return request, nil
		}

		transition := portsrepo.RequestTransition{
			RequestID:     request.RequestID,
			CompanyID:     rc.CompanyID,
			ExpectedLevel: request.CurrentLevel,
			NewStatus:     domain.RequestCompleted,
			NewLevel:      request.CurrentLevel,
			NewApproverID: request.ApproverID,
			Comments:      mergedComments,
			CompletedAt:   &now,
			UpdatedBy:     rc.UserID,
			UpdatedAt:     now,
		}
		docUpdate := &portsrepo.DocumentStatusUpdate{
			Kind:         request.DocumentKind,
			DocumentID:   request.DocumentID,
			CompanyID:    rc.CompanyID,
			FromStatuses: []domain.DocumentStatus{domain.DocPendingApproval},
			ToStatus:     domain.DocApproved,
		}
		if err := s.approvalRepo.TransitionRequest(ctx, transition, docUpdate); err != nil {
			return nil, err
		}
		request.Status = domain.RequestCompleted
		request.Comments = mergedComments
		request.CompletedAt = &now
		s.notifier.RequestCompleted(ctx, *request)
		logger.Info("approval request completed", "requestID", requestID, "documentID", request.DocumentID)
		return request, nil
	}

	return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown action %s", action))
}

// mergeComments appends a decision note to the request's running comment
// trail.
func mergeComments(existing, userID string, level int, comments string) string {
	if strings.TrimSpace(comments) == "" {
		return existing
	}
	note := fmt.Sprintf("[L%d %s] %s", level, userID, comments)
	if existing == "" {
		return note
	}
	return existing + "\n" + note
}

// CancelRequest withdraws a still-pending request and cancels the
// originating document in the same transaction.
func (s *ApprovalService) CancelRequest(ctx context.Context, rc domain.RequestContext, requestID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	request, err := s.approvalRepo.FindRequestByID(ctx, rc.CompanyID, requestID)
	if err != nil {
		return err
	}
	if request.Status != domain.RequestPending {
		return apperrors.NewConflictError(fmt.Sprintf("request is %s, cannot cancel", request.Status))
	}

	now := time.Now()
	transition := portsrepo.RequestTransition{
		RequestID:     request.RequestID,
		CompanyID:     rc.CompanyID,
		ExpectedLevel: request.CurrentLevel,
		NewStatus:     domain.RequestCancelled,
		NewLevel:      request.CurrentLevel,
		NewApproverID: request.ApproverID,
		Comments:      request.Comments,
		UpdatedBy:     rc.UserID,
		UpdatedAt:     now,
	}
	docUpdate := &portsrepo.DocumentStatusUpdate{
		Kind:         request.DocumentKind,
		DocumentID:   request.DocumentID,
		CompanyID:    rc.CompanyID,
		FromStatuses: []domain.DocumentStatus{domain.DocPendingApproval},
		ToStatus:     domain.DocCancelled,
	}
	if err := s.approvalRepo.TransitionRequest(ctx, transition, docUpdate); err != nil {
		return err
	}
	logger.Info("approval request cancelled", "requestID", requestID, "documentID", request.DocumentID)
	return nil
}

// GetRequestByID fetches a request scoped to the caller's company.
func (s *ApprovalService) GetRequestByID(ctx context.Context, rc domain.RequestContext, requestID string) (*domain.ApprovalRequest, error) {
	return s.approvalRepo.FindRequestByID(ctx, rc.CompanyID, requestID)
}

// ListPendingForApprover returns the caller's pending approval queue.
func (s *ApprovalService) ListPendingForApprover(ctx context.Context, rc domain.RequestContext, limit int) ([]domain.ApprovalRequest, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.approvalRepo.ListRequestsByApprover(ctx, rc.CompanyID, rc.UserID, domain.RequestPending, limit)
}
