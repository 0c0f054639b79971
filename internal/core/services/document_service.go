package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finovo/erp-backend/internal/apperrors"
	"github.com/finovo/erp-backend/internal/core/domain"
	portsrepo "github.com/finovo/erp-backend/internal/core/ports/repositories"
	portssvc "github.com/finovo/erp-backend/internal/core/ports/services"
	"github.com/finovo/erp-backend/internal/dto"
	"github.com/finovo/erp-backend/internal/middleware"
)

// DocumentService manages the document lifecycle, delegating posting to the
// posting engine and submission to the approval engine.
type DocumentService struct {
	documentRepo portsrepo.DocumentRepositoryFacade
	postingSvc   portssvc.PostingSvcFacade
	approvalSvc  portssvc.ApprovalSvcFacade
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(
	documentRepo portsrepo.DocumentRepositoryFacade,
	postingSvc portssvc.PostingSvcFacade,
	approvalSvc portssvc.ApprovalSvcFacade,
) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		postingSvc:   postingSvc,
		approvalSvc:  approvalSvc,
	}
}

// CreateDocument validates and stores a draft document.
func (s *DocumentService) CreateDocument(ctx context.Context, rc domain.RequestContext, req dto.CreateDocumentRequest) (*domain.Document, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateDocumentAmounts(req); err != nil {
		return nil, err
	}
	switch req.Kind {
	case domain.KindBill, domain.KindAssetPurchase:
		if req.SupplierID == nil || *req.SupplierID == "" {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("%s requires a supplier", req.Kind))
		}
	case domain.KindInvoice:
		if req.CustomerID == nil || *req.CustomerID == "" {
			return nil, apperrors.NewBadRequestError("invoice requires a customer")
		}
	}

	now := time.Now()
	doc := domain.Document{
		DocumentID:     uuid.NewString(),
		CompanyID:      rc.CompanyID,
		Kind:           req.Kind,
		DocumentNumber: req.DocumentNumber,
		DocumentDate:   req.DocumentDate,
		Description:    req.Description,
		SupplierID:     req.SupplierID,
		CustomerID:     req.CustomerID,
		Subtotal:       req.Subtotal,
		Tax:            req.Tax,
		Total:          req.Total,
		Status:         domain.DocDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     rc.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: rc.UserID,
		},
	}

	if err := s.documentRepo.SaveDocument(ctx, doc); err != nil {
		logger.Error("failed to save document", "error", err, "kind", req.Kind, "number", req.DocumentNumber)
		return nil, fmt.Errorf("failed to save document: %w", err)
	}
	logger.Info("document created", "documentID", doc.DocumentID, "kind", doc.Kind, "total", doc.Total)
	return &doc, nil
}

func validateDocumentAmounts(req dto.CreateDocumentRequest) error {
	if !req.Subtotal.IsPositive() {
		return apperrors.NewBadRequestError("subtotal must be positive")
	}
	if req.Tax.IsNegative() {
		return apperrors.NewBadRequestError("tax cannot be negative")
	}
	if !req.Subtotal.Add(req.Tax).Equal(req.Total) {
		return apperrors.NewBadRequestError(fmt.Sprintf(
			"subtotal %s plus tax %s does not equal total %s", req.Subtotal, req.Tax, req.Total))
	}
	return nil
}

// GetDocumentByID fetches a document scoped to the caller's company.
func (s *DocumentService) GetDocumentByID(ctx context.Context, rc domain.RequestContext, documentID string) (*domain.Document, error) {
	return s.documentRepo.FindDocumentByID(ctx, rc.CompanyID, documentID)
}

// ListDocuments returns the company's documents, optionally filtered by kind.
func (s *DocumentService) ListDocuments(ctx context.Context, rc domain.RequestContext, kind domain.DocumentKind, limit int) ([]domain.Document, error) {
	if kind != "" && !kind.Valid() {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown document kind %s", kind))
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.documentRepo.ListDocuments(ctx, rc.CompanyID, kind, limit)
}

// SubmitForApproval routes a draft document into the approval engine. The
// returned request is nil when no workflow matched and the document
// auto-approved.
func (s *DocumentService) SubmitForApproval(ctx context.Context, rc domain.RequestContext, documentID string) (*domain.Document, *domain.ApprovalRequest, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, rc.CompanyID, documentID)
	if err != nil {
		return nil, nil, err
	}

	request, err := s.approvalSvc.SubmitForApproval(ctx, rc, doc.Kind, documentID)
	if err != nil {
		return nil, nil, err
	}

	updated, err := s.documentRepo.FindDocumentByID(ctx, rc.CompanyID, documentID)
	if err != nil {
		return nil, nil, err
	}
	return updated, request, nil
}

// PostDocument posts a document through the posting engine and returns the
// document in its POSTED state.
func (s *DocumentService) PostDocument(ctx context.Context, rc domain.RequestContext, documentID string) (*domain.Document, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, rc.CompanyID, documentID)
	if err != nil {
		return nil, err
	}

	if _, err := s.postingSvc.PostDocument(ctx, rc, doc.Kind, documentID); err != nil {
		return nil, err
	}
	return s.documentRepo.FindDocumentByID(ctx, rc.CompanyID, documentID)
}

// CancelDocument cancels a draft or approved document directly, or
// withdraws the linked approval request when one is pending. Posted
// documents cannot be cancelled; corrections go through ReverseEntry.
func (s *DocumentService) CancelDocument(ctx context.Context, rc domain.RequestContext, documentID string) (*domain.Document, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	doc, err := s.documentRepo.FindDocumentByID(ctx, rc.CompanyID, documentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	switch doc.Status {
	case domain.DocDraft, domain.DocApproved, domain.DocRejected:
		update := portsrepo.DocumentStatusUpdate{
			Kind:         doc.Kind,
			DocumentID:   doc.DocumentID,
			CompanyID:    rc.CompanyID,
			FromStatuses: []domain.DocumentStatus{doc.Status},
			ToStatus:     domain.DocCancelled,
		}
		if err := s.documentRepo.UpdateDocumentStatus(ctx, update, rc.UserID, now); err != nil {
			return nil, err
		}
	case domain.DocPendingApproval:
		if doc.ApprovalRequestID == nil {
			return nil, apperrors.NewInternalServerError("pending document has no approval request link")
		}
		if err := s.approvalSvc.CancelRequest(ctx, rc, *doc.ApprovalRequestID); err != nil {
			return nil, err
		}
	default:
		return nil, apperrors.NewConflictError(fmt.Sprintf("cannot cancel %s in status %s", doc.Kind, doc.Status))
	}

	logger.Info("document cancelled", "documentID", documentID, "previousStatus", doc.Status)
	return s.documentRepo.FindDocumentByID(ctx, rc.CompanyID, documentID)
}
