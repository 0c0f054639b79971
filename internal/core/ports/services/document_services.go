package services

import (
	"context"

	"github.com/finovo/erp-backend/internal/core/domain"
	"github.com/finovo/erp-backend/internal/dto"
)

// DocumentSvcFacade orchestrates document lifecycle operations, delegating
// to the posting and approval engines for the post and submit actions.
type DocumentSvcFacade interface {
	CreateDocument(ctx context.Context, rc domain.RequestContext, req dto.CreateDocumentRequest) (*domain.Document, error)
	GetDocumentByID(ctx context.Context, rc domain.RequestContext, documentID string) (*domain.Document, error)
	ListDocuments(ctx context.Context, rc domain.RequestContext, kind domain.DocumentKind, limit int) ([]domain.Document, error)
	// SubmitForApproval submits a draft document; the returned request is
	// nil when the document auto-approved.
	SubmitForApproval(ctx context.Context, rc domain.RequestContext, documentID string) (*domain.Document, *domain.ApprovalRequest, error)
	PostDocument(ctx context.Context, rc domain.RequestContext, documentID string) (*domain.Document, error)
	CancelDocument(ctx context.Context, rc domain.RequestContext, documentID string) (*domain.Document, error)
}
