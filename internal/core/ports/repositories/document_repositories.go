package repositories

import (
	"context"
	"time"

	"github.com/finovo/erp-backend/internal/core/domain"
)

// DocumentRepositoryFacade defines persistence operations for business
// documents and payments.
type DocumentRepositoryFacade interface {
	SaveDocument(ctx context.Context, doc domain.Document) error
	FindDocumentByID(ctx context.Context, companyID, documentID string) (*domain.Document, error)
	ListDocuments(ctx context.Context, companyID string, kind domain.DocumentKind, limit int) ([]domain.Document, error)
	// UpdateDocumentStatus performs the compare-and-swap transition outside
	// any engine transaction (e.g. cancelling a draft). Returns
	// ErrInvalidState when the current status is not in FromStatuses.
	UpdateDocumentStatus(ctx context.Context, update DocumentStatusUpdate, userID string, now time.Time) error

	SavePayment(ctx context.Context, payment domain.Payment) error
	FindPaymentByID(ctx context.Context, companyID, paymentID string) (*domain.Payment, error)
}
