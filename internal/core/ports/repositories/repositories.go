package repositories

import (
	"time"

	"github.com/finovo/erp-backend/internal/core/domain"
)

// DocumentStatusUpdate describes a compare-and-swap status transition
// applied to a document row inside a posting or approval transaction.
// The update only takes effect when the document's current status is one
// of FromStatuses; zero affected rows surfaces as ErrInvalidState so that
// concurrent check-then-act races fail instead of double-applying.
type DocumentStatusUpdate struct {
	Kind              domain.DocumentKind
	DocumentID        string
	CompanyID         string
	FromStatuses      []domain.DocumentStatus
	ToStatus          domain.DocumentStatus
	JournalEntryID    *string
	ApprovalRequestID *string
	PostedAt          *time.Time
}

// ReversalLink marks the original entry as cancelled and links it to the
// reversing entry, inside the same transaction that saves the reversal.
type ReversalLink struct {
	OriginalEntryID  string
	ReversingEntryID string
}

// RequestTransition is the compare-and-swap state change for an approval
// request. The update applies only while the request is still PENDING at
// ExpectedLevel.
type RequestTransition struct {
	RequestID     string
	CompanyID     string
	ExpectedLevel int
	NewStatus     domain.RequestStatus
	NewLevel      int
	NewApproverID string
	Comments      string
	CompletedAt   *time.Time
	RejectedAt    *time.Time
	UpdatedBy     string
	UpdatedAt     time.Time
}
