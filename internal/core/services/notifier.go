package services

import (
	"context"

	"github.com/finovo/erp-backend/internal/core/domain"
	"github.com/finovo/erp-backend/internal/middleware"
)

// LogNotifier is the default Notifier: it records request state changes in
// the structured log. A real deployment swaps in an email or chat notifier.
type LogNotifier struct{}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) RequestAssigned(ctx context.Context, request domain.ApprovalRequest) {
	middleware.GetLoggerFromCtx(ctx).Info("approval request assigned",
		"requestID", request.RequestID,
		"approverID", request.ApproverID,
		"level", request.CurrentLevel,
		"priority", request.Priority,
	)
}

func (n *LogNotifier) RequestCompleted(ctx context.Context, request domain.ApprovalRequest) {
	middleware.GetLoggerFromCtx(ctx).Info("approval request completed",
		"requestID", request.RequestID,
		"documentID", request.DocumentID,
	)
}

func (n *LogNotifier) RequestRejected(ctx context.Context, request domain.ApprovalRequest) {
	middleware.GetLoggerFromCtx(ctx).Info("approval request rejected",
		"requestID", request.RequestID,
		"documentID", request.DocumentID,
	)
}
