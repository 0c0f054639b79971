package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/finovo/erp-backend/internal/apperrors"
	"github.com/finovo/erp-backend/internal/core/ports/repositories"
)

// pgExecutor is satisfied by both *pgxpool.Pool and pgx.Tx, so status CAS
// updates can run standalone or inside an engine transaction.
type pgExecutor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// applyDocumentStatusCAS performs the compare-and-swap document status
// transition. Zero affected rows means the document left the expected
// state concurrently (or never was in it) and surfaces as ErrInvalidState.
func applyDocumentStatusCAS(ctx context.Context, exec pgExecutor, update repositories.DocumentStatusUpdate, userID string, now time.Time) error {
	query := `
		UPDATE documents
		SET status = $1,
		    journal_entry_id = COALESCE($2, journal_entry_id),
		    approval_request_id = COALESCE($3, approval_request_id),
		    posted_at = COALESCE($4, posted_at),
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE document_id = $7 AND company_id = $8 AND status = ANY($9);
	`
	fromStatuses := make([]string, len(update.FromStatuses))
	for i, s := range update.FromStatuses {
		fromStatuses[i] = string(s)
	}

	tag, err := exec.Exec(ctx, query,
		string(update.ToStatus),
		update.JournalEntryID,
		update.ApprovalRequestID,
		update.PostedAt,
		now,
		userID,
		update.DocumentID,
		update.CompanyID,
		fromStatuses,
	)
	if err != nil {
		return fmt.Errorf("failed to update document %s status: %w", update.DocumentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError(fmt.Sprintf(
			"document %s is not in an eligible state for %s", update.DocumentID, update.ToStatus))
	}
	return nil
}
