package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finovo/erp-backend/internal/apperrors"
	"github.com/finovo/erp-backend/internal/core/domain"
	"github.com/finovo/erp-backend/internal/core/ports/repositories"
	"github.com/finovo/erp-backend/internal/models"
	"github.com/finovo/erp-backend/internal/utils/mapping"
)

type PgxApprovalRepository struct {
	pool *pgxpool.Pool
}

// NewPgxApprovalRepository creates a new repository for approval workflow data.
func NewPgxApprovalRepository(pool *pgxpool.Pool) repositories.ApprovalRepositoryFacade {
	return &PgxApprovalRepository{pool: pool}
}

const workflowColumns = `workflow_id, company_id, name, workflow_type, threshold_amount, is_active, auto_escalate, require_all, created_at, created_by, last_updated_at, last_updated_by`

func scanWorkflow(row pgx.Row) (*models.ApprovalWorkflow, error) {
	var w models.ApprovalWorkflow
	err := row.Scan(
		&w.WorkflowID,
		&w.CompanyID,
		&w.Name,
		&w.Type,
		&w.ThresholdAmount,
		&w.IsActive,
		&w.AutoEscalate,
		&w.RequireAll,
		&w.CreatedAt,
		&w.CreatedBy,
		&w.LastUpdatedAt,
		&w.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

const requestColumns = `request_id, company_id, workflow_id, requestor_id, approver_id, document_kind, document_id, amount, description, priority, due_date, status, current_level, comments, completed_at, rejected_at, created_at, created_by, last_updated_at, last_updated_by`

func scanRequest(row pgx.Row) (*models.ApprovalRequest, error) {
	var r models.ApprovalRequest
	err := row.Scan(
		&r.RequestID,
		&r.CompanyID,
		&r.WorkflowID,
		&r.RequestorID,
		&r.ApproverID,
		&r.DocumentKind,
		&r.DocumentID,
		&r.Amount,
		&r.Description,
		&r.Priority,
		&r.DueDate,
		&r.Status,
		&r.CurrentLevel,
		&r.Comments,
		&r.CompletedAt,
		&r.RejectedAt,
		&r.CreatedAt,
		&r.CreatedBy,
		&r.LastUpdatedAt,
		&r.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// SaveWorkflow persists a workflow header and its levels atomically.
func (r *PgxApprovalRepository) SaveWorkflow(ctx context.Context, workflow domain.ApprovalWorkflow, levels []domain.ApprovalLevel) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	m := mapping.ToModelWorkflow(workflow)
	workflowQuery := `
		INSERT INTO approval_workflows (` + workflowColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, workflowQuery,
		m.WorkflowID, m.CompanyID, m.Name, m.Type, m.ThresholdAmount,
		m.IsActive, m.AutoEscalate, m.RequireAll,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert workflow %s: %w", workflow.WorkflowID, err)
	}

	batch := &pgx.Batch{}
	levelQuery := `
		INSERT INTO approval_levels (level_id, workflow_id, level, approver_role, approver_id, escalation_hours)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, level := range levels {
		lm := mapping.ToModelLevel(level)
		batch.Queue(levelQuery,
			lm.LevelID, lm.WorkflowID, lm.Level, lm.ApproverRole, lm.ApproverID, lm.EscalationHours,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert levels for workflow %s: %w", workflow.WorkflowID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit workflow %s: %w", workflow.WorkflowID, err)
	}
	return nil
}

// FindWorkflowByID retrieves one workflow scoped to a company.
func (r *PgxApprovalRepository) FindWorkflowByID(ctx context.Context, companyID, workflowID string) (*domain.ApprovalWorkflow, error) {
	query := `SELECT ` + workflowColumns + ` FROM approval_workflows WHERE workflow_id = $1 AND company_id = $2;`
	m, err := scanWorkflow(r.pool.QueryRow(ctx, query, workflowID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find workflow by ID %s: %w", workflowID, err)
	}
	d := mapping.ToDomainWorkflow(*m)
	return &d, nil
}

// FindMatchingWorkflow selects the active workflow of the given type with
// the highest threshold not exceeding the amount; equal thresholds break
// the tie by earliest creation. ErrNotFound means no workflow gates this
// amount and the caller auto-approves.
func (r *PgxApprovalRepository) FindMatchingWorkflow(ctx context.Context, companyID string, wfType domain.WorkflowType, amount decimal.Decimal) (*domain.ApprovalWorkflow, error) {
	query := `
		SELECT ` + workflowColumns + `
		FROM approval_workflows
		WHERE company_id = $1 AND workflow_type = $2 AND is_active = TRUE AND threshold_amount <= $3
		ORDER BY threshold_amount DESC, created_at ASC
		LIMIT 1;
	`
	m, err := scanWorkflow(r.pool.QueryRow(ctx, query, companyID, string(wfType), amount))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to match workflow for type %s: %w", wfType, err)
	}
	d := mapping.ToDomainWorkflow(*m)
	return &d, nil
}

// ListWorkflows returns the company's workflows, newest first.
func (r *PgxApprovalRepository) ListWorkflows(ctx context.Context, companyID string, limit int) ([]domain.ApprovalWorkflow, error) {
	query := `SELECT ` + workflowColumns + ` FROM approval_workflows WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2;`
	rows, err := r.pool.Query(ctx, query, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}
	defer rows.Close()

	var workflows []domain.ApprovalWorkflow
	for rows.Next() {
		m, err := scanWorkflow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workflow row: %w", err)
		}
		workflows = append(workflows, mapping.ToDomainWorkflow(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate workflow rows: %w", err)
	}
	return workflows, nil
}

// DeactivateWorkflow stops a workflow from matching new submissions.
func (r *PgxApprovalRepository) DeactivateWorkflow(ctx context.Context, companyID, workflowID, userID string, now time.Time) error {
	query := `
		UPDATE approval_workflows
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE workflow_id = $3 AND company_id = $4 AND is_active = TRUE;
	`
	tag, err := r.pool.Exec(ctx, query, now, userID, workflowID, companyID)
	if err != nil {
		return fmt.Errorf("failed to deactivate workflow %s: %w", workflowID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindLevelsByWorkflowID retrieves a workflow's levels in ascending order.
func (r *PgxApprovalRepository) FindLevelsByWorkflowID(ctx context.Context, workflowID string) ([]domain.ApprovalLevel, error) {
	query := `
		SELECT level_id, workflow_id, level, approver_role, approver_id, escalation_hours
		FROM approval_levels
		WHERE workflow_id = $1
		ORDER BY level;
	`
	rows, err := r.pool.Query(ctx, query, workflowID)
	if err != nil {
		return nil, fmt.Errorf("failed to query levels for workflow %s: %w", workflowID, err)
	}
	defer rows.Close()

	var levels []models.ApprovalLevel
	for rows.Next() {
		var l models.ApprovalLevel
		if err := rows.Scan(&l.LevelID, &l.WorkflowID, &l.Level, &l.ApproverRole, &l.ApproverID, &l.EscalationHours); err != nil {
			return nil, fmt.Errorf("failed to scan level row: %w", err)
		}
		levels = append(levels, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate level rows: %w", err)
	}
	return mapping.ToDomainLevelSlice(levels), nil
}

// CreateRequest inserts the request and applies the document's status CAS
// in one transaction, so a document can never point at a request that was
// not created, or vice versa.
func (r *PgxApprovalRepository) CreateRequest(ctx context.Context, request domain.ApprovalRequest, docUpdate repositories.DocumentStatusUpdate) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	m := mapping.ToModelRequest(request)
	query := `
		INSERT INTO approval_requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err = tx.Exec(ctx, query,
		m.RequestID, m.CompanyID, m.WorkflowID, m.RequestorID, m.ApproverID,
		m.DocumentKind, m.DocumentID, m.Amount, m.Description, m.Priority,
		m.DueDate, m.Status, m.CurrentLevel, m.Comments, m.CompletedAt, m.RejectedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert approval request %s: %w", request.RequestID, err)
	}

	if err := applyDocumentStatusCAS(ctx, tx, docUpdate, request.CreatedBy, request.CreatedAt); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit approval request %s: %w", request.RequestID, err)
	}
	return nil
}

// FindRequestByID retrieves one request scoped to a company.
func (r *PgxApprovalRepository) FindRequestByID(ctx context.Context, companyID, requestID string) (*domain.ApprovalRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM approval_requests WHERE request_id = $1 AND company_id = $2;`
	m, err := scanRequest(r.pool.QueryRow(ctx, query, requestID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find request by ID %s: %w", requestID, err)
	}
	d := mapping.ToDomainRequest(*m)
	return &d, nil
}

// ListRequestsByApprover returns an approver's requests in the given
// status, most urgent first.
func (r *PgxApprovalRepository) ListRequestsByApprover(ctx context.Context, companyID, approverID string, status domain.RequestStatus, limit int) ([]domain.ApprovalRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM approval_requests
		WHERE company_id = $1 AND approver_id = $2 AND status = $3
		ORDER BY due_date ASC
		LIMIT $4;
	`
	rows, err := r.pool.Query(ctx, query, companyID, approverID, string(status), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.ApprovalRequest
	for rows.Next() {
		m, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request row: %w", err)
		}
		requests = append(requests, mapping.ToDomainRequest(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate request rows: %w", err)
	}
	return requests, nil
}

// TransitionRequest applies the request's compare-and-swap state change
// and, when docUpdate is non-nil, the document CAS in the same transaction.
// The request row must still be PENDING at the expected level; a concurrent
// decision that got there first leaves zero rows and ErrInvalidState.
func (r *PgxApprovalRepository) TransitionRequest(ctx context.Context, transition repositories.RequestTransition, docUpdate *repositories.DocumentStatusUpdate) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	query := `
		UPDATE approval_requests
		SET status = $1,
		    current_level = $2,
		    approver_id = $3,
		    comments = $4,
		    completed_at = COALESCE($5, completed_at),
		    rejected_at = COALESCE($6, rejected_at),
		    last_updated_at = $7,
		    last_updated_by = $8
		WHERE request_id = $9 AND company_id = $10 AND status = $11 AND current_level = $12;
	`
	tag, err := tx.Exec(ctx, query,
		string(transition.NewStatus),
		transition.NewLevel,
		transition.NewApproverID,
		transition.Comments,
		transition.CompletedAt,
		transition.RejectedAt,
		transition.UpdatedAt,
		transition.UpdatedBy,
		transition.RequestID,
		transition.CompanyID,
		string(domain.RequestPending),
		transition.ExpectedLevel,
	)
	if err != nil {
		return fmt.Errorf("failed to transition request %s: %w", transition.RequestID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError(fmt.Sprintf(
			"request %s was decided concurrently", transition.RequestID))
	}

	if docUpdate != nil {
		if err := applyDocumentStatusCAS(ctx, tx, *docUpdate, transition.UpdatedBy, transition.UpdatedAt); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transition for request %s: %w", transition.RequestID, err)
	}
	return nil
}
