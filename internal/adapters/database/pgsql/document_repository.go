package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finovo/erp-backend/internal/apperrors"
	"github.com/finovo/erp-backend/internal/core/domain"
	"github.com/finovo/erp-backend/internal/core/ports/repositories"
	"github.com/finovo/erp-backend/internal/models"
	"github.com/finovo/erp-backend/internal/utils/mapping"
)

type PgxDocumentRepository struct {
	pool *pgxpool.Pool
}

// NewPgxDocumentRepository creates a new repository for document and payment data.
func NewPgxDocumentRepository(pool *pgxpool.Pool) repositories.DocumentRepositoryFacade {
	return &PgxDocumentRepository{pool: pool}
}

const documentColumns = `document_id, company_id, kind, document_number, document_date, description, supplier_id, customer_id, subtotal, tax, total, status, journal_entry_id, approval_request_id, posted_at, created_at, created_by, last_updated_at, last_updated_by`

func scanDocument(row pgx.Row) (*models.Document, error) {
	var d models.Document
	err := row.Scan(
		&d.DocumentID,
		&d.CompanyID,
		&d.Kind,
		&d.DocumentNumber,
		&d.DocumentDate,
		&d.Description,
		&d.SupplierID,
		&d.CustomerID,
		&d.Subtotal,
		&d.Tax,
		&d.Total,
		&d.Status,
		&d.JournalEntryID,
		&d.ApprovalRequestID,
		&d.PostedAt,
		&d.CreatedAt,
		&d.CreatedBy,
		&d.LastUpdatedAt,
		&d.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// SaveDocument inserts a new document row.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	m := mapping.ToModelDocument(doc)
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.pool.Exec(ctx, query,
		m.DocumentID, m.CompanyID, m.Kind, m.DocumentNumber, m.DocumentDate,
		m.Description, m.SupplierID, m.CustomerID, m.Subtotal, m.Tax, m.Total,
		m.Status, m.JournalEntryID, m.ApprovalRequestID, m.PostedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to insert document %s: %w", doc.DocumentID, err)
	}
	return nil
}

// FindDocumentByID retrieves one document scoped to a company.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, companyID, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1 AND company_id = $2;`
	m, err := scanDocument(r.pool.QueryRow(ctx, query, documentID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find document by ID %s: %w", documentID, err)
	}
	d := mapping.ToDomainDocument(*m)
	return &d, nil
}

// ListDocuments returns the company's documents, optionally filtered by
// kind, newest first.
func (r *PgxDocumentRepository) ListDocuments(ctx context.Context, companyID string, kind domain.DocumentKind, limit int) ([]domain.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE company_id = $1 AND ($2 = '' OR kind = $2)
		ORDER BY created_at DESC
		LIMIT $3;
	`
	rows, err := r.pool.Query(ctx, query, companyID, string(kind), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		m, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		docs = append(docs, mapping.ToDomainDocument(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate document rows: %w", err)
	}
	return docs, nil
}

// UpdateDocumentStatus applies the compare-and-swap transition outside any
// engine transaction.
func (r *PgxDocumentRepository) UpdateDocumentStatus(ctx context.Context, update repositories.DocumentStatusUpdate, userID string, now time.Time) error {
	return applyDocumentStatusCAS(ctx, r.pool, update, userID, now)
}

// SavePayment inserts a new payment row.
func (r *PgxDocumentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	query := `
		INSERT INTO payments (payment_id, company_id, kind, document_id, amount, payment_date, status, journal_entry_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.pool.Exec(ctx, query,
		m.PaymentID, m.CompanyID, m.Kind, m.DocumentID, m.Amount, m.PaymentDate,
		m.Status, m.JournalEntryID, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment %s: %w", payment.PaymentID, err)
	}
	return nil
}

// FindPaymentByID retrieves one payment scoped to a company.
func (r *PgxDocumentRepository) FindPaymentByID(ctx context.Context, companyID, paymentID string) (*domain.Payment, error) {
	query := `
		SELECT payment_id, company_id, kind, document_id, amount, payment_date, status, journal_entry_id, created_at, created_by, last_updated_at, last_updated_by
		FROM payments
		WHERE payment_id = $1 AND company_id = $2;
	`
	var m models.Payment
	err := r.pool.QueryRow(ctx, query, paymentID, companyID).Scan(
		&m.PaymentID, &m.CompanyID, &m.Kind, &m.DocumentID, &m.Amount, &m.PaymentDate,
		&m.Status, &m.JournalEntryID, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment by ID %s: %w", paymentID, err)
	}
	d := mapping.ToDomainPayment(m)
	return &d, nil
}
