package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finovo/erp-backend/internal/apperrors"
	"github.com/finovo/erp-backend/internal/core/domain"
	"github.com/finovo/erp-backend/internal/core/ports/repositories"
	"github.com/finovo/erp-backend/internal/models"
	"github.com/finovo/erp-backend/internal/utils/mapping"
)

type PgxJournalRepository struct {
	pool        *pgxpool.Pool
	accountRepo repositories.AccountRepositoryWithTx
}

// NewPgxJournalRepository creates a new repository for journal entry data.
// The account repository is needed for the in-transaction balance work.
func NewPgxJournalRepository(pool *pgxpool.Pool, accountRepo repositories.AccountRepositoryWithTx) repositories.JournalRepositoryFacade {
	return &PgxJournalRepository{pool: pool, accountRepo: accountRepo}
}

const entryColumns = `entry_id, company_id, entry_number, entry_date, description, source_kind, source_id, total_debit, total_credit, status, posted_at, reversed_by_id, reversal_of_id, created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (*models.JournalEntry, error) {
	var e models.JournalEntry
	err := row.Scan(
		&e.EntryID,
		&e.CompanyID,
		&e.EntryNumber,
		&e.EntryDate,
		&e.Description,
		&e.SourceKind,
		&e.SourceID,
		&e.TotalDebit,
		&e.TotalCredit,
		&e.Status,
		&e.PostedAt,
		&e.ReversedByID,
		&e.ReversalOfID,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// SaveEntry is the posting engine's single atomic write: it inserts the
// entry and its lines, locks the touched accounts and applies their balance
// deltas, applies the source document's status CAS, and, for reversals,
// marks the original entry CANCELLED. Everything commits or rolls back
// together.
func (r *PgxJournalRepository) SaveEntry(
	ctx context.Context,
	entry domain.JournalEntry,
	lines []domain.JournalLine,
	balanceChanges map[string]decimal.Decimal,
	docUpdate *repositories.DocumentStatusUpdate,
	reversal *repositories.ReversalLink,
) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	// 1. Lock the account rows before writing anything that depends on them.
	accountIDs := make([]string, 0, len(balanceChanges))
	for accountID := range balanceChanges {
		accountIDs = append(accountIDs, accountID)
	}
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return err
	}

	// 2. Insert the entry header.
	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err = tx.Exec(ctx, entryQuery,
		m.EntryID, m.CompanyID, m.EntryNumber, m.EntryDate, m.Description,
		m.SourceKind, m.SourceID, m.TotalDebit, m.TotalCredit, m.Status,
		m.PostedAt, m.ReversedByID, m.ReversalOfID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry %s: %w", entry.EntryID, err)
	}

	// 3. Insert the lines as a batch.
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, entry_id, account_id, description, debit_amount, credit_amount, line_number, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, line := range lines {
		lm := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			lm.LineID, lm.EntryID, lm.AccountID, lm.Description,
			lm.DebitAmount, lm.CreditAmount, lm.LineNumber,
			lm.CreatedAt, lm.CreatedBy, lm.LastUpdatedAt, lm.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert lines for entry %s: %w", entry.EntryID, err)
	}

	// 4. Apply the balance deltas to the locked rows.
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, entry.LastUpdatedBy, entry.LastUpdatedAt); err != nil {
		return err
	}

	// 5. Reversal bookkeeping: the original entry flips to CANCELLED exactly
	// once; a second reversal attempt finds it already cancelled and fails.
	if reversal != nil {
		cancelQuery := `
			UPDATE journal_entries
			SET status = $1, reversed_by_id = $2, last_updated_at = $3, last_updated_by = $4
			WHERE entry_id = $5 AND status = $6 AND reversed_by_id IS NULL;
		`
		tag, err := tx.Exec(ctx, cancelQuery,
			string(domain.EntryCancelled),
			reversal.ReversingEntryID,
			entry.LastUpdatedAt,
			entry.LastUpdatedBy,
			reversal.OriginalEntryID,
			string(domain.EntryPosted),
		)
		if err != nil {
			return fmt.Errorf("failed to cancel original entry %s: %w", reversal.OriginalEntryID, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewConflictError(fmt.Sprintf(
				"entry %s is no longer reversible", reversal.OriginalEntryID))
		}
	}

	// 6. Source document status CAS.
	if docUpdate != nil {
		if err := applyDocumentStatusCAS(ctx, tx, *docUpdate, entry.LastUpdatedBy, entry.LastUpdatedAt); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit posting transaction for entry %s: %w", entry.EntryID, err)
	}
	return nil
}

// FindEntryByID retrieves an entry header scoped to a company.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1 AND company_id = $2;`
	m, err := scanEntry(r.pool.QueryRow(ctx, query, entryID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by ID %s: %w", entryID, err)
	}
	d := mapping.ToDomainJournalEntry(*m)
	return &d, nil
}

// FindLinesByEntryID retrieves an entry's lines in display order.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, entry_id, account_id, description, debit_amount, credit_amount, line_number, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_number;
	`
	rows, err := r.pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	var lines []models.JournalLine
	for rows.Next() {
		var l models.JournalLine
		if err := rows.Scan(
			&l.LineID, &l.EntryID, &l.AccountID, &l.Description,
			&l.DebitAmount, &l.CreditAmount, &l.LineNumber,
			&l.CreatedAt, &l.CreatedBy, &l.LastUpdatedAt, &l.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan line row: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate line rows: %w", err)
	}
	return mapping.ToDomainJournalLineSlice(lines), nil
}

// ListEntriesByCompany returns entry headers, newest first.
func (r *PgxJournalRepository) ListEntriesByCompany(ctx context.Context, companyID string, limit int) ([]domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2;`
	rows, err := r.pool.Query(ctx, query, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entry rows: %w", err)
	}
	return entries, nil
}

// NextEntryNumber reserves the next value of the entry number sequence.
func (r *PgxJournalRepository) NextEntryNumber(ctx context.Context) (string, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT nextval('journal_entry_number_seq');`).Scan(&n); err != nil {
		return "", fmt.Errorf("failed to advance entry number sequence: %w", err)
	}
	return fmt.Sprintf("JE-%06d", n), nil
}
