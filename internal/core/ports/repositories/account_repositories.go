package repositories

import (
	"context"
	"time"

	"github.com/finovo/erp-backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountRepositoryFacade defines persistence operations for the chart of
// accounts. Balance writes are deliberately absent here; they only happen
// through the in-transaction methods used by the journal repository.
type AccountRepositoryFacade interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, companyID, accountID string) (*domain.Account, error)
	// FindAccountByName resolves a required posting account by exact name
	// within a company and type. Returns ErrNotFound when absent.
	FindAccountByName(ctx context.Context, companyID string, accountType domain.AccountType, name string) (*domain.Account, error)
	ListAccounts(ctx context.Context, companyID string, limit int) ([]domain.Account, error)
	DeactivateAccount(ctx context.Context, companyID, accountID, userID string, now time.Time) error
}

// AccountRepositoryWithTx adds the balance-application methods that run
// inside the journal repository's posting transaction.
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	// FindAccountsByIDsForUpdate locks the account rows (SELECT ... FOR
	// UPDATE) and returns them keyed by ID. Missing IDs yield ErrNotFound.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)
	// UpdateAccountBalancesInTx applies signed deltas to the locked rows.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}
