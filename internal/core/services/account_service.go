package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finovo/erp-backend/internal/apperrors"
	"github.com/finovo/erp-backend/internal/core/domain"
	portsrepo "github.com/finovo/erp-backend/internal/core/ports/repositories"
	"github.com/finovo/erp-backend/internal/dto"
	"github.com/finovo/erp-backend/internal/middleware"
)

// AccountService implements chart-of-accounts operations.
type AccountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

// CreateAccount adds a new account to the company's chart with a zero
// opening balance.
func (s *AccountService) CreateAccount(ctx context.Context, rc domain.RequestContext, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   rc.CompanyID,
		Code:        req.Code,
		Name:        req.Name,
		AccountType: req.AccountType,
		Description: req.Description,
		IsActive:    true,
		Balance:     decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     rc.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: rc.UserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewAppError(409, fmt.Sprintf("account code %s already exists", req.Code), apperrors.ErrDuplicate)
		}
		logger.Error("failed to save account", "error", err, "code", req.Code)
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("account created", "accountID", account.AccountID, "code", account.Code, "type", account.AccountType)
	return &account, nil
}

// GetAccountByID fetches a single account scoped to the caller's company.
func (s *AccountService) GetAccountByID(ctx context.Context, rc domain.RequestContext, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, rc.CompanyID, accountID)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// ListAccounts returns the company's chart of accounts.
func (s *AccountService) ListAccounts(ctx context.Context, rc domain.RequestContext, limit int) ([]domain.Account, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.accountRepo.ListAccounts(ctx, rc.CompanyID, limit)
}

// DeactivateAccount soft-deletes an account. The row stays so historical
// journal lines keep their reference.
func (s *AccountService) DeactivateAccount(ctx context.Context, rc domain.RequestContext, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, rc.CompanyID, accountID)
	if err != nil {
		return err
	}
	if !account.Balance.IsZero() {
		return apperrors.NewConflictError("cannot deactivate an account with a non-zero balance")
	}

	if err := s.accountRepo.DeactivateAccount(ctx, rc.CompanyID, accountID, rc.UserID, time.Now()); err != nil {
		logger.Error("failed to deactivate account", "error", err, "accountID", accountID)
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	logger.Info("account deactivated", "accountID", accountID)
	return nil
}
