package services

import (
	"context"

	"github.com/finovo/erp-backend/internal/core/domain"
	"github.com/finovo/erp-backend/internal/dto"
)

// AccountSvcFacade defines the business operations for the chart of accounts.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, rc domain.RequestContext, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccountByID(ctx context.Context, rc domain.RequestContext, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, rc domain.RequestContext, limit int) ([]domain.Account, error)
	DeactivateAccount(ctx context.Context, rc domain.RequestContext, accountID string) error
}
