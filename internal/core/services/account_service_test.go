package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finovo/erp-backend/internal/apperrors"
	"github.com/finovo/erp-backend/internal/core/domain"
	"github.com/finovo/erp-backend/internal/core/services"
	"github.com/finovo/erp-backend/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         *services.AccountService

	companyID string
	userID    string
	rc        domain.RequestContext
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.mockAccountRepo = new(MockAccountRepository)
	s.service = services.NewAccountService(s.mockAccountRepo)

	s.companyID = uuid.NewString()
	s.userID = uuid.NewString()
	s.rc = domain.RequestContext{UserID: s.userID, CompanyID: s.companyID}
}

func (s *AccountServiceTestSuite) TestCreateAccountStartsWithZeroBalance() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "5000",
		Name:        domain.AccountNameOperatingExpenses,
		AccountType: domain.Expense,
	}

	var saved domain.Account
	s.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Account)
		}).Return(nil).Once()

	account, err := s.service.CreateAccount(ctx, s.rc, req)

	s.Require().NoError(err)
	s.Require().NotNil(account)
	s.True(saved.Balance.IsZero())
	s.True(saved.IsActive)
	s.Equal(s.companyID, saved.CompanyID)
}

func (s *AccountServiceTestSuite) TestCreateAccountDuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1000", Name: domain.AccountNameCash, AccountType: domain.Asset}

	s.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()

	account, err := s.service.CreateAccount(ctx, s.rc, req)

	s.Require().Error(err)
	s.Nil(account)
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *AccountServiceTestSuite) TestDeactivateRejectsNonZeroBalance() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   s.companyID,
		Name:        domain.AccountNameCash,
		AccountType: domain.Asset,
		IsActive:    true,
		Balance:     decimal.NewFromInt(500),
	}

	s.mockAccountRepo.On("FindAccountByID", ctx, s.companyID, account.AccountID).Return(account, nil).Once()

	err := s.service.DeactivateAccount(ctx, s.rc, account.AccountID)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidState)
	s.mockAccountRepo.AssertNotCalled(s.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestDeactivateZeroBalanceAccount() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   s.companyID,
		Name:        domain.AccountNameCash,
		AccountType: domain.Asset,
		IsActive:    true,
		Balance:     decimal.Zero,
	}

	s.mockAccountRepo.On("FindAccountByID", ctx, s.companyID, account.AccountID).Return(account, nil).Once()
	s.mockAccountRepo.On("DeactivateAccount", ctx, s.companyID, account.AccountID, s.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := s.service.DeactivateAccount(ctx, s.rc, account.AccountID)

	s.Require().NoError(err)
	s.mockAccountRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestListAccountsClampsLimit() {
	ctx := context.Background()

	s.mockAccountRepo.On("ListAccounts", ctx, s.companyID, 100).Return([]domain.Account{}, nil).Twice()

	_, err := s.service.ListAccounts(ctx, s.rc, 0)
	s.Require().NoError(err)
	_, err = s.service.ListAccounts(ctx, s.rc, 10_000)
	s.Require().NoError(err)

	s.mockAccountRepo.AssertExpectations(s.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
