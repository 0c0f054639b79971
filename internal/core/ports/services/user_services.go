package services

import (
	"context"

	"github.com/finovo/erp-backend/internal/core/domain"
	"github.com/finovo/erp-backend/internal/dto"
)

// UserSvcFacade defines the minimal identity operations kept in-service.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
