package dto

import "github.com/finovo/erp-backend/internal/core/domain"

// CreateUserRequest is the payload for registering a user.
type CreateUserRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=50"`
	Name      string `json:"name" binding:"required,max=100"`
	Password  string `json:"password" binding:"required,min=8"`
	CompanyID string `json:"companyID" binding:"required,uuid"`
}

// LoginRequest is the payload for username/password login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse is the API representation of a user.
type UserResponse struct {
	UserID    string `json:"userID"`
	CompanyID string `json:"companyID"`
	Username  string `json:"username"`
	Name      string `json:"name"`
}

// ToUserResponse converts a domain User to its API representation. The
// password hash never leaves the service layer.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		CompanyID: u.CompanyID,
		Username:  u.Username,
		Name:      u.Name,
	}
}
