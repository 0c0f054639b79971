package models

// User is the persistence model for users.
type User struct {
	UserID       string `json:"userID"`
	CompanyID    string `json:"companyID"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	AuditFields
}
