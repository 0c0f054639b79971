package domain

// User is the minimal identity record the service keeps so that approver
// authorization checks have a subject. Session management proper lives with
// the external identity provider.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	CompanyID    string `json:"companyID"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	AuditFields
}
