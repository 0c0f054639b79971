package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID reference
}

// RequestContext identifies the actor and company scope of an operation.
// It is populated at the HTTP boundary and passed explicitly into every
// core operation; services never derive identity themselves.
type RequestContext struct {
	UserID    string
	CompanyID string
}
