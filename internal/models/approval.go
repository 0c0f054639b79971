package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApprovalWorkflow is the persistence model for workflow headers.
type ApprovalWorkflow struct {
	WorkflowID      string          `json:"workflowID"`
	CompanyID       string          `json:"companyID"`
	Name            string          `json:"name"`
	Type            string          `json:"type"`
	ThresholdAmount decimal.Decimal `json:"thresholdAmount"`
	IsActive        bool            `json:"isActive"`
	AutoEscalate    bool            `json:"autoEscalate"`
	RequireAll      bool            `json:"requireAllLevels"`
	AuditFields
}

// ApprovalLevel is the persistence model for workflow levels.
type ApprovalLevel struct {
	LevelID         string `json:"levelID"`
	WorkflowID      string `json:"workflowID"`
	Level           int    `json:"level"`
	ApproverRole    string `json:"approverRole"`
	ApproverID      string `json:"approverID"`
	EscalationHours int    `json:"escalationHours"`
}

// ApprovalRequest is the persistence model for approval requests.
type ApprovalRequest struct {
	RequestID    string          `json:"requestID"`
	CompanyID    string          `json:"companyID"`
	WorkflowID   string          `json:"workflowID"`
	RequestorID  string          `json:"requestorID"`
	ApproverID   string          `json:"approverID"`
	DocumentKind string          `json:"documentKind"`
	DocumentID   string          `json:"documentID"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Priority     string          `json:"priority"`
	DueDate      time.Time       `json:"dueDate"`
	Status       string          `json:"status"`
	CurrentLevel int             `json:"currentLevel"`
	Comments     string          `json:"comments"`
	CompletedAt  *time.Time      `json:"completedAt"`
	RejectedAt   *time.Time      `json:"rejectedAt"`
	AuditFields
}
