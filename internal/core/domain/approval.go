package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkflowType categorises approval workflows by the kind of spending they
// gate. Each document kind maps onto one workflow type.
type WorkflowType string

const (
	WorkflowPurchaseOrder WorkflowType = "PURCHASE_ORDER"
	WorkflowExpense       WorkflowType = "EXPENSE"
	WorkflowBudget        WorkflowType = "BUDGET"
	WorkflowAssetPurchase WorkflowType = "ASSET_PURCHASE"
	WorkflowGeneral       WorkflowType = "GENERAL"
)

// Valid reports whether t is a known workflow type.
func (t WorkflowType) Valid() bool {
	switch t {
	case WorkflowPurchaseOrder, WorkflowExpense, WorkflowBudget, WorkflowAssetPurchase, WorkflowGeneral:
		return true
	}
	return false
}

// WorkflowTypeForKind maps a document kind to the workflow type that gates it.
func WorkflowTypeForKind(kind DocumentKind) WorkflowType {
	switch kind {
	case KindExpense:
		return WorkflowExpense
	case KindAssetPurchase:
		return WorkflowAssetPurchase
	case KindBill:
		return WorkflowPurchaseOrder
	default:
		return WorkflowGeneral
	}
}

// ApprovalWorkflow is a named, threshold-gated chain of approval levels.
// A workflow applies to documents whose amount reaches ThresholdAmount.
type ApprovalWorkflow struct {
	WorkflowID      string           `json:"workflowID"` // Primary Key (UUID)
	CompanyID       string           `json:"companyID"`
	Name            string           `json:"name"`
	Type            WorkflowType     `json:"type"`
	ThresholdAmount decimal.Decimal  `json:"thresholdAmount"` // Minimum amount that activates this workflow
	IsActive        bool             `json:"isActive"`
	AutoEscalate    bool             `json:"autoEscalate"`
	RequireAll      bool             `json:"requireAllLevels"`
	Levels          []ApprovalLevel  `json:"levels,omitempty"` // Ordered ascending by Level
	AuditFields
}

// ApprovalLevel is one step in a workflow. Levels are unique per
// (workflow, level) and consumed in ascending order. Every level names a
// concrete approver; ApproverRole is display metadata.
type ApprovalLevel struct {
	LevelID         string `json:"levelID"` // Primary Key (UUID)
	WorkflowID      string `json:"workflowID"`
	Level           int    `json:"level"`
	ApproverRole    string `json:"approverRole"`
	ApproverID      string `json:"approverID,omitempty"`
	EscalationHours int    `json:"escalationHours"`
}

// RequestStatus is the state of an approval request.
type RequestStatus string

const (
	RequestPending   RequestStatus = "PENDING"
	RequestCompleted RequestStatus = "COMPLETED"
	RequestRejected  RequestStatus = "REJECTED"
	RequestEscalated RequestStatus = "ESCALATED"
	RequestCancelled RequestStatus = "CANCELLED"
)

// Terminal reports whether no further transitions are possible.
func (s RequestStatus) Terminal() bool {
	switch s {
	case RequestCompleted, RequestRejected, RequestCancelled:
		return true
	}
	return false
}

// Priority of an approval request, derived purely from the amount.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// priorityBand is one step of the amount->priority step function.
type priorityBand struct {
	min      int64
	priority Priority
}

var expenseBands = []priorityBand{
	{50000, PriorityUrgent},
	{25000, PriorityHigh},
	{10000, PriorityMedium},
}

var assetPurchaseBands = []priorityBand{
	{100000, PriorityUrgent},
	{50000, PriorityHigh},
	{20000, PriorityMedium},
}

// PriorityForAmount derives the request priority from the amount using the
// per-type threshold bands. Asset purchases use wider bands than the rest.
func PriorityForAmount(wfType WorkflowType, amount decimal.Decimal) Priority {
	bands := expenseBands
	if wfType == WorkflowAssetPurchase {
		bands = assetPurchaseBands
	}
	for _, b := range bands {
		if amount.GreaterThanOrEqual(decimal.NewFromInt(b.min)) {
			return b.priority
		}
	}
	return PriorityLow
}

// ApprovalRequest routes one document through a workflow's levels.
// Lifecycle: PENDING at the lowest level; each approval either advances the
// level or, when no level remains, completes the request. Rejection at any
// level is absolute. The originating document's cancel action may move a
// still-pending request to CANCELLED.
type ApprovalRequest struct {
	RequestID    string          `json:"requestID"` // Primary Key (UUID)
	CompanyID    string          `json:"companyID"`
	WorkflowID   string          `json:"workflowID"`
	RequestorID  string          `json:"requestorID"`
	ApproverID   string          `json:"approverID"` // Current actor
	DocumentKind DocumentKind    `json:"documentKind"`
	DocumentID   string          `json:"documentID"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Priority     Priority        `json:"priority"`
	DueDate      time.Time       `json:"dueDate"`
	Status       RequestStatus   `json:"status"`
	CurrentLevel int             `json:"currentLevel"`
	Comments     string          `json:"comments"`
	CompletedAt  *time.Time      `json:"completedAt,omitempty"`
	RejectedAt   *time.Time      `json:"rejectedAt,omitempty"`
	AuditFields
}
