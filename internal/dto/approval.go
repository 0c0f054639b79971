package dto

import (
	"time"

	"github.com/finovo/erp-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ApprovalAction is a decision taken on a pending approval request.
type ApprovalAction string

const (
	ActionApprove ApprovalAction = "APPROVE"
	ActionReject  ApprovalAction = "REJECT"
)

// WorkflowLevelRequest describes one approver level inside a workflow.
// Either ApproverRole or ApproverID must be set.
type WorkflowLevelRequest struct {
	Level           int    `json:"level" binding:"required,min=1"`
	ApproverRole    string `json:"approverRole"`
	ApproverID      string `json:"approverID"`
	EscalationHours int    `json:"escalationHours" binding:"min=0"`
}

// CreateWorkflowRequest is the payload for defining an approval workflow.
type CreateWorkflowRequest struct {
	Name            string                 `json:"name" binding:"required,max=100"`
	WorkflowType    domain.WorkflowType    `json:"workflowType" binding:"required,oneof=PURCHASE_ORDER EXPENSE BUDGET ASSET_PURCHASE GENERAL"`
	ThresholdAmount decimal.Decimal        `json:"thresholdAmount"`
	AutoEscalate    bool                   `json:"autoEscalate"`
	RequireAll      bool                   `json:"requireAll"`
	Levels          []WorkflowLevelRequest `json:"levels" binding:"required,min=1,dive"`
}

// ProcessApprovalRequest is the payload for approving or rejecting a request.
type ProcessApprovalRequest struct {
	Action   ApprovalAction `json:"action" binding:"required,oneof=APPROVE REJECT"`
	Comments string         `json:"comments"`
}

// ApprovalLevelResponse is the API representation of a workflow level.
type ApprovalLevelResponse struct {
	LevelID         string `json:"levelID"`
	Level           int    `json:"level"`
	ApproverRole    string `json:"approverRole,omitempty"`
	ApproverID      string `json:"approverID,omitempty"`
	EscalationHours int    `json:"escalationHours"`
}

// WorkflowResponse is the API representation of an approval workflow.
type WorkflowResponse struct {
	WorkflowID      string                  `json:"workflowID"`
	CompanyID       string                  `json:"companyID"`
	Name            string                  `json:"name"`
	WorkflowType    domain.WorkflowType     `json:"workflowType"`
	ThresholdAmount decimal.Decimal         `json:"thresholdAmount"`
	IsActive        bool                    `json:"isActive"`
	AutoEscalate    bool                    `json:"autoEscalate"`
	RequireAll      bool                    `json:"requireAll"`
	Levels          []ApprovalLevelResponse `json:"levels,omitempty"`
}

// ToWorkflowResponse converts a domain ApprovalWorkflow (optionally with
// levels) to its API representation.
func ToWorkflowResponse(w *domain.ApprovalWorkflow) WorkflowResponse {
	resp := WorkflowResponse{
		WorkflowID:      w.WorkflowID,
		CompanyID:       w.CompanyID,
		Name:            w.Name,
		WorkflowType:    w.Type,
		ThresholdAmount: w.ThresholdAmount,
		IsActive:        w.IsActive,
		AutoEscalate:    w.AutoEscalate,
		RequireAll:      w.RequireAll,
	}
	for _, level := range w.Levels {
		resp.Levels = append(resp.Levels, ApprovalLevelResponse{
			LevelID:         level.LevelID,
			Level:           level.Level,
			ApproverRole:    level.ApproverRole,
			ApproverID:      level.ApproverID,
			EscalationHours: level.EscalationHours,
		})
	}
	return resp
}

// ToWorkflowResponses converts a slice of workflows.
func ToWorkflowResponses(workflows []domain.ApprovalWorkflow) []WorkflowResponse {
	out := make([]WorkflowResponse, len(workflows))
	for i := range workflows {
		out[i] = ToWorkflowResponse(&workflows[i])
	}
	return out
}

// ApprovalRequestResponse is the API representation of an approval request.
type ApprovalRequestResponse struct {
	RequestID    string               `json:"requestID"`
	CompanyID    string               `json:"companyID"`
	WorkflowID   string               `json:"workflowID"`
	RequestorID  string               `json:"requestorID"`
	ApproverID   string               `json:"approverID"`
	DocumentKind domain.DocumentKind  `json:"documentKind"`
	DocumentID   string               `json:"documentID"`
	Amount       decimal.Decimal      `json:"amount"`
	Description  string               `json:"description"`
	Priority     domain.Priority      `json:"priority"`
	DueDate      time.Time            `json:"dueDate"`
	Status       domain.RequestStatus `json:"status"`
	CurrentLevel int                  `json:"currentLevel"`
	Comments     string               `json:"comments,omitempty"`
	CompletedAt  *time.Time           `json:"completedAt,omitempty"`
	RejectedAt   *time.Time           `json:"rejectedAt,omitempty"`
}

// ToApprovalRequestResponse converts a domain ApprovalRequest to its API
// representation.
func ToApprovalRequestResponse(r *domain.ApprovalRequest) ApprovalRequestResponse {
	return ApprovalRequestResponse{
		RequestID:    r.RequestID,
		CompanyID:    r.CompanyID,
		WorkflowID:   r.WorkflowID,
		RequestorID:  r.RequestorID,
		ApproverID:   r.ApproverID,
		DocumentKind: r.DocumentKind,
		DocumentID:   r.DocumentID,
		Amount:       r.Amount,
		Description:  r.Description,
		Priority:     r.Priority,
		DueDate:      r.DueDate,
		Status:       r.Status,
		CurrentLevel: r.CurrentLevel,
		Comments:     r.Comments,
		CompletedAt:  r.CompletedAt,
		RejectedAt:   r.RejectedAt,
	}
}

// ToApprovalRequestResponses converts a slice of requests.
func ToApprovalRequestResponses(requests []domain.ApprovalRequest) []ApprovalRequestResponse {
	out := make([]ApprovalRequestResponse, len(requests))
	for i := range requests {
		out[i] = ToApprovalRequestResponse(&requests[i])
	}
	return out
}
