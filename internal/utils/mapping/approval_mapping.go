package mapping

import (
	"github.com/finovo/erp-backend/internal/core/domain"
	"github.com/finovo/erp-backend/internal/models"
)

// ToModelWorkflow converts a domain ApprovalWorkflow to its model.
func ToModelWorkflow(d domain.ApprovalWorkflow) models.ApprovalWorkflow {
	return models.ApprovalWorkflow{
		WorkflowID:      d.WorkflowID,
		CompanyID:       d.CompanyID,
		Name:            d.Name,
		Type:            string(d.Type),
		ThresholdAmount: d.ThresholdAmount,
		IsActive:        d.IsActive,
		AutoEscalate:    d.AutoEscalate,
		RequireAll:      d.RequireAll,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWorkflow converts a model ApprovalWorkflow to its domain form.
func ToDomainWorkflow(m models.ApprovalWorkflow) domain.ApprovalWorkflow {
	return domain.ApprovalWorkflow{
		WorkflowID:      m.WorkflowID,
		CompanyID:       m.CompanyID,
		Name:            m.Name,
		Type:            domain.WorkflowType(m.Type),
		ThresholdAmount: m.ThresholdAmount,
		IsActive:        m.IsActive,
		AutoEscalate:    m.AutoEscalate,
		RequireAll:      m.RequireAll,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLevel converts a domain ApprovalLevel to its model.
func ToModelLevel(d domain.ApprovalLevel) models.ApprovalLevel {
	return models.ApprovalLevel{
		LevelID:         d.LevelID,
		WorkflowID:      d.WorkflowID,
		Level:           d.Level,
		ApproverRole:    d.ApproverRole,
		ApproverID:      d.ApproverID,
		EscalationHours: d.EscalationHours,
	}
}

// ToDomainLevel converts a model ApprovalLevel to its domain form.
func ToDomainLevel(m models.ApprovalLevel) domain.ApprovalLevel {
	return domain.ApprovalLevel{
		LevelID:         m.LevelID,
		WorkflowID:      m.WorkflowID,
		Level:           m.Level,
		ApproverRole:    m.ApproverRole,
		ApproverID:      m.ApproverID,
		EscalationHours: m.EscalationHours,
	}
}

// ToDomainLevelSlice converts a slice of model levels to domain levels.
func ToDomainLevelSlice(ms []models.ApprovalLevel) []domain.ApprovalLevel {
	ds := make([]domain.ApprovalLevel, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLevel(m)
	}
	return ds
}

// ToModelRequest converts a domain ApprovalRequest to its model.
func ToModelRequest(d domain.ApprovalRequest) models.ApprovalRequest {
	return models.ApprovalRequest{
		RequestID:    d.RequestID,
		CompanyID:    d.CompanyID,
		WorkflowID:   d.WorkflowID,
		RequestorID:  d.RequestorID,
		ApproverID:   d.ApproverID,
		DocumentKind: string(d.DocumentKind),
		DocumentID:   d.DocumentID,
		Amount:       d.Amount,
		Description:  d.Description,
		Priority:     string(d.Priority),
		DueDate:      d.DueDate,
		Status:       string(d.Status),
		CurrentLevel: d.CurrentLevel,
		Comments:     d.Comments,
		CompletedAt:  d.CompletedAt,
		RejectedAt:   d.RejectedAt,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRequest converts a model ApprovalRequest to its domain form.
func ToDomainRequest(m models.ApprovalRequest) domain.ApprovalRequest {
	return domain.ApprovalRequest{
		RequestID:    m.RequestID,
		CompanyID:    m.CompanyID,
		WorkflowID:   m.WorkflowID,
		RequestorID:  m.RequestorID,
		ApproverID:   m.ApproverID,
		DocumentKind: domain.DocumentKind(m.DocumentKind),
		DocumentID:   m.DocumentID,
		Amount:       m.Amount,
		Description:  m.Description,
		Priority:     domain.Priority(m.Priority),
		DueDate:      m.DueDate,
		Status:       domain.RequestStatus(m.Status),
		CurrentLevel: m.CurrentLevel,
		Comments:     m.Comments,
		CompletedAt:  m.CompletedAt,
		RejectedAt:   m.RejectedAt,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
