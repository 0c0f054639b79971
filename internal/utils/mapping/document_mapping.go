package mapping

import (
	"github.com/finovo/erp-backend/internal/core/domain"
	"github.com/finovo/erp-backend/internal/models"
)

// ToModelDocument converts a domain Document to a model Document.
func ToModelDocument(d domain.Document) models.Document {
	return models.Document{
		DocumentID:        d.DocumentID,
		CompanyID:         d.CompanyID,
		Kind:              string(d.Kind),
		DocumentNumber:    d.DocumentNumber,
		DocumentDate:      d.DocumentDate,
		Description:       d.Description,
		SupplierID:        d.SupplierID,
		CustomerID:        d.CustomerID,
		Subtotal:          d.Subtotal,
		Tax:               d.Tax,
		Total:             d.Total,
		Status:            string(d.Status),
		JournalEntryID:    d.JournalEntryID,
		ApprovalRequestID: d.ApprovalRequestID,
		PostedAt:          d.PostedAt,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDocument converts a model Document to a domain Document.
func ToDomainDocument(m models.Document) domain.Document {
	return domain.Document{
		DocumentID:        m.DocumentID,
		CompanyID:         m.CompanyID,
		Kind:              domain.DocumentKind(m.Kind),
		DocumentNumber:    m.DocumentNumber,
		DocumentDate:      m.DocumentDate,
		Description:       m.Description,
		SupplierID:        m.SupplierID,
		CustomerID:        m.CustomerID,
		Subtotal:          m.Subtotal,
		Tax:               m.Tax,
		Total:             m.Total,
		Status:            domain.DocumentStatus(m.Status),
		JournalEntryID:    m.JournalEntryID,
		ApprovalRequestID: m.ApprovalRequestID,
		PostedAt:          m.PostedAt,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPayment converts a domain Payment to a model Payment.
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:      d.PaymentID,
		CompanyID:      d.CompanyID,
		Kind:           string(d.Kind),
		DocumentID:     d.DocumentID,
		Amount:         d.Amount,
		PaymentDate:    d.PaymentDate,
		Status:         string(d.Status),
		JournalEntryID: d.JournalEntryID,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment.
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:      m.PaymentID,
		CompanyID:      m.CompanyID,
		Kind:           domain.PaymentKind(m.Kind),
		DocumentID:     m.DocumentID,
		Amount:         m.Amount,
		PaymentDate:    m.PaymentDate,
		Status:         domain.DocumentStatus(m.Status),
		JournalEntryID: m.JournalEntryID,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
