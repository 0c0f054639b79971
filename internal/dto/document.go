package dto

import (
	"time"

	"github.com/finovo/erp-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDocumentRequest is the payload for creating any business document.
// Subtotal + Tax must equal Total; the service validates the arithmetic.
type CreateDocumentRequest struct {
	Kind           domain.DocumentKind `json:"kind" binding:"required,documentkind"`
	DocumentNumber string              `json:"documentNumber" binding:"required,max=50"`
	DocumentDate   time.Time           `json:"documentDate" binding:"required"`
	Description    string              `json:"description" binding:"required"`
	SupplierID     *string             `json:"supplierID,omitempty"`
	CustomerID     *string             `json:"customerID,omitempty"`
	Subtotal       decimal.Decimal     `json:"subtotal" binding:"required"`
	Tax            decimal.Decimal     `json:"tax"`
	Total          decimal.Decimal     `json:"total" binding:"required"`
}

// CreatePaymentRequest is the payload for paying a posted bill or invoice.
type CreatePaymentRequest struct {
	Kind        domain.PaymentKind `json:"kind" binding:"required,oneof=BILL_PAYMENT INVOICE_PAYMENT"`
	DocumentID  string             `json:"documentID" binding:"required,uuid"`
	Amount      decimal.Decimal    `json:"amount" binding:"required"`
	PaymentDate time.Time          `json:"paymentDate" binding:"required"`
}

// DocumentResponse is the API representation of a document.
type DocumentResponse struct {
	DocumentID        string                `json:"documentID"`
	CompanyID         string                `json:"companyID"`
	Kind              domain.DocumentKind   `json:"kind"`
	DocumentNumber    string                `json:"documentNumber"`
	DocumentDate      time.Time             `json:"documentDate"`
	Description       string                `json:"description"`
	SupplierID        *string               `json:"supplierID,omitempty"`
	CustomerID        *string               `json:"customerID,omitempty"`
	Subtotal          decimal.Decimal       `json:"subtotal"`
	Tax               decimal.Decimal       `json:"tax"`
	Total             decimal.Decimal       `json:"total"`
	Status            domain.DocumentStatus `json:"status"`
	JournalEntryID    *string               `json:"journalEntryID,omitempty"`
	ApprovalRequestID *string               `json:"approvalRequestID,omitempty"`
	PostedAt          *time.Time            `json:"postedAt,omitempty"`
}

// ToDocumentResponse converts a domain Document to its API representation.
func ToDocumentResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:        d.DocumentID,
		CompanyID:         d.CompanyID,
		Kind:              d.Kind,
		DocumentNumber:    d.DocumentNumber,
		DocumentDate:      d.DocumentDate,
		Description:       d.Description,
		SupplierID:        d.SupplierID,
		CustomerID:        d.CustomerID,
		Subtotal:          d.Subtotal,
		Tax:               d.Tax,
		Total:             d.Total,
		Status:            d.Status,
		JournalEntryID:    d.JournalEntryID,
		ApprovalRequestID: d.ApprovalRequestID,
		PostedAt:          d.PostedAt,
	}
}

// ToDocumentResponses converts a slice of documents.
func ToDocumentResponses(docs []domain.Document) []DocumentResponse {
	out := make([]DocumentResponse, len(docs))
	for i := range docs {
		out[i] = ToDocumentResponse(&docs[i])
	}
	return out
}

// PaymentResponse is the API representation of a payment.
type PaymentResponse struct {
	PaymentID      string                `json:"paymentID"`
	Kind           domain.PaymentKind    `json:"kind"`
	DocumentID     string                `json:"documentID"`
	Amount         decimal.Decimal       `json:"amount"`
	PaymentDate    time.Time             `json:"paymentDate"`
	Status         domain.DocumentStatus `json:"status"`
	JournalEntryID *string               `json:"journalEntryID,omitempty"`
}

// ToPaymentResponse converts a domain Payment to its API representation.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:      p.PaymentID,
		Kind:           p.Kind,
		DocumentID:     p.DocumentID,
		Amount:         p.Amount,
		PaymentDate:    p.PaymentDate,
		Status:         p.Status,
		JournalEntryID: p.JournalEntryID,
	}
}
