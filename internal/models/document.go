package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Document is the persistence model for postable/approvable business
// documents. One table holds all kinds; the kind column is the closed
// discriminator.
type Document struct {
	DocumentID        string          `json:"documentID"`
	CompanyID         string          `json:"companyID"`
	Kind              string          `json:"kind"`
	DocumentNumber    string          `json:"documentNumber"`
	DocumentDate      time.Time       `json:"documentDate"`
	Description       string          `json:"description"`
	SupplierID        *string         `json:"supplierID"`
	CustomerID        *string         `json:"customerID"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	Tax               decimal.Decimal `json:"tax"`
	Total             decimal.Decimal `json:"total"`
	Status            string          `json:"status"`
	JournalEntryID    *string         `json:"journalEntryID"`
	ApprovalRequestID *string         `json:"approvalRequestID"`
	PostedAt          *time.Time      `json:"postedAt"`
	AuditFields
}

// Payment is the persistence model for payments.
type Payment struct {
	PaymentID      string          `json:"paymentID"`
	CompanyID      string          `json:"companyID"`
	Kind           string          `json:"kind"`
	DocumentID     string          `json:"documentID"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentDate    time.Time       `json:"paymentDate"`
	Status         string          `json:"status"`
	JournalEntryID *string         `json:"journalEntryID"`
	AuditFields
}
