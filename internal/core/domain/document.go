package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind is the closed set of business documents the posting and
// approval engines operate on. Dispatch is always an explicit switch over
// these values; there is no string-keyed type lookup.
type DocumentKind string

const (
	KindBill           DocumentKind = "BILL"
	KindInvoice        DocumentKind = "INVOICE"
	KindExpense        DocumentKind = "EXPENSE"
	KindAssetPurchase  DocumentKind = "ASSET_PURCHASE"
	KindTaxTransaction DocumentKind = "TAX_TRANSACTION"
)

// DocumentKinds lists every valid kind, in a stable order.
var DocumentKinds = []DocumentKind{
	KindBill, KindInvoice, KindExpense, KindAssetPurchase, KindTaxTransaction,
}

// Valid reports whether k is one of the known document kinds.
func (k DocumentKind) Valid() bool {
	switch k {
	case KindBill, KindInvoice, KindExpense, KindAssetPurchase, KindTaxTransaction:
		return true
	}
	return false
}

// DocumentStatus is the lifecycle state of a business document.
type DocumentStatus string

const (
	DocDraft           DocumentStatus = "DRAFT"
	DocPendingApproval DocumentStatus = "PENDING_APPROVAL"
	DocApproved        DocumentStatus = "APPROVED"
	DocRejected        DocumentStatus = "REJECTED"
	DocPosted          DocumentStatus = "POSTED"
	DocPaid            DocumentStatus = "PAID"
	DocCancelled       DocumentStatus = "CANCELLED"
)

// Document is a postable/approvable business record (bill, invoice, expense,
// asset purchase or tax transaction). SupplierID/CustomerID are populated
// depending on kind. Subtotal + Tax must equal Total.
type Document struct {
	DocumentID        string          `json:"documentID"` // Primary Key (UUID)
	CompanyID         string          `json:"companyID"`
	Kind              DocumentKind    `json:"kind"`
	DocumentNumber    string          `json:"documentNumber"` // User-facing reference
	DocumentDate      time.Time       `json:"documentDate"`   // Business date, becomes entry date on post
	Description       string          `json:"description"`
	SupplierID        *string         `json:"supplierID,omitempty"` // Bills, asset purchases
	CustomerID        *string         `json:"customerID,omitempty"` // Invoices
	Subtotal          decimal.Decimal `json:"subtotal"`
	Tax               decimal.Decimal `json:"tax"`
	Total             decimal.Decimal `json:"total"`
	Status            DocumentStatus  `json:"status"`
	JournalEntryID    *string         `json:"journalEntryID,omitempty"`
	ApprovalRequestID *string         `json:"approvalRequestID,omitempty"`
	PostedAt          *time.Time      `json:"postedAt,omitempty"`
	AuditFields
}

// PaymentKind distinguishes the direction of a payment.
type PaymentKind string

const (
	BillPayment    PaymentKind = "BILL_PAYMENT"    // Settles a supplier bill (AP -> Cash)
	InvoicePayment PaymentKind = "INVOICE_PAYMENT" // Collects a customer invoice (Cash -> AR)
)

// Payment settles a posted bill or invoice and produces a two-line journal
// entry of its own.
type Payment struct {
	PaymentID      string          `json:"paymentID"` // Primary Key (UUID)
	CompanyID      string          `json:"companyID"`
	Kind           PaymentKind     `json:"kind"`
	DocumentID     string          `json:"documentID"` // The bill or invoice being settled
	Amount         decimal.Decimal `json:"amount"`
	PaymentDate    time.Time       `json:"paymentDate"`
	Status         DocumentStatus  `json:"status"` // DRAFT -> POSTED
	JournalEntryID *string         `json:"journalEntryID,omitempty"`
	AuditFields
}
