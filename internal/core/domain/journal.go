package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	EntryDraft     EntryStatus = "DRAFT"
	EntryPosted    EntryStatus = "POSTED"
	EntryCancelled EntryStatus = "CANCELLED"
)

// JournalEntry represents a single, balanced financial event composed of
// debit/credit lines against the chart of accounts. Once posted it is
// immutable; corrections go through a reversing entry.
type JournalEntry struct {
	EntryID         string          `json:"entryID"`     // Primary Key (UUID)
	CompanyID       string          `json:"companyID"`   // Company scope
	EntryNumber     string          `json:"entryNumber"` // Unique, sequence-derived (JE-000042)
	EntryDate       time.Time       `json:"entryDate"`   // Business date of the source document
	Description     string          `json:"description"`
	SourceKind      DocumentKind    `json:"sourceKind"` // Originating document kind
	SourceID        string          `json:"sourceID"`   // Originating document ID
	TotalDebit      decimal.Decimal `json:"totalDebit"`
	TotalCredit     decimal.Decimal `json:"totalCredit"`
	Status          EntryStatus     `json:"status"`
	PostedAt        *time.Time      `json:"postedAt,omitempty"`
	ReversedByID    *string         `json:"reversedByID,omitempty"`    // Entry that cancels this one
	ReversalOfID    *string         `json:"reversalOfID,omitempty"`    // Entry this one cancels
	Lines           []JournalLine   `json:"lines,omitempty"`           // Often loaded separately
	AuditFields
}

// JournalLine is a single debit or credit posting within an entry.
// Exactly one of DebitAmount/CreditAmount is non-zero. LineNumber orders
// lines for display only; it carries no weight in balance computation.
type JournalLine struct {
	LineID       string          `json:"lineID"`  // Primary Key (UUID)
	EntryID      string          `json:"entryID"` // FK -> JournalEntry (Not Null)
	AccountID    string          `json:"accountID"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	LineNumber   int             `json:"lineNumber"`
	AuditFields
}

// IsDebit reports whether the line posts to the debit side.
func (l JournalLine) IsDebit() bool {
	return l.DebitAmount.IsPositive()
}

// Amount returns the magnitude of the line regardless of side.
func (l JournalLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.DebitAmount
	}
	return l.CreditAmount
}
