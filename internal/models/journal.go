package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus mirrors domain.EntryStatus at the persistence layer.
type EntryStatus string

// JournalEntry is the persistence model for journal entry headers.
type JournalEntry struct {
	EntryID      string          `json:"entryID"`
	CompanyID    string          `json:"companyID"`
	EntryNumber  string          `json:"entryNumber"`
	EntryDate    time.Time       `json:"entryDate"`
	Description  string          `json:"description"`
	SourceKind   string          `json:"sourceKind"`
	SourceID     string          `json:"sourceID"`
	TotalDebit   decimal.Decimal `json:"totalDebit"`
	TotalCredit  decimal.Decimal `json:"totalCredit"`
	Status       EntryStatus     `json:"status"`
	PostedAt     *time.Time      `json:"postedAt"`
	ReversedByID *string         `json:"reversedByID"`
	ReversalOfID *string         `json:"reversalOfID"`
	AuditFields
}

// JournalLine is the persistence model for journal entry lines.
type JournalLine struct {
	LineID       string          `json:"lineID"`
	EntryID      string          `json:"entryID"`
	AccountID    string          `json:"accountID"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	LineNumber   int             `json:"lineNumber"`
	AuditFields
}
