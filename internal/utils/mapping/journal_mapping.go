package mapping

import (
	"github.com/finovo/erp-backend/internal/core/domain"
	"github.com/finovo/erp-backend/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:      d.EntryID,
		CompanyID:    d.CompanyID,
		EntryNumber:  d.EntryNumber,
		EntryDate:    d.EntryDate,
		Description:  d.Description,
		SourceKind:   string(d.SourceKind),
		SourceID:     d.SourceID,
		TotalDebit:   d.TotalDebit,
		TotalCredit:  d.TotalCredit,
		Status:       models.EntryStatus(d.Status),
		PostedAt:     d.PostedAt,
		ReversedByID: d.ReversedByID,
		ReversalOfID: d.ReversalOfID,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:      m.EntryID,
		CompanyID:    m.CompanyID,
		EntryNumber:  m.EntryNumber,
		EntryDate:    m.EntryDate,
		Description:  m.Description,
		SourceKind:   domain.DocumentKind(m.SourceKind),
		SourceID:     m.SourceID,
		TotalDebit:   m.TotalDebit,
		TotalCredit:  m.TotalCredit,
		Status:       domain.EntryStatus(m.Status),
		PostedAt:     m.PostedAt,
		ReversedByID: m.ReversedByID,
		ReversalOfID: m.ReversalOfID,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:       d.LineID,
		EntryID:      d.EntryID,
		AccountID:    d.AccountID,
		Description:  d.Description,
		DebitAmount:  d.DebitAmount,
		CreditAmount: d.CreditAmount,
		LineNumber:   d.LineNumber,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:       m.LineID,
		EntryID:      m.EntryID,
		AccountID:    m.AccountID,
		Description:  m.Description,
		DebitAmount:  m.DebitAmount,
		CreditAmount: m.CreditAmount,
		LineNumber:   m.LineNumber,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLineSlice converts a slice of model lines to domain lines.
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
