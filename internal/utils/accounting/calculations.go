package accounting

import (
	"fmt"

	"github.com/finovo/erp-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateSignedAmount applies the correct sign to a journal line amount
// based on account type and side. Used by both the posting service and the
// journal repository so balance arithmetic stays consistent.
//
// DEBIT to ASSET/EXPENSE -> Positive (+)
// CREDIT to ASSET/EXPENSE -> Negative (-)
// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
func CalculateSignedAmount(line domain.JournalLine, accountType domain.AccountType) (decimal.Decimal, error) {
	signedAmount := line.Amount()
	isDebit := line.IsDebit()

	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			signedAmount = signedAmount.Neg()
		}
	case domain.Liability, domain.Equity, domain.Revenue:
		if isDebit {
			signedAmount = signedAmount.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, line.AccountID)
	}
	return signedAmount, nil
}

// ValidateEntryBalance checks the double-entry law for a set of lines:
// the debit side and credit side must sum to the same positive amount, and
// every line must carry exactly one positive side.
func ValidateEntryBalance(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("journal entry must have at least two lines")
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		debitSet := line.DebitAmount.IsPositive()
		creditSet := line.CreditAmount.IsPositive()
		if debitSet == creditSet {
			return fmt.Errorf("line %d must have exactly one of debit or credit set", line.LineNumber)
		}
		if line.DebitAmount.IsNegative() || line.CreditAmount.IsNegative() {
			return fmt.Errorf("line %d has a negative amount", line.LineNumber)
		}
		debits = debits.Add(line.DebitAmount)
		credits = credits.Add(line.CreditAmount)
	}

	if !debits.Equal(credits) {
		return fmt.Errorf("journal entry does not balance: debits sum to %s, credits sum to %s", debits.String(), credits.String())
	}
	return nil
}
