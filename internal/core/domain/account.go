package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents one chart-of-accounts entry.
// Balance is only ever mutated by posted journal entry lines; document
// services never write it directly.
type Account struct {
	AccountID   string          `json:"accountID"` // Primary Key (UUID)
	CompanyID   string          `json:"companyID"` // Company scope (NON-NULL)
	Code        string          `json:"code"`      // Short ledger code, unique per company
	Name        string          `json:"name"`      // e.g. "Accounts Payable"
	AccountType AccountType     `json:"accountType"`
	Description string          `json:"description"`
	IsActive    bool            `json:"isActive"`
	Balance     decimal.Decimal `json:"balance"` // Persisted running balance
	AuditFields
}

// Well-known account names resolved by the posting engine. Posting fails
// with ErrMissingAccount when the company's chart lacks one of these.
const (
	AccountNameOperatingExpenses  = "Operating Expenses"
	AccountNameAccountsPayable    = "Accounts Payable"
	AccountNameAccountsReceivable = "Accounts Receivable"
	AccountNameSalesRevenue       = "Sales Revenue"
	AccountNameInputTax           = "Input Tax"
	AccountNameOutputTax          = "Output Tax"
	AccountNameTaxExpense         = "Tax Expense"
	AccountNameTaxPayable         = "Tax Payable"
	AccountNameCash               = "Cash"
	AccountNameFixedAssets        = "Fixed Assets"
)
