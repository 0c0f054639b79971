package models

import "github.com/shopspring/decimal"

// AccountType mirrors domain.AccountType at the persistence layer.
type AccountType string

// Account is the persistence model for chart-of-accounts rows.
type Account struct {
	AccountID   string          `json:"accountID"`
	CompanyID   string          `json:"companyID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Description string          `json:"description"`
	IsActive    bool            `json:"isActive"`
	Balance     decimal.Decimal `json:"balance"`
	AuditFields
}
