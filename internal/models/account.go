package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies an account.
type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCredit     AccountType = "credit"
	AccountCash       AccountType = "cash"
	AccountCurrent    AccountType = "current"
	AccountInvestment AccountType = "investment"
	AccountWallet     AccountType = "wallet"
)

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	switch t {
	case AccountChecking, AccountSavings, AccountCredit, AccountCash,
		AccountCurrent, AccountInvestment, AccountWallet:
		return true
	}
	return false
}

// Account holds money and a running balance.
//
// Balance is derived but stored: at any quiescent point it equals
// OpeningBalance plus the signed amounts of all transactions currently
// referencing the account. Only the transaction mutator changes it.
type Account struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Type           AccountType     `json:"type"`
	Balance        decimal.Decimal `json:"balance"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// AccountInput is the body of an account creation request.
// Balance is the opening balance.
type AccountInput struct {
	Name    string          `json:"name"`
	Type    AccountType     `json:"type"`
	Balance decimal.Decimal `json:"balance"`
}

// AccountPatch is a partial account update. Balances are not patchable.
type AccountPatch struct {
	Name *string      `json:"name"`
	Type *AccountType `json:"type"`
}

// Apply returns a copy of a with the patch applied.
func (p AccountPatch) Apply(a Account) Account {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Type != nil {
		a.Type = *p.Type
	}
	return a
}
