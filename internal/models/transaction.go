package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is either income or expense.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Transaction is a single income or expense posting against an account.
// ID is immutable once created. Amount, Type and AccountID are the fields
// whose mutation moves account balances.
type Transaction struct {
	ID         string          `json:"id"`
	Type       TransactionType `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	Date       Date            `json:"date"`
	CategoryID string          `json:"categoryId"`
	AccountID  string          `json:"accountId"`
	Merchant   string          `json:"merchant,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// Signed returns +Amount for income and -Amount for expense.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == TransactionIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}

// TransactionInput carries the client-supplied fields of a new transaction.
type TransactionInput struct {
	Type       TransactionType `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	Date       Date            `json:"date"`
	CategoryID string          `json:"categoryId"`
	AccountID  string          `json:"accountId"`
	Merchant   string          `json:"merchant"`
	Notes      string          `json:"notes"`
}

// TransactionPatch is a partial update. Nil fields are left unchanged.
type TransactionPatch struct {
	Type       *TransactionType `json:"type"`
	Amount     *decimal.Decimal `json:"amount"`
	Date       *Date            `json:"date"`
	CategoryID *string          `json:"categoryId"`
	AccountID  *string          `json:"accountId"`
	Merchant   *string          `json:"merchant"`
	Notes      *string          `json:"notes"`
}

// Apply returns a copy of t with the patch applied.
func (p TransactionPatch) Apply(t Transaction) Transaction {
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.CategoryID != nil {
		t.CategoryID = *p.CategoryID
	}
	if p.AccountID != nil {
		t.AccountID = *p.AccountID
	}
	if p.Merchant != nil {
		t.Merchant = *p.Merchant
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	return t
}

// AffectsBalance reports whether the patch touches a balance-moving field.
func (p TransactionPatch) AffectsBalance() bool {
	return p.Type != nil || p.Amount != nil || p.AccountID != nil
}
