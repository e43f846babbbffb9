// Package models defines the core domain models for fintrack.
//
// # Ledger Models
//
// Every ledger entity is owned by exactly one user and lives inside that
// user's per-entity record in the ledger store:
//   - Transaction: an income or expense posted against an account
//   - Account: a money container with a running balance
//   - Category: a label for transactions and budgets
//   - Budget: a spending cap for one category over a period
//   - Profile: per-user preferences (currency, display name)
//
// User is the identity record and is stored separately from the ledger.
//
// # Design Principles
//
//  1. Relationships are ID strings, never pointers. The store has no
//     foreign keys; integrity is enforced by the service layer.
//  2. Money is decimal.Decimal and is encoded in JSON as a plain number.
//  3. Calendar dates are civil dates (Date), not instants.
package models

import "github.com/shopspring/decimal"

func init() {
	// Clients send and expect amounts as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}
