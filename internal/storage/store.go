// Package storage provides the per-user ledger store and its typed
// repository.
package storage

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Get when no record exists for a key.
	ErrNotFound = errors.New("record not found")

	// ErrVersionConflict is returned by Set when a record's stored version
	// no longer matches the version the writer read.
	ErrVersionConflict = errors.New("record was modified concurrently")
)

// Entity names one of a user's ledger records.
type Entity string

const (
	EntityTransactions Entity = "transactions"
	EntityAccounts     Entity = "accounts"
	EntityCategories   Entity = "categories"
	EntityBudgets      Entity = "budgets"
	EntityProfile      Entity = "profile"
)

// Key addresses one record: a single entity list of a single user.
type Key struct {
	UserID string
	Entity Entity
}

// String renders the key in its persisted form, user:<id>:<entity>.
func (k Key) String() string {
	return fmt.Sprintf("user:%s:%s", k.UserID, k.Entity)
}

// Record is a stored value with its version stamp.
type Record struct {
	Value   []byte
	Version int64
}

// Write replaces a whole record. Version is the version the writer last
// read; zero means the record must not exist yet.
type Write struct {
	Key     Key
	Value   []byte
	Version int64
}

// Store defines the ledger persistence contract: whole-record get and
// whole-record compare-and-swap set. There are no partial updates and no
// query language.
// This abstraction allows swapping storage backends (SQLite, memory, etc.)
// without changing the service layer.
type Store interface {
	// Get returns the record for key, or ErrNotFound.
	Get(ctx context.Context, key Key) (Record, error)

	// Set applies all writes atomically. If any write's Version does not
	// match the stored version, nothing is written and ErrVersionConflict
	// is returned. On success each record's version is Version+1.
	Set(ctx context.Context, writes ...Write) error

	// Close releases any resources held by the store.
	Close() error
}
