package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/events"
	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
	"github.com/mmynk/fintrack/internal/storage/sqlite"
)

var testNow = time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	store    *sqlite.SQLiteStore
	deps     Deps
	recorder *events.Recorder

	transactions *TransactionService
	accounts     *AccountService
	categories   *CategoryService
	budgets      *BudgetService
	analytics    *AnalyticsService
}

// setupTestEnv creates services over a temp-file SQLite store.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "fintrack-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		os.RemoveAll(tempDir)
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
		os.RemoveAll(tempDir)
	})

	recorder := &events.Recorder{}
	deps := Deps{
		Ledger: storage.NewLedger(store),
		Locks:  NewUserLocks(),
		Events: recorder,
		Clock:  func() time.Time { return testNow },
	}

	return &testEnv{
		store:        store,
		deps:         deps,
		recorder:     recorder,
		transactions: NewTransactionService(deps),
		accounts:     NewAccountService(deps),
		categories:   NewCategoryService(deps),
		budgets:      NewBudgetService(deps),
		analytics:    NewAnalyticsService(deps),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (e *testEnv) mustCreateAccount(t *testing.T, userID, name, balance string) models.Account {
	t.Helper()
	a, err := e.accounts.Create(context.Background(), userID, models.AccountInput{
		Name:    name,
		Type:    models.AccountChecking,
		Balance: dec(balance),
	})
	if err != nil {
		t.Fatalf("create account %s: %v", name, err)
	}
	return a
}

func (e *testEnv) mustCreateTransaction(t *testing.T, userID string, typ models.TransactionType, amount, accountID, categoryID string) models.Transaction {
	t.Helper()
	txn, err := e.transactions.Create(context.Background(), userID, models.TransactionInput{
		Type:       typ,
		Amount:     dec(amount),
		Date:       models.DateOf(testNow),
		AccountID:  accountID,
		CategoryID: categoryID,
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	return txn
}

func (e *testEnv) balanceOf(t *testing.T, userID, accountID string) decimal.Decimal {
	t.Helper()
	accounts, err := e.accounts.List(context.Background(), userID)
	if err != nil {
		t.Fatalf("list accounts: %v", err)
	}
	for _, a := range accounts {
		if a.ID == accountID {
			return a.Balance
		}
	}
	t.Fatalf("account %s not found", accountID)
	return decimal.Zero
}

func (e *testEnv) assertReconciled(t *testing.T, userID string) {
	t.Helper()
	discrepancies, err := e.accounts.Reconcile(context.Background(), userID)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(discrepancies) != 0 {
		t.Fatalf("balance invariant violated: %+v", discrepancies)
	}
}

func assertCode(t *testing.T, err error, want Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	if got := CodeOf(err); got != want {
		t.Fatalf("expected code %s, got %s (%v)", want, got, err)
	}
}

func assertErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("expected %v, got %v", target, err)
	}
}
