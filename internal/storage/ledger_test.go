package storage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
	"github.com/mmynk/fintrack/internal/storage/memory"
)

func TestKeyString(t *testing.T) {
	k := storage.Key{UserID: "abc", Entity: storage.EntityBudgets}
	if got := k.String(); got != "user:abc:budgets" {
		t.Errorf("Key.String() = %q", got)
	}
}

func TestLedger_EmptyUser(t *testing.T) {
	ctx := context.Background()
	ledger := storage.NewLedger(memory.New())

	txns, err := ledger.Transactions(ctx, "u1")
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	if txns.Items == nil || len(txns.Items) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", txns.Items)
	}

	profile, err := ledger.Profile(ctx, "u1")
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if profile.Exists {
		t.Error("profile should not exist yet")
	}
}

func TestLedger_SaveAndReload(t *testing.T) {
	ctx := context.Background()
	ledger := storage.NewLedger(memory.New())

	accounts, _ := ledger.Accounts(ctx, "u1")
	txns, _ := ledger.Transactions(ctx, "u1")

	accounts.Items = append(accounts.Items, models.Account{
		ID: "a1", Name: "Main", Type: models.AccountChecking,
		Balance: decimal.RequireFromString("-12.34"), OpeningBalance: decimal.Zero,
		CreatedAt: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	})
	txns.Items = append(txns.Items, models.Transaction{
		ID: "t1", Type: models.TransactionExpense, Amount: decimal.RequireFromString("12.34"),
		Date: models.NewDate(2026, time.October, 3), CategoryID: "c1", AccountID: "a1",
	})
	if err := ledger.Save(ctx, txns, accounts); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// A second save from the same handles must succeed: versions advanced.
	accounts.Items[0].Name = "Main account"
	if err := ledger.Save(ctx, accounts); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	reloaded, err := ledger.Accounts(ctx, "u1")
	if err != nil {
		t.Fatalf("Accounts: %v", err)
	}
	if len(reloaded.Items) != 1 || reloaded.Items[0].Name != "Main account" ||
		!reloaded.Items[0].Balance.Equal(decimal.RequireFromString("-12.34")) {
		t.Errorf("unexpected accounts: %+v", reloaded.Items)
	}

	reloadedTxns, _ := ledger.Transactions(ctx, "u1")
	if got := reloadedTxns.Items[0].Date.String(); got != "2026-10-03" {
		t.Errorf("date = %q, want 2026-10-03", got)
	}
}

func TestLedger_StaleHandleConflicts(t *testing.T) {
	ctx := context.Background()
	ledger := storage.NewLedger(memory.New())

	first, _ := ledger.Budgets(ctx, "u1")
	second, _ := ledger.Budgets(ctx, "u1")

	first.Items = append(first.Items, models.Budget{ID: "b1"})
	if err := ledger.Save(ctx, first); err != nil {
		t.Fatalf("Save: %v", err)
	}

	second.Items = append(second.Items, models.Budget{ID: "b2"})
	err := ledger.Save(ctx, second)
	if !errors.Is(err, storage.ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}

	reloaded, _ := ledger.Budgets(ctx, "u1")
	if len(reloaded.Items) != 1 || reloaded.Items[0].ID != "b1" {
		t.Errorf("lost update: %+v", reloaded.Items)
	}
}

func TestLedger_ProfileDoc(t *testing.T) {
	ctx := context.Background()
	ledger := storage.NewLedger(memory.New())

	doc, _ := ledger.Profile(ctx, "u1")
	doc.Value = models.Profile{Currency: "EUR", Name: "Ana"}
	if err := ledger.Save(ctx, doc); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !doc.Exists {
		t.Error("doc should exist after save")
	}

	reloaded, _ := ledger.Profile(ctx, "u1")
	if !reloaded.Exists || reloaded.Value.Currency != "EUR" || reloaded.Value.Name != "Ana" {
		t.Errorf("unexpected profile: %+v", reloaded)
	}
}
