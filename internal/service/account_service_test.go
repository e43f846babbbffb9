package service

import (
	"context"
	"testing"

	"github.com/mmynk/fintrack/internal/models"
)

func TestAccountService_CRUD(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	const user = "user-1"

	a := env.mustCreateAccount(t, user, "Wallet", "12.5")
	if !a.OpeningBalance.Equal(dec("12.5")) || !a.Balance.Equal(dec("12.5")) {
		t.Fatalf("opening/current balance = %s/%s, want 12.5", a.OpeningBalance, a.Balance)
	}

	name := "Pocket"
	typ := models.AccountWallet
	updated, err := env.accounts.Update(ctx, user, a.ID, models.AccountPatch{Name: &name, Type: &typ})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != name || updated.Type != typ {
		t.Errorf("patch not applied: %+v", updated)
	}
	if !updated.Balance.Equal(dec("12.5")) {
		t.Errorf("balance changed by update: %s", updated.Balance)
	}

	if err := env.accounts.Delete(ctx, user, a.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	accounts, err := env.accounts.List(ctx, user)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(accounts) != 0 {
		t.Errorf("expected no accounts, got %d", len(accounts))
	}

	_, err = env.accounts.Update(ctx, user, a.ID, models.AccountPatch{Name: &name})
	assertCode(t, err, CodeNotFound)
	assertCode(t, env.accounts.Delete(ctx, user, a.ID), CodeNotFound)
}

func TestAccountService_CreateValidation(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   models.AccountInput
	}{
		{"missing name", models.AccountInput{Type: models.AccountCash}},
		{"unknown type", models.AccountInput{Name: "X", Type: "crypto"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.accounts.Create(ctx, "user-1", tt.in)
			assertCode(t, err, CodeInvalidArgument)
		})
	}
}

func TestAccountService_DeleteGuardedByTransactions(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	const user = "user-1"

	a := env.mustCreateAccount(t, user, "Main", "0")
	txn := env.mustCreateTransaction(t, user, models.TransactionExpense, "9.99", a.ID, "c")

	err := env.accounts.Delete(ctx, user, a.ID)
	assertCode(t, err, CodeFailedPrecondition)
	assertErrorIs(t, err, ErrAccountInUse)

	accounts, _ := env.accounts.List(ctx, user)
	if len(accounts) != 1 {
		t.Fatalf("account list changed after blocked delete: %d", len(accounts))
	}

	if err := env.transactions.Delete(ctx, user, txn.ID); err != nil {
		t.Fatalf("delete transaction: %v", err)
	}
	if err := env.accounts.Delete(ctx, user, a.ID); err != nil {
		t.Fatalf("Delete after clearing references failed: %v", err)
	}
}

func TestAccountService_ReconcileReportsDrift(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	const user = "user-1"

	a := env.mustCreateAccount(t, user, "Main", "0")
	env.mustCreateTransaction(t, user, models.TransactionIncome, "100", a.ID, "c")

	// Corrupt the stored balance behind the service's back.
	accounts, err := env.deps.Ledger.Accounts(ctx, user)
	if err != nil {
		t.Fatalf("load accounts: %v", err)
	}
	accounts.Items[0].Balance = dec("90")
	if err := env.deps.Ledger.Save(ctx, accounts); err != nil {
		t.Fatalf("save accounts: %v", err)
	}

	got, err := env.accounts.Reconcile(ctx, user)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 discrepancy, got %d", len(got))
	}
	if !got[0].Derived.Equal(dec("100")) || !got[0].Difference.Equal(dec("-10")) {
		t.Errorf("unexpected discrepancy: %+v", got[0])
	}
}
