package calculator

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func txn(id string, typ models.TransactionType, amount, accountID, categoryID string, date models.Date) models.Transaction {
	return models.Transaction{
		ID:         id,
		Type:       typ,
		Amount:     dec(amount),
		AccountID:  accountID,
		CategoryID: categoryID,
		Date:       date,
	}
}

func TestApplyAndReverseTransaction(t *testing.T) {
	accounts := []models.Account{
		{ID: "a1", Name: "Main", Balance: dec("0")},
		{ID: "a2", Name: "Savings", Balance: dec("100")},
	}
	day := models.NewDate(2026, 10, 1)

	expense := txn("t1", models.TransactionExpense, "50", "a1", "c1", day)
	income := txn("t2", models.TransactionIncome, "200", "a1", "c2", day)

	if !ApplyTransaction(accounts, expense) {
		t.Fatal("ApplyTransaction reported missing account")
	}
	if !accounts[0].Balance.Equal(dec("-50")) {
		t.Errorf("after expense: balance = %s, want -50", accounts[0].Balance)
	}

	ApplyTransaction(accounts, income)
	if !accounts[0].Balance.Equal(dec("150")) {
		t.Errorf("after income: balance = %s, want 150", accounts[0].Balance)
	}

	ReverseTransaction(accounts, expense)
	if !accounts[0].Balance.Equal(dec("200")) {
		t.Errorf("after reversing expense: balance = %s, want 200", accounts[0].Balance)
	}

	if !accounts[1].Balance.Equal(dec("100")) {
		t.Errorf("untouched account changed: %s", accounts[1].Balance)
	}

	orphan := txn("t3", models.TransactionIncome, "10", "missing", "c1", day)
	if ApplyTransaction(accounts, orphan) {
		t.Error("ApplyTransaction should report false for unknown account")
	}
	if ReverseTransaction(accounts, orphan) {
		t.Error("ReverseTransaction should report false for unknown account")
	}
}

func TestReconcile(t *testing.T) {
	day := models.NewDate(2026, 10, 1)
	transactions := []models.Transaction{
		txn("t1", models.TransactionExpense, "19.99", "a1", "c1", day),
		txn("t2", models.TransactionIncome, "1000", "a1", "c2", day),
		txn("t3", models.TransactionExpense, "5", "a2", "c1", day),
	}

	tests := []struct {
		name     string
		accounts []models.Account
		wantIDs  []string
	}{
		{
			name: "consistent ledger",
			accounts: []models.Account{
				{ID: "a1", OpeningBalance: dec("10"), Balance: dec("990.01")},
				{ID: "a2", OpeningBalance: dec("0"), Balance: dec("-5")},
			},
			wantIDs: nil,
		},
		{
			name: "drifted balance",
			accounts: []models.Account{
				{ID: "a1", OpeningBalance: dec("10"), Balance: dec("990.01")},
				{ID: "a2", OpeningBalance: dec("0"), Balance: dec("0")},
			},
			wantIDs: []string{"a2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reconcile(tt.accounts, transactions)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d discrepancies, want %d: %+v", len(got), len(tt.wantIDs), got)
			}
			for i, id := range tt.wantIDs {
				if got[i].AccountID != id {
					t.Errorf("discrepancy %d: account %s, want %s", i, got[i].AccountID, id)
				}
			}
		})
	}
}

func TestDeriveBalances_IgnoresUnknownAccounts(t *testing.T) {
	accounts := []models.Account{{ID: "a1", OpeningBalance: dec("25")}}
	transactions := []models.Transaction{
		txn("t1", models.TransactionIncome, "5", "a1", "c", models.NewDate(2026, 1, 1)),
		txn("t2", models.TransactionIncome, "500", "ghost", "c", models.NewDate(2026, 1, 1)),
	}

	got := DeriveBalances(accounts, transactions)
	if len(got) != 1 {
		t.Fatalf("expected 1 balance, got %d", len(got))
	}
	if !got["a1"].Equal(dec("30")) {
		t.Errorf("a1 = %s, want 30", got["a1"])
	}
}
