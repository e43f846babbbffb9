package calculator

import (
	"testing"
	"time"

	"github.com/mmynk/fintrack/internal/models"
)

func TestSummarize(t *testing.T) {
	now := time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC)
	accounts := []models.Account{
		{ID: "a1", Balance: dec("150")},
		{ID: "a2", Balance: dec("-20.5")},
	}
	categories := []models.Category{
		{ID: "food", Name: "Groceries"},
		{ID: "salary", Name: "Salary"},
	}
	transactions := []models.Transaction{
		txn("t1", models.TransactionIncome, "200", "a1", "salary", models.NewDate(2026, 10, 1)),
		txn("t2", models.TransactionExpense, "50", "a1", "food", models.NewDate(2026, 10, 2)),
		txn("t3", models.TransactionExpense, "20.5", "a2", "food", models.NewDate(2026, 10, 3)),
		txn("t4", models.TransactionExpense, "70", "a2", "food", models.NewDate(2026, 9, 3)),
		txn("t5", models.TransactionExpense, "1", "a2", "deleted-cat", models.NewDate(2026, 10, 4)),
		txn("t6", models.TransactionExpense, "1", "a2", "food", models.NewDate(2026, 8, 4)),
	}

	got := Summarize(accounts, categories, transactions, now)

	if got.Month != "Oct 2026" {
		t.Errorf("month = %q", got.Month)
	}
	if !got.TotalIncome.Equal(dec("200")) {
		t.Errorf("income = %s, want 200", got.TotalIncome)
	}
	if !got.TotalExpenses.Equal(dec("71.5")) {
		t.Errorf("expenses = %s, want 71.5", got.TotalExpenses)
	}
	if !got.TotalBalance.Equal(dec("129.5")) {
		t.Errorf("balance = %s, want 129.5", got.TotalBalance)
	}
	if !got.CategorySpending["Groceries"].Equal(dec("70.5")) {
		t.Errorf("Groceries = %s, want 70.5", got.CategorySpending["Groceries"])
	}
	if len(got.Recent) != RecentLimit {
		t.Fatalf("recent = %d, want %d", len(got.Recent), RecentLimit)
	}
	if got.Recent[0].ID != "t5" || got.Recent[4].ID != "t4" {
		t.Errorf("recent order = %s..%s, want t5..t4", got.Recent[0].ID, got.Recent[4].ID)
	}
}
