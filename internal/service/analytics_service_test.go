package service

import (
	"context"
	"reflect"
	"testing"

	"github.com/mmynk/fintrack/internal/models"
)

func TestAnalyticsService_Analytics(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	const user = "user-1"

	a := env.mustCreateAccount(t, user, "Main", "0")
	env.mustCreateTransaction(t, user, models.TransactionIncome, "3000", a.ID, "salary")
	env.mustCreateTransaction(t, user, models.TransactionExpense, "120", a.ID, "food")
	_, err := env.transactions.Create(ctx, user, models.TransactionInput{
		Type:       models.TransactionExpense,
		Amount:     dec("30"),
		Date:       models.NewDate(2024, 1, 15),
		AccountID:  a.ID,
		CategoryID: "food",
	})
	if err != nil {
		t.Fatalf("create old transaction: %v", err)
	}

	report, err := env.analytics.Analytics(ctx, user)
	if err != nil {
		t.Fatalf("Analytics failed: %v", err)
	}

	if !report.CategorySpending["food"].Equal(dec("150")) {
		t.Errorf("food spending = %s, want 150 (all time)", report.CategorySpending["food"])
	}
	if _, ok := report.CategorySpending["salary"]; ok {
		t.Error("income must not appear in category spending")
	}
	if len(report.MonthlyData) != 6 {
		t.Fatalf("monthlyData has %d entries, want 6", len(report.MonthlyData))
	}
	last := report.MonthlyData[5]
	if last.Month != "Oct 2026" || !last.Income.Equal(dec("3000")) || !last.Expenses.Equal(dec("120")) {
		t.Errorf("current month bucket = %+v", last)
	}
	if len(report.Transactions) != 3 {
		t.Errorf("transactions = %d, want 3", len(report.Transactions))
	}

	again, err := env.analytics.Analytics(ctx, user)
	if err != nil {
		t.Fatalf("second Analytics failed: %v", err)
	}
	if !reflect.DeepEqual(report, again) {
		t.Error("repeated reads without mutation should be identical")
	}
}

func TestAnalyticsService_EmptyLedger(t *testing.T) {
	env := setupTestEnv(t)

	report, err := env.analytics.Analytics(context.Background(), "new-user")
	if err != nil {
		t.Fatalf("Analytics failed: %v", err)
	}
	if len(report.MonthlyData) != 6 {
		t.Errorf("monthlyData has %d entries, want 6", len(report.MonthlyData))
	}
	if report.Transactions == nil || report.Categories == nil || report.Budgets == nil {
		t.Error("lists should be empty, not nil")
	}
}

func TestAnalyticsService_Dashboard(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	const user = "user-1"

	food, err := env.categories.Create(ctx, user, models.CategoryInput{Name: "Groceries", Type: models.TransactionExpense})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	a := env.mustCreateAccount(t, user, "Main", "100")
	env.mustCreateTransaction(t, user, models.TransactionExpense, "25", a.ID, food.ID)

	d, err := env.analytics.Dashboard(ctx, user)
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	if !d.TotalBalance.Equal(dec("75")) {
		t.Errorf("totalBalance = %s, want 75", d.TotalBalance)
	}
	if !d.CategorySpending["Groceries"].Equal(dec("25")) {
		t.Errorf("Groceries = %s, want 25", d.CategorySpending["Groceries"])
	}
	if len(d.Recent) != 1 {
		t.Errorf("recent = %d, want 1", len(d.Recent))
	}
}
