package calculator

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/models"
)

// RecentLimit is the number of transactions in Dashboard.Recent.
const RecentLimit = 5

// Dashboard summarizes the current month.
type Dashboard struct {
	Month         string          `json:"month"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	TotalBalance  decimal.Decimal `json:"totalBalance"`
	// CategorySpending is keyed by category name and covers only the
	// current month. Expenses in unknown categories are left out.
	CategorySpending map[string]decimal.Decimal `json:"categorySpending"`
	Recent           []models.Transaction       `json:"recentTransactions"`
}

// Summarize builds the dashboard for the month containing now.
func Summarize(accounts []models.Account, categories []models.Category, transactions []models.Transaction, now time.Time) Dashboard {
	start, end := PeriodBounds(models.PeriodMonthly, now)

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	d := Dashboard{
		Month:            now.Format(MonthLabelLayout),
		TotalIncome:      decimal.Zero,
		TotalExpenses:    decimal.Zero,
		TotalBalance:     TotalBalance(accounts),
		CategorySpending: make(map[string]decimal.Decimal),
	}
	for _, t := range transactions {
		if !t.Date.Between(start, end) {
			continue
		}
		switch t.Type {
		case models.TransactionIncome:
			d.TotalIncome = d.TotalIncome.Add(t.Amount)
		case models.TransactionExpense:
			d.TotalExpenses = d.TotalExpenses.Add(t.Amount)
			if name, ok := names[t.CategoryID]; ok {
				d.CategorySpending[name] = d.CategorySpending[name].Add(t.Amount)
			}
		}
	}
	d.Recent = RecentTransactions(transactions, RecentLimit)
	return d
}

// RecentTransactions returns up to n transactions, newest date first.
// Ties are broken by creation time, newest first.
func RecentTransactions(transactions []models.Transaction, n int) []models.Transaction {
	sorted := make([]models.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.Date.Time().Equal(b.Date.Time()) {
			return a.Date.After(b.Date)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
