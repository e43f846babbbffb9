package calculator

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/models"
)

// TrailingMonths is the length of the monthly income/expense series.
const TrailingMonths = 6

// MonthLabelLayout renders bucket labels such as "Oct 2026".
const MonthLabelLayout = "Jan 2006"

// MonthBucket is one month of the income/expense series.
type MonthBucket struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// CategorySpending sums expense amounts per category over all time.
// Unlike budget progress there is no period filter.
func CategorySpending(transactions []models.Transaction) map[string]decimal.Decimal {
	spending := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		if t.Type != models.TransactionExpense {
			continue
		}
		spending[t.CategoryID] = spending[t.CategoryID].Add(t.Amount)
	}
	return spending
}

// MonthlySeries returns exactly TrailingMonths buckets, oldest first,
// ending with the month containing now. Months without transactions are
// present with zero totals.
func MonthlySeries(transactions []models.Transaction, now time.Time) []MonthBucket {
	type monthKey struct {
		year  int
		month time.Month
	}

	buckets := make([]MonthBucket, TrailingMonths)
	index := make(map[monthKey]int, TrailingMonths)
	year, month, _ := now.Date()
	for i := 0; i < TrailingMonths; i++ {
		first := time.Date(year, month-time.Month(TrailingMonths-1-i), 1, 0, 0, 0, 0, time.UTC)
		buckets[i] = MonthBucket{
			Month:    first.Format(MonthLabelLayout),
			Income:   decimal.Zero,
			Expenses: decimal.Zero,
		}
		index[monthKey{first.Year(), first.Month()}] = i
	}

	for _, t := range transactions {
		i, ok := index[monthKey{t.Date.Year(), t.Date.Month()}]
		if !ok {
			continue
		}
		switch t.Type {
		case models.TransactionIncome:
			buckets[i].Income = buckets[i].Income.Add(t.Amount)
		case models.TransactionExpense:
			buckets[i].Expenses = buckets[i].Expenses.Add(t.Amount)
		}
	}
	return buckets
}

// DailySpending sums expense amounts per calendar date (YYYY-MM-DD).
func DailySpending(transactions []models.Transaction) map[string]decimal.Decimal {
	daily := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		if t.Type != models.TransactionExpense || t.Date.IsZero() {
			continue
		}
		key := t.Date.String()
		daily[key] = daily[key].Add(t.Amount)
	}
	return daily
}
