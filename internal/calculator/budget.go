package calculator

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/models"
)

// Status is a budget's progress tier.
type Status string

const (
	StatusGood    Status = "good"
	StatusWarning Status = "warning"
	StatusOver    Status = "over"
	// StatusInvalid marks a stored budget with a non-positive cap.
	StatusInvalid Status = "invalid"
)

var (
	hundred          = decimal.NewFromInt(100)
	warningThreshold = decimal.NewFromInt(80)
)

// Progress is a budget joined with its spending in the current period.
type Progress struct {
	models.Budget
	Spent       decimal.Decimal `json:"spent"`
	Remaining   decimal.Decimal `json:"remaining"` // negative when over
	Percentage  float64         `json:"percentage"`
	Status      Status          `json:"status"`
	PeriodStart models.Date     `json:"periodStart"`
	PeriodEnd   models.Date     `json:"periodEnd"`
}

// PeriodBounds returns the inclusive date range of the period containing
// now: the calendar month, or the Monday-to-Sunday week for weekly budgets.
func PeriodBounds(period models.BudgetPeriod, now time.Time) (models.Date, models.Date) {
	today := models.DateOf(now)
	if period == models.PeriodWeekly {
		sinceMonday := (int(now.Weekday()) + 6) % 7
		start := today.AddDays(-sinceMonday)
		return start, start.AddDays(6)
	}
	start := models.NewDate(today.Year(), today.Month(), 1)
	end := models.NewDate(today.Year(), today.Month()+1, 1).AddDays(-1)
	return start, end
}

// StatusFor maps a percentage of the cap to its tier.
func StatusFor(percentage decimal.Decimal) Status {
	switch {
	case percentage.GreaterThanOrEqual(hundred):
		return StatusOver
	case percentage.GreaterThanOrEqual(warningThreshold):
		return StatusWarning
	default:
		return StatusGood
	}
}

// BudgetProgress sums the expenses in the budget's category that fall in
// the current period and grades them against the cap.
func BudgetProgress(b models.Budget, transactions []models.Transaction, now time.Time) Progress {
	start, end := PeriodBounds(b.Period, now)
	spent := decimal.Zero
	for _, t := range transactions {
		if t.Type == models.TransactionExpense &&
			t.CategoryID == b.CategoryID &&
			t.Date.Between(start, end) {
			spent = spent.Add(t.Amount)
		}
	}

	p := Progress{
		Budget:      b,
		Spent:       spent,
		Remaining:   b.Amount.Sub(spent),
		PeriodStart: start,
		PeriodEnd:   end,
	}
	if !b.Amount.IsPositive() {
		p.Status = StatusInvalid
		return p
	}
	pct := spent.Div(b.Amount).Mul(hundred)
	p.Percentage = pct.InexactFloat64()
	p.Status = StatusFor(pct)
	return p
}

// AllBudgetProgress computes progress for each budget, in order.
func AllBudgetProgress(budgets []models.Budget, transactions []models.Transaction, now time.Time) []Progress {
	out := make([]Progress, len(budgets))
	for i, b := range budgets {
		out[i] = BudgetProgress(b, transactions, now)
	}
	return out
}
