package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod is the window a budget cap applies to.
type BudgetPeriod string

const (
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
)

// Valid reports whether p is a known period.
func (p BudgetPeriod) Valid() bool {
	return p == PeriodWeekly || p == PeriodMonthly
}

// Budget caps spending in one category. Progress is never stored; see
// calculator.BudgetProgress.
type Budget struct {
	ID         string          `json:"id"`
	CategoryID string          `json:"categoryId"`
	Amount     decimal.Decimal `json:"amount"`
	Period     BudgetPeriod    `json:"period"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// BudgetInput is the body of a budget creation request.
type BudgetInput struct {
	CategoryID string          `json:"categoryId"`
	Amount     decimal.Decimal `json:"amount"`
	Period     BudgetPeriod    `json:"period"`
}

// BudgetPatch is a partial budget update.
type BudgetPatch struct {
	CategoryID *string          `json:"categoryId"`
	Amount     *decimal.Decimal `json:"amount"`
	Period     *BudgetPeriod    `json:"period"`
}

// Apply returns a copy of b with the patch applied.
func (p BudgetPatch) Apply(b Budget) Budget {
	if p.CategoryID != nil {
		b.CategoryID = *p.CategoryID
	}
	if p.Amount != nil {
		b.Amount = *p.Amount
	}
	if p.Period != nil {
		b.Period = *p.Period
	}
	return b
}
