package service

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/fintrack/internal/calculator"
	"github.com/mmynk/fintrack/internal/models"
)

// Report is the analytics payload: derived aggregates plus the raw lists
// they were computed from.
type Report struct {
	CategorySpending map[string]decimal.Decimal `json:"categorySpending"`
	MonthlyData      []calculator.MonthBucket   `json:"monthlyData"`
	DailySpending    map[string]decimal.Decimal `json:"dailySpending"`
	BudgetProgress   []calculator.Progress      `json:"budgetProgress"`
	Categories       []models.Category          `json:"categories"`
	Budgets          []models.Budget            `json:"budgets"`
	Transactions     []models.Transaction       `json:"transactions"`
}

// AnalyticsService derives read-only aggregates from the ledger.
type AnalyticsService struct {
	Deps
}

// NewAnalyticsService creates an AnalyticsService.
func NewAnalyticsService(deps Deps) *AnalyticsService {
	return &AnalyticsService{Deps: deps.withDefaults()}
}

type snapshot struct {
	transactions []models.Transaction
	accounts     []models.Account
	categories   []models.Category
	budgets      []models.Budget
}

// load reads the user's lists concurrently.
func (s *AnalyticsService) load(ctx context.Context, userID string, withAccounts bool) (snapshot, error) {
	var snap snapshot
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		l, err := s.Ledger.Transactions(ctx, userID)
		if err != nil {
			return storeError("load transactions", err)
		}
		snap.transactions = l.Items
		return nil
	})
	g.Go(func() error {
		l, err := s.Ledger.Categories(ctx, userID)
		if err != nil {
			return storeError("load categories", err)
		}
		snap.categories = l.Items
		return nil
	})
	g.Go(func() error {
		l, err := s.Ledger.Budgets(ctx, userID)
		if err != nil {
			return storeError("load budgets", err)
		}
		snap.budgets = l.Items
		return nil
	})
	if withAccounts {
		g.Go(func() error {
			l, err := s.Ledger.Accounts(ctx, userID)
			if err != nil {
				return storeError("load accounts", err)
			}
			snap.accounts = l.Items
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return snapshot{}, err
	}
	return snap, nil
}

// Analytics computes category spending (all time), the trailing monthly
// series, daily spending and budget progress.
func (s *AnalyticsService) Analytics(ctx context.Context, userID string) (Report, error) {
	if err := requireUser(userID); err != nil {
		return Report{}, err
	}
	snap, err := s.load(ctx, userID, false)
	if err != nil {
		return Report{}, err
	}

	now := s.now()
	return Report{
		CategorySpending: calculator.CategorySpending(snap.transactions),
		MonthlyData:      calculator.MonthlySeries(snap.transactions, now),
		DailySpending:    calculator.DailySpending(snap.transactions),
		BudgetProgress:   calculator.AllBudgetProgress(snap.budgets, snap.transactions, now),
		Categories:       snap.categories,
		Budgets:          snap.budgets,
		Transactions:     snap.transactions,
	}, nil
}

// Dashboard summarizes the current month.
func (s *AnalyticsService) Dashboard(ctx context.Context, userID string) (calculator.Dashboard, error) {
	if err := requireUser(userID); err != nil {
		return calculator.Dashboard{}, err
	}
	snap, err := s.load(ctx, userID, true)
	if err != nil {
		return calculator.Dashboard{}, err
	}
	return calculator.Summarize(snap.accounts, snap.categories, snap.transactions, s.now()), nil
}
