package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mmynk/fintrack/internal/calculator"
	"github.com/mmynk/fintrack/internal/events"
	"github.com/mmynk/fintrack/internal/models"
)

// BudgetService manages spending caps and reports progress against them.
type BudgetService struct {
	Deps
}

// NewBudgetService creates a BudgetService.
func NewBudgetService(deps Deps) *BudgetService {
	return &BudgetService{Deps: deps.withDefaults()}
}

func (s *BudgetService) List(ctx context.Context, userID string) ([]models.Budget, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	budgets, err := s.Ledger.Budgets(ctx, userID)
	if err != nil {
		return nil, storeError("list budgets", err)
	}
	return budgets.Items, nil
}

// Create adds a budget. A missing period means monthly.
func (s *BudgetService) Create(ctx context.Context, userID string, in models.BudgetInput) (models.Budget, error) {
	if err := requireUser(userID); err != nil {
		return models.Budget{}, err
	}
	if in.Period == "" {
		in.Period = models.PeriodMonthly
	}
	if in.CategoryID == "" {
		return models.Budget{}, invalid(errors.New("categoryId is required"))
	}
	if !in.Amount.IsPositive() {
		return models.Budget{}, invalid(ErrInvalidBudget)
	}
	if !in.Period.Valid() {
		return models.Budget{}, invalidf("period must be %q or %q", models.PeriodWeekly, models.PeriodMonthly)
	}

	unlock := s.lock(userID)
	defer unlock()

	budgets, err := s.Ledger.Budgets(ctx, userID)
	if err != nil {
		return models.Budget{}, storeError("load budgets", err)
	}

	b := models.Budget{
		ID:         uuid.New().String(),
		CategoryID: in.CategoryID,
		Amount:     in.Amount,
		Period:     in.Period,
		CreatedAt:  s.now().UTC(),
	}
	budgets.Items = append(budgets.Items, b)

	if err := s.save(ctx, "create budget", budgets); err != nil {
		return models.Budget{}, err
	}

	slog.Info("Budget created",
		"user_id", userID,
		"budget_id", b.ID,
		"category_id", b.CategoryID,
		"amount", b.Amount.String(),
		"period", b.Period,
	)
	s.publish(ctx, events.New(events.BudgetCreated, userID, b.ID))
	return b, nil
}

func (s *BudgetService) Update(ctx context.Context, userID, id string, patch models.BudgetPatch) (models.Budget, error) {
	if err := requireUser(userID); err != nil {
		return models.Budget{}, err
	}
	if patch.CategoryID != nil && *patch.CategoryID == "" {
		return models.Budget{}, invalid(errors.New("categoryId cannot be empty"))
	}
	if patch.Amount != nil && !patch.Amount.IsPositive() {
		return models.Budget{}, invalid(ErrInvalidBudget)
	}
	if patch.Period != nil && !patch.Period.Valid() {
		return models.Budget{}, invalidf("period must be %q or %q", models.PeriodWeekly, models.PeriodMonthly)
	}

	unlock := s.lock(userID)
	defer unlock()

	budgets, err := s.Ledger.Budgets(ctx, userID)
	if err != nil {
		return models.Budget{}, storeError("load budgets", err)
	}
	i := indexOf(budgets.Items, func(b models.Budget) bool { return b.ID == id })
	if i == -1 {
		return models.Budget{}, notFound(ErrBudgetNotFound)
	}
	budgets.Items[i] = patch.Apply(budgets.Items[i])

	if err := s.save(ctx, "update budget", budgets); err != nil {
		return models.Budget{}, err
	}

	s.publish(ctx, events.New(events.BudgetUpdated, userID, id))
	return budgets.Items[i], nil
}

func (s *BudgetService) Delete(ctx context.Context, userID, id string) error {
	if err := requireUser(userID); err != nil {
		return err
	}

	unlock := s.lock(userID)
	defer unlock()

	budgets, err := s.Ledger.Budgets(ctx, userID)
	if err != nil {
		return storeError("load budgets", err)
	}
	i := indexOf(budgets.Items, func(b models.Budget) bool { return b.ID == id })
	if i == -1 {
		return notFound(ErrBudgetNotFound)
	}
	budgets.Items = append(budgets.Items[:i], budgets.Items[i+1:]...)

	if err := s.save(ctx, "delete budget", budgets); err != nil {
		return err
	}

	slog.Info("Budget deleted", "user_id", userID, "budget_id", id)
	s.publish(ctx, events.New(events.BudgetDeleted, userID, id))
	return nil
}

// Progress reports every budget's spending in its current period.
func (s *BudgetService) Progress(ctx context.Context, userID string) ([]calculator.Progress, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	budgets, err := s.Ledger.Budgets(ctx, userID)
	if err != nil {
		return nil, storeError("load budgets", err)
	}
	txns, err := s.Ledger.Transactions(ctx, userID)
	if err != nil {
		return nil, storeError("load transactions", err)
	}
	return calculator.AllBudgetProgress(budgets.Items, txns.Items, s.now()), nil
}
