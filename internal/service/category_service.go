package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mmynk/fintrack/internal/events"
	"github.com/mmynk/fintrack/internal/models"
)

// CategoryService manages transaction categories.
type CategoryService struct {
	Deps
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(deps Deps) *CategoryService {
	return &CategoryService{Deps: deps.withDefaults()}
}

func (s *CategoryService) List(ctx context.Context, userID string) ([]models.Category, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	categories, err := s.Ledger.Categories(ctx, userID)
	if err != nil {
		return nil, storeError("list categories", err)
	}
	return categories.Items, nil
}

func (s *CategoryService) Create(ctx context.Context, userID string, in models.CategoryInput) (models.Category, error) {
	if err := requireUser(userID); err != nil {
		return models.Category{}, err
	}
	if in.Name == "" {
		return models.Category{}, invalid(errors.New("name is required"))
	}
	if !in.Type.Valid() {
		return models.Category{}, invalidf("type must be %q or %q", models.TransactionIncome, models.TransactionExpense)
	}

	unlock := s.lock(userID)
	defer unlock()

	categories, err := s.Ledger.Categories(ctx, userID)
	if err != nil {
		return models.Category{}, storeError("load categories", err)
	}

	c := models.Category{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Type:      in.Type,
		Color:     in.Color,
		Icon:      in.Icon,
		Emoji:     in.Emoji,
		CreatedAt: s.now().UTC(),
	}
	categories.Items = append(categories.Items, c)

	if err := s.save(ctx, "create category", categories); err != nil {
		return models.Category{}, err
	}

	slog.Info("Category created", "user_id", userID, "category_id", c.ID, "name", c.Name)
	s.publish(ctx, events.New(events.CategoryCreated, userID, c.ID))
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, userID, id string, patch models.CategoryPatch) (models.Category, error) {
	if err := requireUser(userID); err != nil {
		return models.Category{}, err
	}
	if patch.Name != nil && *patch.Name == "" {
		return models.Category{}, invalid(errors.New("name cannot be empty"))
	}
	if patch.Type != nil && !patch.Type.Valid() {
		return models.Category{}, invalidf("type must be %q or %q", models.TransactionIncome, models.TransactionExpense)
	}

	unlock := s.lock(userID)
	defer unlock()

	categories, err := s.Ledger.Categories(ctx, userID)
	if err != nil {
		return models.Category{}, storeError("load categories", err)
	}
	i := indexOf(categories.Items, func(c models.Category) bool { return c.ID == id })
	if i == -1 {
		return models.Category{}, notFound(ErrCategoryNotFound)
	}
	categories.Items[i] = patch.Apply(categories.Items[i])

	if err := s.save(ctx, "update category", categories); err != nil {
		return models.Category{}, err
	}

	s.publish(ctx, events.New(events.CategoryUpdated, userID, id))
	return categories.Items[i], nil
}

// Delete removes a category that no transaction references. Budgets on
// the category are left in place.
func (s *CategoryService) Delete(ctx context.Context, userID, id string) error {
	if err := requireUser(userID); err != nil {
		return err
	}

	unlock := s.lock(userID)
	defer unlock()

	categories, err := s.Ledger.Categories(ctx, userID)
	if err != nil {
		return storeError("load categories", err)
	}
	i := indexOf(categories.Items, func(c models.Category) bool { return c.ID == id })
	if i == -1 {
		return notFound(ErrCategoryNotFound)
	}

	txns, err := s.Ledger.Transactions(ctx, userID)
	if err != nil {
		return storeError("load transactions", err)
	}
	if referencesCategory(txns.Items, id) {
		return conflict(ErrCategoryInUse)
	}

	categories.Items = append(categories.Items[:i], categories.Items[i+1:]...)
	if err := s.save(ctx, "delete category", categories); err != nil {
		return err
	}

	slog.Info("Category deleted", "user_id", userID, "category_id", id)
	s.publish(ctx, events.New(events.CategoryDeleted, userID, id))
	return nil
}
