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

// AccountService manages accounts. Balances are only moved by
// TransactionService; here they are set once, at creation.
type AccountService struct {
	Deps
}

// NewAccountService creates an AccountService.
func NewAccountService(deps Deps) *AccountService {
	return &AccountService{Deps: deps.withDefaults()}
}

// List returns the user's accounts.
func (s *AccountService) List(ctx context.Context, userID string) ([]models.Account, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	accounts, err := s.Ledger.Accounts(ctx, userID)
	if err != nil {
		return nil, storeError("list accounts", err)
	}
	return accounts.Items, nil
}

// Create adds an account whose balance and opening balance are
// in.Balance.
func (s *AccountService) Create(ctx context.Context, userID string, in models.AccountInput) (models.Account, error) {
	if err := requireUser(userID); err != nil {
		return models.Account{}, err
	}
	if in.Name == "" {
		return models.Account{}, invalid(errors.New("name is required"))
	}
	if !in.Type.Valid() {
		return models.Account{}, invalidf("unknown account type %q", in.Type)
	}

	unlock := s.lock(userID)
	defer unlock()

	accounts, err := s.Ledger.Accounts(ctx, userID)
	if err != nil {
		return models.Account{}, storeError("load accounts", err)
	}

	a := models.Account{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Type:           in.Type,
		Balance:        in.Balance,
		OpeningBalance: in.Balance,
		CreatedAt:      s.now().UTC(),
	}
	accounts.Items = append(accounts.Items, a)

	if err := s.save(ctx, "create account", accounts); err != nil {
		return models.Account{}, err
	}

	slog.Info("Account created", "user_id", userID, "account_id", a.ID, "type", a.Type)
	s.publish(ctx, events.New(events.AccountCreated, userID, a.ID))
	return a, nil
}

// Update renames or retypes an account.
func (s *AccountService) Update(ctx context.Context, userID, id string, patch models.AccountPatch) (models.Account, error) {
	if err := requireUser(userID); err != nil {
		return models.Account{}, err
	}
	if patch.Name != nil && *patch.Name == "" {
		return models.Account{}, invalid(errors.New("name cannot be empty"))
	}
	if patch.Type != nil && !patch.Type.Valid() {
		return models.Account{}, invalidf("unknown account type %q", *patch.Type)
	}

	unlock := s.lock(userID)
	defer unlock()

	accounts, err := s.Ledger.Accounts(ctx, userID)
	if err != nil {
		return models.Account{}, storeError("load accounts", err)
	}
	i := calculator.AccountIndex(accounts.Items, id)
	if i == -1 {
		return models.Account{}, notFound(ErrAccountNotFound)
	}
	accounts.Items[i] = patch.Apply(accounts.Items[i])

	if err := s.save(ctx, "update account", accounts); err != nil {
		return models.Account{}, err
	}

	s.publish(ctx, events.New(events.AccountUpdated, userID, id))
	return accounts.Items[i], nil
}

// Delete removes an account that no transaction references.
func (s *AccountService) Delete(ctx context.Context, userID, id string) error {
	if err := requireUser(userID); err != nil {
		return err
	}

	unlock := s.lock(userID)
	defer unlock()

	accounts, err := s.Ledger.Accounts(ctx, userID)
	if err != nil {
		return storeError("load accounts", err)
	}
	i := calculator.AccountIndex(accounts.Items, id)
	if i == -1 {
		return notFound(ErrAccountNotFound)
	}

	txns, err := s.Ledger.Transactions(ctx, userID)
	if err != nil {
		return storeError("load transactions", err)
	}
	if referencesAccount(txns.Items, id) {
		return conflict(ErrAccountInUse)
	}

	accounts.Items = append(accounts.Items[:i], accounts.Items[i+1:]...)
	if err := s.save(ctx, "delete account", accounts); err != nil {
		return err
	}

	slog.Info("Account deleted", "user_id", userID, "account_id", id)
	s.publish(ctx, events.New(events.AccountDeleted, userID, id))
	return nil
}

// Reconcile compares stored balances with balances derived from the
// transaction log.
func (s *AccountService) Reconcile(ctx context.Context, userID string) ([]calculator.Discrepancy, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	accounts, err := s.Ledger.Accounts(ctx, userID)
	if err != nil {
		return nil, storeError("load accounts", err)
	}
	txns, err := s.Ledger.Transactions(ctx, userID)
	if err != nil {
		return nil, storeError("load transactions", err)
	}

	out := calculator.Reconcile(accounts.Items, txns.Items)
	if len(out) > 0 {
		slog.Warn("Account balances drifted", "user_id", userID, "accounts", len(out))
	}
	return out, nil
}
