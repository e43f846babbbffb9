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

// TransactionService records transactions and keeps account balances in
// step with them.
type TransactionService struct {
	Deps
}

// NewTransactionService creates a TransactionService.
func NewTransactionService(deps Deps) *TransactionService {
	return &TransactionService{Deps: deps.withDefaults()}
}

// List returns all of the user's transactions in insertion order.
func (s *TransactionService) List(ctx context.Context, userID string) ([]models.Transaction, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	txns, err := s.Ledger.Transactions(ctx, userID)
	if err != nil {
		return nil, storeError("list transactions", err)
	}
	return txns.Items, nil
}

func validateTransactionInput(in models.TransactionInput) error {
	if !in.Type.Valid() {
		return invalidf("type must be %q or %q", models.TransactionIncome, models.TransactionExpense)
	}
	if !in.Amount.IsPositive() {
		return invalid(errors.New("amount must be greater than zero"))
	}
	if in.AccountID == "" {
		return invalid(errors.New("accountId is required"))
	}
	if in.CategoryID == "" {
		return invalid(errors.New("categoryId is required"))
	}
	return nil
}

func validateTransactionPatch(p models.TransactionPatch) error {
	if p.Type != nil && !p.Type.Valid() {
		return invalidf("type must be %q or %q", models.TransactionIncome, models.TransactionExpense)
	}
	if p.Amount != nil && !p.Amount.IsPositive() {
		return invalid(errors.New("amount must be greater than zero"))
	}
	if p.AccountID != nil && *p.AccountID == "" {
		return invalid(errors.New("accountId cannot be empty"))
	}
	if p.CategoryID != nil && *p.CategoryID == "" {
		return invalid(errors.New("categoryId cannot be empty"))
	}
	return nil
}

// Create appends a transaction and applies it to its account. The
// transaction list and the account list are committed together; if the
// account does not exist nothing is written.
func (s *TransactionService) Create(ctx context.Context, userID string, in models.TransactionInput) (models.Transaction, error) {
	if err := requireUser(userID); err != nil {
		return models.Transaction{}, err
	}
	if err := validateTransactionInput(in); err != nil {
		return models.Transaction{}, err
	}

	unlock := s.lock(userID)
	defer unlock()

	txns, err := s.Ledger.Transactions(ctx, userID)
	if err != nil {
		return models.Transaction{}, storeError("load transactions", err)
	}
	accounts, err := s.Ledger.Accounts(ctx, userID)
	if err != nil {
		return models.Transaction{}, storeError("load accounts", err)
	}

	now := s.now()
	t := models.Transaction{
		ID:         uuid.New().String(),
		Type:       in.Type,
		Amount:     in.Amount,
		Date:       in.Date,
		CategoryID: in.CategoryID,
		AccountID:  in.AccountID,
		Merchant:   in.Merchant,
		Notes:      in.Notes,
		CreatedAt:  now.UTC(),
	}
	if t.Date.IsZero() {
		t.Date = models.DateOf(now)
	}

	if !calculator.ApplyTransaction(accounts.Items, t) {
		return models.Transaction{}, notFound(ErrAccountNotFound)
	}
	txns.Items = append(txns.Items, t)

	if err := s.save(ctx, "create transaction", txns, accounts); err != nil {
		return models.Transaction{}, err
	}

	slog.Info("Transaction created",
		"user_id", userID,
		"transaction_id", t.ID,
		"type", t.Type,
		"amount", t.Amount.String(),
		"account_id", t.AccountID,
	)
	s.publish(ctx, events.New(events.TransactionCreated, userID, t.ID))
	return t, nil
}

// Update applies a partial update. When the type, amount or account
// changes, the old version is reversed on its original account and the
// new version applied to its (possibly different) account. A reversal on
// an account that no longer exists is skipped.
func (s *TransactionService) Update(ctx context.Context, userID, id string, patch models.TransactionPatch) (models.Transaction, error) {
	if err := requireUser(userID); err != nil {
		return models.Transaction{}, err
	}
	if err := validateTransactionPatch(patch); err != nil {
		return models.Transaction{}, err
	}

	unlock := s.lock(userID)
	defer unlock()

	txns, err := s.Ledger.Transactions(ctx, userID)
	if err != nil {
		return models.Transaction{}, storeError("load transactions", err)
	}
	i := indexOf(txns.Items, func(t models.Transaction) bool { return t.ID == id })
	if i == -1 {
		return models.Transaction{}, notFound(ErrTransactionNotFound)
	}

	old := txns.Items[i]
	updated := patch.Apply(old)
	txns.Items[i] = updated

	if !patch.AffectsBalance() {
		if err := s.save(ctx, "update transaction", txns); err != nil {
			return models.Transaction{}, err
		}
		s.publish(ctx, events.New(events.TransactionUpdated, userID, id))
		return updated, nil
	}

	accounts, err := s.Ledger.Accounts(ctx, userID)
	if err != nil {
		return models.Transaction{}, storeError("load accounts", err)
	}
	if calculator.AccountIndex(accounts.Items, updated.AccountID) == -1 {
		return models.Transaction{}, notFound(ErrAccountNotFound)
	}
	if !calculator.ReverseTransaction(accounts.Items, old) {
		slog.Warn("Skipping reversal on missing account",
			"user_id", userID,
			"transaction_id", id,
			"account_id", old.AccountID,
		)
	}
	calculator.ApplyTransaction(accounts.Items, updated)

	if err := s.save(ctx, "update transaction", txns, accounts); err != nil {
		return models.Transaction{}, err
	}

	slog.Info("Transaction updated",
		"user_id", userID,
		"transaction_id", id,
		"old_account_id", old.AccountID,
		"new_account_id", updated.AccountID,
	)
	s.publish(ctx, events.New(events.TransactionUpdated, userID, id))
	return updated, nil
}

// Delete removes a transaction and reverses its balance effect.
func (s *TransactionService) Delete(ctx context.Context, userID, id string) error {
	if err := requireUser(userID); err != nil {
		return err
	}

	unlock := s.lock(userID)
	defer unlock()

	txns, err := s.Ledger.Transactions(ctx, userID)
	if err != nil {
		return storeError("load transactions", err)
	}
	i := indexOf(txns.Items, func(t models.Transaction) bool { return t.ID == id })
	if i == -1 {
		return notFound(ErrTransactionNotFound)
	}
	removed := txns.Items[i]
	txns.Items = append(txns.Items[:i], txns.Items[i+1:]...)

	accounts, err := s.Ledger.Accounts(ctx, userID)
	if err != nil {
		return storeError("load accounts", err)
	}

	if calculator.ReverseTransaction(accounts.Items, removed) {
		err = s.save(ctx, "delete transaction", txns, accounts)
	} else {
		slog.Warn("Skipping reversal on missing account",
			"user_id", userID,
			"transaction_id", id,
			"account_id", removed.AccountID,
		)
		err = s.save(ctx, "delete transaction", txns)
	}
	if err != nil {
		return err
	}

	slog.Info("Transaction deleted", "user_id", userID, "transaction_id", id)
	s.publish(ctx, events.New(events.TransactionDeleted, userID, id))
	return nil
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i, item := range items {
		if match(item) {
			return i
		}
	}
	return -1
}
