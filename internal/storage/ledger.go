package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mmynk/fintrack/internal/models"
)

// Ledger is a typed repository over a Store. Each accessor loads one
// entity record of one user; Save writes any number of them back in a
// single atomic Store.Set.
type Ledger struct {
	store Store
}

// NewLedger wraps store.
func NewLedger(store Store) *Ledger {
	return &Ledger{store: store}
}

// Savable is a loaded record that can be written back with Ledger.Save.
type Savable interface {
	encode() (Write, error)
	saved()
}

// List is a loaded entity list. Items may be modified freely before Save.
type List[T any] struct {
	Items   []T
	key     Key
	version int64
}

func (l *List[T]) encode() (Write, error) {
	items := l.Items
	if items == nil {
		items = []T{}
	}
	value, err := json.Marshal(items)
	if err != nil {
		return Write{}, fmt.Errorf("encode %s: %w", l.key, err)
	}
	return Write{Key: l.key, Value: value, Version: l.version}, nil
}

func (l *List[T]) saved() { l.version++ }

// Doc is a loaded single-object record.
type Doc[T any] struct {
	Value T
	// Exists is false when nothing was stored under the key yet.
	Exists  bool
	key     Key
	version int64
}

func (d *Doc[T]) encode() (Write, error) {
	value, err := json.Marshal(d.Value)
	if err != nil {
		return Write{}, fmt.Errorf("encode %s: %w", d.key, err)
	}
	return Write{Key: d.key, Value: value, Version: d.version}, nil
}

func (d *Doc[T]) saved() {
	d.version++
	d.Exists = true
}

func loadList[T any](ctx context.Context, store Store, key Key) (*List[T], error) {
	list := &List[T]{Items: []T{}, key: key}
	rec, err := store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return list, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(rec.Value, &list.Items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	if list.Items == nil {
		list.Items = []T{}
	}
	list.version = rec.Version
	return list, nil
}

func loadDoc[T any](ctx context.Context, store Store, key Key) (*Doc[T], error) {
	doc := &Doc[T]{key: key}
	rec, err := store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(rec.Value, &doc.Value); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	doc.Exists = true
	doc.version = rec.Version
	return doc, nil
}

// Transactions loads the user's transaction list.
func (l *Ledger) Transactions(ctx context.Context, userID string) (*List[models.Transaction], error) {
	return loadList[models.Transaction](ctx, l.store, Key{UserID: userID, Entity: EntityTransactions})
}

// Accounts loads the user's account list.
func (l *Ledger) Accounts(ctx context.Context, userID string) (*List[models.Account], error) {
	return loadList[models.Account](ctx, l.store, Key{UserID: userID, Entity: EntityAccounts})
}

// Categories loads the user's category list.
func (l *Ledger) Categories(ctx context.Context, userID string) (*List[models.Category], error) {
	return loadList[models.Category](ctx, l.store, Key{UserID: userID, Entity: EntityCategories})
}

// Budgets loads the user's budget list.
func (l *Ledger) Budgets(ctx context.Context, userID string) (*List[models.Budget], error) {
	return loadList[models.Budget](ctx, l.store, Key{UserID: userID, Entity: EntityBudgets})
}

// Profile loads the user's profile.
func (l *Ledger) Profile(ctx context.Context, userID string) (*Doc[models.Profile], error) {
	return loadDoc[models.Profile](ctx, l.store, Key{UserID: userID, Entity: EntityProfile})
}

// Save writes records back atomically. On success the records' versions
// advance so they can be saved again.
func (l *Ledger) Save(ctx context.Context, records ...Savable) error {
	writes := make([]Write, 0, len(records))
	for _, r := range records {
		w, err := r.encode()
		if err != nil {
			return err
		}
		writes = append(writes, w)
	}
	if err := l.store.Set(ctx, writes...); err != nil {
		return fmt.Errorf("save ledger records: %w", err)
	}
	for _, r := range records {
		r.saved()
	}
	return nil
}
