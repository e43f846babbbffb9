// Package memory provides an in-process implementation of storage.Store.
// It is used by tests and by the "memory" backend for local development.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
)

var _ storage.Store = (*Store)(nil)

type record struct {
	value   []byte
	version int64
}

// Store keeps ledger records and users in maps guarded by one RWMutex.
type Store struct {
	mu      sync.RWMutex
	records map[string]record
	users   map[string]*models.User
}

// New creates an empty store.
func New() *Store {
	return &Store{
		records: make(map[string]record),
		users:   make(map[string]*models.User),
	}
}

// Get returns a copy of the record under key.
func (s *Store) Get(ctx context.Context, key storage.Key) (storage.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[key.String()]
	if !ok {
		return storage.Record{}, storage.ErrNotFound
	}
	value := make([]byte, len(rec.value))
	copy(value, rec.value)
	return storage.Record{Value: value, Version: rec.version}, nil
}

// Set checks every version first and only then applies the writes.
func (s *Store) Set(ctx context.Context, writes ...storage.Write) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range writes {
		if current := s.records[w.Key.String()].version; current != w.Version {
			return fmt.Errorf("%w: %s at version %d, stored %d",
				storage.ErrVersionConflict, w.Key, w.Version, current)
		}
	}
	for _, w := range writes {
		value := make([]byte, len(w.Value))
		copy(value, w.Value)
		s.records[w.Key.String()] = record{value: value, version: w.Version + 1}
	}
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

// CreateUser stores a new user. Emails are unique, compared case-insensitively.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return fmt.Errorf("failed to create user: email %s already exists", user.Email)
		}
	}
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

// GetUserByEmail returns nil, nil when no user has the email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			found := *u
			return &found, nil
		}
	}
	return nil, nil
}

// GetUserByID returns nil, nil when the user does not exist.
func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	found := *u
	return &found, nil
}
