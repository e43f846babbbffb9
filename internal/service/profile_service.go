package service

import (
	"context"
	"errors"

	"github.com/mmynk/fintrack/internal/events"
	"github.com/mmynk/fintrack/internal/models"
)

// UserLookup resolves identity records.
type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// ProfileService reads and edits per-user preferences.
type ProfileService struct {
	Deps
	users UserLookup
}

// NewProfileService creates a ProfileService.
func NewProfileService(deps Deps, users UserLookup) *ProfileService {
	return &ProfileService{Deps: deps.withDefaults(), users: users}
}

// Get returns the stored profile completed from the identity record:
// email always comes from the identity, name only when none was saved,
// and currency falls back to models.DefaultCurrency.
func (s *ProfileService) Get(ctx context.Context, userID string) (models.Profile, error) {
	if err := requireUser(userID); err != nil {
		return models.Profile{}, err
	}
	doc, err := s.Ledger.Profile(ctx, userID)
	if err != nil {
		return models.Profile{}, storeError("load profile", err)
	}
	return s.complete(ctx, userID, doc.Value)
}

func (s *ProfileService) complete(ctx context.Context, userID string, p models.Profile) (models.Profile, error) {
	if p.Currency == "" {
		p.Currency = models.DefaultCurrency
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return models.Profile{}, storeError("load user", err)
	}
	if user != nil {
		p.Email = user.Email
		if p.Name == "" {
			p.Name = user.Name
		}
	}
	return p, nil
}

// Update merges patch into the stored profile.
func (s *ProfileService) Update(ctx context.Context, userID string, patch models.ProfilePatch) (models.Profile, error) {
	if err := requireUser(userID); err != nil {
		return models.Profile{}, err
	}
	if patch.Currency != nil && *patch.Currency == "" {
		return models.Profile{}, invalid(errors.New("currency cannot be empty"))
	}

	unlock := s.lock(userID)
	defer unlock()

	doc, err := s.Ledger.Profile(ctx, userID)
	if err != nil {
		return models.Profile{}, storeError("load profile", err)
	}
	doc.Value = patch.Apply(doc.Value)

	if err := s.save(ctx, "update profile", doc); err != nil {
		return models.Profile{}, err
	}

	s.publish(ctx, events.New(events.ProfileUpdated, userID, ""))
	return s.complete(ctx, userID, doc.Value)
}
