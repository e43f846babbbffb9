// Package events publishes ledger mutation notifications.
package events

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// Type names a mutation as "<entity>.<op>".
type Type string

const (
	TransactionCreated Type = "transaction.created"
	TransactionUpdated Type = "transaction.updated"
	TransactionDeleted Type = "transaction.deleted"
	AccountCreated     Type = "account.created"
	AccountUpdated     Type = "account.updated"
	AccountDeleted     Type = "account.deleted"
	CategoryCreated    Type = "category.created"
	CategoryUpdated    Type = "category.updated"
	CategoryDeleted    Type = "category.deleted"
	BudgetCreated      Type = "budget.created"
	BudgetUpdated      Type = "budget.updated"
	BudgetDeleted      Type = "budget.deleted"
	ProfileUpdated     Type = "profile.updated"
	UserSignedUp       Type = "user.signed_up"
)

// Event is a lightweight notification. Consumers fetch the current state
// from the API; the event only says what changed.
type Event struct {
	Type      Type      `json:"type"`
	UserID    string    `json:"userId"`
	EntityID  string    `json:"entityId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// New creates an event stamped with the current time.
func New(t Type, userID, entityID string) Event {
	return Event{
		Type:      t,
		UserID:    userID,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
	}
}

// Entity returns the part of the type before the dot.
func (e Event) Entity() string {
	entity, _, _ := strings.Cut(string(e.Type), ".")
	return entity
}

// Op returns the part of the type after the dot.
func (e Event) Op() string {
	_, op, _ := strings.Cut(string(e.Type), ".")
	return op
}

// ToJSON encodes the event as a message body.
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers events to interested parties.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Nop discards every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *Recorder) Close() error { return nil }

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
