// Package service implements the ledger operations behind the HTTP API.
// Every mutation loads the user's entity lists through storage.Ledger,
// computes the new state with the calculator package and writes all
// changed lists back in one atomic Save.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmynk/fintrack/internal/events"
	"github.com/mmynk/fintrack/internal/metrics"
	"github.com/mmynk/fintrack/internal/storage"
)

// Deps are the collaborators shared by all ledger services.
type Deps struct {
	Ledger *storage.Ledger
	Locks  *UserLocks
	Events events.Publisher
	// Clock defaults to time.Now.
	Clock func() time.Time
	// Location is the zone "today" and "this month" are evaluated in.
	// Defaults to UTC.
	Location *time.Location
}

func (d Deps) withDefaults() Deps {
	if d.Locks == nil {
		d.Locks = NewUserLocks()
	}
	if d.Events == nil {
		d.Events = events.Nop{}
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}
	if d.Location == nil {
		d.Location = time.UTC
	}
	return d
}

func (d Deps) now() time.Time {
	return d.Clock().In(d.Location)
}

// lock serializes mutations of one user's ledger.
func (d Deps) lock(userID string) func() {
	return d.Locks.Lock(userID)
}

// save writes records and accounts for the outcome in metrics.
func (d Deps) save(ctx context.Context, op string, records ...storage.Savable) error {
	if err := d.Ledger.Save(ctx, records...); err != nil {
		err = storeError(op, err)
		if CodeOf(err) == CodeAborted {
			metrics.VersionConflicts.Inc()
		}
		return err
	}
	return nil
}

// publish emits e. Delivery failures are logged and do not fail the
// already committed mutation.
func (d Deps) publish(ctx context.Context, e events.Event) {
	metrics.LedgerMutations.WithLabelValues(e.Entity(), e.Op()).Inc()
	if err := d.Events.Publish(ctx, e); err != nil {
		metrics.EventPublishFailures.Inc()
		slog.Warn("Publish event failed", "type", e.Type, "user_id", e.UserID, "error", err)
	}
}

func requireUser(userID string) error {
	if userID == "" {
		return NewError(CodeUnauthenticated, ErrMissingUser)
	}
	return nil
}
