package events

import (
	"context"
	"encoding/json"
	"testing"
)

func TestEvent_EntityAndOp(t *testing.T) {
	tests := []struct {
		typ        Type
		wantEntity string
		wantOp     string
	}{
		{TransactionCreated, "transaction", "created"},
		{AccountDeleted, "account", "deleted"},
		{UserSignedUp, "user", "signed_up"},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			e := New(tt.typ, "u1", "x")
			if e.Entity() != tt.wantEntity {
				t.Errorf("Entity() = %q, want %q", e.Entity(), tt.wantEntity)
			}
			if e.Op() != tt.wantOp {
				t.Errorf("Op() = %q, want %q", e.Op(), tt.wantOp)
			}
		})
	}
}

func TestEvent_ToJSON(t *testing.T) {
	e := New(BudgetUpdated, "user-1", "budget-9")
	body, err := e.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["type"] != "budget.updated" {
		t.Errorf("type = %v", decoded["type"])
	}
	if decoded["userId"] != "user-1" || decoded["entityId"] != "budget-9" {
		t.Errorf("unexpected ids: %v", decoded)
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	ctx := context.Background()
	r.Publish(ctx, New(TransactionCreated, "u", "t1"))
	r.Publish(ctx, New(TransactionDeleted, "u", "t1"))

	got := r.Events()
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[1].Type != TransactionDeleted {
		t.Errorf("second event = %s", got[1].Type)
	}

	got[0].UserID = "mutated"
	if r.Events()[0].UserID != "u" {
		t.Error("Events() should return a copy")
	}
}
