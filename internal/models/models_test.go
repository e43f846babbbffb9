package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2026-10-17", "2026-10-17", false},
		{"2026-10-17T23:30:00Z", "2026-10-17", false},
		{"2026-10-17T01:00:00+05:00", "2026-10-17", false},
		{"2026-02-30", "", true},
		{"17/10/2026", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDate(%q) expected error, got %s", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDate(%q) error: %v", tt.in, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestDate_JSON(t *testing.T) {
	var txn struct {
		Date Date `json:"date"`
	}
	if err := json.Unmarshal([]byte(`{"date":"2026-03-09"}`), &txn); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if txn.Date != NewDate(2026, time.March, 9) {
		t.Errorf("date = %s", txn.Date)
	}

	out, err := json.Marshal(txn)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"date":"2026-03-09"}` {
		t.Errorf("marshal = %s", out)
	}

	if err := json.Unmarshal([]byte(`{"date":20260309}`), &txn); err == nil {
		t.Error("expected error for numeric date")
	}
	if err := json.Unmarshal([]byte(`{"date":""}`), &txn); err != nil || !txn.Date.IsZero() {
		t.Errorf("empty date should decode to zero, got %s, %v", txn.Date, err)
	}
}

func TestDate_Arithmetic(t *testing.T) {
	d := NewDate(2026, time.December, 31)
	if got := d.AddDays(1).String(); got != "2027-01-01" {
		t.Errorf("AddDays(1) = %s", got)
	}
	if !d.Between(NewDate(2026, time.December, 1), d) {
		t.Error("Between should be inclusive of the upper bound")
	}
	if d.Between(NewDate(2027, time.January, 1), NewDate(2027, time.January, 31)) {
		t.Error("Between matched a range after the date")
	}

	cest := time.FixedZone("CEST", 2*60*60)
	late := time.Date(2026, time.October, 17, 23, 30, 0, 0, time.UTC).In(cest)
	if got := DateOf(late).String(); got != "2026-10-18" {
		t.Errorf("DateOf in CEST = %s, want 2026-10-18", got)
	}
}

func TestTransaction_Signed(t *testing.T) {
	amount := decimal.RequireFromString("42.50")
	income := Transaction{Type: TransactionIncome, Amount: amount}
	expense := Transaction{Type: TransactionExpense, Amount: amount}

	if !income.Signed().Equal(amount) {
		t.Errorf("income signed = %s", income.Signed())
	}
	if !expense.Signed().Equal(amount.Neg()) {
		t.Errorf("expense signed = %s", expense.Signed())
	}
}

func TestTransactionPatch(t *testing.T) {
	orig := Transaction{
		ID: "t1", Type: TransactionExpense, Amount: decimal.NewFromInt(10),
		CategoryID: "c1", AccountID: "a1", Notes: "lunch",
	}

	notes := "dinner"
	p := TransactionPatch{Notes: &notes}
	if p.AffectsBalance() {
		t.Error("notes-only patch should not affect balance")
	}
	got := p.Apply(orig)
	if got.Notes != "dinner" || got.Amount != orig.Amount || got.ID != "t1" {
		t.Errorf("unexpected result: %+v", got)
	}
	if orig.Notes != "lunch" {
		t.Error("Apply modified the original")
	}

	income := TransactionIncome
	if !(TransactionPatch{Type: &income}).AffectsBalance() {
		t.Error("type patch should affect balance")
	}
	account := "a2"
	if !(TransactionPatch{AccountID: &account}).AffectsBalance() {
		t.Error("account patch should affect balance")
	}
}

func TestDecimalEncodesAsNumber(t *testing.T) {
	out, err := json.Marshal(Account{ID: "a1", Balance: decimal.RequireFromString("-50.25")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"balance":-50.25`) {
		t.Errorf("balance not encoded as a number: %s", out)
	}

	var in AccountInput
	if err := json.Unmarshal([]byte(`{"name":"Cash","type":"cash","balance":100.1}`), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !in.Balance.Equal(decimal.RequireFromString("100.1")) {
		t.Errorf("balance = %s", in.Balance)
	}
}

func TestTypeValidity(t *testing.T) {
	if !AccountCredit.Valid() || AccountType("loan").Valid() {
		t.Error("AccountType.Valid mismatch")
	}
	if !PeriodWeekly.Valid() || BudgetPeriod("yearly").Valid() {
		t.Error("BudgetPeriod.Valid mismatch")
	}
	if !TransactionIncome.Valid() || TransactionType("transfer").Valid() {
		t.Error("TransactionType.Valid mismatch")
	}
}

func TestProfilePatch(t *testing.T) {
	name := "New"
	got := ProfilePatch{Name: &name}.Apply(Profile{Currency: "EUR", Name: "Old", Email: "a@b.c"})
	if got.Name != "New" || got.Currency != "EUR" || got.Email != "a@b.c" {
		t.Errorf("unexpected profile: %+v", got)
	}
}
