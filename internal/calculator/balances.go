package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/models"
)

// AccountIndex returns the position of the account with id, or -1.
func AccountIndex(accounts []models.Account, id string) int {
	for i := range accounts {
		if accounts[i].ID == id {
			return i
		}
	}
	return -1
}

// ApplyTransaction adds the transaction's signed amount to its account's
// balance. It reports false, changing nothing, if the account is absent.
func ApplyTransaction(accounts []models.Account, t models.Transaction) bool {
	i := AccountIndex(accounts, t.AccountID)
	if i == -1 {
		return false
	}
	accounts[i].Balance = accounts[i].Balance.Add(t.Signed())
	return true
}

// ReverseTransaction undoes ApplyTransaction for t.
func ReverseTransaction(accounts []models.Account, t models.Transaction) bool {
	i := AccountIndex(accounts, t.AccountID)
	if i == -1 {
		return false
	}
	accounts[i].Balance = accounts[i].Balance.Sub(t.Signed())
	return true
}

// DeriveBalances recomputes every account's balance from its opening
// balance and the transaction log. Transactions whose account is unknown
// are ignored.
func DeriveBalances(accounts []models.Account, transactions []models.Transaction) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal, len(accounts))
	for _, a := range accounts {
		balances[a.ID] = a.OpeningBalance
	}
	for _, t := range transactions {
		if b, ok := balances[t.AccountID]; ok {
			balances[t.AccountID] = b.Add(t.Signed())
		}
	}
	return balances
}

// Discrepancy describes an account whose stored balance disagrees with
// the balance derived from the transaction log.
type Discrepancy struct {
	AccountID  string          `json:"accountId"`
	Name       string          `json:"name"`
	Stored     decimal.Decimal `json:"stored"`
	Derived    decimal.Decimal `json:"derived"`
	Difference decimal.Decimal `json:"difference"` // Stored - Derived
}

// Reconcile lists accounts whose stored balance differs from the derived
// one, in account order. An empty result means the balance invariant holds.
func Reconcile(accounts []models.Account, transactions []models.Transaction) []Discrepancy {
	derived := DeriveBalances(accounts, transactions)
	out := []Discrepancy{}
	for _, a := range accounts {
		d := derived[a.ID]
		if !a.Balance.Equal(d) {
			out = append(out, Discrepancy{
				AccountID:  a.ID,
				Name:       a.Name,
				Stored:     a.Balance,
				Derived:    d,
				Difference: a.Balance.Sub(d),
			})
		}
	}
	return out
}

// TotalBalance sums the balances of all accounts.
func TotalBalance(accounts []models.Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	return total
}
