package service

import "github.com/mmynk/fintrack/internal/models"

// referencesAccount reports whether any transaction posts to accountID.
func referencesAccount(txns []models.Transaction, accountID string) bool {
	for _, t := range txns {
		if t.AccountID == accountID {
			return true
		}
	}
	return false
}

// referencesCategory reports whether any transaction is labelled with
// categoryID.
func referencesCategory(txns []models.Transaction, categoryID string) bool {
	for _, t := range txns {
		if t.CategoryID == categoryID {
			return true
		}
	}
	return false
}
