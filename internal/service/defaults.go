package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/models"
)

// MainAccountName is the account every new user starts with.
const MainAccountName = "Main Account"

var defaultCategories = []models.CategoryInput{
	{Name: "Groceries", Type: models.TransactionExpense, Icon: "ShoppingCart", Emoji: "🛒", Color: "#10b981"},
	{Name: "Dining Out", Type: models.TransactionExpense, Icon: "UtensilsCrossed", Emoji: "🍽️", Color: "#f59e0b"},
	{Name: "Rent", Type: models.TransactionExpense, Icon: "Home", Emoji: "🏠", Color: "#ef4444"},
	{Name: "Utilities", Type: models.TransactionExpense, Icon: "Zap", Emoji: "⚡", Color: "#3b82f6"},
	{Name: "Transportation", Type: models.TransactionExpense, Icon: "Car", Emoji: "🚗", Color: "#8b5cf6"},
	{Name: "Entertainment", Type: models.TransactionExpense, Icon: "Film", Emoji: "🎬", Color: "#ec4899"},
	{Name: "Healthcare", Type: models.TransactionExpense, Icon: "Heart", Emoji: "❤️", Color: "#14b8a6"},
	{Name: "Shopping", Type: models.TransactionExpense, Icon: "ShoppingBag", Emoji: "🛍️", Color: "#f97316"},
	{Name: "Salary", Type: models.TransactionIncome, Icon: "Wallet", Emoji: "💵", Color: "#22c55e"},
	{Name: "Other Income", Type: models.TransactionIncome, Icon: "DollarSign", Emoji: "💸", Color: "#84cc16"},
}

// DefaultCategories returns fresh copies of the starter categories.
func DefaultCategories(now time.Time) []models.Category {
	out := make([]models.Category, len(defaultCategories))
	for i, in := range defaultCategories {
		out[i] = models.Category{
			ID:        uuid.New().String(),
			Name:      in.Name,
			Type:      in.Type,
			Color:     in.Color,
			Icon:      in.Icon,
			Emoji:     in.Emoji,
			CreatedAt: now,
		}
	}
	return out
}

// DefaultAccount returns the empty checking account new users get.
func DefaultAccount(now time.Time) models.Account {
	return models.Account{
		ID:             uuid.New().String(),
		Name:           MainAccountName,
		Type:           models.AccountChecking,
		Balance:        decimal.Zero,
		OpeningBalance: decimal.Zero,
		CreatedAt:      now,
	}
}
