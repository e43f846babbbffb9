package models

import "time"

// Category labels transactions and budgets. Its Type mirrors the
// transaction type it is meant for.
type Category struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      TransactionType `json:"type"`
	Color     string          `json:"color"`
	Icon      string          `json:"icon"`
	Emoji     string          `json:"emoji,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// CategoryInput is the body of a category creation request.
type CategoryInput struct {
	Name  string          `json:"name"`
	Type  TransactionType `json:"type"`
	Color string          `json:"color"`
	Icon  string          `json:"icon"`
	Emoji string          `json:"emoji"`
}

// CategoryPatch is a partial category update.
type CategoryPatch struct {
	Name  *string          `json:"name"`
	Type  *TransactionType `json:"type"`
	Color *string          `json:"color"`
	Icon  *string          `json:"icon"`
	Emoji *string          `json:"emoji"`
}

// Apply returns a copy of c with the patch applied.
func (p CategoryPatch) Apply(c Category) Category {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Type != nil {
		c.Type = *p.Type
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Icon != nil {
		c.Icon = *p.Icon
	}
	if p.Emoji != nil {
		c.Emoji = *p.Emoji
	}
	return c
}
