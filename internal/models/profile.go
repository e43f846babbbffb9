package models

// DefaultCurrency is used when a profile has no currency set.
const DefaultCurrency = "USD"

// Profile holds per-user preferences. There is one per user, created at
// signup and replaced on save.
type Profile struct {
	Currency string `json:"currency"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// ProfilePatch is a partial profile update. Email belongs to the identity
// record and is not patchable.
type ProfilePatch struct {
	Currency *string `json:"currency"`
	Name     *string `json:"name"`
}

// Apply returns a copy of p with the patch applied.
func (pp ProfilePatch) Apply(p Profile) Profile {
	if pp.Currency != nil {
		p.Currency = *pp.Currency
	}
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	return p
}
