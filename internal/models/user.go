package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered identity.
// The ledger itself never stores users; ledger keys reference User.ID.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the user's email address (unique). Used for login.
	Email string

	// Name is the display name given at signup.
	Name string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the user was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last identity change.
	UpdatedAt int64
}

// NewUser creates a user with a fresh ID and timestamps.
func NewUser(email, name, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// UserInfo is the public view of a User returned by the API.
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Info returns the public fields of u.
func (u *User) Info() UserInfo {
	return UserInfo{ID: u.ID, Email: u.Email, Name: u.Name}
}
