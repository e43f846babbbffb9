package auth

import (
	"context"

	"github.com/mmynk/fintrack/internal/models"
)

// Authenticator is the identity provider behind signup and login.
// Implementations can be swapped (passwords, OAuth, an external provider)
// without changing the service layer.
type Authenticator interface {
	// Register creates a new user with the given email and credential.
	Register(ctx context.Context, email, name, credential string) (*models.User, error)

	// Authenticate verifies the credential and returns the user.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks a credential before it is stored.
	ValidateCredential(credential string) error
}
