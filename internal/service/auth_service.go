package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mmynk/fintrack/internal/auth"
	"github.com/mmynk/fintrack/internal/events"
	"github.com/mmynk/fintrack/internal/models"
)

var errCredentialsRequired = errors.New("email and password are required")

// SignupRequest is the body of POST /signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is an authenticated user with a bearer token.
type Session struct {
	User  models.UserInfo `json:"user"`
	Token string          `json:"token"`
}

// AuthService registers users, seeds their ledger and issues tokens.
type AuthService struct {
	Deps
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

// NewAuthService creates an authentication service.
func NewAuthService(deps Deps, authenticator auth.Authenticator, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		Deps:          deps.withDefaults(),
		authenticator: authenticator,
		jwtManager:    jwtManager,
	}
}

// Signup creates the identity and the user's starter ledger: the default
// categories, one empty checking account, empty transaction and budget
// lists and a profile with the default currency.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (Session, error) {
	slog.Info("Signup request", "email", req.Email)

	if req.Email == "" || req.Password == "" {
		return Session{}, invalid(errCredentialsRequired)
	}

	user, err := s.authenticator.Register(ctx, req.Email, req.Name, req.Password)
	if err != nil {
		slog.Warn("Registration failed", "email", req.Email, "error", err)
		if errors.Is(err, auth.ErrEmailExists) || errors.Is(err, auth.ErrWeakPassword) {
			return Session{}, invalid(err)
		}
		return Session{}, NewError(CodeInternal, err)
	}

	if err := s.seed(ctx, user); err != nil {
		slog.Error("Seeding ledger failed", "user_id", user.ID, "error", err)
		return Session{}, err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return Session{}, NewError(CodeInternal, err)
	}

	slog.Info("User signed up", "user_id", user.ID, "email", user.Email)
	s.publish(ctx, events.New(events.UserSignedUp, user.ID, user.ID))
	return Session{User: user.Info(), Token: token}, nil
}

func (s *AuthService) seed(ctx context.Context, user *models.User) error {
	unlock := s.lock(user.ID)
	defer unlock()

	now := s.now().UTC()

	categories, err := s.Ledger.Categories(ctx, user.ID)
	if err != nil {
		return storeError("load categories", err)
	}
	accounts, err := s.Ledger.Accounts(ctx, user.ID)
	if err != nil {
		return storeError("load accounts", err)
	}
	txns, err := s.Ledger.Transactions(ctx, user.ID)
	if err != nil {
		return storeError("load transactions", err)
	}
	budgets, err := s.Ledger.Budgets(ctx, user.ID)
	if err != nil {
		return storeError("load budgets", err)
	}
	profile, err := s.Ledger.Profile(ctx, user.ID)
	if err != nil {
		return storeError("load profile", err)
	}

	categories.Items = DefaultCategories(now)
	accounts.Items = []models.Account{DefaultAccount(now)}
	txns.Items = []models.Transaction{}
	budgets.Items = []models.Budget{}
	profile.Value = models.Profile{
		Currency: models.DefaultCurrency,
		Name:     user.Name,
		Email:    user.Email,
	}

	return s.save(ctx, "seed ledger", categories, accounts, txns, budgets, profile)
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (Session, error) {
	slog.Info("Login request", "email", req.Email)

	if req.Email == "" || req.Password == "" {
		return Session{}, invalid(errCredentialsRequired)
	}

	user, err := s.authenticator.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			slog.Warn("Login failed", "email", req.Email)
			return Session{}, NewError(CodeUnauthenticated, auth.ErrInvalidCredentials)
		}
		return Session{}, NewError(CodeInternal, err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return Session{}, NewError(CodeInternal, err)
	}

	slog.Info("User logged in", "user_id", user.ID)
	return Session{User: user.Info(), Token: token}, nil
}
