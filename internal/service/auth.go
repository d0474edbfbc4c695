// Package service contains the business logic for the Field Logbook API.
// Services validate inputs, enforce the ownership/role rules via the authz
// package, and orchestrate repo calls. No SQL lives here — services depend on
// repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/fieldlog/fieldlog/internal/domain"
	"github.com/fieldlog/fieldlog/internal/repo"
)

// TokenIssuer is the credential-service half the auth flow depends on.
// Satisfied by *token.Issuer; defined here so tests can inject a stub.
type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, error)
}

// AuthService implements registration and login.
type AuthService struct {
	users  repo.UserRepo
	tokens TokenIssuer
}

// NewAuthService constructs an AuthService backed by the provided collaborators.
func NewAuthService(users repo.UserRepo, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a new account with the default user role. Registration is
// always unauthenticated and can never assign any other role — escalation only
// happens through an explicit admin create or update.
// Returns domain.ErrValidation for missing fields and domain.ErrConflict when
// the email is already taken.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return domain.User{}, fmt.Errorf("%w: Name, email, and password are required", domain.ErrValidation)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}

	user, err := s.users.Create(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}
	return user, nil
}

// Login verifies the credentials and issues a bearer token for the user.
// Unknown email and wrong password both return domain.ErrInvalidCredentials —
// the caller cannot distinguish which check failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("service.AuthService.Login: %w", domain.ErrInvalidCredentials)
		}
		return "", fmt.Errorf("service.AuthService.Login: %w", err)
	}

	// Admin-created accounts may have no password yet; they cannot log in
	// until one is set.
	if user.PasswordHash == "" || !checkPassword(password, user.PasswordHash) {
		return "", fmt.Errorf("service.AuthService.Login: %w", domain.ErrInvalidCredentials)
	}

	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("service.AuthService.Login: %w", err)
	}
	return tok, nil
}

// hashPassword hashes a plaintext password with bcrypt at the default cost.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// checkPassword reports whether password matches the stored bcrypt hash.
func checkPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
