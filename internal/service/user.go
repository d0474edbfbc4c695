package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/fieldlog/fieldlog/internal/authz"
	"github.com/fieldlog/fieldlog/internal/domain"
	"github.com/fieldlog/fieldlog/internal/repo"
)

// UserService implements the user-management rules: any authenticated identity
// may read and update itself; listing, creating, and deleting users is
// admin-only; a self-update can never touch the role field.
type UserService struct {
	users repo.UserRepo
	trips repo.TripRepo
}

// NewUserService constructs a UserService backed by the provided repos.
// The trip repo is needed because single-user reads embed the user's trips.
func NewUserService(users repo.UserRepo, trips repo.TripRepo) *UserService {
	return &UserService{users: users, trips: trips}
}

// List returns every user. Admin-only.
func (s *UserService) List(ctx context.Context, req authz.Requester) ([]domain.User, error) {
	if !req.IsAdmin() {
		return nil, fmt.Errorf("service.UserService.List: %w", domain.ErrForbidden)
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.UserService.List: %w", err)
	}
	return users, nil
}

// Get returns a user and their trips. A user record is "owned" by itself, so
// the standard ownership predicate covers the self-or-admin rule.
// The resource is resolved before the ownership check: NotFound wins over
// Forbidden.
func (s *UserService) Get(ctx context.Context, req authz.Requester, id uuid.UUID) (domain.User, []domain.Trip, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, nil, fmt.Errorf("service.UserService.Get: %w", err)
	}
	if !authz.CanAccess(req, user.ID) {
		return domain.User{}, nil, fmt.Errorf("service.UserService.Get: %w", domain.ErrForbidden)
	}

	trips, err := s.trips.ListByUserID(ctx, user.ID)
	if err != nil {
		return domain.User{}, nil, fmt.Errorf("service.UserService.Get: %w", err)
	}
	return user, trips, nil
}

// Create adds a user account on behalf of an admin. The password is optional
// (the account cannot log in until one is set) and the role defaults to user.
func (s *UserService) Create(ctx context.Context, req authz.Requester, name, email, password string, role domain.Role) (domain.User, error) {
	if !req.IsAdmin() {
		return domain.User{}, fmt.Errorf("service.UserService.Create: %w", domain.ErrForbidden)
	}

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return domain.User{}, fmt.Errorf("%w: Name and email required", domain.ErrValidation)
	}
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return domain.User{}, fmt.Errorf("%w: role must be user or admin", domain.ErrValidation)
	}

	var hash string
	if password != "" {
		var err error
		if hash, err = hashPassword(password); err != nil {
			return domain.User{}, fmt.Errorf("service.UserService.Create: %w", err)
		}
	}

	user, err := s.users.Create(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Create: %w", err)
	}
	return user, nil
}

// Update applies an allow-listed update to a user. Self or admin; changing the
// role is admin-only regardless of whose record it is.
func (s *UserService) Update(ctx context.Context, req authz.Requester, id uuid.UUID, upd domain.UserUpdate) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Update: %w", err)
	}
	if !authz.CanAccess(req, user.ID) {
		return domain.User{}, fmt.Errorf("service.UserService.Update: %w", domain.ErrForbidden)
	}
	if upd.Role != nil && !req.IsAdmin() {
		return domain.User{}, fmt.Errorf("service.UserService.Update: role change: %w", domain.ErrForbidden)
	}

	if upd.Name != nil {
		if strings.TrimSpace(*upd.Name) == "" {
			return domain.User{}, fmt.Errorf("%w: name must not be empty", domain.ErrValidation)
		}
		user.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Email != nil {
		if strings.TrimSpace(*upd.Email) == "" {
			return domain.User{}, fmt.Errorf("%w: email must not be empty", domain.ErrValidation)
		}
		user.Email = strings.TrimSpace(*upd.Email)
	}
	if upd.Role != nil {
		if !upd.Role.Valid() {
			return domain.User{}, fmt.Errorf("%w: role must be user or admin", domain.ErrValidation)
		}
		user.Role = *upd.Role
	}
	if upd.Password != nil {
		if *upd.Password == "" {
			return domain.User{}, fmt.Errorf("%w: password must not be empty", domain.ErrValidation)
		}
		hash, err := hashPassword(*upd.Password)
		if err != nil {
			return domain.User{}, fmt.Errorf("service.UserService.Update: %w", err)
		}
		user.PasswordHash = hash
	}

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a user. Admin-only; the store cascades the delete to the
// user's trips and, through them, their species records.
func (s *UserService) Delete(ctx context.Context, req authz.Requester, id uuid.UUID) error {
	if !req.IsAdmin() {
		return fmt.Errorf("service.UserService.Delete: %w", domain.ErrForbidden)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.UserService.Delete: %w", err)
	}
	return nil
}
