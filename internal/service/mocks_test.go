package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fieldlog/fieldlog/internal/authz"
	"github.com/fieldlog/fieldlog/internal/domain"
	"github.com/fieldlog/fieldlog/internal/repo"
)

// Hand-written test doubles for the repo interfaces.
// Each method is a function field — set only the ones your test needs.
// This is idiomatic Go: no mock generation library required for simple cases.

type mockUserRepo struct {
	create     func(ctx context.Context, user domain.User) (domain.User, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.User, error)
	getByEmail func(ctx context.Context, email string) (domain.User, error)
	list       func(ctx context.Context) ([]domain.User, error)
	update     func(ctx context.Context, user domain.User) (domain.User, error)
	delete     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	return m.create(ctx, user)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.getByEmail(ctx, email)
}
func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	return m.list(ctx)
}
func (m *mockUserRepo) Update(ctx context.Context, user domain.User) (domain.User, error) {
	return m.update(ctx, user)
}
func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockTripRepo struct {
	create       func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list         func(ctx context.Context, scope authz.Scope) ([]domain.Trip, error)
	search       func(ctx context.Context, scope authz.Scope, filter domain.TripFilter) ([]domain.Trip, error)
	listByUserID func(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	update       func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context, scope authz.Scope) ([]domain.Trip, error) {
	return m.list(ctx, scope)
}
func (m *mockTripRepo) Search(ctx context.Context, scope authz.Scope, filter domain.TripFilter) ([]domain.Trip, error) {
	return m.search(ctx, scope, filter)
}
func (m *mockTripRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	return m.listByUserID(ctx, userID)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockSpeciesRepo struct {
	create       func(ctx context.Context, sp domain.Species) (domain.Species, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Species, error)
	list         func(ctx context.Context, scope authz.Scope) ([]domain.Species, error)
	search       func(ctx context.Context, scope authz.Scope, name string) ([]domain.Species, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Species, error)
	update       func(ctx context.Context, sp domain.Species) (domain.Species, error)
	delete       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockSpeciesRepo) Create(ctx context.Context, sp domain.Species) (domain.Species, error) {
	return m.create(ctx, sp)
}
func (m *mockSpeciesRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Species, error) {
	return m.getByID(ctx, id)
}
func (m *mockSpeciesRepo) List(ctx context.Context, scope authz.Scope) ([]domain.Species, error) {
	return m.list(ctx, scope)
}
func (m *mockSpeciesRepo) Search(ctx context.Context, scope authz.Scope, name string) ([]domain.Species, error) {
	return m.search(ctx, scope, name)
}
func (m *mockSpeciesRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Species, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockSpeciesRepo) Update(ctx context.Context, sp domain.Species) (domain.Species, error) {
	return m.update(ctx, sp)
}
func (m *mockSpeciesRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// compile-time checks: the mocks must satisfy the repo interfaces.
var (
	_ repo.UserRepo    = (*mockUserRepo)(nil)
	_ repo.TripRepo    = (*mockTripRepo)(nil)
	_ repo.SpeciesRepo = (*mockSpeciesRepo)(nil)
)

// ---- helpers ---------------------------------------------------------------

func asAdmin() authz.Requester {
	return authz.Requester{UserID: uuid.New(), Role: domain.RoleAdmin}
}

func asUser(id uuid.UUID) authz.Requester {
	return authz.Requester{UserID: id, Role: domain.RoleUser}
}

func validTrip(owner uuid.UUID) domain.Trip {
	return domain.Trip{
		ID:       uuid.New(),
		UserID:   owner,
		Date:     time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
		Location: "Lake Crescent",
		Type:     domain.TripFishing,
	}
}

func validSpecies(tripID uuid.UUID) domain.Species {
	return domain.Species{
		ID:       uuid.New(),
		TripID:   tripID,
		Name:     "Rainbow Trout",
		Quantity: 2,
	}
}

// echoTripRepo echoes whatever it receives back — useful for Create/Update
// tests that only care about validation logic, not what the DB returns.
func echoTripRepo() *mockTripRepo {
	return &mockTripRepo{
		create: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
		update: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
	}
}

func echoSpeciesRepo() *mockSpeciesRepo {
	return &mockSpeciesRepo{
		create: func(_ context.Context, sp domain.Species) (domain.Species, error) { return sp, nil },
		update: func(_ context.Context, sp domain.Species) (domain.Species, error) { return sp, nil },
	}
}

func echoUserRepo() *mockUserRepo {
	return &mockUserRepo{
		create: func(_ context.Context, u domain.User) (domain.User, error) { return u, nil },
		update: func(_ context.Context, u domain.User) (domain.User, error) { return u, nil },
	}
}
