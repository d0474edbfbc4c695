package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/fieldlog/fieldlog/internal/authz"
	"github.com/fieldlog/fieldlog/internal/domain"
	"github.com/fieldlog/fieldlog/internal/handler"
	"github.com/fieldlog/fieldlog/internal/middleware"
)

// Hand-written test doubles for the handler's service interfaces.
// Set only the method fields your test needs.

type mockAuthServicer struct {
	register func(ctx context.Context, name, email, password string) (domain.User, error)
	login    func(ctx context.Context, email, password string) (string, error)
}

func (m *mockAuthServicer) Register(ctx context.Context, name, email, password string) (domain.User, error) {
	return m.register(ctx, name, email, password)
}
func (m *mockAuthServicer) Login(ctx context.Context, email, password string) (string, error) {
	return m.login(ctx, email, password)
}

type mockUserServicer struct {
	list   func(ctx context.Context, req authz.Requester) ([]domain.User, error)
	get    func(ctx context.Context, req authz.Requester, id uuid.UUID) (domain.User, []domain.Trip, error)
	create func(ctx context.Context, req authz.Requester, name, email, password string, role domain.Role) (domain.User, error)
	update func(ctx context.Context, req authz.Requester, id uuid.UUID, upd domain.UserUpdate) (domain.User, error)
	delete func(ctx context.Context, req authz.Requester, id uuid.UUID) error
}

func (m *mockUserServicer) List(ctx context.Context, req authz.Requester) ([]domain.User, error) {
	return m.list(ctx, req)
}
func (m *mockUserServicer) Get(ctx context.Context, req authz.Requester, id uuid.UUID) (domain.User, []domain.Trip, error) {
	return m.get(ctx, req, id)
}
func (m *mockUserServicer) Create(ctx context.Context, req authz.Requester, name, email, password string, role domain.Role) (domain.User, error) {
	return m.create(ctx, req, name, email, password, role)
}
func (m *mockUserServicer) Update(ctx context.Context, req authz.Requester, id uuid.UUID, upd domain.UserUpdate) (domain.User, error) {
	return m.update(ctx, req, id, upd)
}
func (m *mockUserServicer) Delete(ctx context.Context, req authz.Requester, id uuid.UUID) error {
	return m.delete(ctx, req, id)
}

type mockTripServicer struct {
	create  func(ctx context.Context, req authz.Requester, trip domain.Trip) (domain.Trip, error)
	get     func(ctx context.Context, req authz.Requester, id uuid.UUID) (domain.Trip, error)
	getFull func(ctx context.Context, req authz.Requester, id uuid.UUID) (domain.Trip, []domain.Species, error)
	list    func(ctx context.Context, req authz.Requester) ([]domain.Trip, error)
	search  func(ctx context.Context, req authz.Requester, filter domain.TripFilter) ([]domain.Trip, error)
	update  func(ctx context.Context, req authz.Requester, id uuid.UUID, upd domain.TripUpdate) (domain.Trip, error)
	delete  func(ctx context.Context, req authz.Requester, id uuid.UUID) error
}

func (m *mockTripServicer) Create(ctx context.Context, req authz.Requester, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, req, trip)
}
func (m *mockTripServicer) Get(ctx context.Context, req authz.Requester, id uuid.UUID) (domain.Trip, error) {
	return m.get(ctx, req, id)
}
func (m *mockTripServicer) GetFull(ctx context.Context, req authz.Requester, id uuid.UUID) (domain.Trip, []domain.Species, error) {
	return m.getFull(ctx, req, id)
}
func (m *mockTripServicer) List(ctx context.Context, req authz.Requester) ([]domain.Trip, error) {
	return m.list(ctx, req)
}
func (m *mockTripServicer) Search(ctx context.Context, req authz.Requester, filter domain.TripFilter) ([]domain.Trip, error) {
	return m.search(ctx, req, filter)
}
func (m *mockTripServicer) Update(ctx context.Context, req authz.Requester, id uuid.UUID, upd domain.TripUpdate) (domain.Trip, error) {
	return m.update(ctx, req, id, upd)
}
func (m *mockTripServicer) Delete(ctx context.Context, req authz.Requester, id uuid.UUID) error {
	return m.delete(ctx, req, id)
}

type mockSpeciesServicer struct {
	create func(ctx context.Context, req authz.Requester, sp domain.Species) (domain.Species, error)
	get    func(ctx context.Context, req authz.Requester, id uuid.UUID) (domain.Species, error)
	list   func(ctx context.Context, req authz.Requester) ([]domain.Species, error)
	search func(ctx context.Context, req authz.Requester, name string) ([]domain.Species, error)
	update func(ctx context.Context, req authz.Requester, id uuid.UUID, upd domain.SpeciesUpdate) (domain.Species, error)
	delete func(ctx context.Context, req authz.Requester, id uuid.UUID) error
}

func (m *mockSpeciesServicer) Create(ctx context.Context, req authz.Requester, sp domain.Species) (domain.Species, error) {
	return m.create(ctx, req, sp)
}
func (m *mockSpeciesServicer) Get(ctx context.Context, req authz.Requester, id uuid.UUID) (domain.Species, error) {
	return m.get(ctx, req, id)
}
func (m *mockSpeciesServicer) List(ctx context.Context, req authz.Requester) ([]domain.Species, error) {
	return m.list(ctx, req)
}
func (m *mockSpeciesServicer) Search(ctx context.Context, req authz.Requester, name string) ([]domain.Species, error) {
	return m.search(ctx, req, name)
}
func (m *mockSpeciesServicer) Update(ctx context.Context, req authz.Requester, id uuid.UUID, upd domain.SpeciesUpdate) (domain.Species, error) {
	return m.update(ctx, req, id, upd)
}
func (m *mockSpeciesServicer) Delete(ctx context.Context, req authz.Requester, id uuid.UUID) error {
	return m.delete(ctx, req, id)
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.AuthServicer    = (*mockAuthServicer)(nil)
	_ handler.UserServicer    = (*mockUserServicer)(nil)
	_ handler.TripServicer    = (*mockTripServicer)(nil)
	_ handler.SpeciesServicer = (*mockSpeciesServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

// authAs returns a stand-in for the auth middleware that plants req in the
// context, exactly as RequireAuth would after verifying a real token.
func authAs(req authz.Requester) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithRequester(r.Context(), req)))
		})
	}
}

// authPassthrough forwards requests without attaching a requester, exercising
// the handlers' own fallback when a route is somehow wired without auth.
func authPassthrough(next http.Handler) http.Handler { return next }

// routerFor builds the full route tree around srv with the caller's choice of
// auth middleware — the same wiring main.go uses, minus the outer stack.
func routerFor(srv *handler.Server, auth func(http.Handler) http.Handler) http.Handler {
	return srv.Router(auth)
}

func adminRequester() authz.Requester {
	return authz.Requester{UserID: uuid.New(), Role: domain.RoleAdmin}
}

func userRequester() authz.Requester {
	return authz.Requester{UserID: uuid.New(), Role: domain.RoleUser}
}

func userFixture() domain.User {
	return domain.User{
		ID:        uuid.New(),
		Name:      "Huck Finn",
		Email:     "huck@river.test",
		Role:      domain.RoleUser,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func tripFixture(owner uuid.UUID) domain.Trip {
	return domain.Trip{
		ID:        uuid.New(),
		UserID:    owner,
		Date:      time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
		Location:  "Lake Crescent",
		Type:      domain.TripFishing,
		Weather:   "overcast",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func speciesFixture(tripID uuid.UUID) domain.Species {
	return domain.Species{
		ID:        uuid.New(),
		TripID:    tripID,
		Name:      "Rainbow Trout",
		Quantity:  2,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// decodeBody decodes the recorded response body into a map for assertions.
func decodeBody(t *testing.T, body *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&m))
	return m
}

// jsonDecode decodes the recorded response body into v.
func jsonDecode(rec *httptest.ResponseRecorder, v any) error {
	return json.NewDecoder(rec.Body).Decode(v)
}
