// Package handler implements the HTTP layer for the Field Logbook API.
// All handlers are methods on Server. They decode and validate request
// shapes, pass the authenticated requester down to the services, and map
// domain errors onto HTTP statuses. Authorization decisions themselves live
// in the authz package, reached through the services — never here.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fieldlog/fieldlog/internal/authz"
	"github.com/fieldlog/fieldlog/internal/domain"
	"github.com/fieldlog/fieldlog/spec"
)

// AuthServicer defines the authentication operations the handlers depend on.
// Defining interfaces here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject mocks without touching the database or service layer.
type AuthServicer interface {
	Register(ctx context.Context, name, email, password string) (domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

// UserServicer defines the user-management operations the handlers depend on.
type UserServicer interface {
	List(ctx context.Context, req authz.Requester) ([]domain.User, error)
	Get(ctx context.Context, req authz.Requester, id uuid.UUID) (domain.User, []domain.Trip, error)
	Create(ctx context.Context, req authz.Requester, name, email, password string, role domain.Role) (domain.User, error)
	Update(ctx context.Context, req authz.Requester, id uuid.UUID, upd domain.UserUpdate) (domain.User, error)
	Delete(ctx context.Context, req authz.Requester, id uuid.UUID) error
}

// TripServicer defines the trip operations the handlers depend on.
type TripServicer interface {
	Create(ctx context.Context, req authz.Requester, trip domain.Trip) (domain.Trip, error)
	Get(ctx context.Context, req authz.Requester, id uuid.UUID) (domain.Trip, error)
	GetFull(ctx context.Context, req authz.Requester, id uuid.UUID) (domain.Trip, []domain.Species, error)
	List(ctx context.Context, req authz.Requester) ([]domain.Trip, error)
	Search(ctx context.Context, req authz.Requester, filter domain.TripFilter) ([]domain.Trip, error)
	Update(ctx context.Context, req authz.Requester, id uuid.UUID, upd domain.TripUpdate) (domain.Trip, error)
	Delete(ctx context.Context, req authz.Requester, id uuid.UUID) error
}

// SpeciesServicer defines the species-record operations the handlers depend on.
type SpeciesServicer interface {
	Create(ctx context.Context, req authz.Requester, sp domain.Species) (domain.Species, error)
	Get(ctx context.Context, req authz.Requester, id uuid.UUID) (domain.Species, error)
	List(ctx context.Context, req authz.Requester) ([]domain.Species, error)
	Search(ctx context.Context, req authz.Requester, name string) ([]domain.Species, error)
	Update(ctx context.Context, req authz.Requester, id uuid.UUID, upd domain.SpeciesUpdate) (domain.Species, error)
	Delete(ctx context.Context, req authz.Requester, id uuid.UUID) error
}

// Server holds the service dependencies for all API endpoints.
// Methods are in resource-specific files but all operate on this struct.
type Server struct {
	auth    AuthServicer
	users   UserServicer
	trips   TripServicer
	species SpeciesServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(auth AuthServicer, users UserServicer, trips TripServicer, species SpeciesServicer) *Server {
	return &Server{auth: auth, users: users, trips: trips, species: species}
}

// Router builds the full route tree. requireAuth is the bearer-token
// middleware; it is injected so handler tests can substitute a stub that
// plants a known requester in the context.
func (s *Server) Router(requireAuth func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	// Public surface.
	r.Get("/health", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Post("/auth/register", s.Register)
	r.Post("/auth/login", s.Login)

	// Everything else requires a valid bearer token.
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Post("/auth/logout", s.Logout)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.ListUsers)
			r.Post("/", s.CreateUser)
			r.Get("/{id}", s.GetUser)
			r.Put("/{id}", s.UpdateUser)
			r.Delete("/{id}", s.DeleteUser)
		})

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListTrips)
			r.Get("/search", s.SearchTrips)
			r.Post("/", s.CreateTrip)
			r.Get("/{id}", s.GetTrip)
			r.Get("/{id}/full", s.GetTripFull)
			r.Put("/{id}", s.UpdateTrip)
			r.Delete("/{id}", s.DeleteTrip)
		})

		r.Route("/species", func(r chi.Router) {
			r.Get("/", s.ListSpecies)
			r.Get("/search", s.SearchSpecies)
			r.Post("/", s.CreateSpecies)
			r.Get("/{id}", s.GetSpecies)
			r.Put("/{id}", s.UpdateSpecies)
			r.Delete("/{id}", s.DeleteSpecies)
		})
	})

	r.NotFound(s.NotFound)
	r.MethodNotAllowed(s.NotFound)

	return r
}

// GetOpenAPI serves the embedded OpenAPI document.
func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}

// NotFound answers every unmatched route with the API's 404 contract.
func (s *Server) NotFound(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusNotFound, ErrorResponse{
		Error:   "Endpoint not found",
		Message: r.Method + " " + r.URL.Path + " is not a valid endpoint",
	})
}
