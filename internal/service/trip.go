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

// TripService implements business logic for Trip operations. Every
// single-resource operation resolves the trip first (NotFound before
// Forbidden) and then applies the one ownership predicate from authz.
type TripService struct {
	trips   repo.TripRepo
	species repo.SpeciesRepo
}

// NewTripService constructs a TripService backed by the provided repos.
// The species repo is only used by GetFull to embed the trip's records.
func NewTripService(trips repo.TripRepo, species repo.SpeciesRepo) *TripService {
	return &TripService{trips: trips, species: species}
}

// Create validates and persists a new trip owned by the requester. The owner
// always is the requester — there is no way to create a trip for someone else.
func (s *TripService) Create(ctx context.Context, req authz.Requester, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	trip.UserID = req.UserID

	created, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return created, nil
}

// Get returns a single trip. Owner or admin.
func (s *TripService) Get(ctx context.Context, req authz.Requester, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Get: %w", err)
	}
	if !authz.CanAccess(req, trip.UserID) {
		return domain.Trip{}, fmt.Errorf("service.TripService.Get: %w", domain.ErrForbidden)
	}
	return trip, nil
}

// GetFull returns a trip together with its species records. Owner or admin.
func (s *TripService) GetFull(ctx context.Context, req authz.Requester, id uuid.UUID) (domain.Trip, []domain.Species, error) {
	trip, err := s.Get(ctx, req, id)
	if err != nil {
		return domain.Trip{}, nil, err
	}
	records, err := s.species.ListByTripID(ctx, trip.ID)
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("service.TripService.GetFull: %w", err)
	}
	return trip, records, nil
}

// List returns the trips visible to the requester: all of them for an admin,
// only their own for everyone else. Always returns a non-nil slice.
func (s *TripService) List(ctx context.Context, req authz.Requester) ([]domain.Trip, error) {
	trips, err := s.trips.List(ctx, authz.ScopeFor(req))
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Search returns the visible trips matching filter. The criteria are AND'd
// with the requester's scope inside the query — they never bypass it.
func (s *TripService) Search(ctx context.Context, req authz.Requester, filter domain.TripFilter) ([]domain.Trip, error) {
	if filter.Type != nil && !filter.Type.Valid() {
		return nil, fmt.Errorf("%w: type must be fishing or hunting", domain.ErrValidation)
	}
	trips, err := s.trips.Search(ctx, authz.ScopeFor(req), filter)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.Search: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Update applies an allow-listed update to a trip. Owner or admin. Ownership
// itself is immutable — there is no owner field in domain.TripUpdate.
func (s *TripService) Update(ctx context.Context, req authz.Requester, id uuid.UUID, upd domain.TripUpdate) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	if !authz.CanAccess(req, trip.UserID) {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", domain.ErrForbidden)
	}

	if upd.Date != nil {
		trip.Date = *upd.Date
	}
	if upd.Location != nil {
		trip.Location = *upd.Location
	}
	if upd.Type != nil {
		trip.Type = *upd.Type
	}
	if upd.Weather != nil {
		trip.Weather = *upd.Weather
	}
	if upd.Notes != nil {
		trip.Notes = *upd.Notes
	}
	if upd.Gear != nil {
		trip.Gear = *upd.Gear
	}
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	updated, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a trip. Owner or admin. The store cascades the delete to the
// trip's species records, so no orphans remain.
func (s *TripService) Delete(ctx context.Context, req authz.Requester, id uuid.UUID) error {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	if !authz.CanAccess(req, trip.UserID) {
		return fmt.Errorf("service.TripService.Delete: %w", domain.ErrForbidden)
	}
	if err := s.trips.Delete(ctx, trip.ID); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// validateTrip enforces business rules common to both Create and Update.
//   - Date is required.
//   - Location must be non-empty (whitespace-only is rejected).
//   - Type must be fishing or hunting.
func validateTrip(trip domain.Trip) error {
	if trip.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if strings.TrimSpace(trip.Location) == "" {
		return fmt.Errorf("%w: location is required", domain.ErrValidation)
	}
	if !trip.Type.Valid() {
		return fmt.Errorf("%w: type must be fishing or hunting", domain.ErrValidation)
	}
	return nil
}
