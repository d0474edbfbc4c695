package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/fieldlog/fieldlog/internal/authz"
	"github.com/fieldlog/fieldlog/internal/domain"
	"github.com/fieldlog/fieldlog/internal/repo"
)

// SpeciesService implements business logic for Species records. A record's
// owner is always resolved through its parent trip, so the service holds both
// repos: creating a record verifies the trip exists, and every single-record
// operation walks the trip chain before the ownership check.
type SpeciesService struct {
	species repo.SpeciesRepo
	trips   repo.TripRepo
}

// NewSpeciesService constructs a SpeciesService backed by the provided repos.
func NewSpeciesService(species repo.SpeciesRepo, trips repo.TripRepo) *SpeciesService {
	return &SpeciesService{species: species, trips: trips}
}

// Create validates the record, verifies the parent trip exists, checks the
// requester may write to that trip, then persists. A nonexistent trip is a
// validation failure (bad input), not NotFound — it never reaches the
// ownership check.
func (s *SpeciesService) Create(ctx context.Context, req authz.Requester, sp domain.Species) (domain.Species, error) {
	if err := validateSpecies(&sp); err != nil {
		return domain.Species{}, err
	}

	trip, err := s.trips.GetByID(ctx, sp.TripID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Species{}, fmt.Errorf("%w: tripId not found", domain.ErrValidation)
		}
		return domain.Species{}, fmt.Errorf("service.SpeciesService.Create: %w", err)
	}
	if !authz.CanAccess(req, trip.UserID) {
		return domain.Species{}, fmt.Errorf("service.SpeciesService.Create: %w", domain.ErrForbidden)
	}

	created, err := s.species.Create(ctx, sp)
	if err != nil {
		return domain.Species{}, fmt.Errorf("service.SpeciesService.Create: %w", err)
	}
	return created, nil
}

// Get returns a single species record. Owner (via the trip chain) or admin.
func (s *SpeciesService) Get(ctx context.Context, req authz.Requester, id uuid.UUID) (domain.Species, error) {
	sp, err := s.species.GetByID(ctx, id)
	if err != nil {
		return domain.Species{}, fmt.Errorf("service.SpeciesService.Get: %w", err)
	}
	if err := s.authorize(ctx, req, sp.TripID, "service.SpeciesService.Get"); err != nil {
		return domain.Species{}, err
	}
	return sp, nil
}

// List returns the species records visible to the requester, scoped through
// the joined trip's owner. Always returns a non-nil slice.
func (s *SpeciesService) List(ctx context.Context, req authz.Requester) ([]domain.Species, error) {
	records, err := s.species.List(ctx, authz.ScopeFor(req))
	if err != nil {
		return nil, fmt.Errorf("service.SpeciesService.List: %w", err)
	}
	if records == nil {
		return []domain.Species{}, nil
	}
	return records, nil
}

// Search returns the visible records whose name contains name
// (case-insensitive). The criterion is AND'd with the scope inside the query.
func (s *SpeciesService) Search(ctx context.Context, req authz.Requester, name string) ([]domain.Species, error) {
	records, err := s.species.Search(ctx, authz.ScopeFor(req), strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("service.SpeciesService.Search: %w", err)
	}
	if records == nil {
		return []domain.Species{}, nil
	}
	return records, nil
}

// Update applies an allow-listed update to a species record. Owner or admin
// via the trip chain; the record cannot be moved to another trip.
func (s *SpeciesService) Update(ctx context.Context, req authz.Requester, id uuid.UUID, upd domain.SpeciesUpdate) (domain.Species, error) {
	sp, err := s.species.GetByID(ctx, id)
	if err != nil {
		return domain.Species{}, fmt.Errorf("service.SpeciesService.Update: %w", err)
	}
	if err := s.authorize(ctx, req, sp.TripID, "service.SpeciesService.Update"); err != nil {
		return domain.Species{}, err
	}

	if upd.Name != nil {
		sp.Name = *upd.Name
	}
	if upd.Quantity != nil {
		sp.Quantity = *upd.Quantity
	}
	if upd.Measurement != nil {
		sp.Measurement = *upd.Measurement
	}
	if upd.Notes != nil {
		sp.Notes = *upd.Notes
	}
	if err := validateSpecies(&sp); err != nil {
		return domain.Species{}, err
	}

	updated, err := s.species.Update(ctx, sp)
	if err != nil {
		return domain.Species{}, fmt.Errorf("service.SpeciesService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a species record. Owner or admin via the trip chain.
func (s *SpeciesService) Delete(ctx context.Context, req authz.Requester, id uuid.UUID) error {
	sp, err := s.species.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.SpeciesService.Delete: %w", err)
	}
	if err := s.authorize(ctx, req, sp.TripID, "service.SpeciesService.Delete"); err != nil {
		return err
	}
	if err := s.species.Delete(ctx, sp.ID); err != nil {
		return fmt.Errorf("service.SpeciesService.Delete: %w", err)
	}
	return nil
}

// authorize resolves the owning user of tripID and applies the ownership
// predicate. The trip is expected to exist — species rows are FK-bound to
// trips — so a missing trip here is an internal inconsistency, not a 404.
func (s *SpeciesService) authorize(ctx context.Context, req authz.Requester, tripID uuid.UUID, op string) error {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return fmt.Errorf("%s: resolve owner: %w", op, err)
	}
	if !authz.CanAccess(req, trip.UserID) {
		return fmt.Errorf("%s: %w", op, domain.ErrForbidden)
	}
	return nil
}

// validateSpecies enforces business rules common to both Create and Update.
// A zero quantity on create falls back to the default of 1.
func validateSpecies(sp *domain.Species) error {
	if strings.TrimSpace(sp.Name) == "" {
		return fmt.Errorf("%w: speciesName is required", domain.ErrValidation)
	}
	if sp.Quantity == 0 {
		sp.Quantity = 1
	}
	if sp.Quantity < 0 {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrValidation)
	}
	return nil
}
