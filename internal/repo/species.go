package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/fieldlog/fieldlog/internal/authz"
	"github.com/fieldlog/fieldlog/internal/domain"
)

// SpeciesRepo defines the persistence operations for Species records.
// Species have no user column of their own, so scoped collection reads join
// through trips and filter on the trip's owning user.
type SpeciesRepo interface {
	// Create inserts a new species record and returns the persisted record.
	Create(ctx context.Context, sp domain.Species) (domain.Species, error)

	// GetByID retrieves a single species record by primary key.
	// Returns domain.ErrNotFound if no record with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Species, error)

	// List returns species records visible under scope, newest first.
	List(ctx context.Context, scope authz.Scope) ([]domain.Species, error)

	// Search returns species records visible under scope whose name contains
	// name (case-insensitive), newest first. The name criterion is AND'd with
	// the scope — it can never widen visibility.
	Search(ctx context.Context, scope authz.Scope, name string) ([]domain.Species, error)

	// ListByTripID returns all species records for one trip, oldest first.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Species, error)

	// Update overwrites the mutable fields of an existing record and returns
	// the updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, sp domain.Species) (domain.Species, error)

	// Delete removes a species record by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgSpeciesRepo is the Postgres implementation of SpeciesRepo.
type pgSpeciesRepo struct {
	db db
}

// NewSpeciesRepo constructs a SpeciesRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewSpeciesRepo(db db) SpeciesRepo {
	return &pgSpeciesRepo{db: db}
}

const speciesColumns = `s.id, s.trip_id, s.name, s.quantity, s.measurement, s.notes, s.created_at, s.updated_at`

func (r *pgSpeciesRepo) Create(ctx context.Context, sp domain.Species) (domain.Species, error) {
	const q = `
		INSERT INTO species AS s (trip_id, name, quantity, measurement, notes)
		VALUES (@trip_id, @name, @quantity, @measurement, @notes)
		RETURNING ` + speciesColumns

	args := pgx.NamedArgs{
		"trip_id":     sp.TripID,
		"name":        sp.Name,
		"quantity":    sp.Quantity,
		"measurement": sp.Measurement,
		"notes":       sp.Notes,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanSpecies(row)
	if err != nil {
		return domain.Species{}, fmt.Errorf("repo.SpeciesRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgSpeciesRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Species, error) {
	const q = `
		SELECT ` + speciesColumns + `
		FROM species s
		WHERE s.id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanSpecies(row)
	if err != nil {
		return domain.Species{}, fmt.Errorf("repo.SpeciesRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgSpeciesRepo) List(ctx context.Context, scope authz.Scope) ([]domain.Species, error) {
	return r.Search(ctx, scope, "")
}

// Search joins trips so a non-admin scope can filter on the owning user of
// the parent trip. The join is skipped entirely for unrestricted scopes with
// no name criterion.
func (r *pgSpeciesRepo) Search(ctx context.Context, scope authz.Scope, name string) ([]domain.Species, error) {
	q := `SELECT ` + speciesColumns + ` FROM species s`
	args := pgx.NamedArgs{}

	if !scope.All {
		q += ` JOIN trips t ON t.id = s.trip_id AND t.user_id = @scope_user_id`
		args["scope_user_id"] = scope.OwnerID
	}
	q += ` WHERE true`
	if name != "" {
		q += ` AND s.name ILIKE '%' || @name || '%'`
		args["name"] = name
	}
	q += ` ORDER BY s.created_at DESC`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.SpeciesRepo.Search: %w", err)
	}
	defer rows.Close()

	return collectSpecies(rows, "repo.SpeciesRepo.Search")
}

func (r *pgSpeciesRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Species, error) {
	const q = `
		SELECT ` + speciesColumns + `
		FROM species s
		WHERE s.trip_id = @trip_id
		ORDER BY s.created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.SpeciesRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	return collectSpecies(rows, "repo.SpeciesRepo.ListByTripID")
}

func (r *pgSpeciesRepo) Update(ctx context.Context, sp domain.Species) (domain.Species, error) {
	const q = `
		UPDATE species AS s
		SET name        = @name,
		    quantity    = @quantity,
		    measurement = @measurement,
		    notes       = @notes,
		    updated_at  = now()
		WHERE id = @id
		RETURNING ` + speciesColumns

	args := pgx.NamedArgs{
		"id":          sp.ID,
		"name":        sp.Name,
		"quantity":    sp.Quantity,
		"measurement": sp.Measurement,
		"notes":       sp.Notes,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanSpecies(row)
	if err != nil {
		return domain.Species{}, fmt.Errorf("repo.SpeciesRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgSpeciesRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM species WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.SpeciesRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.SpeciesRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// collectSpecies drains rows into a slice, wrapping errors with the caller's name.
func collectSpecies(rows pgx.Rows, op string) ([]domain.Species, error) {
	records := []domain.Species{}
	for rows.Next() {
		sp, err := scanSpecies(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		records = append(records, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return records, nil
}

// scanSpecies maps a single database row into a domain.Species.
func scanSpecies(s scanner) (domain.Species, error) {
	var (
		sp     domain.Species
		id     pgtype.UUID
		tripID pgtype.UUID
	)
	err := s.Scan(&id, &tripID, &sp.Name, &sp.Quantity, &sp.Measurement, &sp.Notes, &sp.CreatedAt, &sp.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Species{}, domain.ErrNotFound
		}
		return domain.Species{}, err
	}
	sp.ID = uuid.UUID(id.Bytes)
	sp.TripID = uuid.UUID(tripID.Bytes)
	return sp, nil
}
