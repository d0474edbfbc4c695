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

// TripRepo defines the persistence operations for Trips.
// Collection reads take an authz.Scope; the scope is compiled into the WHERE
// clause so rows outside the requester's visibility never leave the database.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// List returns trips visible under scope, ordered by date descending.
	List(ctx context.Context, scope authz.Scope) ([]domain.Trip, error)

	// Search returns trips visible under scope that also match every criterion
	// in filter, ordered by date descending. Criteria are AND'd with the
	// scope — they can never widen visibility.
	Search(ctx context.Context, scope authz.Scope, filter domain.TripFilter) ([]domain.Trip, error)

	// ListByUserID returns all trips owned by userID, ordered by date descending.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)

	// Update overwrites the mutable fields of an existing trip and returns the
	// updated record. Returns domain.ErrNotFound if the trip does not exist.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip by ID; the schema cascades the delete to the
	// trip's species records. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, user_id, date, location, type, weather, notes, gear, created_at, updated_at`

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (user_id, date, location, type, weather, notes, gear)
		VALUES (@user_id, @date, @location, @type, @weather, @notes, @gear)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"user_id":  trip.UserID,
		"date":     trip.Date,
		"location": trip.Location,
		"type":     trip.Type,
		"weather":  trip.Weather,
		"notes":    trip.Notes,
		"gear":     trip.Gear,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) List(ctx context.Context, scope authz.Scope) ([]domain.Trip, error) {
	return r.Search(ctx, scope, domain.TripFilter{})
}

// Search builds the WHERE clause from the scope plus whichever criteria are
// set. The scope condition is always first and always AND'd in.
func (r *pgTripRepo) Search(ctx context.Context, scope authz.Scope, filter domain.TripFilter) ([]domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips WHERE true`
	args := pgx.NamedArgs{}

	if !scope.All {
		q += ` AND user_id = @scope_user_id`
		args["scope_user_id"] = scope.OwnerID
	}
	if filter.Type != nil {
		q += ` AND type = @type`
		args["type"] = *filter.Type
	}
	if filter.StartDate != nil {
		q += ` AND date >= @start_date`
		args["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		q += ` AND date <= @end_date`
		args["end_date"] = *filter.EndDate
	}
	q += ` ORDER BY date DESC`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.Search: %w", err)
	}
	defer rows.Close()

	return collectTrips(rows, "repo.TripRepo.Search")
}

func (r *pgTripRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE user_id = @user_id
		ORDER BY date DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByUserID: %w", err)
	}
	defer rows.Close()

	return collectTrips(rows, "repo.TripRepo.ListByUserID")
}

func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET date       = @date,
		    location   = @location,
		    type       = @type,
		    weather    = @weather,
		    notes      = @notes,
		    gear       = @gear,
		    updated_at = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"id":       trip.ID,
		"date":     trip.Date,
		"location": trip.Location,
		"type":     trip.Type,
		"weather":  trip.Weather,
		"notes":    trip.Notes,
		"gear":     trip.Gear,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// collectTrips drains rows into a slice, wrapping errors with the caller's name.
func collectTrips(rows pgx.Rows, op string) ([]domain.Trip, error) {
	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return trips, nil
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the UUID and DATE column conversions.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t      domain.Trip
		id     pgtype.UUID
		userID pgtype.UUID
		date   pgtype.Date
	)

	err := s.Scan(&id, &userID, &date, &t.Location, &t.Type, &t.Weather, &t.Notes, &t.Gear, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.UserID = uuid.UUID(userID.Bytes)
	t.Date = date.Time
	return t, nil
}
