package domain

import (
	"time"

	"github.com/google/uuid"
)

// Species is a record of what was caught or taken on a trip.
// It belongs to exactly one trip; its owner is always the trip's owner —
// there is no direct user reference here.
type Species struct {
	ID          uuid.UUID
	TripID      uuid.UUID
	Name        string
	Quantity    int
	Measurement string // free text, e.g. "3.2 lbs" or "24 in"
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SpeciesUpdate carries the allow-listed mutable fields for a species update.
// Nil pointers mean "leave unchanged". TripID is deliberately absent —
// a record cannot be moved to another trip.
type SpeciesUpdate struct {
	Name        *string
	Quantity    *int
	Measurement *string
	Notes       *string
}
