package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripType distinguishes what kind of outing a trip was.
type TripType string

const (
	TripFishing TripType = "fishing"
	TripHunting TripType = "hunting"
)

// Valid reports whether t is one of the known trip types.
func (t TripType) Valid() bool {
	return t == TripFishing || t == TripHunting
}

// Trip is a single fishing or hunting outing. Every trip has exactly one
// owning user; species records hang off the trip and inherit its owner.
// Weather, Notes and Gear are optional free text — empty means unset.
// Gear is a comma-separated list by convention, not structurally enforced.
type Trip struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Date      time.Time // calendar date; time-of-day is always midnight UTC
	Location  string
	Type      TripType
	Weather   string
	Notes     string
	Gear      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TripUpdate carries the allow-listed mutable fields for a trip update.
// Nil pointers mean "leave unchanged". The owning user is deliberately
// absent — ownership never changes after creation.
type TripUpdate struct {
	Date     *time.Time
	Location *string
	Type     *TripType
	Weather  *string
	Notes    *string
	Gear     *string
}

// TripFilter holds the optional search criteria for GET /trips/search.
// Criteria are combined with AND, and always AND'd with the requester's
// visibility scope — they can narrow results, never widen them.
type TripFilter struct {
	Type      *TripType
	StartDate *time.Time // inclusive lower bound on Date
	EndDate   *time.Time // inclusive upper bound on Date
}
