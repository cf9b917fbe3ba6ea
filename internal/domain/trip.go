package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the top-level aggregate: a user-owned itinerary with ordered stops,
// at most one budget, and zero or more shares. Dates are optional — a trip
// can be sketched before it is scheduled.
type Trip struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	IsPublic    bool       `json:"isPublic"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// TripUpdate carries partial-update semantics for PUT /trips/{id}:
// a nil field is left unchanged, a non-nil field overwrites.
// ClearStartDate/ClearEndDate clear a date that was previously set —
// the explicit-null case that a plain *time.Time cannot distinguish
// from "omitted".
type TripUpdate struct {
	Title          *string
	Description    *string
	StartDate      *time.Time
	EndDate        *time.Time
	IsPublic       *bool
	ClearStartDate bool
	ClearEndDate   bool
}

// TripWithRelations is a trip plus the includes the list endpoint returns:
// stops (each with its city) and the budget, when present.
type TripWithRelations struct {
	Trip
	Stops  []Stop      `json:"stops"`
	Budget *TripBudget `json:"budget,omitempty"`
}

// TripDetails is the fully expanded aggregate returned by GET /trips/{id}:
// stops ordered ascending by Order, each with city and activities, plus
// budget and shares.
type TripDetails struct {
	Trip
	Stops  []Stop      `json:"stops"`
	Budget *TripBudget `json:"budget,omitempty"`
	Shares []TripShare `json:"shares"`
}

// TripListParams carries the query options for listing a user's trips.
// SortBy is validated against a column allowlist in the repo layer;
// Limit <= 0 means no truncation; Filter matches against the trip title.
type TripListParams struct {
	SortBy string
	Limit  int
	Filter string
}
