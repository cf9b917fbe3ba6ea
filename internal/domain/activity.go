package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is a catalog entry: a thing to do, with a default cost.
// Like City it is shared — trip activities reference it, they do not own it.
type Activity struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Cost        *float64  `json:"cost,omitempty"`
}

// TripActivity attaches a catalog activity to a stop, optionally scheduled
// on a date and with a cost override.
type TripActivity struct {
	ID            uuid.UUID  `json:"id"`
	TripStopID    uuid.UUID  `json:"tripStopId"`
	ActivityID    uuid.UUID  `json:"activityId"`
	ScheduledDate *time.Time `json:"scheduledDate,omitempty"`
	// CustomCost overrides the catalog activity's default cost when set.
	CustomCost *float64 `json:"customCost,omitempty"`
	// Activity is the joined catalog definition; populated on all mutation
	// and detail read paths.
	Activity *Activity `json:"activity,omitempty"`
}

// TripActivityUpdate carries partial-update semantics; nil fields are
// left unchanged.
type TripActivityUpdate struct {
	ScheduledDate *time.Time
	CustomCost    *float64
}
