package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stop is a city visit within a trip. Order defines the sequence within the
// trip (ascending); the planner assigns 1..N at creation, but uniqueness is
// not enforced — two stops may share an order and then sort by insertion.
type Stop struct {
	ID         uuid.UUID      `json:"id"`
	TripID     uuid.UUID      `json:"tripId"`
	CityID     int32          `json:"cityId"`
	StartDate  *time.Time     `json:"startDate,omitempty"`
	EndDate    *time.Time     `json:"endDate,omitempty"`
	Order      int            `json:"order"`
	City       *City          `json:"city,omitempty"`
	Activities []TripActivity `json:"activities,omitempty"`
}

// NewStop is the per-stop input for the bulk add endpoint.
type NewStop struct {
	CityID    int32
	StartDate *time.Time
	EndDate   *time.Time
	Order     int
}

// StopUpdate carries partial-update semantics for a stop; nil fields are
// left unchanged.
type StopUpdate struct {
	StartDate *time.Time
	EndDate   *time.Time
	Order     *int
}
