package domain

import "github.com/google/uuid"

// TripBudget is the singleton cost breakdown for a trip (one row per trip,
// keyed by TripID). Each component is optional — an unset category is nil,
// not zero, so "no estimate yet" and "free" stay distinguishable.
type TripBudget struct {
	TripID        uuid.UUID `json:"tripId"`
	TransportCost *float64  `json:"transportCost,omitempty"`
	StayCost      *float64  `json:"stayCost,omitempty"`
	FoodCost      *float64  `json:"foodCost,omitempty"`
	ActivityCost  *float64  `json:"activityCost,omitempty"`
}
