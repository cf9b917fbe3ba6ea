package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripShare is a capability grant: knowing the share id is enough to read the
// trip, regardless of account membership. The recipient email is not checked
// against existing users.
type TripShare struct {
	ID         uuid.UUID `json:"id"`
	TripID     uuid.UUID `json:"tripId"`
	Email      string    `json:"email"`
	Permission string    `json:"permission"`
	CreatedAt  time.Time `json:"createdAt"`
}
