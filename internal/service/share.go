package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/globe-trotter/backend/internal/domain"
	"github.com/globe-trotter/backend/internal/repo"
)

// TripDetailer expands a trip into its full aggregate view.
// Satisfied by *TripService.
type TripDetailer interface {
	Details(ctx context.Context, tripID uuid.UUID) (domain.TripDetails, error)
}

// ShareService implements trip sharing: creating a grant and resolving a
// grant back into the shared trip. The resolve path deliberately skips
// ownership checks — knowing the share id is the access grant.
type ShareService struct {
	trips   repo.TripRepo
	shares  repo.ShareRepo
	details TripDetailer
}

// NewShareService constructs a ShareService backed by the provided repos and
// trip detailer.
func NewShareService(trips repo.TripRepo, shares repo.ShareRepo, details TripDetailer) *ShareService {
	return &ShareService{trips: trips, shares: shares, details: details}
}

// Create records a share grant for a trip. The recipient email is not
// checked against existing accounts — shares work for anyone holding the link.
func (s *ShareService) Create(ctx context.Context, actor, tripID uuid.UUID, email, permission string) (domain.TripShare, error) {
	if strings.TrimSpace(email) == "" {
		return domain.TripShare{}, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}

	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.TripShare{}, fmt.Errorf("service.ShareService.Create: %w", err)
	}
	if trip.UserID != actor {
		return domain.TripShare{}, fmt.Errorf("service.ShareService.Create: %w", domain.ErrNotFound)
	}

	if permission == "" {
		permission = "view"
	}

	share, err := s.shares.Create(ctx, domain.TripShare{TripID: tripID, Email: email, Permission: permission})
	if err != nil {
		return domain.TripShare{}, fmt.Errorf("service.ShareService.Create: %w", err)
	}
	return share, nil
}

// GetSharedTrip resolves a share id into the fully expanded trip.
// Returns domain.ErrNotFound if the share does not exist.
func (s *ShareService) GetSharedTrip(ctx context.Context, shareID uuid.UUID) (domain.TripDetails, error) {
	share, err := s.shares.GetByID(ctx, shareID)
	if err != nil {
		return domain.TripDetails{}, fmt.Errorf("service.ShareService.GetSharedTrip: %w", err)
	}

	details, err := s.details.Details(ctx, share.TripID)
	if err != nil {
		return domain.TripDetails{}, fmt.Errorf("service.ShareService.GetSharedTrip: %w", err)
	}
	return details, nil
}
