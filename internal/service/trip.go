package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/globe-trotter/backend/internal/domain"
	"github.com/globe-trotter/backend/internal/repo"
)

// TripService implements business logic for the trip aggregate root.
// Mutations take the acting user's id and refuse to touch trips owned by
// someone else; the mismatch reports domain.ErrNotFound rather than a
// dedicated forbidden error so callers cannot probe for other users' trip ids.
type TripService struct {
	trips      repo.TripRepo
	users      repo.UserRepo
	stops      repo.StopRepo
	activities repo.TripActivityRepo
	budgets    repo.BudgetRepo
	shares     repo.ShareRepo
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(
	trips repo.TripRepo,
	users repo.UserRepo,
	stops repo.StopRepo,
	activities repo.TripActivityRepo,
	budgets repo.BudgetRepo,
	shares repo.ShareRepo,
) *TripService {
	return &TripService{
		trips:      trips,
		users:      users,
		stops:      stops,
		activities: activities,
		budgets:    budgets,
		shares:     shares,
	}
}

// Create validates and persists a new trip for the acting user.
func (s *TripService) Create(ctx context.Context, actor uuid.UUID, trip domain.Trip) (domain.Trip, error) {
	if strings.TrimSpace(trip.Title) == "" {
		return domain.Trip{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}

	trip.UserID = actor
	if _, err := s.users.GetByID(ctx, actor); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	created, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return created, nil
}

// Update applies partial-field semantics: nil fields in upd are left
// unchanged, ClearStartDate/ClearEndDate null out a previously set date.
func (s *TripService) Update(ctx context.Context, actor, tripID uuid.UUID, upd domain.TripUpdate) (domain.Trip, error) {
	trip, err := s.ownedTrip(ctx, actor, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	if upd.Title != nil {
		if strings.TrimSpace(*upd.Title) == "" {
			return domain.Trip{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
		}
		trip.Title = *upd.Title
	}
	if upd.Description != nil {
		trip.Description = *upd.Description
	}
	if upd.StartDate != nil {
		trip.StartDate = upd.StartDate
	}
	if upd.EndDate != nil {
		trip.EndDate = upd.EndDate
	}
	if upd.ClearStartDate {
		trip.StartDate = nil
	}
	if upd.ClearEndDate {
		trip.EndDate = nil
	}
	if upd.IsPublic != nil {
		trip.IsPublic = *upd.IsPublic
	}

	updated, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a trip; the schema cascades through stops, activities,
// budget, and shares.
func (s *TripService) Delete(ctx context.Context, actor, tripID uuid.UUID) error {
	if _, err := s.ownedTrip(ctx, actor, tripID); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	if err := s.trips.Delete(ctx, tripID); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// ListByUser returns the user's trips with stops (city joined) and budget
// included, ordered by the requested field descending.
func (s *TripService) ListByUser(ctx context.Context, userID uuid.UUID, params domain.TripListParams) ([]domain.TripWithRelations, error) {
	trips, err := s.trips.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListByUser: %w", err)
	}

	out := make([]domain.TripWithRelations, 0, len(trips))
	for _, trip := range trips {
		stops, err := s.stops.ListByTripID(ctx, trip.ID)
		if err != nil {
			return nil, fmt.Errorf("service.TripService.ListByUser: %w", err)
		}
		if stops == nil {
			stops = []domain.Stop{}
		}

		item := domain.TripWithRelations{Trip: trip, Stops: stops}

		budget, err := s.budgets.GetByTripID(ctx, trip.ID)
		switch {
		case err == nil:
			item.Budget = &budget
		case errors.Is(err, domain.ErrNotFound):
			// no budget written yet
		default:
			return nil, fmt.Errorf("service.TripService.ListByUser: %w", err)
		}

		out = append(out, item)
	}
	return out, nil
}

// Details returns the fully expanded aggregate: stops ordered by their
// sequence with city and activities joined, plus budget and shares.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) Details(ctx context.Context, tripID uuid.UUID) (domain.TripDetails, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.TripDetails{}, fmt.Errorf("service.TripService.Details: %w", err)
	}

	stops, err := s.stops.ListByTripID(ctx, tripID)
	if err != nil {
		return domain.TripDetails{}, fmt.Errorf("service.TripService.Details: %w", err)
	}

	// One query for all activities of the trip, then fan out per stop.
	activities, err := s.activities.ListByTripID(ctx, tripID)
	if err != nil {
		return domain.TripDetails{}, fmt.Errorf("service.TripService.Details: %w", err)
	}
	byStop := make(map[uuid.UUID][]domain.TripActivity, len(stops))
	for _, ta := range activities {
		byStop[ta.TripStopID] = append(byStop[ta.TripStopID], ta)
	}
	for i := range stops {
		stops[i].Activities = byStop[stops[i].ID]
		if stops[i].Activities == nil {
			stops[i].Activities = []domain.TripActivity{}
		}
	}
	if stops == nil {
		stops = []domain.Stop{}
	}

	details := domain.TripDetails{Trip: trip, Stops: stops}

	budget, err := s.budgets.GetByTripID(ctx, tripID)
	switch {
	case err == nil:
		details.Budget = &budget
	case errors.Is(err, domain.ErrNotFound):
	default:
		return domain.TripDetails{}, fmt.Errorf("service.TripService.Details: %w", err)
	}

	shares, err := s.shares.ListByTripID(ctx, tripID)
	if err != nil {
		return domain.TripDetails{}, fmt.Errorf("service.TripService.Details: %w", err)
	}
	if shares == nil {
		shares = []domain.TripShare{}
	}
	details.Shares = shares

	return details, nil
}

// ownedTrip loads a trip and verifies the actor owns it. A trip owned by
// someone else reports domain.ErrNotFound.
func (s *TripService) ownedTrip(ctx context.Context, actor, tripID uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, err
	}
	if trip.UserID != actor {
		return domain.Trip{}, domain.ErrNotFound
	}
	return trip, nil
}
