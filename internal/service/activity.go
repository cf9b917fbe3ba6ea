package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/globe-trotter/backend/internal/domain"
	"github.com/globe-trotter/backend/internal/repo"
)

// ActivityService implements business logic for activities attached to stops.
// Every mutation walks the ownership chain: trip belongs to actor, stop
// belongs to trip, activity belongs to stop.
type ActivityService struct {
	trips      repo.TripRepo
	stops      repo.StopRepo
	activities repo.TripActivityRepo
}

// NewActivityService constructs an ActivityService backed by the provided repos.
func NewActivityService(trips repo.TripRepo, stops repo.StopRepo, activities repo.TripActivityRepo) *ActivityService {
	return &ActivityService{trips: trips, stops: stops, activities: activities}
}

// Add attaches a catalog activity to a stop. The response carries the joined
// catalog definition.
func (s *ActivityService) Add(ctx context.Context, actor, tripID, stopID uuid.UUID, ta domain.TripActivity) (domain.TripActivity, error) {
	if ta.ActivityID == uuid.Nil {
		return domain.TripActivity{}, fmt.Errorf("%w: activityId is required", domain.ErrValidation)
	}

	if err := s.ownedStop(ctx, actor, tripID, stopID); err != nil {
		return domain.TripActivity{}, fmt.Errorf("service.ActivityService.Add: %w", err)
	}

	ta.TripStopID = stopID
	created, err := s.activities.Create(ctx, ta)
	if err != nil {
		return domain.TripActivity{}, fmt.Errorf("service.ActivityService.Add: %w", err)
	}
	return created, nil
}

// Update applies partial-field semantics to schedule and cost override.
func (s *ActivityService) Update(ctx context.Context, actor, tripID, stopID, activityID uuid.UUID, upd domain.TripActivityUpdate) (domain.TripActivity, error) {
	if err := s.ownedStop(ctx, actor, tripID, stopID); err != nil {
		return domain.TripActivity{}, fmt.Errorf("service.ActivityService.Update: %w", err)
	}

	ta, err := s.activities.GetByID(ctx, stopID, activityID)
	if err != nil {
		return domain.TripActivity{}, fmt.Errorf("service.ActivityService.Update: %w", err)
	}

	if upd.ScheduledDate != nil {
		ta.ScheduledDate = upd.ScheduledDate
	}
	if upd.CustomCost != nil {
		ta.CustomCost = upd.CustomCost
	}

	updated, err := s.activities.Update(ctx, ta)
	if err != nil {
		return domain.TripActivity{}, fmt.Errorf("service.ActivityService.Update: %w", err)
	}
	return updated, nil
}

// Delete detaches an activity from a stop.
func (s *ActivityService) Delete(ctx context.Context, actor, tripID, stopID, activityID uuid.UUID) error {
	if err := s.ownedStop(ctx, actor, tripID, stopID); err != nil {
		return fmt.Errorf("service.ActivityService.Delete: %w", err)
	}
	if err := s.activities.Delete(ctx, stopID, activityID); err != nil {
		return fmt.Errorf("service.ActivityService.Delete: %w", err)
	}
	return nil
}

// ownedStop verifies the trip belongs to the actor and the stop to the trip.
func (s *ActivityService) ownedStop(ctx context.Context, actor, tripID, stopID uuid.UUID) error {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return err
	}
	if trip.UserID != actor {
		return domain.ErrNotFound
	}
	if _, err := s.stops.GetByID(ctx, tripID, stopID); err != nil {
		return err
	}
	return nil
}
