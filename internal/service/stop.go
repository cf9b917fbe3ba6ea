package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/globe-trotter/backend/internal/domain"
	"github.com/globe-trotter/backend/internal/repo"
)

// StopService implements business logic for trip stops. It holds the trips
// repo as well because every stop mutation verifies the parent trip exists
// and belongs to the acting user first.
type StopService struct {
	trips  repo.TripRepo
	stops  repo.StopRepo
	cities repo.CityRepo
}

// NewStopService constructs a StopService backed by the provided repos.
func NewStopService(trips repo.TripRepo, stops repo.StopRepo, cities repo.CityRepo) *StopService {
	return &StopService{trips: trips, stops: stops, cities: cities}
}

// AddStops bulk-inserts stops into a trip. Because the bulk insert returns no
// relational data, the trip's stops are re-read afterwards with the city
// joined, ordered ascending by sequence — that re-read is the response.
// Returns domain.ErrValidation if the list is empty.
func (s *StopService) AddStops(ctx context.Context, actor, tripID uuid.UUID, stops []domain.NewStop) ([]domain.Stop, error) {
	if len(stops) == 0 {
		return nil, fmt.Errorf("%w: stops must be a non-empty array", domain.ErrValidation)
	}

	if err := s.ownedTrip(ctx, actor, tripID); err != nil {
		return nil, fmt.Errorf("service.StopService.AddStops: %w", err)
	}

	if err := s.stops.CreateMany(ctx, tripID, stops); err != nil {
		return nil, fmt.Errorf("service.StopService.AddStops: %w", err)
	}

	created, err := s.stops.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.StopService.AddStops: %w", err)
	}
	if created == nil {
		created = []domain.Stop{}
	}
	return created, nil
}

// Update applies partial-field semantics to a stop and returns it with the
// city joined.
func (s *StopService) Update(ctx context.Context, actor, tripID, stopID uuid.UUID, upd domain.StopUpdate) (domain.Stop, error) {
	if err := s.ownedTrip(ctx, actor, tripID); err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Update: %w", err)
	}

	stop, err := s.stops.GetByID(ctx, tripID, stopID)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Update: %w", err)
	}

	if upd.StartDate != nil {
		stop.StartDate = upd.StartDate
	}
	if upd.EndDate != nil {
		stop.EndDate = upd.EndDate
	}
	if upd.Order != nil {
		stop.Order = *upd.Order
	}

	updated, err := s.stops.Update(ctx, stop)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("service.StopService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a stop; its activities cascade away with it.
func (s *StopService) Delete(ctx context.Context, actor, tripID, stopID uuid.UUID) error {
	if err := s.ownedTrip(ctx, actor, tripID); err != nil {
		return fmt.Errorf("service.StopService.Delete: %w", err)
	}
	if err := s.stops.Delete(ctx, tripID, stopID); err != nil {
		return fmt.Errorf("service.StopService.Delete: %w", err)
	}
	return nil
}

// ownedTrip verifies the trip exists and belongs to the actor.
func (s *StopService) ownedTrip(ctx context.Context, actor, tripID uuid.UUID) error {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return err
	}
	if trip.UserID != actor {
		return domain.ErrNotFound
	}
	return nil
}
