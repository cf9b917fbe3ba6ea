package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/globe-trotter/backend/internal/domain"
	"github.com/globe-trotter/backend/internal/repo"
)

// BudgetService implements business logic for the per-trip budget singleton.
type BudgetService struct {
	trips   repo.TripRepo
	budgets repo.BudgetRepo
}

// NewBudgetService constructs a BudgetService backed by the provided repos.
func NewBudgetService(trips repo.TripRepo, budgets repo.BudgetRepo) *BudgetService {
	return &BudgetService{trips: trips, budgets: budgets}
}

// Get returns the trip's budget. domain.ErrNotFound means either the trip or
// its budget does not exist.
func (s *BudgetService) Get(ctx context.Context, tripID uuid.UUID) (domain.TripBudget, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return domain.TripBudget{}, fmt.Errorf("service.BudgetService.Get: %w", err)
	}

	budget, err := s.budgets.GetByTripID(ctx, tripID)
	if err != nil {
		return domain.TripBudget{}, fmt.Errorf("service.BudgetService.Get: %w", err)
	}
	return budget, nil
}

// Upsert creates the budget on first write and overwrites it thereafter.
// Only the trip's owner may write.
func (s *BudgetService) Upsert(ctx context.Context, actor, tripID uuid.UUID, budget domain.TripBudget) (domain.TripBudget, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.TripBudget{}, fmt.Errorf("service.BudgetService.Upsert: %w", err)
	}
	if trip.UserID != actor {
		return domain.TripBudget{}, fmt.Errorf("service.BudgetService.Upsert: %w", domain.ErrNotFound)
	}

	budget.TripID = tripID
	saved, err := s.budgets.Upsert(ctx, budget)
	if err != nil {
		return domain.TripBudget{}, fmt.Errorf("service.BudgetService.Upsert: %w", err)
	}
	return saved, nil
}
