package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/globe-trotter/backend/internal/domain"
)

// BudgetRepo defines the persistence operations for the per-trip budget.
type BudgetRepo interface {
	// GetByTripID retrieves the budget for a trip.
	// Returns domain.ErrNotFound if no budget has been written yet.
	GetByTripID(ctx context.Context, tripID uuid.UUID) (domain.TripBudget, error)

	// Upsert creates the budget on first write and overwrites it thereafter,
	// returning the persisted record. trip_id is the unique key.
	Upsert(ctx context.Context, budget domain.TripBudget) (domain.TripBudget, error)
}

// pgBudgetRepo is the Postgres implementation of BudgetRepo.
type pgBudgetRepo struct {
	db db
}

// NewBudgetRepo constructs a BudgetRepo backed by the provided db connection.
func NewBudgetRepo(db db) BudgetRepo {
	return &pgBudgetRepo{db: db}
}

const budgetColumns = `trip_id, transport_cost, stay_cost, food_cost, activity_cost`

func (r *pgBudgetRepo) GetByTripID(ctx context.Context, tripID uuid.UUID) (domain.TripBudget, error) {
	const q = `SELECT ` + budgetColumns + ` FROM trip_budgets WHERE trip_id = @trip_id`

	result, err := scanBudget(r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID}))
	if err != nil {
		return domain.TripBudget{}, fmt.Errorf("repo.BudgetRepo.GetByTripID: %w", err)
	}
	return result, nil
}

func (r *pgBudgetRepo) Upsert(ctx context.Context, budget domain.TripBudget) (domain.TripBudget, error) {
	const q = `
		INSERT INTO trip_budgets (trip_id, transport_cost, stay_cost, food_cost, activity_cost)
		VALUES (@trip_id, @transport_cost, @stay_cost, @food_cost, @activity_cost)
		ON CONFLICT (trip_id) DO UPDATE
		SET transport_cost = EXCLUDED.transport_cost,
		    stay_cost      = EXCLUDED.stay_cost,
		    food_cost      = EXCLUDED.food_cost,
		    activity_cost  = EXCLUDED.activity_cost
		RETURNING ` + budgetColumns

	args := pgx.NamedArgs{
		"trip_id":        budget.TripID,
		"transport_cost": budget.TransportCost,
		"stay_cost":      budget.StayCost,
		"food_cost":      budget.FoodCost,
		"activity_cost":  budget.ActivityCost,
	}

	result, err := scanBudget(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TripBudget{}, fmt.Errorf("repo.BudgetRepo.Upsert: %w", err)
	}
	return result, nil
}

// scanBudget maps a single database row into a domain.TripBudget.
func scanBudget(s scanner) (domain.TripBudget, error) {
	var (
		b      domain.TripBudget
		tripID pgtype.UUID
	)

	err := s.Scan(&tripID, &b.TransportCost, &b.StayCost, &b.FoodCost, &b.ActivityCost)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TripBudget{}, domain.ErrNotFound
		}
		return domain.TripBudget{}, err
	}

	b.TripID = uuid.UUID(tripID.Bytes)
	return b, nil
}
