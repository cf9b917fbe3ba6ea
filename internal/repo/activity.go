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

// TripActivityRepo defines the persistence operations for activities attached
// to stops. All mutation reads join the catalog activity so handlers can
// return the full definition without a second query.
type TripActivityRepo interface {
	// Create attaches a catalog activity to a stop and returns the record
	// with the catalog definition joined.
	Create(ctx context.Context, ta domain.TripActivity) (domain.TripActivity, error)

	// GetByID retrieves a trip activity scoped to its stop.
	GetByID(ctx context.Context, stopID, id uuid.UUID) (domain.TripActivity, error)

	// ListByTripID returns all activities for all stops of a trip, joined with
	// their catalog definitions. Used to expand trip details in one query.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.TripActivity, error)

	// Update overwrites schedule and cost override, returning the record with
	// the catalog definition joined. Scoped to the given stop.
	Update(ctx context.Context, ta domain.TripActivity) (domain.TripActivity, error)

	// Delete removes a trip activity scoped to its stop.
	Delete(ctx context.Context, stopID, id uuid.UUID) error
}

// pgTripActivityRepo is the Postgres implementation of TripActivityRepo.
type pgTripActivityRepo struct {
	db db
}

// NewTripActivityRepo constructs a TripActivityRepo backed by the provided db.
func NewTripActivityRepo(db db) TripActivityRepo {
	return &pgTripActivityRepo{db: db}
}

const tripActivityColumns = `
	ta.id, ta.trip_stop_id, ta.activity_id, ta.scheduled_date, ta.custom_cost,
	a.id, a.name, a.description, a.category, a.cost`

func (r *pgTripActivityRepo) Create(ctx context.Context, ta domain.TripActivity) (domain.TripActivity, error) {
	const q = `
		WITH inserted AS (
			INSERT INTO trip_activities (trip_stop_id, activity_id, scheduled_date, custom_cost)
			VALUES (@trip_stop_id, @activity_id, @scheduled_date, @custom_cost)
			RETURNING id, trip_stop_id, activity_id, scheduled_date, custom_cost
		)
		SELECT ta.id, ta.trip_stop_id, ta.activity_id, ta.scheduled_date, ta.custom_cost,
		       a.id, a.name, a.description, a.category, a.cost
		FROM inserted ta
		JOIN activities a ON a.id = ta.activity_id`

	args := pgx.NamedArgs{
		"trip_stop_id":   ta.TripStopID,
		"activity_id":    ta.ActivityID,
		"scheduled_date": ta.ScheduledDate,
		"custom_cost":    ta.CustomCost,
	}

	result, err := scanTripActivity(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TripActivity{}, fmt.Errorf("repo.TripActivityRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripActivityRepo) GetByID(ctx context.Context, stopID, id uuid.UUID) (domain.TripActivity, error) {
	const q = `
		SELECT ` + tripActivityColumns + `
		FROM trip_activities ta
		JOIN activities a ON a.id = ta.activity_id
		WHERE ta.id = @id AND ta.trip_stop_id = @trip_stop_id`

	result, err := scanTripActivity(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "trip_stop_id": stopID}))
	if err != nil {
		return domain.TripActivity{}, fmt.Errorf("repo.TripActivityRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripActivityRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.TripActivity, error) {
	const q = `
		SELECT ` + tripActivityColumns + `
		FROM trip_activities ta
		JOIN activities a ON a.id = ta.activity_id
		JOIN trip_stops s ON s.id = ta.trip_stop_id
		WHERE s.trip_id = @trip_id
		ORDER BY ta.scheduled_date ASC NULLS LAST`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripActivityRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var out []domain.TripActivity
	for rows.Next() {
		ta, err := scanTripActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripActivityRepo.ListByTripID: scan: %w", err)
		}
		out = append(out, ta)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripActivityRepo.ListByTripID: rows: %w", err)
	}

	return out, nil
}

func (r *pgTripActivityRepo) Update(ctx context.Context, ta domain.TripActivity) (domain.TripActivity, error) {
	const q = `
		WITH updated AS (
			UPDATE trip_activities
			SET scheduled_date = @scheduled_date,
			    custom_cost    = @custom_cost
			WHERE id = @id AND trip_stop_id = @trip_stop_id
			RETURNING id, trip_stop_id, activity_id, scheduled_date, custom_cost
		)
		SELECT ta.id, ta.trip_stop_id, ta.activity_id, ta.scheduled_date, ta.custom_cost,
		       a.id, a.name, a.description, a.category, a.cost
		FROM updated ta
		JOIN activities a ON a.id = ta.activity_id`

	args := pgx.NamedArgs{
		"id":             ta.ID,
		"trip_stop_id":   ta.TripStopID,
		"scheduled_date": ta.ScheduledDate,
		"custom_cost":    ta.CustomCost,
	}

	result, err := scanTripActivity(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TripActivity{}, fmt.Errorf("repo.TripActivityRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTripActivityRepo) Delete(ctx context.Context, stopID, id uuid.UUID) error {
	const q = `DELETE FROM trip_activities WHERE id = @id AND trip_stop_id = @trip_stop_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "trip_stop_id": stopID})
	if err != nil {
		return fmt.Errorf("repo.TripActivityRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripActivityRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanTripActivity maps a trip activity row joined with its catalog activity.
func scanTripActivity(s scanner) (domain.TripActivity, error) {
	var (
		ta        domain.TripActivity
		act       domain.Activity
		id        pgtype.UUID
		stopID    pgtype.UUID
		actID     pgtype.UUID
		catID     pgtype.UUID
		scheduled pgtype.Date
	)

	err := s.Scan(
		&id, &stopID, &actID, &scheduled, &ta.CustomCost,
		&catID, &act.Name, &act.Description, &act.Category, &act.Cost,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TripActivity{}, domain.ErrNotFound
		}
		return domain.TripActivity{}, err
	}

	ta.ID = uuid.UUID(id.Bytes)
	ta.TripStopID = uuid.UUID(stopID.Bytes)
	ta.ActivityID = uuid.UUID(actID.Bytes)
	ta.ScheduledDate = datePtr(scheduled)
	act.ID = uuid.UUID(catID.Bytes)
	ta.Activity = &act
	return ta, nil
}
