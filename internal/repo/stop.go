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

// StopRepo defines the persistence operations for trip stops.
// Single-row writes are scoped by tripID so a stop can never be mutated
// through the wrong trip's URL.
type StopRepo interface {
	// CreateMany bulk-inserts stops for a trip. Like the underlying multi-row
	// INSERT it returns no relational data — callers that need the city joined
	// must follow up with ListByTripID.
	CreateMany(ctx context.Context, tripID uuid.UUID, stops []domain.NewStop) error

	// ListByTripID returns all stops for a trip with the city joined,
	// ordered by stop_order ascending.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error)

	// GetByID retrieves a single stop scoped to the given tripID.
	// Returns domain.ErrNotFound if no stop with that ID exists under that trip.
	GetByID(ctx context.Context, tripID, stopID uuid.UUID) (domain.Stop, error)

	// Update overwrites the mutable fields of a stop and returns the updated
	// record with the city joined. Scoped to the stop's tripID.
	Update(ctx context.Context, stop domain.Stop) (domain.Stop, error)

	// Delete removes a stop by ID, scoped to the given tripID.
	Delete(ctx context.Context, tripID, stopID uuid.UUID) error

	// CountByCityID returns the number of stops (across all trips) that
	// reference the given city. Used by the delete-if-unused city operation.
	CountByCityID(ctx context.Context, cityID int32) (int64, error)
}

// pgStopRepo is the Postgres implementation of StopRepo.
type pgStopRepo struct {
	db db
}

// NewStopRepo constructs a StopRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewStopRepo(db db) StopRepo {
	return &pgStopRepo{db: db}
}

const stopWithCityColumns = `
	s.id, s.trip_id, s.city_id, s.start_date, s.end_date, s.stop_order,
	c.id, c.name, c.country, c.cost_index, c.popularity_score`

func (r *pgStopRepo) CreateMany(ctx context.Context, tripID uuid.UUID, stops []domain.NewStop) error {
	// One INSERT per stop inside the caller-supplied connection. pgx batches
	// would save round trips but the bulk endpoint caps out at a handful of
	// stops per trip in practice.
	const q = `
		INSERT INTO trip_stops (trip_id, city_id, start_date, end_date, stop_order)
		VALUES (@trip_id, @city_id, @start_date, @end_date, @stop_order)`

	for _, stop := range stops {
		args := pgx.NamedArgs{
			"trip_id":    tripID,
			"city_id":    stop.CityID,
			"start_date": stop.StartDate,
			"end_date":   stop.EndDate,
			"stop_order": stop.Order,
		}
		if _, err := r.db.Exec(ctx, q, args); err != nil {
			return fmt.Errorf("repo.StopRepo.CreateMany: %w", err)
		}
	}
	return nil
}

func (r *pgStopRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	const q = `
		SELECT ` + stopWithCityColumns + `
		FROM trip_stops s
		JOIN cities c ON c.id = s.city_id
		WHERE s.trip_id = @trip_id
		ORDER BY s.stop_order ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var stops []domain.Stop
	for rows.Next() {
		s, err := scanStopWithCity(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.StopRepo.ListByTripID: scan: %w", err)
		}
		stops = append(stops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.StopRepo.ListByTripID: rows: %w", err)
	}

	return stops, nil
}

func (r *pgStopRepo) GetByID(ctx context.Context, tripID, stopID uuid.UUID) (domain.Stop, error) {
	const q = `
		SELECT ` + stopWithCityColumns + `
		FROM trip_stops s
		JOIN cities c ON c.id = s.city_id
		WHERE s.id = @id AND s.trip_id = @trip_id`

	result, err := scanStopWithCity(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": stopID, "trip_id": tripID}))
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgStopRepo) Update(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	const q = `
		WITH updated AS (
			UPDATE trip_stops
			SET start_date = @start_date,
			    end_date   = @end_date,
			    stop_order = @stop_order
			WHERE id = @id AND trip_id = @trip_id
			RETURNING id, trip_id, city_id, start_date, end_date, stop_order
		)
		SELECT s.id, s.trip_id, s.city_id, s.start_date, s.end_date, s.stop_order,
		       c.id, c.name, c.country, c.cost_index, c.popularity_score
		FROM updated s
		JOIN cities c ON c.id = s.city_id`

	args := pgx.NamedArgs{
		"id":         stop.ID,
		"trip_id":    stop.TripID,
		"start_date": stop.StartDate,
		"end_date":   stop.EndDate,
		"stop_order": stop.Order,
	}

	result, err := scanStopWithCity(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Stop{}, fmt.Errorf("repo.StopRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgStopRepo) Delete(ctx context.Context, tripID, stopID uuid.UUID) error {
	const q = `DELETE FROM trip_stops WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": stopID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.StopRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.StopRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgStopRepo) CountByCityID(ctx context.Context, cityID int32) (int64, error) {
	const q = `SELECT count(*) FROM trip_stops WHERE city_id = @city_id`

	var n int64
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"city_id": cityID}).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.StopRepo.CountByCityID: %w", err)
	}
	return n, nil
}

// scanStopWithCity maps a stop row joined with its city into a domain.Stop.
func scanStopWithCity(s scanner) (domain.Stop, error) {
	var (
		stop   domain.Stop
		city   domain.City
		id     pgtype.UUID
		tripID pgtype.UUID
		start  pgtype.Date
		end    pgtype.Date
	)

	err := s.Scan(
		&id, &tripID, &stop.CityID, &start, &end, &stop.Order,
		&city.ID, &city.Name, &city.Country, &city.CostIndex, &city.PopularityScore,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Stop{}, domain.ErrNotFound
		}
		return domain.Stop{}, err
	}

	stop.ID = uuid.UUID(id.Bytes)
	stop.TripID = uuid.UUID(tripID.Bytes)
	stop.StartDate = datePtr(start)
	stop.EndDate = datePtr(end)
	stop.City = &city
	return stop, nil
}
