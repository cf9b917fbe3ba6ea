package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/globe-trotter/backend/internal/domain"
)

// CityRepo defines the persistence operations for the shared city catalog.
type CityRepo interface {
	// Create inserts a new city and returns it with the DB-generated id.
	Create(ctx context.Context, city domain.City) (domain.City, error)

	// GetByID retrieves a city by primary key.
	// Returns domain.ErrNotFound if no city with that ID exists.
	GetByID(ctx context.Context, id int32) (domain.City, error)

	// TopByPopularity returns up to limit cities ordered by popularity_score
	// descending (NULL scores last). countryFilter, when non-empty, restricts
	// results to countries containing the filter string.
	TopByPopularity(ctx context.Context, limit int, countryFilter string) ([]domain.City, error)

	// Delete removes a city by primary key. It does not check references —
	// that is the service's job via StopRepo.CountByCityID.
	// Returns domain.ErrNotFound if the city does not exist.
	Delete(ctx context.Context, id int32) error
}

// pgCityRepo is the Postgres implementation of CityRepo.
type pgCityRepo struct {
	db db
}

// NewCityRepo constructs a CityRepo backed by the provided db connection.
func NewCityRepo(db db) CityRepo {
	return &pgCityRepo{db: db}
}

const cityColumns = `id, name, country, cost_index, popularity_score`

func (r *pgCityRepo) Create(ctx context.Context, city domain.City) (domain.City, error) {
	const q = `
		INSERT INTO cities (name, country, cost_index, popularity_score)
		VALUES (@name, @country, @cost_index, @popularity_score)
		RETURNING ` + cityColumns

	args := pgx.NamedArgs{
		"name":             city.Name,
		"country":          city.Country,
		"cost_index":       city.CostIndex,
		"popularity_score": city.PopularityScore,
	}

	result, err := scanCity(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.City{}, fmt.Errorf("repo.CityRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgCityRepo) GetByID(ctx context.Context, id int32) (domain.City, error) {
	const q = `SELECT ` + cityColumns + ` FROM cities WHERE id = @id`

	result, err := scanCity(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.City{}, fmt.Errorf("repo.CityRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgCityRepo) TopByPopularity(ctx context.Context, limit int, countryFilter string) ([]domain.City, error) {
	q := `SELECT ` + cityColumns + ` FROM cities`
	args := pgx.NamedArgs{"limit": limit}

	if countryFilter != "" {
		q += ` WHERE country ILIKE @filter`
		args["filter"] = "%" + countryFilter + "%"
	}
	q += ` ORDER BY popularity_score DESC NULLS LAST LIMIT @limit`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.CityRepo.TopByPopularity: %w", err)
	}
	defer rows.Close()

	var cities []domain.City
	for rows.Next() {
		c, err := scanCity(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.CityRepo.TopByPopularity: scan: %w", err)
		}
		cities = append(cities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CityRepo.TopByPopularity: rows: %w", err)
	}

	return cities, nil
}

func (r *pgCityRepo) Delete(ctx context.Context, id int32) error {
	const q = `DELETE FROM cities WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.CityRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.CityRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanCity maps a single database row into a domain.City.
func scanCity(s scanner) (domain.City, error) {
	var c domain.City

	err := s.Scan(&c.ID, &c.Name, &c.Country, &c.CostIndex, &c.PopularityScore)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.City{}, domain.ErrNotFound
		}
		return domain.City{}, err
	}
	return c, nil
}
