package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/globe-trotter/backend/internal/domain"
	"github.com/globe-trotter/backend/internal/repo"
)

// CityService implements business logic for the shared city catalog.
type CityService struct {
	cities repo.CityRepo
	stops  repo.StopRepo
}

// NewCityService constructs a CityService backed by the provided repos.
func NewCityService(cities repo.CityRepo, stops repo.StopRepo) *CityService {
	return &CityService{cities: cities, stops: stops}
}

// Add validates and persists a new catalog city.
// popularityScore outside [0, 5] inclusive is rejected; the bounds are also
// enforced by a CHECK constraint, but the service rejects first so the error
// is a typed validation failure rather than a database error.
func (s *CityService) Add(ctx context.Context, city domain.City) (domain.City, error) {
	if strings.TrimSpace(city.Name) == "" || strings.TrimSpace(city.Country) == "" {
		return domain.City{}, fmt.Errorf("%w: city name and country are required", domain.ErrValidation)
	}
	if city.PopularityScore != nil && (*city.PopularityScore < 0 || *city.PopularityScore > 5) {
		return domain.City{}, fmt.Errorf("%w: popularity score must be between 0 and 5", domain.ErrValidation)
	}

	created, err := s.cities.Create(ctx, city)
	if err != nil {
		return domain.City{}, fmt.Errorf("service.CityService.Add: %w", err)
	}
	return created, nil
}

// TopRegions returns up to limit cities by popularity descending, optionally
// filtered by country substring. limit <= 0 falls back to 5.
func (s *CityService) TopRegions(ctx context.Context, limit int, countryFilter string) ([]domain.City, error) {
	if limit <= 0 {
		limit = 5
	}

	cities, err := s.cities.TopByPopularity(ctx, limit, countryFilter)
	if err != nil {
		return nil, fmt.Errorf("service.CityService.TopRegions: %w", err)
	}
	if cities == nil {
		cities = []domain.City{}
	}
	return cities, nil
}

// DeleteIfUnused removes a city only when no stop references it.
// A referenced city reports domain.ErrConflict; an absent city reports
// domain.ErrNotFound (so a second delete of the same city is not idempotent
// silence — the caller learns it is already gone).
func (s *CityService) DeleteIfUnused(ctx context.Context, cityID int32) error {
	if _, err := s.cities.GetByID(ctx, cityID); err != nil {
		return fmt.Errorf("service.CityService.DeleteIfUnused: %w", err)
	}

	n, err := s.stops.CountByCityID(ctx, cityID)
	if err != nil {
		return fmt.Errorf("service.CityService.DeleteIfUnused: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: city is still referenced by %d stop(s)", domain.ErrConflict, n)
	}

	if err := s.cities.Delete(ctx, cityID); err != nil {
		// A concurrent delete between the check and here still surfaces as
		// not found, which is the honest answer.
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("service.CityService.DeleteIfUnused: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("service.CityService.DeleteIfUnused: %w", err)
	}
	return nil
}
