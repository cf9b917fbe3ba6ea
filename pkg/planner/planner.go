// Package planner drives the three-phase trip-planning workflow against the
// GlobeTrotter API: register a catalog city per selected place, create the
// trip, then bulk-add the stops. The phases are separate HTTP calls with no
// transaction spanning them; each completed step records a compensating
// action so a caller hitting a downstream failure knows exactly what state
// was left behind.
package planner

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/globe-trotter/backend/pkg/apiclient"
)

// API is the slice of the apiclient surface the planner needs.
// Satisfied by *apiclient.Client.
type API interface {
	AddCity(ctx context.Context, req apiclient.AddCityRequest) (*apiclient.City, error)
	CreateTrip(ctx context.Context, req apiclient.CreateTripRequest) (*apiclient.Trip, error)
	AddStops(ctx context.Context, tripID uuid.UUID, req apiclient.AddStopsRequest) ([]apiclient.Stop, error)
}

// Selection is one place the user picked for the itinerary.
type Selection struct {
	PlaceID          string
	Name             string
	FormattedAddress string
	// Rating seeds the catalog city's popularity score; nil falls back to a
	// middle-of-the-road default.
	Rating *float64
	// Day is the 1-based itinerary day the place is assigned to; 0 means
	// unassigned, which sorts before every assigned day.
	Day int
}

// Input describes the trip to build.
type Input struct {
	Title       string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	Selections  []Selection
}

// Result reports everything the workflow created.
type Result struct {
	Trip   apiclient.Trip
	Cities []apiclient.City
	Stops  []apiclient.Stop
}

// Compensation describes one manual action that would undo a completed step.
type Compensation struct {
	// Step names the phase that completed, e.g. "add-city".
	Step string
	// Action is a human-readable undo instruction.
	Action string
}

// PartialError is returned when the workflow fails after completing at least
// one step. Compensations lists the undo actions for everything that stuck.
// Catalog cities are shared rows and safe to leave behind; the trip is not.
type PartialError struct {
	Step          string
	Err           error
	Compensations []Compensation
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("planner: step %s failed after %d completed actions: %v", e.Step, len(e.Compensations), e.Err)
}

func (e *PartialError) Unwrap() error { return e.Err }

// defaults for catalog cities created from selections, matching the values
// the trip planner UI has always sent.
const (
	defaultCostIndex  = 4.0
	defaultPopularity = 4.5
)

// Planner runs the trip-planning workflow over an API client.
type Planner struct {
	api API
}

// New constructs a Planner.
func New(api API) *Planner {
	return &Planner{api: api}
}

// Plan executes the workflow: cities, then the trip, then the stops in bulk.
//
// Selections are de-duplicated by place id (first occurrence wins) and
// ordered by assigned day, unassigned first, preserving selection order
// within a day. Stop order is 1..N over that sequence; each stop's dates are
// the trip start advanced by (day−1) when both are known.
//
// A city failure aborts before any trip exists. Failures after trip creation
// return a *PartialError carrying the compensating actions.
func (p *Planner) Plan(ctx context.Context, input Input) (*Result, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("planner: trip title is required")
	}
	selections := orderSelections(input.Selections)
	if len(selections) == 0 {
		return nil, fmt.Errorf("planner: at least one selection is required")
	}

	var comps []Compensation
	result := &Result{}

	// Phase 1: one catalog city per selection.
	cityIDs := make(map[string]int32, len(selections))
	for _, sel := range selections {
		cityName, country := DeriveCityCountry(sel.Name, sel.FormattedAddress)

		popularity := defaultPopularity
		if sel.Rating != nil {
			popularity = *sel.Rating
		}
		costIndex := defaultCostIndex

		city, err := p.api.AddCity(ctx, apiclient.AddCityRequest{
			Name:            cityName,
			Country:         country,
			CostIndex:       &costIndex,
			PopularityScore: &popularity,
		})
		if err != nil {
			return nil, &PartialError{
				Step:          "add-city",
				Err:           fmt.Errorf("add city for %q: %w", sel.Name, err),
				Compensations: comps,
			}
		}
		cityIDs[sel.PlaceID] = city.ID
		result.Cities = append(result.Cities, *city)
		comps = append(comps, Compensation{
			Step:   "add-city",
			Action: fmt.Sprintf("delete city %d (%s, %s) if unused", city.ID, city.Name, city.Country),
		})
	}

	// Phase 2: the trip itself.
	tripReq := apiclient.CreateTripRequest{
		Title:       input.Title,
		Description: input.Description,
	}
	if input.StartDate != nil {
		tripReq.StartDate = &openapi_types.Date{Time: *input.StartDate}
	}
	if input.EndDate != nil {
		tripReq.EndDate = &openapi_types.Date{Time: *input.EndDate}
	}

	trip, err := p.api.CreateTrip(ctx, tripReq)
	if err != nil {
		return nil, &PartialError{
			Step:          "create-trip",
			Err:           fmt.Errorf("create trip: %w", err),
			Compensations: comps,
		}
	}
	result.Trip = *trip
	comps = append(comps, Compensation{
		Step:   "create-trip",
		Action: fmt.Sprintf("delete trip %s", trip.ID),
	})

	// Phase 3: all stops in one bulk call.
	stops := make([]apiclient.NewStop, 0, len(selections))
	for i, sel := range selections {
		stop := apiclient.NewStop{
			CityID: cityIDs[sel.PlaceID],
			Order:  i + 1,
		}
		if d := stopDate(input.StartDate, sel.Day); d != nil {
			stop.StartDate = d
			stop.EndDate = d
		}
		stops = append(stops, stop)
	}

	created, err := p.api.AddStops(ctx, trip.ID, apiclient.AddStopsRequest{Stops: stops})
	if err != nil {
		return nil, &PartialError{
			Step:          "add-stops",
			Err:           fmt.Errorf("add stops: %w", err),
			Compensations: comps,
		}
	}
	result.Stops = created

	return result, nil
}

// orderSelections de-duplicates by place id (first occurrence wins) and
// sorts by day ascending, keeping selection order within a day.
func orderSelections(selections []Selection) []Selection {
	seen := make(map[string]bool, len(selections))
	out := make([]Selection, 0, len(selections))
	for _, sel := range selections {
		if sel.PlaceID != "" && seen[sel.PlaceID] {
			continue
		}
		seen[sel.PlaceID] = true
		out = append(out, sel)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Day < out[j].Day
	})
	return out
}

// stopDate returns the trip start advanced by (day−1), or the start itself
// for unassigned selections. Nil when the trip has no start date.
func stopDate(start *time.Time, day int) *openapi_types.Date {
	if start == nil {
		return nil
	}
	d := *start
	if day > 0 {
		d = d.AddDate(0, 0, day-1)
	}
	return &openapi_types.Date{Time: d}
}

// DeriveCityCountry extracts a catalog city name and country from a place's
// formatted address. The last comma-separated segment is taken as the
// country; with three or more segments the third-from-last is the city
// (falling back to the first when empty), otherwise the first segment is.
// A place with no usable address becomes its own name in country "Unknown".
func DeriveCityCountry(placeName, formattedAddress string) (city, country string) {
	city = placeName
	country = "Unknown"

	var parts []string
	for _, p := range strings.Split(formattedAddress, ",") {
		parts = append(parts, strings.TrimSpace(p))
	}
	if formattedAddress == "" || len(parts) < 2 {
		return city, country
	}

	if last := parts[len(parts)-1]; last != "" {
		country = last
	}
	if len(parts) >= 3 {
		city = parts[len(parts)-3]
		if city == "" {
			city = parts[0]
		}
	} else {
		city = parts[0]
	}
	return city, country
}
