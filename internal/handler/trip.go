package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/globe-trotter/backend/internal/domain"
	"github.com/globe-trotter/backend/internal/middleware"
)

type createTripRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	StartDate   *openapi_types.Date `json:"startDate"`
	EndDate     *openapi_types.Date `json:"endDate"`
	IsPublic    bool                `json:"isPublic"`
}

// optionalDate distinguishes the three states a PUT date field can be in:
// absent (leave unchanged), null or "" (clear), or a "YYYY-MM-DD" value.
// UnmarshalJSON only runs for fields present in the body, so Present stays
// false for omitted fields.
type optionalDate struct {
	Present bool
	Value   *time.Time
}

func (o *optionalDate) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" || string(data) == `""` {
		o.Value = nil
		return nil
	}
	var d openapi_types.Date
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	o.Value = &d.Time
	return nil
}

type updateTripRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	StartDate   optionalDate `json:"startDate"`
	EndDate     optionalDate `json:"endDate"`
	IsPublic    *bool        `json:"isPublic"`
}

// CreateTrip handles POST /trips.
// The owner is always the authenticated caller; a userId in the body is
// ignored.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}

	trip := domain.Trip{
		Title:       req.Title,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	}
	if req.StartDate != nil {
		trip.StartDate = &req.StartDate.Time
	}
	if req.EndDate != nil {
		trip.EndDate = &req.EndDate.Time
	}

	created, err := s.trips.Create(r.Context(), middleware.UserID(r.Context()), trip)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// UpdateTrip handles PUT /trips/{tripId}.
// Omitted fields keep their value; sending null (or "") for a date clears it.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuid.Parse(chi.URLParam(r, "tripId"))
	if err != nil {
		writeValidation(w, "invalid trip id")
		return
	}

	var req updateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}

	upd := domain.TripUpdate{
		Title:       req.Title,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	}
	if req.StartDate.Present {
		if req.StartDate.Value == nil {
			upd.ClearStartDate = true
		} else {
			upd.StartDate = req.StartDate.Value
		}
	}
	if req.EndDate.Present {
		if req.EndDate.Value == nil {
			upd.ClearEndDate = true
		} else {
			upd.EndDate = req.EndDate.Value
		}
	}

	updated, err := s.trips.Update(r.Context(), middleware.UserID(r.Context()), tripID, upd)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /trips/{tripId}.
// Stops, activities, budget, and shares go with it via FK cascades.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuid.Parse(chi.URLParam(r, "tripId"))
	if err != nil {
		writeValidation(w, "invalid trip id")
		return
	}

	if err := s.trips.Delete(r.Context(), middleware.UserID(r.Context()), tripID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "trip deleted"})
}

// ListUserTrips handles GET /trips/user/{userId}?sortBy=&limit=&filter=.
// Callers may only list their own trips.
func (s *Server) ListUserTrips(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		writeValidation(w, "invalid user id")
		return
	}
	if userID != middleware.UserID(r.Context()) {
		writeNotFoundMsg(w, "user not found")
		return
	}

	params := domain.TripListParams{
		SortBy: r.URL.Query().Get("sortBy"),
		Filter: r.URL.Query().Get("filter"),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeValidation(w, "invalid limit")
			return
		}
		params.Limit = n
	}

	trips, err := s.trips.ListByUser(r.Context(), userID, params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, trips)
}

// GetTripDetails handles GET /trips/{tripId}.
// Returns the fully expanded aggregate: stops with cities and activities,
// budget, and shares.
func (s *Server) GetTripDetails(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuid.Parse(chi.URLParam(r, "tripId"))
	if err != nil {
		writeValidation(w, "invalid trip id")
		return
	}

	details, err := s.trips.Details(r.Context(), tripID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, details)
}
