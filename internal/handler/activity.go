package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/globe-trotter/backend/internal/domain"
	"github.com/globe-trotter/backend/internal/middleware"
)

type addActivityRequest struct {
	ActivityID    uuid.UUID           `json:"activityId"`
	ScheduledDate *openapi_types.Date `json:"scheduledDate"`
	CustomCost    *float64            `json:"customCost"`
}

type updateActivityRequest struct {
	ScheduledDate *openapi_types.Date `json:"scheduledDate"`
	CustomCost    *float64            `json:"customCost"`
}

// AddActivity handles POST /trips/{tripId}/stops/{stopId}/activities.
// Attaches a catalog activity to the stop; the response carries the joined
// catalog definition.
func (s *Server) AddActivity(w http.ResponseWriter, r *http.Request) {
	tripID, stopID, ok := stopParams(w, r)
	if !ok {
		return
	}

	var req addActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}

	ta := domain.TripActivity{ActivityID: req.ActivityID, CustomCost: req.CustomCost}
	if req.ScheduledDate != nil {
		ta.ScheduledDate = &req.ScheduledDate.Time
	}

	created, err := s.activities.Add(r.Context(), middleware.UserID(r.Context()), tripID, stopID, ta)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// UpdateActivity handles PUT /trips/{tripId}/stops/{stopId}/activities/{activityId}.
func (s *Server) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	tripID, stopID, ok := stopParams(w, r)
	if !ok {
		return
	}
	activityID, err := uuid.Parse(chi.URLParam(r, "activityId"))
	if err != nil {
		writeValidation(w, "invalid activity id")
		return
	}

	var req updateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}

	upd := domain.TripActivityUpdate{CustomCost: req.CustomCost}
	if req.ScheduledDate != nil {
		upd.ScheduledDate = &req.ScheduledDate.Time
	}

	updated, err := s.activities.Update(r.Context(), middleware.UserID(r.Context()), tripID, stopID, activityID, upd)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteActivity handles DELETE /trips/{tripId}/stops/{stopId}/activities/{activityId}.
func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	tripID, stopID, ok := stopParams(w, r)
	if !ok {
		return
	}
	activityID, err := uuid.Parse(chi.URLParam(r, "activityId"))
	if err != nil {
		writeValidation(w, "invalid activity id")
		return
	}

	if err := s.activities.Delete(r.Context(), middleware.UserID(r.Context()), tripID, stopID, activityID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "activity removed"})
}
