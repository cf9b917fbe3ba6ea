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

type newStopRequest struct {
	CityID    int32               `json:"cityId"`
	StartDate *openapi_types.Date `json:"startDate"`
	EndDate   *openapi_types.Date `json:"endDate"`
	Order     int                 `json:"order"`
}

type addStopsRequest struct {
	Stops []newStopRequest `json:"stops"`
}

type updateStopRequest struct {
	StartDate *openapi_types.Date `json:"startDate"`
	EndDate   *openapi_types.Date `json:"endDate"`
	Order     *int                `json:"order"`
}

// AddStops handles POST /trips/{tripId}/stops.
// Accepts a non-empty array of stops and returns the trip's complete stop
// list afterwards, cities joined, ordered ascending.
func (s *Server) AddStops(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuid.Parse(chi.URLParam(r, "tripId"))
	if err != nil {
		writeValidation(w, "invalid trip id")
		return
	}

	var req addStopsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}

	stops := make([]domain.NewStop, 0, len(req.Stops))
	for _, in := range req.Stops {
		stop := domain.NewStop{CityID: in.CityID, Order: in.Order}
		if in.StartDate != nil {
			stop.StartDate = &in.StartDate.Time
		}
		if in.EndDate != nil {
			stop.EndDate = &in.EndDate.Time
		}
		stops = append(stops, stop)
	}

	created, err := s.stops.AddStops(r.Context(), middleware.UserID(r.Context()), tripID, stops)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// UpdateStop handles PUT /trips/{tripId}/stops/{stopId}.
// Omitted fields keep their value.
func (s *Server) UpdateStop(w http.ResponseWriter, r *http.Request) {
	tripID, stopID, ok := stopParams(w, r)
	if !ok {
		return
	}

	var req updateStopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}

	upd := domain.StopUpdate{Order: req.Order}
	if req.StartDate != nil {
		upd.StartDate = &req.StartDate.Time
	}
	if req.EndDate != nil {
		upd.EndDate = &req.EndDate.Time
	}

	updated, err := s.stops.Update(r.Context(), middleware.UserID(r.Context()), tripID, stopID, upd)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteStop handles DELETE /trips/{tripId}/stops/{stopId}.
func (s *Server) DeleteStop(w http.ResponseWriter, r *http.Request) {
	tripID, stopID, ok := stopParams(w, r)
	if !ok {
		return
	}

	if err := s.stops.Delete(r.Context(), middleware.UserID(r.Context()), tripID, stopID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "stop deleted"})
}

// stopParams parses the {tripId} and {stopId} path params, writing a 400 and
// returning ok=false on a malformed id.
func stopParams(w http.ResponseWriter, r *http.Request) (tripID, stopID uuid.UUID, ok bool) {
	tripID, err := uuid.Parse(chi.URLParam(r, "tripId"))
	if err != nil {
		writeValidation(w, "invalid trip id")
		return uuid.Nil, uuid.Nil, false
	}
	stopID, err = uuid.Parse(chi.URLParam(r, "stopId"))
	if err != nil {
		writeValidation(w, "invalid stop id")
		return uuid.Nil, uuid.Nil, false
	}
	return tripID, stopID, true
}
