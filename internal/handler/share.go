package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/globe-trotter/backend/internal/middleware"
)

type shareTripRequest struct {
	Email      string `json:"email"`
	Permission string `json:"permission"`
}

// ShareTrip handles POST /trips/{tripId}/share.
// Creates a share grant; permission defaults to "view" when omitted.
func (s *Server) ShareTrip(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuid.Parse(chi.URLParam(r, "tripId"))
	if err != nil {
		writeValidation(w, "invalid trip id")
		return
	}

	var req shareTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}

	share, err := s.shares.Create(r.Context(), middleware.UserID(r.Context()), tripID, req.Email, req.Permission)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, share)
}

// GetSharedTrip handles GET /trips/shared/{shareId}.
// The share id is the capability: no authentication, the bearer of the link
// gets the full trip expansion.
func (s *Server) GetSharedTrip(w http.ResponseWriter, r *http.Request) {
	shareID, err := uuid.Parse(chi.URLParam(r, "shareId"))
	if err != nil {
		writeValidation(w, "invalid share id")
		return
	}

	details, err := s.shares.GetSharedTrip(r.Context(), shareID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, details)
}
