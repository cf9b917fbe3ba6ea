package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/globe-trotter/backend/internal/domain"
	"github.com/globe-trotter/backend/internal/middleware"
)

type upsertBudgetRequest struct {
	TransportCost *float64 `json:"transportCost"`
	StayCost      *float64 `json:"stayCost"`
	FoodCost      *float64 `json:"foodCost"`
	ActivityCost  *float64 `json:"activityCost"`
}

// GetBudget handles GET /trips/{tripId}/budget.
// A trip that never saved a budget returns 404.
func (s *Server) GetBudget(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuid.Parse(chi.URLParam(r, "tripId"))
	if err != nil {
		writeValidation(w, "invalid trip id")
		return
	}

	budget, err := s.budgets.Get(r.Context(), tripID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, budget)
}

// UpsertBudget handles PUT /trips/{tripId}/budget.
// The first call creates the budget row, later calls replace it.
func (s *Server) UpsertBudget(w http.ResponseWriter, r *http.Request) {
	tripID, err := uuid.Parse(chi.URLParam(r, "tripId"))
	if err != nil {
		writeValidation(w, "invalid trip id")
		return
	}

	var req upsertBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}

	budget, err := s.budgets.Upsert(r.Context(), middleware.UserID(r.Context()), tripID, domain.TripBudget{
		TransportCost: req.TransportCost,
		StayCost:      req.StayCost,
		FoodCost:      req.FoodCost,
		ActivityCost:  req.ActivityCost,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, budget)
}
