package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/globe-trotter/backend/internal/domain"
)

type addCityRequest struct {
	Name            string   `json:"name"`
	Country         string   `json:"country"`
	CostIndex       *float64 `json:"costIndex"`
	PopularityScore *float64 `json:"popularityScore"`
}

// AddCity handles POST /trips/city-add.
// Adds a catalog city; name and country are required, popularityScore must
// fall in [0, 5] when present.
func (s *Server) AddCity(w http.ResponseWriter, r *http.Request) {
	var req addCityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidation(w, "invalid request body")
		return
	}

	city, err := s.cities.Add(r.Context(), domain.City{
		Name:            req.Name,
		Country:         req.Country,
		CostIndex:       req.CostIndex,
		PopularityScore: req.PopularityScore,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, city)
}

// GetTopRegions handles GET /trips/regions/top?limit=&filter=.
// Returns catalog cities ordered by popularity, most popular first; filter
// matches against the country name.
func (s *Server) GetTopRegions(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeValidation(w, "invalid limit")
			return
		}
		limit = n
	}

	cities, err := s.cities.TopRegions(r.Context(), limit, r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cities)
}

// DeleteCity handles DELETE /trips/city/{cityId}.
// A city still referenced by any stop returns 409.
func (s *Server) DeleteCity(w http.ResponseWriter, r *http.Request) {
	cityID, err := strconv.ParseInt(chi.URLParam(r, "cityId"), 10, 32)
	if err != nil {
		writeValidation(w, "invalid city id")
		return
	}

	if err := s.cities.DeleteIfUnused(r.Context(), int32(cityID)); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "city deleted"})
}
