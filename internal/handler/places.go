package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/globe-trotter/backend/internal/places"
)

// SearchPlaces handles GET /trips/places/search?query=&type=&groupBy=&sortBy=.
// groupBy=type (or category) buckets results by their first declared type;
// sortBy=rating orders highest-rated first. Sorting applies only to the flat
// list, matching the original behavior.
func (s *Server) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("query")
	if query == "" {
		writeValidation(w, "query parameter is required")
		return
	}

	results, err := s.places.Search(r.Context(), query, q.Get("type"))
	if err != nil {
		writeError(w, err)
		return
	}

	switch groupBy := q.Get("groupBy"); groupBy {
	case "type", "category":
		writeJSON(w, http.StatusOK, places.GroupByType(results))
		return
	}

	if q.Get("sortBy") == "rating" {
		places.SortByRating(results)
	}
	writeJSON(w, http.StatusOK, results)
}

// GetPlaceDetails handles GET /trips/places/details/{placeId}.
func (s *Server) GetPlaceDetails(w http.ResponseWriter, r *http.Request) {
	placeID := chi.URLParam(r, "placeId")
	if placeID == "" {
		writeValidation(w, "place id is required")
		return
	}

	details, err := s.places.Details(r.Context(), placeID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, details)
}

// GetNearbyPlaces handles GET /trips/places/nearby?lat=&lng=&radius=&type=.
// lat and lng are required; radius defaults to 5000 m and is clamped to
// 50 000 m in the client.
func (s *Server) GetNearbyPlaces(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		writeValidation(w, "lat and lng parameters are required")
		return
	}
	lng, err := strconv.ParseFloat(q.Get("lng"), 64)
	if err != nil {
		writeValidation(w, "lat and lng parameters are required")
		return
	}

	radius := 0
	if v := q.Get("radius"); v != "" {
		radius, err = strconv.Atoi(v)
		if err != nil || radius < 0 {
			writeValidation(w, "invalid radius")
			return
		}
	}

	results, err := s.places.Nearby(r.Context(), lat, lng, radius, q.Get("type"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

// AutocompletePlaces handles GET /trips/places/autocomplete?input=&types=.
func (s *Server) AutocompletePlaces(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := q.Get("input")
	if input == "" {
		writeValidation(w, "input parameter is required")
		return
	}

	predictions, err := s.places.Autocomplete(r.Context(), input, q.Get("types"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, predictions)
}
