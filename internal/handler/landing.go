package handler

import "net/http"

type bannerResponse struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	ImageURL string `json:"imageUrl"`
}

// GetBanner handles GET /trips/banner.
// The landing banner is static content; it lives here rather than in the
// database so the landing page renders with zero queries.
func (s *Server) GetBanner(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, bannerResponse{
		Title:    "Explore the World",
		Subtitle: "Plan your next adventure with GlobeTrotter",
		ImageURL: "/images/banner.jpg",
	})
}
