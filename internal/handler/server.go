// Package handler implements the HTTP handlers for the GlobeTrotter API.
// Handlers decode typed request bodies, call the service layer, and map
// domain errors to HTTP statuses. Methods are split into resource-specific
// files (user.go, trip.go, etc.) but all share the same Server struct so they
// can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/globe-trotter/backend/internal/domain"
	"github.com/globe-trotter/backend/internal/middleware"
	"github.com/globe-trotter/backend/internal/places"
)

// The service interfaces are defined here, in the consumer package, following
// the Go convention: "accept interfaces, return concrete types". Handler
// tests inject mocks without touching the database or service layer.

// UserServicer defines the identity operations the user handler depends on.
type UserServicer interface {
	Signup(ctx context.Context, input domain.SignupInput) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, string, error)
	Profile(ctx context.Context, id uuid.UUID) (domain.PublicUser, []domain.Trip, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

// TripServicer defines the trip aggregate operations the trip handler depends on.
type TripServicer interface {
	Create(ctx context.Context, actor uuid.UUID, trip domain.Trip) (domain.Trip, error)
	Update(ctx context.Context, actor, tripID uuid.UUID, upd domain.TripUpdate) (domain.Trip, error)
	Delete(ctx context.Context, actor, tripID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, params domain.TripListParams) ([]domain.TripWithRelations, error)
	Details(ctx context.Context, tripID uuid.UUID) (domain.TripDetails, error)
}

// StopServicer defines the stop operations the stop handler depends on.
type StopServicer interface {
	AddStops(ctx context.Context, actor, tripID uuid.UUID, stops []domain.NewStop) ([]domain.Stop, error)
	Update(ctx context.Context, actor, tripID, stopID uuid.UUID, upd domain.StopUpdate) (domain.Stop, error)
	Delete(ctx context.Context, actor, tripID, stopID uuid.UUID) error
}

// ActivityServicer defines the trip-activity operations the handler depends on.
type ActivityServicer interface {
	Add(ctx context.Context, actor, tripID, stopID uuid.UUID, ta domain.TripActivity) (domain.TripActivity, error)
	Update(ctx context.Context, actor, tripID, stopID, activityID uuid.UUID, upd domain.TripActivityUpdate) (domain.TripActivity, error)
	Delete(ctx context.Context, actor, tripID, stopID, activityID uuid.UUID) error
}

// BudgetServicer defines the budget operations the handler depends on.
type BudgetServicer interface {
	Get(ctx context.Context, tripID uuid.UUID) (domain.TripBudget, error)
	Upsert(ctx context.Context, actor, tripID uuid.UUID, budget domain.TripBudget) (domain.TripBudget, error)
}

// ShareServicer defines the sharing operations the handler depends on.
type ShareServicer interface {
	Create(ctx context.Context, actor, tripID uuid.UUID, email, permission string) (domain.TripShare, error)
	GetSharedTrip(ctx context.Context, shareID uuid.UUID) (domain.TripDetails, error)
}

// CityServicer defines the city catalog operations the handler depends on.
type CityServicer interface {
	Add(ctx context.Context, city domain.City) (domain.City, error)
	TopRegions(ctx context.Context, limit int, countryFilter string) ([]domain.City, error)
	DeleteIfUnused(ctx context.Context, cityID int32) error
}

// PlacesClient defines the places lookup operations the handler depends on.
// Satisfied by *places.Client.
type PlacesClient interface {
	Search(ctx context.Context, query, placeType string) ([]places.Place, error)
	Details(ctx context.Context, placeID string) (places.Details, error)
	Nearby(ctx context.Context, lat, lng float64, radius int, placeType string) ([]places.Place, error)
	Autocomplete(ctx context.Context, input, types string) ([]places.Prediction, error)
	PhotoURL(photoReference string, maxWidth int) string
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	users      UserServicer
	trips      TripServicer
	stops      StopServicer
	activities ActivityServicer
	budgets    BudgetServicer
	shares     ShareServicer
	cities     CityServicer
	places     PlacesClient
	verifier   middleware.TokenVerifier
	openapi    []byte
}

// NewServer constructs the Server with all its dependencies.
func NewServer(
	users UserServicer,
	trips TripServicer,
	stops StopServicer,
	activities ActivityServicer,
	budgets BudgetServicer,
	shares ShareServicer,
	cities CityServicer,
	placesClient PlacesClient,
	verifier middleware.TokenVerifier,
	openapi []byte,
) *Server {
	return &Server{
		users:      users,
		trips:      trips,
		stops:      stops,
		activities: activities,
		budgets:    budgets,
		shares:     shares,
		cities:     cities,
		places:     placesClient,
		verifier:   verifier,
		openapi:    openapi,
	}
}

// Routes assembles the API router. Public routes (identity, landing, places,
// shared-trip read) sit outside the auth group; everything that reads or
// mutates a specific user's trips requires a bearer token.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	requireAuth := middleware.NewRequireAuth(s.verifier)

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/users", func(r chi.Router) {
		r.Post("/signup", s.Signup)
		r.Post("/login", s.Login)
		r.Post("/logout", s.Logout)
		r.Get("/me/{id}", s.GetProfile)
		r.Post("/forgot-password-otp", s.ForgotPasswordOTP)
		r.Post("/reset-password-otp", s.ResetPasswordOTP)
	})

	r.Route("/trips", func(r chi.Router) {
		// Public: landing data, places proxy, and the share capability read.
		r.Get("/banner", s.GetBanner)
		r.Get("/regions/top", s.GetTopRegions)
		r.Get("/places/search", s.SearchPlaces)
		r.Get("/places/details/{placeId}", s.GetPlaceDetails)
		r.Get("/places/nearby", s.GetNearbyPlaces)
		r.Get("/places/autocomplete", s.AutocompletePlaces)
		r.Get("/shared/{shareId}", s.GetSharedTrip)
		r.Get("/{tripId}", s.GetTripDetails)

		// Authenticated: anything scoped to the caller's own trips.
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/user/{userId}", s.ListUserTrips)
			r.Post("/", s.CreateTrip)
			r.Put("/{tripId}", s.UpdateTrip)
			r.Delete("/{tripId}", s.DeleteTrip)
			r.Post("/{tripId}/stops", s.AddStops)
			r.Put("/{tripId}/stops/{stopId}", s.UpdateStop)
			r.Delete("/{tripId}/stops/{stopId}", s.DeleteStop)
			r.Post("/{tripId}/stops/{stopId}/activities", s.AddActivity)
			r.Put("/{tripId}/stops/{stopId}/activities/{activityId}", s.UpdateActivity)
			r.Delete("/{tripId}/stops/{stopId}/activities/{activityId}", s.DeleteActivity)
			r.Get("/{tripId}/budget", s.GetBudget)
			r.Put("/{tripId}/budget", s.UpsertBudget)
			r.Post("/{tripId}/share", s.ShareTrip)
			r.Post("/city-add", s.AddCity)
			r.Delete("/city/{cityId}", s.DeleteCity)
		})
	})

	return r
}

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetOpenAPI serves the embedded OpenAPI document.
func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.openapi)
}
