package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/globe-trotter/backend/internal/domain"
	"github.com/globe-trotter/backend/internal/handler"
	"github.com/globe-trotter/backend/internal/places"
)

// Function-field mocks for the handler's service interfaces. Tests set only
// the fields they need; an unset field panics, which points straight at the
// handler calling something the test did not expect.

type mockUserServicer struct {
	signup               func(ctx context.Context, input domain.SignupInput) (domain.User, error)
	login                func(ctx context.Context, email, password string) (domain.User, string, error)
	profile              func(ctx context.Context, id uuid.UUID) (domain.PublicUser, []domain.Trip, error)
	requestPasswordReset func(ctx context.Context, email string) error
	resetPassword        func(ctx context.Context, email, code, newPassword string) error
}

func (m *mockUserServicer) Signup(ctx context.Context, input domain.SignupInput) (domain.User, error) {
	return m.signup(ctx, input)
}

func (m *mockUserServicer) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	return m.login(ctx, email, password)
}

func (m *mockUserServicer) Profile(ctx context.Context, id uuid.UUID) (domain.PublicUser, []domain.Trip, error) {
	return m.profile(ctx, id)
}

func (m *mockUserServicer) RequestPasswordReset(ctx context.Context, email string) error {
	return m.requestPasswordReset(ctx, email)
}

func (m *mockUserServicer) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	return m.resetPassword(ctx, email, code, newPassword)
}

type mockTripServicer struct {
	create     func(ctx context.Context, actor uuid.UUID, trip domain.Trip) (domain.Trip, error)
	update     func(ctx context.Context, actor, tripID uuid.UUID, upd domain.TripUpdate) (domain.Trip, error)
	delete     func(ctx context.Context, actor, tripID uuid.UUID) error
	listByUser func(ctx context.Context, userID uuid.UUID, params domain.TripListParams) ([]domain.TripWithRelations, error)
	details    func(ctx context.Context, tripID uuid.UUID) (domain.TripDetails, error)
}

func (m *mockTripServicer) Create(ctx context.Context, actor uuid.UUID, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, actor, trip)
}

func (m *mockTripServicer) Update(ctx context.Context, actor, tripID uuid.UUID, upd domain.TripUpdate) (domain.Trip, error) {
	return m.update(ctx, actor, tripID, upd)
}

func (m *mockTripServicer) Delete(ctx context.Context, actor, tripID uuid.UUID) error {
	return m.delete(ctx, actor, tripID)
}

func (m *mockTripServicer) ListByUser(ctx context.Context, userID uuid.UUID, params domain.TripListParams) ([]domain.TripWithRelations, error) {
	return m.listByUser(ctx, userID, params)
}

func (m *mockTripServicer) Details(ctx context.Context, tripID uuid.UUID) (domain.TripDetails, error) {
	return m.details(ctx, tripID)
}

type mockStopServicer struct {
	addStops func(ctx context.Context, actor, tripID uuid.UUID, stops []domain.NewStop) ([]domain.Stop, error)
	update   func(ctx context.Context, actor, tripID, stopID uuid.UUID, upd domain.StopUpdate) (domain.Stop, error)
	delete   func(ctx context.Context, actor, tripID, stopID uuid.UUID) error
}

func (m *mockStopServicer) AddStops(ctx context.Context, actor, tripID uuid.UUID, stops []domain.NewStop) ([]domain.Stop, error) {
	return m.addStops(ctx, actor, tripID, stops)
}

func (m *mockStopServicer) Update(ctx context.Context, actor, tripID, stopID uuid.UUID, upd domain.StopUpdate) (domain.Stop, error) {
	return m.update(ctx, actor, tripID, stopID, upd)
}

func (m *mockStopServicer) Delete(ctx context.Context, actor, tripID, stopID uuid.UUID) error {
	return m.delete(ctx, actor, tripID, stopID)
}

type mockActivityServicer struct {
	add    func(ctx context.Context, actor, tripID, stopID uuid.UUID, ta domain.TripActivity) (domain.TripActivity, error)
	update func(ctx context.Context, actor, tripID, stopID, activityID uuid.UUID, upd domain.TripActivityUpdate) (domain.TripActivity, error)
	delete func(ctx context.Context, actor, tripID, stopID, activityID uuid.UUID) error
}

func (m *mockActivityServicer) Add(ctx context.Context, actor, tripID, stopID uuid.UUID, ta domain.TripActivity) (domain.TripActivity, error) {
	return m.add(ctx, actor, tripID, stopID, ta)
}

func (m *mockActivityServicer) Update(ctx context.Context, actor, tripID, stopID, activityID uuid.UUID, upd domain.TripActivityUpdate) (domain.TripActivity, error) {
	return m.update(ctx, actor, tripID, stopID, activityID, upd)
}

func (m *mockActivityServicer) Delete(ctx context.Context, actor, tripID, stopID, activityID uuid.UUID) error {
	return m.delete(ctx, actor, tripID, stopID, activityID)
}

type mockBudgetServicer struct {
	get    func(ctx context.Context, tripID uuid.UUID) (domain.TripBudget, error)
	upsert func(ctx context.Context, actor, tripID uuid.UUID, budget domain.TripBudget) (domain.TripBudget, error)
}

func (m *mockBudgetServicer) Get(ctx context.Context, tripID uuid.UUID) (domain.TripBudget, error) {
	return m.get(ctx, tripID)
}

func (m *mockBudgetServicer) Upsert(ctx context.Context, actor, tripID uuid.UUID, budget domain.TripBudget) (domain.TripBudget, error) {
	return m.upsert(ctx, actor, tripID, budget)
}

type mockShareServicer struct {
	create        func(ctx context.Context, actor, tripID uuid.UUID, email, permission string) (domain.TripShare, error)
	getSharedTrip func(ctx context.Context, shareID uuid.UUID) (domain.TripDetails, error)
}

func (m *mockShareServicer) Create(ctx context.Context, actor, tripID uuid.UUID, email, permission string) (domain.TripShare, error) {
	return m.create(ctx, actor, tripID, email, permission)
}

func (m *mockShareServicer) GetSharedTrip(ctx context.Context, shareID uuid.UUID) (domain.TripDetails, error) {
	return m.getSharedTrip(ctx, shareID)
}

type mockCityServicer struct {
	add            func(ctx context.Context, city domain.City) (domain.City, error)
	topRegions     func(ctx context.Context, limit int, countryFilter string) ([]domain.City, error)
	deleteIfUnused func(ctx context.Context, cityID int32) error
}

func (m *mockCityServicer) Add(ctx context.Context, city domain.City) (domain.City, error) {
	return m.add(ctx, city)
}

func (m *mockCityServicer) TopRegions(ctx context.Context, limit int, countryFilter string) ([]domain.City, error) {
	return m.topRegions(ctx, limit, countryFilter)
}

func (m *mockCityServicer) DeleteIfUnused(ctx context.Context, cityID int32) error {
	return m.deleteIfUnused(ctx, cityID)
}

type mockPlacesClient struct {
	search       func(ctx context.Context, query, placeType string) ([]places.Place, error)
	details      func(ctx context.Context, placeID string) (places.Details, error)
	nearby       func(ctx context.Context, lat, lng float64, radius int, placeType string) ([]places.Place, error)
	autocomplete func(ctx context.Context, input, types string) ([]places.Prediction, error)
}

func (m *mockPlacesClient) Search(ctx context.Context, query, placeType string) ([]places.Place, error) {
	return m.search(ctx, query, placeType)
}

func (m *mockPlacesClient) Details(ctx context.Context, placeID string) (places.Details, error) {
	return m.details(ctx, placeID)
}

func (m *mockPlacesClient) Nearby(ctx context.Context, lat, lng float64, radius int, placeType string) ([]places.Place, error) {
	return m.nearby(ctx, lat, lng, radius, placeType)
}

func (m *mockPlacesClient) Autocomplete(ctx context.Context, input, types string) ([]places.Prediction, error) {
	return m.autocomplete(ctx, input, types)
}

func (m *mockPlacesClient) PhotoURL(photoReference string, maxWidth int) string {
	return "https://photos.example/" + photoReference
}

// validToken is the one bearer token the test verifier accepts.
const validToken = "valid-token"

// authedUser is the user id the test verifier binds to validToken.
var authedUser = uuid.MustParse("11111111-1111-1111-1111-111111111111")

type staticVerifier struct{}

func (staticVerifier) Verify(token string) (uuid.UUID, error) {
	if token != validToken {
		return uuid.Nil, errors.New("unknown token")
	}
	return authedUser, nil
}

// deps bundles the mocks a test wires into the server. Nil fields are fine as
// long as no route touches them.
type deps struct {
	users      *mockUserServicer
	trips      *mockTripServicer
	stops      *mockStopServicer
	activities *mockActivityServicer
	budgets    *mockBudgetServicer
	shares     *mockShareServicer
	cities     *mockCityServicer
	places     *mockPlacesClient
}

func newTestRouter(d deps) http.Handler {
	srv := handler.NewServer(
		d.users, d.trips, d.stops, d.activities,
		d.budgets, d.shares, d.cities, d.places,
		staticVerifier{}, []byte("openapi: 3.0.3\n"),
	)
	return srv.Routes()
}

// doJSON performs a request against the router. token == "" sends no
// Authorization header. body may be a raw string or any JSON-marshalable
// value.
func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// errEnvelope mirrors the API's error response shape.
type errEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errEnvelope {
	t.Helper()
	var env errEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}
