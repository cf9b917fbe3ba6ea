package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/globe-trotter/backend/internal/domain"
	"github.com/globe-trotter/backend/internal/repo"
	"github.com/globe-trotter/backend/internal/service"
)

// Hand-written test doubles: each repo method is a function field, so a test
// sets only the ones it expects to be called. No mock generation library
// required for doubles this simple.

type mockUserRepo struct {
	create         func(ctx context.Context, user domain.User) (domain.User, error)
	getByID        func(ctx context.Context, id uuid.UUID) (domain.User, error)
	getByEmail     func(ctx context.Context, email string) (domain.User, error)
	updatePassword func(ctx context.Context, id uuid.UUID, passwordHash string) error
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	return m.create(ctx, user)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.getByEmail(ctx, email)
}
func (m *mockUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return m.updatePassword(ctx, id, passwordHash)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

type mockTripRepo struct {
	create     func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID    func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listByUser func(ctx context.Context, userID uuid.UUID, params domain.TripListParams) ([]domain.Trip, error)
	update     func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) ListByUser(ctx context.Context, userID uuid.UUID, params domain.TripListParams) ([]domain.Trip, error) {
	return m.listByUser(ctx, userID, params)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockStopRepo struct {
	createMany    func(ctx context.Context, tripID uuid.UUID, stops []domain.NewStop) error
	listByTripID  func(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error)
	getByID       func(ctx context.Context, tripID, stopID uuid.UUID) (domain.Stop, error)
	update        func(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	delete        func(ctx context.Context, tripID, stopID uuid.UUID) error
	countByCityID func(ctx context.Context, cityID int32) (int64, error)
}

func (m *mockStopRepo) CreateMany(ctx context.Context, tripID uuid.UUID, stops []domain.NewStop) error {
	return m.createMany(ctx, tripID, stops)
}
func (m *mockStopRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockStopRepo) GetByID(ctx context.Context, tripID, stopID uuid.UUID) (domain.Stop, error) {
	return m.getByID(ctx, tripID, stopID)
}
func (m *mockStopRepo) Update(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	return m.update(ctx, stop)
}
func (m *mockStopRepo) Delete(ctx context.Context, tripID, stopID uuid.UUID) error {
	return m.delete(ctx, tripID, stopID)
}
func (m *mockStopRepo) CountByCityID(ctx context.Context, cityID int32) (int64, error) {
	return m.countByCityID(ctx, cityID)
}

var _ repo.StopRepo = (*mockStopRepo)(nil)

type mockCityRepo struct {
	create          func(ctx context.Context, city domain.City) (domain.City, error)
	getByID         func(ctx context.Context, id int32) (domain.City, error)
	topByPopularity func(ctx context.Context, limit int, countryFilter string) ([]domain.City, error)
	delete          func(ctx context.Context, id int32) error
}

func (m *mockCityRepo) Create(ctx context.Context, city domain.City) (domain.City, error) {
	return m.create(ctx, city)
}
func (m *mockCityRepo) GetByID(ctx context.Context, id int32) (domain.City, error) {
	return m.getByID(ctx, id)
}
func (m *mockCityRepo) TopByPopularity(ctx context.Context, limit int, countryFilter string) ([]domain.City, error) {
	return m.topByPopularity(ctx, limit, countryFilter)
}
func (m *mockCityRepo) Delete(ctx context.Context, id int32) error {
	return m.delete(ctx, id)
}

var _ repo.CityRepo = (*mockCityRepo)(nil)

type mockTripActivityRepo struct {
	create       func(ctx context.Context, ta domain.TripActivity) (domain.TripActivity, error)
	getByID      func(ctx context.Context, stopID, id uuid.UUID) (domain.TripActivity, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.TripActivity, error)
	update       func(ctx context.Context, ta domain.TripActivity) (domain.TripActivity, error)
	delete       func(ctx context.Context, stopID, id uuid.UUID) error
}

func (m *mockTripActivityRepo) Create(ctx context.Context, ta domain.TripActivity) (domain.TripActivity, error) {
	return m.create(ctx, ta)
}
func (m *mockTripActivityRepo) GetByID(ctx context.Context, stopID, id uuid.UUID) (domain.TripActivity, error) {
	return m.getByID(ctx, stopID, id)
}
func (m *mockTripActivityRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.TripActivity, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockTripActivityRepo) Update(ctx context.Context, ta domain.TripActivity) (domain.TripActivity, error) {
	return m.update(ctx, ta)
}
func (m *mockTripActivityRepo) Delete(ctx context.Context, stopID, id uuid.UUID) error {
	return m.delete(ctx, stopID, id)
}

var _ repo.TripActivityRepo = (*mockTripActivityRepo)(nil)

type mockBudgetRepo struct {
	getByTripID func(ctx context.Context, tripID uuid.UUID) (domain.TripBudget, error)
	upsert      func(ctx context.Context, budget domain.TripBudget) (domain.TripBudget, error)
}

func (m *mockBudgetRepo) GetByTripID(ctx context.Context, tripID uuid.UUID) (domain.TripBudget, error) {
	return m.getByTripID(ctx, tripID)
}
func (m *mockBudgetRepo) Upsert(ctx context.Context, budget domain.TripBudget) (domain.TripBudget, error) {
	return m.upsert(ctx, budget)
}

var _ repo.BudgetRepo = (*mockBudgetRepo)(nil)

type mockShareRepo struct {
	create       func(ctx context.Context, share domain.TripShare) (domain.TripShare, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.TripShare, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.TripShare, error)
}

func (m *mockShareRepo) Create(ctx context.Context, share domain.TripShare) (domain.TripShare, error) {
	return m.create(ctx, share)
}
func (m *mockShareRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.TripShare, error) {
	return m.getByID(ctx, id)
}
func (m *mockShareRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.TripShare, error) {
	return m.listByTripID(ctx, tripID)
}

var _ repo.ShareRepo = (*mockShareRepo)(nil)

// mockOTPStore counts puts so tests can assert nothing was stored for
// unknown emails.
type mockOTPStore struct {
	put     func(ctx context.Context, email, code string, ttl time.Duration) error
	consume func(ctx context.Context, email, code string) (bool, error)
}

func (m *mockOTPStore) Put(ctx context.Context, email, code string, ttl time.Duration) error {
	return m.put(ctx, email, code, ttl)
}
func (m *mockOTPStore) Consume(ctx context.Context, email, code string) (bool, error) {
	return m.consume(ctx, email, code)
}

type mockMailer struct {
	send func(ctx context.Context, to, code string) error
}

func (m *mockMailer) SendPasswordResetCode(ctx context.Context, to, code string) error {
	return m.send(ctx, to, code)
}

type mockTokenIssuer struct {
	issue func(userID uuid.UUID) (string, error)
}

func (m *mockTokenIssuer) Issue(userID uuid.UUID) (string, error) {
	return m.issue(userID)
}

var _ service.TokenIssuer = (*mockTokenIssuer)(nil)

func ptr(f float64) *float64 { return &f }

// notFoundUserRepo is a user repo where every lookup misses.
func notFoundUserRepo() *mockUserRepo {
	return &mockUserRepo{
		getByID:    func(context.Context, uuid.UUID) (domain.User, error) { return domain.User{}, domain.ErrNotFound },
		getByEmail: func(context.Context, string) (domain.User, error) { return domain.User{}, domain.ErrNotFound },
	}
}
