package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globe-trotter/backend/internal/domain"
	"github.com/globe-trotter/backend/internal/repo"
)

// createCatalogActivity inserts a catalog activity directly; only trip
// activities have a repo, the catalog is seeded out of band.
func createCatalogActivity(t *testing.T, tx pgx.Tx, name string) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	err := tx.QueryRow(context.Background(),
		`INSERT INTO activities (name, category, cost) VALUES ($1, 'sightseeing', 25) RETURNING id`,
		name,
	).Scan(&id)
	require.NoError(t, err, "create catalog activity fixture")
	return id
}

// createStop inserts one stop and returns it.
func createStop(t *testing.T, tx pgx.Tx, trip domain.Trip, city domain.City) domain.Stop {
	t.Helper()
	r := repo.NewStopRepo(tx)
	require.NoError(t, r.CreateMany(context.Background(), trip.ID, []domain.NewStop{{CityID: city.ID, Order: 1}}))
	stops, err := r.ListByTripID(context.Background(), trip.ID)
	require.NoError(t, err)
	require.Len(t, stops, 1)
	return stops[0]
}

func TestTripActivityRepo_Create(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewTripActivityRepo(tx)
	ctx := context.Background()

	owner := createUser(t, tx, "acts@example.com")
	trip := createTrip(t, tx, owner)
	city := createCity(t, tx, "Florence", "Italy")
	stop := createStop(t, tx, trip, city)
	catalogID := createCatalogActivity(t, tx, "Uffizi Gallery")

	cost := 32.5
	got, err := r.Create(ctx, domain.TripActivity{
		TripStopID: stop.ID,
		ActivityID: catalogID,
		CustomCost: &cost,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, stop.ID, got.TripStopID)
	require.NotNil(t, got.CustomCost)
	assert.Equal(t, 32.5, *got.CustomCost)
	require.NotNil(t, got.Activity, "catalog definition should be joined")
	assert.Equal(t, "Uffizi Gallery", got.Activity.Name)
}

func TestTripActivityRepo_Update(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewTripActivityRepo(tx)
	ctx := context.Background()

	owner := createUser(t, tx, "actupd@example.com")
	trip := createTrip(t, tx, owner)
	city := createCity(t, tx, "Athens", "Greece")
	stop := createStop(t, tx, trip, city)
	catalogID := createCatalogActivity(t, tx, "Acropolis")

	created, err := r.Create(ctx, domain.TripActivity{TripStopID: stop.ID, ActivityID: catalogID})
	require.NoError(t, err)

	when := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	created.ScheduledDate = &when

	got, err := r.Update(ctx, created)
	require.NoError(t, err)
	require.NotNil(t, got.ScheduledDate)
	assert.True(t, got.ScheduledDate.Equal(when))
	require.NotNil(t, got.Activity)
	assert.Equal(t, "Acropolis", got.Activity.Name)
}

func TestTripActivityRepo_ListByTripID(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewTripActivityRepo(tx)
	ctx := context.Background()

	owner := createUser(t, tx, "actlist@example.com")
	trip := createTrip(t, tx, owner)
	city := createCity(t, tx, "Lisbon", "Portugal")
	stop := createStop(t, tx, trip, city)

	for _, name := range []string{"Tram 28", "Belém Tower"} {
		_, err := r.Create(ctx, domain.TripActivity{
			TripStopID: stop.ID,
			ActivityID: createCatalogActivity(t, tx, name),
		})
		require.NoError(t, err)
	}

	got, err := r.ListByTripID(ctx, trip.ID)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestTripActivityRepo_Delete_ScopedToStop(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewTripActivityRepo(tx)
	ctx := context.Background()

	owner := createUser(t, tx, "actdel@example.com")
	trip := createTrip(t, tx, owner)
	city := createCity(t, tx, "Dublin", "Ireland")
	stop := createStop(t, tx, trip, city)

	created, err := r.Create(ctx, domain.TripActivity{
		TripStopID: stop.ID,
		ActivityID: createCatalogActivity(t, tx, "Trinity Library"),
	})
	require.NoError(t, err)

	// Wrong stop id must not delete.
	assert.ErrorIs(t, r.Delete(ctx, uuid.New(), created.ID), domain.ErrNotFound)

	require.NoError(t, r.Delete(ctx, stop.ID, created.ID))
	_, err = r.GetByID(ctx, stop.ID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
