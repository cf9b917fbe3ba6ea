package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globe-trotter/backend/internal/domain"
	"github.com/globe-trotter/backend/internal/repo"
)

func TestShareRepo_CreateAndGet(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewShareRepo(tx)
	ctx := context.Background()

	owner := createUser(t, tx, "sharer@example.com")
	trip := createTrip(t, tx, owner)

	created, err := r.Create(ctx, domain.TripShare{
		TripID:     trip.ID,
		Email:      "friend@example.com",
		Permission: "view",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, trip.ID, got.TripID)
	assert.Equal(t, "friend@example.com", got.Email)
}

func TestShareRepo_GetByID_NotFound(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewShareRepo(tx)

	_, err := r.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShareRepo_ListByTripID(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewShareRepo(tx)
	ctx := context.Background()

	owner := createUser(t, tx, "multishare@example.com")
	trip := createTrip(t, tx, owner)

	for _, email := range []string{"a@example.com", "b@example.com"} {
		_, err := r.Create(ctx, domain.TripShare{TripID: trip.ID, Email: email, Permission: "view"})
		require.NoError(t, err)
	}

	shares, err := r.ListByTripID(ctx, trip.ID)
	require.NoError(t, err)
	assert.Len(t, shares, 2)
}
