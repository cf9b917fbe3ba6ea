package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globe-trotter/backend/internal/domain"
)

func TestShareTrip(t *testing.T) {
	tripID := uuid.New()
	shares := &mockShareServicer{
		create: func(_ context.Context, actor, id uuid.UUID, email, permission string) (domain.TripShare, error) {
			assert.Equal(t, authedUser, actor)
			assert.Equal(t, tripID, id)
			assert.Equal(t, "friend@example.com", email)
			assert.Empty(t, permission, "defaulting happens in the service")
			return domain.TripShare{ID: uuid.New(), TripID: id, Email: email, Permission: "view"}, nil
		},
	}
	rec := doJSON(t, newTestRouter(deps{shares: shares}), http.MethodPost,
		"/trips/"+tripID.String()+"/share", validToken, `{"email":"friend@example.com"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var share domain.TripShare
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &share))
	assert.Equal(t, "view", share.Permission)
}

func TestGetSharedTrip_NoAuthNeeded(t *testing.T) {
	shareID := uuid.New()
	shares := &mockShareServicer{
		getSharedTrip: func(_ context.Context, id uuid.UUID) (domain.TripDetails, error) {
			assert.Equal(t, shareID, id)
			return domain.TripDetails{Trip: domain.Trip{ID: uuid.New(), Title: "Shared Alps"}}, nil
		},
	}
	rec := doJSON(t, newTestRouter(deps{shares: shares}), http.MethodGet,
		"/trips/shared/"+shareID.String(), "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Shared Alps")
}

func TestGetSharedTrip_UnknownID(t *testing.T) {
	shares := &mockShareServicer{
		getSharedTrip: func(context.Context, uuid.UUID) (domain.TripDetails, error) {
			return domain.TripDetails{}, domain.ErrNotFound
		},
	}
	rec := doJSON(t, newTestRouter(deps{shares: shares}), http.MethodGet,
		"/trips/shared/"+uuid.NewString(), "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
