package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globe-trotter/backend/internal/domain"
)

func activityPath(tripID, stopID uuid.UUID) string {
	return "/trips/" + tripID.String() + "/stops/" + stopID.String() + "/activities"
}

func TestAddActivity(t *testing.T) {
	tripID := uuid.New()
	stopID := uuid.New()
	catalogID := uuid.New()

	activities := &mockActivityServicer{
		add: func(_ context.Context, actor, trip, stop uuid.UUID, ta domain.TripActivity) (domain.TripActivity, error) {
			assert.Equal(t, authedUser, actor)
			assert.Equal(t, stopID, stop)
			assert.Equal(t, catalogID, ta.ActivityID)
			require.NotNil(t, ta.ScheduledDate)
			assert.Equal(t, time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC), *ta.ScheduledDate)
			require.NotNil(t, ta.CustomCost)
			assert.Equal(t, 25.0, *ta.CustomCost)

			ta.ID = uuid.New()
			ta.TripStopID = stop
			ta.Activity = &domain.Activity{ID: ta.ActivityID, Name: "Louvre visit"}
			return ta, nil
		},
	}
	rec := doJSON(t, newTestRouter(deps{activities: activities}), http.MethodPost,
		activityPath(tripID, stopID), validToken, map[string]any{
			"activityId":    catalogID.String(),
			"scheduledDate": "2026-06-02",
			"customCost":    25.0,
		})

	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.TripActivity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotNil(t, created.Activity, "response joins the catalog definition")
	assert.Equal(t, "Louvre visit", created.Activity.Name)
}

func TestUpdateActivity(t *testing.T) {
	tripID := uuid.New()
	stopID := uuid.New()
	activityID := uuid.New()

	activities := &mockActivityServicer{
		update: func(_ context.Context, _, _, _, id uuid.UUID, upd domain.TripActivityUpdate) (domain.TripActivity, error) {
			assert.Equal(t, activityID, id)
			require.NotNil(t, upd.CustomCost)
			assert.Equal(t, 30.0, *upd.CustomCost)
			assert.Nil(t, upd.ScheduledDate)
			return domain.TripActivity{ID: id, CustomCost: upd.CustomCost}, nil
		},
	}
	rec := doJSON(t, newTestRouter(deps{activities: activities}), http.MethodPut,
		activityPath(tripID, stopID)+"/"+activityID.String(), validToken, `{"customCost":30}`)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteActivity(t *testing.T) {
	tripID := uuid.New()
	stopID := uuid.New()
	activityID := uuid.New()

	activities := &mockActivityServicer{
		delete: func(_ context.Context, _, _, _, id uuid.UUID) error {
			assert.Equal(t, activityID, id)
			return nil
		},
	}
	rec := doJSON(t, newTestRouter(deps{activities: activities}), http.MethodDelete,
		activityPath(tripID, stopID)+"/"+activityID.String(), validToken, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"activity removed"}`, rec.Body.String())
}
