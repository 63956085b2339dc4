package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/utepsa-eventos/eventos-api/internal/models"
	appErrors "github.com/utepsa-eventos/eventos-api/pkg/errors"
)

func TestScheduleServiceGroupsAndCaches(t *testing.T) {
	events := &mockEventRepo{events: map[string]*models.Event{"e1": {ID: "e1"}}}
	activities := &mockActivityRepo{list: []models.Activity{
		{ID: "a3", EventID: "e1", Title: "Closing", Date: "2025-03-02", Time: "18:00"},
		{ID: "a1", EventID: "e1", Title: "Opening", Date: "2025-03-01", Time: "08:00"},
		{ID: "a2", EventID: "e1", Title: "Workshop", Date: "2025-03-01", Time: "10:30"},
	}}
	cacheRepo := newMemoryCacheRepo()
	svc := NewScheduleService(events, activities, &mockInscriptionRepo{}, newTestCache(cacheRepo), time.Minute, zap.NewNop())

	resp, cached, err := svc.GetSchedule(context.Background(), "e1", "")
	require.NoError(t, err)
	assert.False(t, cached)
	require.Len(t, resp.Days, 2)
	assert.Equal(t, 1, resp.Days[0].DayNumber)
	assert.Equal(t, "2025-03-01", resp.Days[0].Date)
	assert.Equal(t, "Opening", resp.Days[0].Activities[0].Title)
	assert.Equal(t, "Workshop", resp.Days[0].Activities[1].Title)
	assert.Equal(t, 2, resp.Days[1].DayNumber)

	again, cached, err := svc.GetSchedule(context.Background(), "e1", "")
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, resp.Days, again.Days)
}

func TestScheduleServiceUserScopedEnrollment(t *testing.T) {
	events := &mockEventRepo{events: map[string]*models.Event{"e1": {ID: "e1"}}}
	activities := &mockActivityRepo{list: []models.Activity{
		{ID: "a1", EventID: "e1", Title: "Opening", Date: "2025-03-01", Time: "08:00"},
		{ID: "a2", EventID: "e1", Title: "Workshop", Date: "2025-03-01", Time: "10:30"},
	}}
	inscriptions := &mockInscriptionRepo{details: []models.InscriptionDetail{
		{Inscription: models.Inscription{ID: "i1", UserID: "u1", ActivityID: "a1"}},
	}}
	cacheRepo := newMemoryCacheRepo()
	svc := NewScheduleService(events, activities, inscriptions, newTestCache(cacheRepo), time.Minute, zap.NewNop())

	resp, _, err := svc.GetSchedule(context.Background(), "e1", "u1")
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	require.Len(t, resp.Days[0].Activities, 2)
	assert.True(t, resp.Days[0].Activities[0].Enrolled)
	assert.False(t, resp.Days[0].Activities[1].Enrolled)

	// The cache holds the user-independent grouping; the annotation is
	// applied per request on top of a hit as well.
	scoped, cached, err := svc.GetSchedule(context.Background(), "e1", "u1")
	require.NoError(t, err)
	assert.True(t, cached)
	assert.True(t, scoped.Days[0].Activities[0].Enrolled)

	anon, cached, err := svc.GetSchedule(context.Background(), "e1", "")
	require.NoError(t, err)
	assert.True(t, cached)
	assert.False(t, anon.Days[0].Activities[0].Enrolled)
	assert.False(t, anon.Days[0].Activities[1].Enrolled)
}

func TestScheduleServiceEmptyEvent(t *testing.T) {
	events := &mockEventRepo{events: map[string]*models.Event{"e1": {ID: "e1"}}}
	activities := &mockActivityRepo{}
	svc := NewScheduleService(events, activities, &mockInscriptionRepo{}, nil, time.Minute, zap.NewNop())

	resp, cached, err := svc.GetSchedule(context.Background(), "e1", "")
	require.NoError(t, err)
	assert.False(t, cached)
	assert.NotNil(t, resp.Days)
	assert.Empty(t, resp.Days)
}

func TestScheduleServiceEventNotFound(t *testing.T) {
	events := &mockEventRepo{events: map[string]*models.Event{}}
	svc := NewScheduleService(events, &mockActivityRepo{}, &mockInscriptionRepo{}, nil, time.Minute, zap.NewNop())

	_, _, err := svc.GetSchedule(context.Background(), "missing", "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
