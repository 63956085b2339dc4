package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/utepsa-eventos/eventos-api/internal/models"
	appErrors "github.com/utepsa-eventos/eventos-api/pkg/errors"
)

type mockActivityRepo struct {
	activities map[string]*models.Activity
	list       []models.Activity
	listErr    error
	deletedID  string
}

func (m *mockActivityRepo) ListByEvent(ctx context.Context, eventID string) ([]models.Activity, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.list, nil
}

func (m *mockActivityRepo) FindByID(ctx context.Context, id string) (*models.Activity, error) {
	activity, ok := m.activities[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return activity, nil
}

func (m *mockActivityRepo) Create(ctx context.Context, activity *models.Activity) error {
	if activity.ID == "" {
		activity.ID = "generated"
	}
	if m.activities == nil {
		m.activities = make(map[string]*models.Activity)
	}
	m.activities[activity.ID] = activity
	return nil
}

func (m *mockActivityRepo) Update(ctx context.Context, activity *models.Activity) error {
	m.activities[activity.ID] = activity
	return nil
}

func (m *mockActivityRepo) Delete(ctx context.Context, id string) error {
	m.deletedID = id
	delete(m.activities, id)
	return nil
}

func newTestCache(repo *memoryCacheRepo) *CacheService {
	return NewCacheService(repo, nil, time.Minute, zap.NewNop(), true)
}

func TestActivityServiceCreateInvalidatesSchedule(t *testing.T) {
	events := &mockEventRepo{events: map[string]*models.Event{"e1": {ID: "e1"}}}
	activities := &mockActivityRepo{}
	cacheRepo := newMemoryCacheRepo()
	svc := NewActivityService(activities, events, &mockInscriptionRepo{}, newTestCache(cacheRepo), zap.NewNop())

	activity, err := svc.Create(context.Background(), CreateActivityInput{
		EventID: "e1", Title: "Opening Talk", Date: "2025-03-01", Time: "08:00",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, activity.ID)
	assert.Contains(t, cacheRepo.patterns, "schedule:event:e1*")
}

func TestActivityServiceCreateEventNotFound(t *testing.T) {
	events := &mockEventRepo{events: map[string]*models.Event{}}
	svc := NewActivityService(&mockActivityRepo{}, events, &mockInscriptionRepo{}, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), CreateActivityInput{
		EventID: "missing", Title: "Talk", Date: "2025-03-01", Time: "08:00",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestActivityServiceUpdatePartial(t *testing.T) {
	events := &mockEventRepo{events: map[string]*models.Event{"e1": {ID: "e1"}}}
	activities := &mockActivityRepo{activities: map[string]*models.Activity{
		"a1": {ID: "a1", EventID: "e1", Title: "Old", Date: "2025-03-01", Time: "08:00"},
	}}
	cacheRepo := newMemoryCacheRepo()
	svc := NewActivityService(activities, events, &mockInscriptionRepo{}, newTestCache(cacheRepo), zap.NewNop())

	title := "New Title"
	updated, err := svc.Update(context.Background(), "a1", UpdateActivityInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, "2025-03-01", updated.Date)
	assert.Contains(t, cacheRepo.patterns, "schedule:event:e1*")
}

func TestActivityServiceDelete(t *testing.T) {
	events := &mockEventRepo{events: map[string]*models.Event{"e1": {ID: "e1"}}}
	activities := &mockActivityRepo{activities: map[string]*models.Activity{
		"a1": {ID: "a1", EventID: "e1"},
	}}
	svc := NewActivityService(activities, events, &mockInscriptionRepo{}, nil, zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), "a1"))
	assert.Equal(t, "a1", activities.deletedID)
}

func TestActivityServiceValidation(t *testing.T) {
	svc := NewActivityService(&mockActivityRepo{}, &mockEventRepo{}, &mockInscriptionRepo{}, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), CreateActivityInput{EventID: "e1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestActivityServiceSetSurveyWindow(t *testing.T) {
	events := &mockEventRepo{events: map[string]*models.Event{"e1": {ID: "e1"}}}
	activities := &mockActivityRepo{activities: map[string]*models.Activity{
		"a1": {ID: "a1", EventID: "e1", Title: "Opening"},
	}}
	inscriptions := &mockInscriptionRepo{inscriptions: map[string]*models.Inscription{
		"i1": {ID: "i1", UserID: "u1", ActivityID: "a1"},
	}}
	cacheRepo := newMemoryCacheRepo()
	svc := NewActivityService(activities, events, inscriptions, newTestCache(cacheRepo), zap.NewNop())

	start := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	updated, err := svc.SetSurveyWindow(context.Background(), "a1", SurveyWindowInput{Start: &start, End: &end})
	require.NoError(t, err)
	require.NotNil(t, updated.SurveyWindowStart)
	assert.Equal(t, start, *updated.SurveyWindowStart)

	assert.Equal(t, "a1", inscriptions.windowActivityID)
	require.NotNil(t, inscriptions.inscriptions["i1"].SurveyWindowStart)
	assert.Equal(t, start, *inscriptions.inscriptions["i1"].SurveyWindowStart)
	assert.Contains(t, cacheRepo.patterns, "schedule:event:e1*")
}

func TestActivityServiceClearSurveyWindow(t *testing.T) {
	start := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	events := &mockEventRepo{events: map[string]*models.Event{"e1": {ID: "e1"}}}
	activities := &mockActivityRepo{activities: map[string]*models.Activity{
		"a1": {ID: "a1", EventID: "e1", SurveyWindowStart: &start, SurveyWindowEnd: &end},
	}}
	inscriptions := &mockInscriptionRepo{inscriptions: map[string]*models.Inscription{
		"i1": {ID: "i1", ActivityID: "a1", SurveyWindowStart: &start, SurveyWindowEnd: &end},
	}}
	svc := NewActivityService(activities, events, inscriptions, nil, zap.NewNop())

	updated, err := svc.SetSurveyWindow(context.Background(), "a1", SurveyWindowInput{})
	require.NoError(t, err)
	assert.Nil(t, updated.SurveyWindowStart)
	assert.Nil(t, updated.SurveyWindowEnd)
	assert.Nil(t, inscriptions.inscriptions["i1"].SurveyWindowStart)
}

func TestActivityServiceSetSurveyWindowInvalid(t *testing.T) {
	start := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)
	earlier := start.Add(-time.Hour)
	svc := NewActivityService(&mockActivityRepo{}, &mockEventRepo{}, &mockInscriptionRepo{}, nil, zap.NewNop())

	_, err := svc.SetSurveyWindow(context.Background(), "a1", SurveyWindowInput{Start: &start})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.SetSurveyWindow(context.Background(), "a1", SurveyWindowInput{Start: &start, End: &earlier})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
