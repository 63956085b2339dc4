package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/utepsa-eventos/eventos-api/internal/dto"
	"github.com/utepsa-eventos/eventos-api/internal/models"
	appErrors "github.com/utepsa-eventos/eventos-api/pkg/errors"
)

type mockSurveyRepo struct {
	responses map[string]bool
	created   *models.SurveyResponse
}

func (m *mockSurveyRepo) HasResponse(ctx context.Context, inscriptionID string) (bool, error) {
	return m.responses[inscriptionID], nil
}

func (m *mockSurveyRepo) Create(ctx context.Context, resp *models.SurveyResponse) error {
	if resp.ID == "" {
		resp.ID = "sr-new"
	}
	if m.responses == nil {
		m.responses = make(map[string]bool)
	}
	m.responses[resp.InscriptionID] = true
	m.created = resp
	return nil
}

func surveyFixture(start, end *time.Time) *mockInscriptionRepo {
	return &mockInscriptionRepo{inscriptions: map[string]*models.Inscription{
		"i1": {ID: "i1", UserID: "u1", ActivityID: "a1", SurveyWindowStart: start, SurveyWindowEnd: end},
	}}
}

func TestSurveyServiceSubmitWithinWindow(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	start := now.Add(-time.Hour)
	end := now.Add(time.Hour)
	surveys := &mockSurveyRepo{}
	svc := NewSurveyService(surveys, surveyFixture(&start, &end), zap.NewNop())
	svc.now = func() time.Time { return now }

	res, err := svc.Submit(context.Background(), "u1", dto.SubmitSurveyRequest{InscriptionID: "i1", Rating: 4, Comment: "great"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	require.NotNil(t, surveys.created)
	assert.Equal(t, 4, surveys.created.Rating)
}

func TestSurveyServiceSubmitBeforeWindow(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	start := now.Add(time.Hour)
	end := now.Add(2 * time.Hour)
	svc := NewSurveyService(&mockSurveyRepo{}, surveyFixture(&start, &end), zap.NewNop())
	svc.now = func() time.Time { return now }

	_, err := svc.Submit(context.Background(), "u1", dto.SubmitSurveyRequest{InscriptionID: "i1", Rating: 4})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSurveyNotOpen.Code, appErrors.FromError(err).Code)
}

func TestSurveyServiceSubmitAfterWindow(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	start := now.Add(-2 * time.Hour)
	end := now.Add(-time.Hour)
	svc := NewSurveyService(&mockSurveyRepo{}, surveyFixture(&start, &end), zap.NewNop())
	svc.now = func() time.Time { return now }

	_, err := svc.Submit(context.Background(), "u1", dto.SubmitSurveyRequest{InscriptionID: "i1", Rating: 4})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSurveyClosed.Code, appErrors.FromError(err).Code)
}

func TestSurveyServiceSubmitTwice(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	start := now.Add(-time.Hour)
	end := now.Add(time.Hour)
	surveys := &mockSurveyRepo{responses: map[string]bool{"i1": true}}
	svc := NewSurveyService(surveys, surveyFixture(&start, &end), zap.NewNop())
	svc.now = func() time.Time { return now }

	_, err := svc.Submit(context.Background(), "u1", dto.SubmitSurveyRequest{InscriptionID: "i1", Rating: 5})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrAlreadyResponded.Code, appErrors.FromError(err).Code)
}

func TestSurveyServiceSubmitWrongUser(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	start := now.Add(-time.Hour)
	end := now.Add(time.Hour)
	svc := NewSurveyService(&mockSurveyRepo{}, surveyFixture(&start, &end), zap.NewNop())
	svc.now = func() time.Time { return now }

	_, err := svc.Submit(context.Background(), "intruder", dto.SubmitSurveyRequest{InscriptionID: "i1", Rating: 3})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestSurveyServiceSubmitRatingOutOfRange(t *testing.T) {
	svc := NewSurveyService(&mockSurveyRepo{}, &mockInscriptionRepo{}, zap.NewNop())

	_, err := svc.Submit(context.Background(), "u1", dto.SubmitSurveyRequest{InscriptionID: "i1", Rating: 6})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSurveyServiceSubmitNoWindow(t *testing.T) {
	svc := NewSurveyService(&mockSurveyRepo{}, surveyFixture(nil, nil), zap.NewNop())

	_, err := svc.Submit(context.Background(), "u1", dto.SubmitSurveyRequest{InscriptionID: "i1", Rating: 3})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSurveyClosed.Code, appErrors.FromError(err).Code)
}
