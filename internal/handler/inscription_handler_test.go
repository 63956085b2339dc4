package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utepsa-eventos/eventos-api/internal/dto"
	"github.com/utepsa-eventos/eventos-api/internal/middleware"
	"github.com/utepsa-eventos/eventos-api/internal/models"
	"github.com/utepsa-eventos/eventos-api/internal/schedule"
	appErrors "github.com/utepsa-eventos/eventos-api/pkg/errors"
)

type fakeInscriptionSrv struct {
	enrollResp *dto.EnrollResponse
	enrollErr  error
	myResp     *dto.MyInscriptionsResponse
	myErr      error
	lastUser   string
}

func (f *fakeInscriptionSrv) Enroll(_ context.Context, userID string, req dto.EnrollRequest) (*dto.EnrollResponse, error) {
	f.lastUser = userID
	return f.enrollResp, f.enrollErr
}

func (f *fakeInscriptionSrv) MyInscriptions(_ context.Context, userID, eventID string) (*dto.MyInscriptionsResponse, error) {
	f.lastUser = userID
	return f.myResp, f.myErr
}

func TestInscriptionHandlerEnroll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeInscriptionSrv{enrollResp: &dto.EnrollResponse{InscriptionID: "i1", ActivityID: "a1"}}
	handler := NewInscriptionHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/inscriptions", strings.NewReader(`{"activity_id":"a1"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u1"})

	handler.Enroll(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "u1", srv.lastUser)
}

func TestInscriptionHandlerEnrollUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewInscriptionHandler(&fakeInscriptionSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/inscriptions", strings.NewReader(`{"activity_id":"a1"}`))

	handler.Enroll(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestInscriptionHandlerEnrollConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewInscriptionHandler(&fakeInscriptionSrv{enrollErr: appErrors.ErrAlreadyEnrolled})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/inscriptions", strings.NewReader(`{"activity_id":"a1"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u1"})

	handler.Enroll(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "ALREADY_ENROLLED", envelope.Error["code"])
}

func TestInscriptionHandlerMyInscriptions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeInscriptionSrv{myResp: &dto.MyInscriptionsResponse{
		EventID: "e1",
		Inscriptions: []dto.MyInscriptionItem{
			{InscriptionID: "i1", ActivityID: "a1", SurveyAvailability: schedule.SurveyOpenUnanswered},
		},
	}}
	handler := NewInscriptionHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/events/e1/my-inscriptions", nil)
	c.Params = gin.Params{{Key: "id", Value: "e1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u1"})

	handler.MyInscriptions(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", srv.lastUser)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "e1", envelope.Data["event_id"])
}
