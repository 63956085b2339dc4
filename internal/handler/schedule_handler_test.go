package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utepsa-eventos/eventos-api/internal/dto"
	"github.com/utepsa-eventos/eventos-api/internal/middleware"
	"github.com/utepsa-eventos/eventos-api/internal/models"
	appErrors "github.com/utepsa-eventos/eventos-api/pkg/errors"
)

type fakeScheduleSrv struct {
	resp     *dto.ScheduleResponse
	cacheHit bool
	err      error
	lastID   string
	lastUser string
}

func (f *fakeScheduleSrv) GetSchedule(_ context.Context, eventID, userID string) (*dto.ScheduleResponse, bool, error) {
	f.lastID = eventID
	f.lastUser = userID
	return f.resp, f.cacheHit, f.err
}

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Error map[string]interface{} `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func TestScheduleHandlerGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeScheduleSrv{
		resp: &dto.ScheduleResponse{
			EventID: "e1",
			Days: []dto.ScheduleDay{
				{Date: "2025-03-01", DayNumber: 1, Activities: []dto.ScheduleActivity{
					{Activity: models.Activity{ID: "a1", Title: "Opening"}},
				}},
			},
		},
		cacheHit: true,
	}
	handler := NewScheduleHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/events/e1/schedule", nil)
	c.Params = gin.Params{{Key: "id", Value: "e1"}}

	handler.Get(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "e1", srv.lastID)
	assert.Empty(t, srv.lastUser)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, true, envelope.Meta["cache_hit"])
	assert.Equal(t, "e1", envelope.Data["event_id"])
}

func TestScheduleHandlerGetForwardsUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeScheduleSrv{resp: &dto.ScheduleResponse{EventID: "e1"}}
	handler := NewScheduleHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/events/e1/schedule", nil)
	c.Params = gin.Params{{Key: "id", Value: "e1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u1"})

	handler.Get(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", srv.lastUser)
}

func TestScheduleHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewScheduleHandler(&fakeScheduleSrv{err: appErrors.Clone(appErrors.ErrNotFound, "event not found")})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/events/missing/schedule", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "NOT_FOUND", envelope.Error["code"])
}
