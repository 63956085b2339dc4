package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utepsa-eventos/eventos-api/internal/dto"
	appErrors "github.com/utepsa-eventos/eventos-api/pkg/errors"
)

type fakePublicationSrv struct {
	pub      *dto.PublicationResponse
	pubErr   error
	list     []dto.PublicationResponse
	lastCode string
}

func (f *fakePublicationSrv) GetByShareCode(_ context.Context, code string) (*dto.PublicationResponse, error) {
	f.lastCode = code
	return f.pub, f.pubErr
}

func (f *fakePublicationSrv) ListByEvent(_ context.Context, eventID string) ([]dto.PublicationResponse, error) {
	return f.list, nil
}

func (f *fakePublicationSrv) OpenImage(_ context.Context, token string) (*os.File, error) {
	return nil, appErrors.ErrUnauthorized
}

func TestPublicationHandlerGetByShareCode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakePublicationSrv{pub: &dto.PublicationResponse{ShareCode: "ABC123", Title: "Ganadores"}}
	handler := NewPublicationHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/publications/shared/ABC123", nil)
	c.Params = gin.Params{{Key: "code", Value: "ABC123"}}

	handler.GetByShareCode(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ABC123", srv.lastCode)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "Ganadores", envelope.Data["title"])
}

func TestPublicationHandlerUnknownShareCode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewPublicationHandler(&fakePublicationSrv{pubErr: appErrors.Clone(appErrors.ErrNotFound, "publication not found")})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/publications/shared/NOPE", nil)
	c.Params = gin.Params{{Key: "code", Value: "NOPE"}}

	handler.GetByShareCode(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPublicationHandlerImageBadToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewPublicationHandler(&fakePublicationSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/publications/images/garbage", nil)
	c.Params = gin.Params{{Key: "token", Value: "garbage"}}

	handler.Image(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
