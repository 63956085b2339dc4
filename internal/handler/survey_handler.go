package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/utepsa-eventos/eventos-api/internal/dto"
	appErrors "github.com/utepsa-eventos/eventos-api/pkg/errors"
	"github.com/utepsa-eventos/eventos-api/pkg/response"
)

type surveyService interface {
	Submit(ctx context.Context, userID string, req dto.SubmitSurveyRequest) (*dto.SubmitSurveyResponse, error)
}

// SurveyHandler accepts post-activity survey submissions.
type SurveyHandler struct {
	service surveyService
}

// NewSurveyHandler constructs the handler.
func NewSurveyHandler(service surveyService) *SurveyHandler {
	return &SurveyHandler{service: service}
}

// Submit godoc
// @Summary Submit a post-activity survey
// @Description Accepted only while the inscription's survey window is open
// @Tags Surveys
// @Accept json
// @Produce json
// @Param payload body dto.SubmitSurveyRequest true "Survey payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /surveys [post]
func (h *SurveyHandler) Submit(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.SubmitSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid survey payload"))
		return
	}

	res, err := h.service.Submit(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, res)
}
