package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/utepsa-eventos/eventos-api/internal/models"
	"github.com/utepsa-eventos/eventos-api/internal/service"
	appErrors "github.com/utepsa-eventos/eventos-api/pkg/errors"
	"github.com/utepsa-eventos/eventos-api/pkg/response"
)

type activityService interface {
	GetByID(ctx context.Context, id string) (*models.Activity, error)
	Create(ctx context.Context, input service.CreateActivityInput) (*models.Activity, error)
	Update(ctx context.Context, id string, input service.UpdateActivityInput) (*models.Activity, error)
	SetSurveyWindow(ctx context.Context, id string, input service.SurveyWindowInput) (*models.Activity, error)
	Delete(ctx context.Context, id string) error
}

// ActivityHandler exposes activity management endpoints for organizers.
type ActivityHandler struct {
	service activityService
}

// NewActivityHandler constructs the handler.
func NewActivityHandler(service activityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// Get godoc
// @Summary Get activity by ID
// @Tags Activities
// @Produce json
// @Param id path string true "Activity ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /activities/{id} [get]
func (h *ActivityHandler) Get(c *gin.Context) {
	activity, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, activity, nil)
}

// Create godoc
// @Summary Create activity
// @Tags Activities
// @Accept json
// @Produce json
// @Param payload body service.CreateActivityInput true "Activity payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /activities [post]
func (h *ActivityHandler) Create(c *gin.Context) {
	var input service.CreateActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid activity payload"))
		return
	}

	activity, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, activity)
}

// Update godoc
// @Summary Update activity
// @Tags Activities
// @Accept json
// @Produce json
// @Param id path string true "Activity ID"
// @Param payload body service.UpdateActivityInput true "Activity changes"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /activities/{id} [patch]
func (h *ActivityHandler) Update(c *gin.Context) {
	var input service.UpdateActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid activity payload"))
		return
	}

	activity, err := h.service.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, activity, nil)
}

// SetSurveyWindow godoc
// @Summary Configure the survey habilitación window
// @Description Sets (or clears, with a null body) the window during which the post-activity survey accepts responses. Existing inscriptions are updated.
// @Tags Activities
// @Accept json
// @Produce json
// @Param id path string true "Activity ID"
// @Param payload body service.SurveyWindowInput true "Window bounds"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /activities/{id}/survey-window [put]
func (h *ActivityHandler) SetSurveyWindow(c *gin.Context) {
	var input service.SurveyWindowInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid survey window payload"))
		return
	}

	activity, err := h.service.SetSurveyWindow(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, activity, nil)
}

// Delete godoc
// @Summary Delete activity
// @Tags Activities
// @Produce json
// @Param id path string true "Activity ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /activities/{id} [delete]
func (h *ActivityHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
