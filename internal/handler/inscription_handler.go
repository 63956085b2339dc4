package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/utepsa-eventos/eventos-api/internal/dto"
	appErrors "github.com/utepsa-eventos/eventos-api/pkg/errors"
	"github.com/utepsa-eventos/eventos-api/pkg/response"
)

type inscriptionService interface {
	Enroll(ctx context.Context, userID string, req dto.EnrollRequest) (*dto.EnrollResponse, error)
	MyInscriptions(ctx context.Context, userID, eventID string) (*dto.MyInscriptionsResponse, error)
}

// InscriptionHandler exposes enrollment and the per-user agenda endpoints.
type InscriptionHandler struct {
	service inscriptionService
}

// NewInscriptionHandler constructs the handler.
func NewInscriptionHandler(service inscriptionService) *InscriptionHandler {
	return &InscriptionHandler{service: service}
}

// Enroll godoc
// @Summary Enroll in an activity
// @Tags Inscriptions
// @Accept json
// @Produce json
// @Param payload body dto.EnrollRequest true "Enrollment payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /inscriptions [post]
func (h *InscriptionHandler) Enroll(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid enrollment payload"))
		return
	}

	res, err := h.service.Enroll(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, res)
}

// MyInscriptions godoc
// @Summary List my enrolled activities for an event
// @Description Each inscription is annotated with its survey availability
// @Tags Inscriptions
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /events/{id}/my-inscriptions [get]
func (h *InscriptionHandler) MyInscriptions(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	res, err := h.service.MyInscriptions(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}
