package handler

import (
	"context"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/utepsa-eventos/eventos-api/internal/dto"
	appErrors "github.com/utepsa-eventos/eventos-api/pkg/errors"
	"github.com/utepsa-eventos/eventos-api/pkg/response"
)

type publicationService interface {
	GetByShareCode(ctx context.Context, code string) (*dto.PublicationResponse, error)
	ListByEvent(ctx context.Context, eventID string) ([]dto.PublicationResponse, error)
	OpenImage(ctx context.Context, token string) (*os.File, error)
}

// PublicationHandler serves the public micro-site for shared publications.
type PublicationHandler struct {
	service publicationService
}

// NewPublicationHandler constructs the handler.
func NewPublicationHandler(service publicationService) *PublicationHandler {
	return &PublicationHandler{service: service}
}

// GetByShareCode godoc
// @Summary Resolve a shared publication
// @Tags Publications
// @Produce json
// @Param code path string true "Share code"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /publications/shared/{code} [get]
func (h *PublicationHandler) GetByShareCode(c *gin.Context) {
	res, err := h.service.GetByShareCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// ListByEvent godoc
// @Summary List an event's publications
// @Tags Publications
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /events/{id}/publications [get]
func (h *PublicationHandler) ListByEvent(c *gin.Context) {
	res, err := h.service.ListByEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res, nil)
}

// Image godoc
// @Summary Serve a publication image
// @Description Serves the image referenced by a signed token
// @Tags Publications
// @Produce octet-stream
// @Param token path string true "Signed image token"
// @Success 200 {file} binary
// @Failure 401 {object} response.Envelope
// @Router /publications/images/{token} [get]
func (h *PublicationHandler) Image(c *gin.Context) {
	file, err := h.service.OpenImage(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to stat image"))
		return
	}
	c.DataFromReader(http.StatusOK, info.Size(), "application/octet-stream", file, nil)
}
