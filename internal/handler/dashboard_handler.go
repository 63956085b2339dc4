package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/utepsa-eventos/eventos-api/internal/dto"
	"github.com/utepsa-eventos/eventos-api/pkg/response"
)

type dashboardService interface {
	EventDashboard(ctx context.Context, eventID string) (*dto.EventDashboardResponse, error)
}

// DashboardHandler serves admin survey-participation dashboards.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Event godoc
// @Summary Event survey dashboard
// @Description Per-activity inscriptions, responses and average ratings
// @Tags Dashboard
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /dashboard/events/{id} [get]
func (h *DashboardHandler) Event(c *gin.Context) {
	start := time.Now()
	summary, err := h.service.EventDashboard(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := map[string]interface{}{"processing_time_ms": time.Since(start).Milliseconds()}
	response.JSON(c, http.StatusOK, summary, nil, meta)
}
