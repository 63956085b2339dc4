package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/utepsa-eventos/eventos-api/internal/dto"
	"github.com/utepsa-eventos/eventos-api/pkg/response"
)

type scheduleService interface {
	GetSchedule(ctx context.Context, eventID, userID string) (*dto.ScheduleResponse, bool, error)
}

// ScheduleHandler serves the grouped day-tab schedule of an event.
type ScheduleHandler struct {
	service scheduleService
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(service scheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

// Get godoc
// @Summary Event schedule grouped by day
// @Description Activities grouped into numbered day tabs, ordered by date and time. With a bearer token the activities carry the caller's enrollment state.
// @Tags Schedule
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /events/{id}/schedule [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	start := time.Now()
	userID := ""
	if claims := claimsFromContext(c); claims != nil {
		userID = claims.UserID
	}
	schedule, cacheHit, err := h.service.GetSchedule(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := map[string]interface{}{
		"cache_hit":          cacheHit,
		"processing_time_ms": time.Since(start).Milliseconds(),
	}
	response.JSON(c, http.StatusOK, schedule, nil, meta)
}
