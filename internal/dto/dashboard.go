package dto

import (
	"time"

	"github.com/utepsa-eventos/eventos-api/internal/models"
)

// EventDashboardResponse aggregates survey participation for one event.
type EventDashboardResponse struct {
	EventID       string                       `json:"event_id"`
	EventTitle    string                       `json:"event_title"`
	Activities    []models.ActivitySurveyStats `json:"activities"`
	Inscriptions  int                          `json:"inscriptions"`
	Responses     int                          `json:"responses"`
	ResponseRate  float64                      `json:"response_rate"`
	AverageRating float64                      `json:"average_rating"`
	GeneratedAt   time.Time                    `json:"generated_at"`
}
