package dto

import (
	"github.com/utepsa-eventos/eventos-api/internal/models"
	"github.com/utepsa-eventos/eventos-api/internal/schedule"
)

// ScheduleActivity is one activity in the schedule view. Enrolled reflects
// the calling user's enrollment and stays false for anonymous requests.
type ScheduleActivity struct {
	models.Activity
	Enrolled bool `json:"enrolled"`
}

// ScheduleDay is one numbered day tab of the schedule view.
type ScheduleDay struct {
	Date       string             `json:"date"`
	DayNumber  int                `json:"day_number"`
	Activities []ScheduleActivity `json:"activities"`
}

// ScheduleResponse returns the grouped day tabs of an event.
type ScheduleResponse struct {
	EventID string        `json:"event_id"`
	Days    []ScheduleDay `json:"days"`
}

// MyInscriptionItem annotates one enrolled activity with the survey verdict.
type MyInscriptionItem struct {
	InscriptionID      string                      `json:"inscription_id"`
	ActivityID         string                      `json:"activity_id"`
	ActivityTitle      string                      `json:"activity_title"`
	ActivityDate       string                      `json:"activity_date"`
	ActivityTime       string                      `json:"activity_time"`
	ActivityLocation   string                      `json:"activity_location"`
	SurveyAvailability schedule.SurveyAvailability `json:"survey_availability"`
	SurveyOpensAt      *string                     `json:"survey_opens_at,omitempty"`
}

// MyInscriptionsResponse lists the current user's enrolled activities.
type MyInscriptionsResponse struct {
	EventID      string              `json:"event_id"`
	Inscriptions []MyInscriptionItem `json:"inscriptions"`
}
