package models

import "time"

// Activity is a scheduled session (talk, workshop) within an event.
//
// Date and Time are carried as the raw strings received from organizers.
// Well-formed values are ISO dates ("2025-03-01") and zero-padded clock
// times ("08:00" or "08:00:00"); malformed values are preserved verbatim
// and treated as opaque strings by the grouping logic.
//
// SurveyWindowStart and SurveyWindowEnd hold the habilitación window the
// organizer configured for the post-activity survey. Either both are set or
// both are nil. New inscriptions copy the window at enrollment time and
// window changes are propagated to existing inscriptions.
type Activity struct {
	ID                string     `db:"id" json:"id"`
	EventID           string     `db:"event_id" json:"event_id"`
	Title             string     `db:"title" json:"title"`
	Description       string     `db:"description" json:"description"`
	Date              string     `db:"date" json:"date"`
	Time              string     `db:"time" json:"time"`
	Location          string     `db:"location" json:"location"`
	EnrollmentEnabled bool       `db:"enrollment_enabled" json:"enrollment_enabled"`
	SurveyWindowStart *time.Time `db:"survey_window_start" json:"survey_window_start,omitempty"`
	SurveyWindowEnd   *time.Time `db:"survey_window_end" json:"survey_window_end,omitempty"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
}
