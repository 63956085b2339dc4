package models

import "time"

// Inscription registers a user's enrollment in an activity.
//
// SurveyWindowStart and SurveyWindowEnd bound the habilitación window during
// which the post-activity survey may be submitted. When both are nil the
// survey is never enabled for this inscription.
type Inscription struct {
	ID                string     `db:"id" json:"id"`
	UserID            string     `db:"user_id" json:"user_id"`
	ActivityID        string     `db:"activity_id" json:"activity_id"`
	EnrolledAt        time.Time  `db:"enrolled_at" json:"enrolled_at"`
	SurveyWindowStart *time.Time `db:"survey_window_start" json:"survey_window_start,omitempty"`
	SurveyWindowEnd   *time.Time `db:"survey_window_end" json:"survey_window_end,omitempty"`
}

// InscriptionDetail joins an inscription with its activity and whether the
// user already submitted the post-activity survey.
type InscriptionDetail struct {
	Inscription
	ActivityTitle    string `db:"activity_title" json:"activity_title"`
	ActivityDate     string `db:"activity_date" json:"activity_date"`
	ActivityTime     string `db:"activity_time" json:"activity_time"`
	ActivityLocation string `db:"activity_location" json:"activity_location"`
	AlreadyResponded bool   `db:"already_responded" json:"already_responded"`
}
