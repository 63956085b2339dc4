package models

import "time"

// SurveyResponse stores a submitted post-activity survey.
type SurveyResponse struct {
	ID            string    `db:"id" json:"id"`
	InscriptionID string    `db:"inscription_id" json:"inscription_id"`
	Rating        int       `db:"rating" json:"rating"`
	Comment       string    `db:"comment" json:"comment"`
	SubmittedAt   time.Time `db:"submitted_at" json:"submitted_at"`
}

// ActivitySurveyStats aggregates survey results for one activity.
type ActivitySurveyStats struct {
	ActivityID    string  `db:"activity_id" json:"activity_id"`
	ActivityTitle string  `db:"activity_title" json:"activity_title"`
	Inscriptions  int     `db:"inscriptions" json:"inscriptions"`
	Responses     int     `db:"responses" json:"responses"`
	AverageRating float64 `db:"average_rating" json:"average_rating"`
}

// SurveyResultRow is one flattened survey answer used for exports.
type SurveyResultRow struct {
	ActivityTitle string    `db:"activity_title" json:"activity_title"`
	ActivityDate  string    `db:"activity_date" json:"activity_date"`
	UserFullName  string    `db:"user_full_name" json:"user_full_name"`
	Rating        int       `db:"rating" json:"rating"`
	Comment       string    `db:"comment" json:"comment"`
	SubmittedAt   time.Time `db:"submitted_at" json:"submitted_at"`
}
