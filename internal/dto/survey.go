package dto

import "time"

// SubmitSurveyRequest carries a post-activity survey answer.
type SubmitSurveyRequest struct {
	InscriptionID string `json:"inscription_id" validate:"required"`
	Rating        int    `json:"rating" validate:"required,min=1,max=5"`
	Comment       string `json:"comment" validate:"max=2000"`
}

// SubmitSurveyResponse acknowledges a stored survey answer.
type SubmitSurveyResponse struct {
	ID          string    `json:"id"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// EnrollRequest enrolls the authenticated user in an activity.
type EnrollRequest struct {
	ActivityID string `json:"activity_id" validate:"required"`
}

// EnrollResponse acknowledges a created inscription.
type EnrollResponse struct {
	InscriptionID string    `json:"inscription_id"`
	ActivityID    string    `json:"activity_id"`
	EnrolledAt    time.Time `json:"enrolled_at"`
}
