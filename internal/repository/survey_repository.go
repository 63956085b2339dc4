package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/utepsa-eventos/eventos-api/internal/models"
)

// SurveyRepository handles persistence of survey responses.
type SurveyRepository struct {
	db *sqlx.DB
}

// NewSurveyRepository constructs the repository.
func NewSurveyRepository(db *sqlx.DB) *SurveyRepository {
	return &SurveyRepository{db: db}
}

// HasResponse reports whether an inscription already has a survey response.
func (r *SurveyRepository) HasResponse(ctx context.Context, inscriptionID string) (bool, error) {
	const query = `SELECT 1 FROM survey_responses WHERE inscription_id = $1 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, inscriptionID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check survey response: %w", err)
	}
	return true, nil
}

// Create persists a submitted survey response.
func (r *SurveyRepository) Create(ctx context.Context, resp *models.SurveyResponse) error {
	if resp.ID == "" {
		resp.ID = uuid.NewString()
	}
	if resp.SubmittedAt.IsZero() {
		resp.SubmittedAt = time.Now().UTC()
	}
	const query = `INSERT INTO survey_responses (id, inscription_id, rating, comment, submitted_at)
        VALUES (:id, :inscription_id, :rating, :comment, :submitted_at)`
	if _, err := r.db.NamedExecContext(ctx, query, resp); err != nil {
		return fmt.Errorf("create survey response: %w", err)
	}
	return nil
}

// StatsByEvent aggregates inscription and response counts per activity.
func (r *SurveyRepository) StatsByEvent(ctx context.Context, eventID string) ([]models.ActivitySurveyStats, error) {
	const query = `SELECT a.id AS activity_id, a.title AS activity_title,
        COUNT(DISTINCT i.id) AS inscriptions,
        COUNT(sr.id) AS responses,
        COALESCE(AVG(sr.rating), 0) AS average_rating
        FROM activities a
        LEFT JOIN inscriptions i ON i.activity_id = a.id
        LEFT JOIN survey_responses sr ON sr.inscription_id = i.id
        WHERE a.event_id = $1
        GROUP BY a.id, a.title
        ORDER BY a.date, a.time`
	var stats []models.ActivitySurveyStats
	if err := r.db.SelectContext(ctx, &stats, query, eventID); err != nil {
		return nil, fmt.Errorf("survey stats: %w", err)
	}
	return stats, nil
}

// ResultsByEvent returns every submitted answer for an event, for exports.
func (r *SurveyRepository) ResultsByEvent(ctx context.Context, eventID string) ([]models.SurveyResultRow, error) {
	const query = `SELECT a.title AS activity_title, a.date AS activity_date,
        u.full_name AS user_full_name, sr.rating, sr.comment, sr.submitted_at
        FROM survey_responses sr
        JOIN inscriptions i ON i.id = sr.inscription_id
        JOIN activities a ON a.id = i.activity_id
        JOIN users u ON u.id = i.user_id
        WHERE a.event_id = $1
        ORDER BY a.date, a.time, sr.submitted_at`
	var rows []models.SurveyResultRow
	if err := r.db.SelectContext(ctx, &rows, query, eventID); err != nil {
		return nil, fmt.Errorf("survey results: %w", err)
	}
	return rows, nil
}
