package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/utepsa-eventos/eventos-api/internal/models"
)

// InscriptionRepository handles persistence of activity inscriptions.
type InscriptionRepository struct {
	db *sqlx.DB
}

// NewInscriptionRepository constructs the repository.
func NewInscriptionRepository(db *sqlx.DB) *InscriptionRepository {
	return &InscriptionRepository{db: db}
}

// FindByID returns an inscription by its ID.
func (r *InscriptionRepository) FindByID(ctx context.Context, id string) (*models.Inscription, error) {
	const query = `SELECT id, user_id, activity_id, enrolled_at, survey_window_start, survey_window_end
        FROM inscriptions WHERE id = $1`
	var inscription models.Inscription
	if err := r.db.GetContext(ctx, &inscription, query, id); err != nil {
		return nil, err
	}
	return &inscription, nil
}

// FindByUserAndActivity returns the inscription of a user for one activity.
func (r *InscriptionRepository) FindByUserAndActivity(ctx context.Context, userID, activityID string) (*models.Inscription, error) {
	const query = `SELECT id, user_id, activity_id, enrolled_at, survey_window_start, survey_window_end
        FROM inscriptions WHERE user_id = $1 AND activity_id = $2`
	var inscription models.Inscription
	if err := r.db.GetContext(ctx, &inscription, query, userID, activityID); err != nil {
		return nil, err
	}
	return &inscription, nil
}

// Create persists a new inscription record.
func (r *InscriptionRepository) Create(ctx context.Context, inscription *models.Inscription) error {
	if inscription.ID == "" {
		inscription.ID = uuid.NewString()
	}
	if inscription.EnrolledAt.IsZero() {
		inscription.EnrolledAt = time.Now().UTC()
	}
	const query = `INSERT INTO inscriptions (id, user_id, activity_id, enrolled_at, survey_window_start, survey_window_end)
        VALUES (:id, :user_id, :activity_id, :enrolled_at, :survey_window_start, :survey_window_end)`
	if _, err := r.db.NamedExecContext(ctx, query, inscription); err != nil {
		return fmt.Errorf("create inscription: %w", err)
	}
	return nil
}

// UpdateWindowByActivity rewrites the survey habilitación window on every
// inscription of an activity, keeping existing enrollees in sync when the
// organizer reconfigures the window.
func (r *InscriptionRepository) UpdateWindowByActivity(ctx context.Context, activityID string, start, end *time.Time) error {
	const query = `UPDATE inscriptions SET survey_window_start = $2, survey_window_end = $3 WHERE activity_id = $1`
	if _, err := r.db.ExecContext(ctx, query, activityID, start, end); err != nil {
		return fmt.Errorf("update inscription windows: %w", err)
	}
	return nil
}

// ListDetailsByUser returns a user's inscriptions for one event joined with
// activity info and the already-responded flag.
func (r *InscriptionRepository) ListDetailsByUser(ctx context.Context, userID, eventID string) ([]models.InscriptionDetail, error) {
	const query = `SELECT i.id, i.user_id, i.activity_id, i.enrolled_at, i.survey_window_start, i.survey_window_end,
        a.title AS activity_title, a.date AS activity_date, a.time AS activity_time, a.location AS activity_location,
        EXISTS (SELECT 1 FROM survey_responses sr WHERE sr.inscription_id = i.id) AS already_responded
        FROM inscriptions i
        JOIN activities a ON a.id = i.activity_id
        WHERE i.user_id = $1 AND a.event_id = $2`
	var details []models.InscriptionDetail
	if err := r.db.SelectContext(ctx, &details, query, userID, eventID); err != nil {
		return nil, fmt.Errorf("list user inscriptions: %w", err)
	}
	return details, nil
}
