package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/utepsa-eventos/eventos-api/internal/models"
)

// ActivityRepository handles persistence of event activities.
type ActivityRepository struct {
	db *sqlx.DB
}

// NewActivityRepository constructs the repository.
func NewActivityRepository(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// ListByEvent returns every activity of an event. No ordering guarantee is
// given here; day grouping and in-day ordering happen in the schedule core.
func (r *ActivityRepository) ListByEvent(ctx context.Context, eventID string) ([]models.Activity, error) {
	const query = `SELECT id, event_id, title, description, date, time, location, enrollment_enabled,
        survey_window_start, survey_window_end, created_at, updated_at
        FROM activities WHERE event_id = $1`
	var activities []models.Activity
	if err := r.db.SelectContext(ctx, &activities, query, eventID); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}

// FindByID returns an activity by its ID.
func (r *ActivityRepository) FindByID(ctx context.Context, id string) (*models.Activity, error) {
	const query = `SELECT id, event_id, title, description, date, time, location, enrollment_enabled,
        survey_window_start, survey_window_end, created_at, updated_at
        FROM activities WHERE id = $1`
	var activity models.Activity
	if err := r.db.GetContext(ctx, &activity, query, id); err != nil {
		return nil, err
	}
	return &activity, nil
}

// Create persists a new activity record.
func (r *ActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = now
	}
	activity.UpdatedAt = now
	const query = `INSERT INTO activities (id, event_id, title, description, date, time, location, enrollment_enabled,
        survey_window_start, survey_window_end, created_at, updated_at)
        VALUES (:id, :event_id, :title, :description, :date, :time, :location, :enrollment_enabled,
        :survey_window_start, :survey_window_end, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, activity); err != nil {
		return fmt.Errorf("create activity: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of an activity.
func (r *ActivityRepository) Update(ctx context.Context, activity *models.Activity) error {
	activity.UpdatedAt = time.Now().UTC()
	const query = `UPDATE activities SET title = :title, description = :description, date = :date, time = :time,
        location = :location, enrollment_enabled = :enrollment_enabled,
        survey_window_start = :survey_window_start, survey_window_end = :survey_window_end,
        updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, activity); err != nil {
		return fmt.Errorf("update activity: %w", err)
	}
	return nil
}

// Delete removes an activity.
func (r *ActivityRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM activities WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	return nil
}
