package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/utepsa-eventos/eventos-api/internal/models"
)

// ReportRepository handles persistence of survey report jobs.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository constructs the repository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// UpdateReportJobParams captures the mutable job fields for partial updates.
// ClearResultPath nulls result_path, used when the stored file is removed.
type UpdateReportJobParams struct {
	Status          *models.ReportStatus
	Progress        *int
	ResultPath      *string
	ClearResultPath bool
	ErrorMessage    *string
	StartedAt       *time.Time
	FinishedAt      *time.Time
}

// Create persists a new report job.
func (r *ReportRepository) Create(ctx context.Context, job *models.ReportJob) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	if job.Status == "" {
		job.Status = models.ReportStatusQueued
	}
	const query = `INSERT INTO report_jobs (id, event_id, format, status, progress, result_path, error_message, created_by, created_at, started_at, finished_at)
        VALUES (:id, :event_id, :format, :status, :progress, :result_path, :error_message, :created_by, :created_at, :started_at, :finished_at)`
	if _, err := r.db.NamedExecContext(ctx, query, job); err != nil {
		return fmt.Errorf("create report job: %w", err)
	}
	return nil
}

// GetByID returns a report job by its ID.
func (r *ReportRepository) GetByID(ctx context.Context, id string) (*models.ReportJob, error) {
	const query = `SELECT id, event_id, format, status, progress, result_path, error_message, created_by, created_at, started_at, finished_at
        FROM report_jobs WHERE id = $1`
	var job models.ReportJob
	if err := r.db.GetContext(ctx, &job, query, id); err != nil {
		return nil, err
	}
	return &job, nil
}

// Update applies the provided partial changes to a job.
func (r *ReportRepository) Update(ctx context.Context, id string, params UpdateReportJobParams) error {
	var sets []string
	var args []interface{}
	args = append(args, id)

	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)+1))
		args = append(args, value)
	}

	if params.Status != nil {
		add("status", *params.Status)
	}
	if params.Progress != nil {
		add("progress", *params.Progress)
	}
	if params.ResultPath != nil {
		add("result_path", *params.ResultPath)
	} else if params.ClearResultPath {
		sets = append(sets, "result_path = NULL")
	}
	if params.ErrorMessage != nil {
		add("error_message", *params.ErrorMessage)
	}
	if params.StartedAt != nil {
		add("started_at", *params.StartedAt)
	}
	if params.FinishedAt != nil {
		add("finished_at", *params.FinishedAt)
	}
	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf("UPDATE report_jobs SET %s WHERE id = $1", strings.Join(sets, ", "))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update report job: %w", err)
	}
	return nil
}

// ListFinishedBefore returns finished jobs older than the cutoff for cleanup.
func (r *ReportRepository) ListFinishedBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.ReportJob, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `SELECT id, event_id, format, status, progress, result_path, error_message, created_by, created_at, started_at, finished_at
        FROM report_jobs WHERE finished_at IS NOT NULL AND finished_at < $1 ORDER BY finished_at ASC LIMIT $2`
	var jobsList []models.ReportJob
	if err := r.db.SelectContext(ctx, &jobsList, query, cutoff, limit); err != nil {
		return nil, fmt.Errorf("list finished report jobs: %w", err)
	}
	return jobsList, nil
}
