package models

import "time"

// ReportFormat selects the rendered output type for survey reports.
type ReportFormat string

const (
	ReportFormatCSV ReportFormat = "CSV"
	ReportFormatPDF ReportFormat = "PDF"
)

// ReportStatus tracks the lifecycle of an asynchronous report job.
type ReportStatus string

const (
	ReportStatusQueued  ReportStatus = "QUEUED"
	ReportStatusRunning ReportStatus = "RUNNING"
	ReportStatusDone    ReportStatus = "DONE"
	ReportStatusFailed  ReportStatus = "FAILED"
)

// ReportJob is a queued survey-results export for one event.
type ReportJob struct {
	ID           string       `db:"id" json:"id"`
	EventID      string       `db:"event_id" json:"event_id"`
	Format       ReportFormat `db:"format" json:"format"`
	Status       ReportStatus `db:"status" json:"status"`
	Progress     int          `db:"progress" json:"progress"`
	ResultPath   *string      `db:"result_path" json:"-"`
	ErrorMessage *string      `db:"error_message" json:"error_message,omitempty"`
	CreatedBy    string       `db:"created_by" json:"created_by"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	StartedAt    *time.Time   `db:"started_at" json:"started_at,omitempty"`
	FinishedAt   *time.Time   `db:"finished_at" json:"finished_at,omitempty"`
}
