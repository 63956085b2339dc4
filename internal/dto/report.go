package dto

import "github.com/utepsa-eventos/eventos-api/internal/models"

// ReportRequest asks for an asynchronous survey-results export.
type ReportRequest struct {
	EventID string              `json:"event_id" validate:"required"`
	Format  models.ReportFormat `json:"format" validate:"required,oneof=CSV PDF"`
}

// ReportJobResponse acknowledges an accepted report job.
type ReportJobResponse struct {
	ID       string              `json:"id"`
	Status   models.ReportStatus `json:"status"`
	Progress int                 `json:"progress"`
}

// ReportStatusResponse exposes job progress and the signed download URL.
type ReportStatusResponse struct {
	ID          string              `json:"id"`
	Status      models.ReportStatus `json:"status"`
	Progress    int                 `json:"progress"`
	DownloadURL *string             `json:"download_url,omitempty"`
	Error       *string             `json:"error,omitempty"`
}
