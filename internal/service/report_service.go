package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/utepsa-eventos/eventos-api/internal/dto"
	"github.com/utepsa-eventos/eventos-api/internal/models"
	"github.com/utepsa-eventos/eventos-api/internal/repository"
	"github.com/utepsa-eventos/eventos-api/pkg/config"
	appErrors "github.com/utepsa-eventos/eventos-api/pkg/errors"
	"github.com/utepsa-eventos/eventos-api/pkg/export"
	"github.com/utepsa-eventos/eventos-api/pkg/jobs"
	"github.com/utepsa-eventos/eventos-api/pkg/storage"
)

// ReportRepository abstracts report job persistence.
type ReportRepository interface {
	Create(ctx context.Context, job *models.ReportJob) error
	GetByID(ctx context.Context, id string) (*models.ReportJob, error)
	Update(ctx context.Context, id string, params repository.UpdateReportJobParams) error
	ListFinishedBefore(ctx context.Context, cutoff time.Time, limit int) ([]models.ReportJob, error)
}

// SurveyResultsRepository provides the flattened answers for exports.
type SurveyResultsRepository interface {
	ResultsByEvent(ctx context.Context, eventID string) ([]models.SurveyResultRow, error)
}

// ReportService generates survey-result exports asynchronously. Requests are
// queued, rendered by background workers, stored on disk, and served through
// short-lived signed download URLs.
type ReportService struct {
	reports ReportRepository
	results SurveyResultsRepository
	events  EventRepository

	queue    *jobs.Queue
	store    *storage.LocalStorage
	signer   *storage.SignedURLSigner
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	cfg      config.ReportsConfig
	validate *validator.Validate
	logger   *zap.Logger
}

// NewReportService constructs the service and its worker queue.
func NewReportService(reports ReportRepository, results SurveyResultsRepository, events EventRepository, store *storage.LocalStorage, cfg config.ReportsConfig, logger *zap.Logger) *ReportService {
	s := &ReportService{
		reports:  reports,
		results:  results,
		events:   events,
		store:    store,
		signer:   storage.NewSignedURLSigner(cfg.SignedURLSecret, cfg.SignedURLTTL),
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		cfg:      cfg,
		validate: validator.New(),
		logger:   logger,
	}
	s.queue = jobs.NewQueue("reports", s.process, jobs.QueueConfig{
		Workers:    cfg.WorkerConcurrency,
		MaxRetries: cfg.WorkerRetries,
		Logger:     logger,
	})
	return s
}

// Start launches the worker pool and the cleanup loop.
func (s *ReportService) Start(ctx context.Context) {
	s.queue.Start(ctx)
	go s.cleanupLoop(ctx)
}

// Stop drains the worker pool.
func (s *ReportService) Stop() {
	s.queue.Stop()
}

// Request queues a new survey-report export for an event.
func (s *ReportService) Request(ctx context.Context, userID string, req dto.ReportRequest) (*dto.ReportJobResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid report request")
	}

	if _, err := s.events.FindByID(ctx, req.EventID); err != nil {
		return nil, notFoundOrInternal(err, "event not found", "failed to load event")
	}

	job := &models.ReportJob{
		EventID:   req.EventID,
		Format:    req.Format,
		Status:    models.ReportStatusQueued,
		CreatedBy: userID,
	}
	if err := s.reports.Create(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create report job")
	}

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: "survey_report", Payload: job.ID}); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue report job")
	}

	return &dto.ReportJobResponse{ID: job.ID, Status: job.Status, Progress: job.Progress}, nil
}

// Status returns job progress plus a signed download URL once the job is done.
func (s *ReportService) Status(ctx context.Context, jobID string) (*dto.ReportStatusResponse, error) {
	job, err := s.reports.GetByID(ctx, jobID)
	if err != nil {
		return nil, notFoundOrInternal(err, "report job not found", "failed to load report job")
	}

	resp := &dto.ReportStatusResponse{
		ID:       job.ID,
		Status:   job.Status,
		Progress: job.Progress,
		Error:    job.ErrorMessage,
	}
	if job.Status == models.ReportStatusDone && job.ResultPath != nil {
		token, _, err := s.signer.Generate(job.ID, *job.ResultPath)
		if err != nil {
			s.logger.Warn("failed to sign report URL", zap.String("job_id", job.ID), zap.Error(err))
		} else {
			url := fmt.Sprintf("/reports/download/%s", token)
			resp.DownloadURL = &url
		}
	}
	return resp, nil
}

// Download validates a signed token and opens the stored report file.
func (s *ReportService) Download(ctx context.Context, token string) (*os.File, *models.ReportJob, error) {
	jobID, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired download token")
	}

	job, err := s.reports.GetByID(ctx, jobID)
	if err != nil {
		return nil, nil, notFoundOrInternal(err, "report job not found", "failed to load report job")
	}
	if job.Status != models.ReportStatusDone || job.ResultPath == nil || *job.ResultPath != relPath {
		return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "report not available")
	}

	file, err := s.store.Open(relPath)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open report file")
	}
	return file, job, nil
}

func (s *ReportService) process(ctx context.Context, job jobs.Job) error {
	jobID, ok := job.Payload.(string)
	if !ok || jobID == "" {
		s.logger.Error("report job has invalid payload", zap.String("job_id", job.ID))
		return nil
	}

	started := time.Now().UTC()
	running := models.ReportStatusRunning
	progress := 10
	if err := s.reports.Update(ctx, jobID, repository.UpdateReportJobParams{
		Status:    &running,
		Progress:  &progress,
		StartedAt: &started,
	}); err != nil {
		return err
	}

	record, err := s.reports.GetByID(ctx, jobID)
	if err != nil {
		return err
	}

	rows, err := s.results.ResultsByEvent(ctx, record.EventID)
	if err != nil {
		return s.fail(ctx, jobID, err)
	}

	dataset := surveyDataset(rows)
	var rendered []byte
	var ext string
	switch record.Format {
	case models.ReportFormatPDF:
		rendered, err = s.pdf.Render(dataset, "Survey Results")
		ext = "pdf"
	default:
		rendered, err = s.csv.Render(dataset)
		ext = "csv"
	}
	if err != nil {
		return s.fail(ctx, jobID, err)
	}

	filename := fmt.Sprintf("%s/survey-report-%s.%s", record.EventID, jobID, ext)
	relPath, err := s.store.Save(filename, rendered)
	if err != nil {
		return s.fail(ctx, jobID, err)
	}

	done := models.ReportStatusDone
	progress = 100
	finished := time.Now().UTC()
	if err := s.reports.Update(ctx, jobID, repository.UpdateReportJobParams{
		Status:     &done,
		Progress:   &progress,
		ResultPath: &relPath,
		FinishedAt: &finished,
	}); err != nil {
		return err
	}

	s.logger.Info("report generated",
		zap.String("job_id", jobID),
		zap.String("event_id", record.EventID),
		zap.String("format", string(record.Format)),
		zap.Int("rows", len(rows)))
	return nil
}

func (s *ReportService) fail(ctx context.Context, jobID string, cause error) error {
	failed := models.ReportStatusFailed
	message := cause.Error()
	finished := time.Now().UTC()
	if err := s.reports.Update(ctx, jobID, repository.UpdateReportJobParams{
		Status:       &failed,
		ErrorMessage: &message,
		FinishedAt:   &finished,
	}); err != nil {
		s.logger.Error("failed to mark report job failed", zap.String("job_id", jobID), zap.Error(err))
	}
	return cause
}

func (s *ReportService) cleanupLoop(ctx context.Context) {
	interval := s.cfg.CleanupInterval
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cleanup(ctx)
		}
	}
}

func (s *ReportService) cleanup(ctx context.Context) {
	cutoff := time.Now().Add(-s.cfg.SignedURLTTL)
	stale, err := s.reports.ListFinishedBefore(ctx, cutoff, 50)
	if err != nil {
		s.logger.Warn("report cleanup query failed", zap.Error(err))
		return
	}
	removed := 0
	for _, job := range stale {
		if job.ResultPath == nil {
			continue
		}
		if err := s.store.Delete(*job.ResultPath); err != nil {
			s.logger.Warn("failed to delete stale report", zap.String("job_id", job.ID), zap.Error(err))
			continue
		}
		// Clear the path so Status stops minting URLs to the removed file
		// and Download reports the report as gone instead of failing.
		if err := s.reports.Update(ctx, job.ID, repository.UpdateReportJobParams{ClearResultPath: true}); err != nil {
			s.logger.Warn("failed to clear stale report path", zap.String("job_id", job.ID), zap.Error(err))
			continue
		}
		removed++
	}

	// Sweep files with no surviving job row, such as leftovers from failed
	// renders or rows removed out of band.
	orphans, err := s.store.CleanupOlderThan(s.cfg.SignedURLTTL)
	if err != nil {
		s.logger.Warn("report storage sweep failed", zap.Error(err))
	}
	if removed > 0 || len(orphans) > 0 {
		s.logger.Info("report cleanup pass finished",
			zap.Int("removed", removed),
			zap.Int("swept", len(orphans)))
	}
}

func surveyDataset(rows []models.SurveyResultRow) export.Dataset {
	headers := []string{"Activity", "Date", "Attendee", "Rating", "Comment", "Submitted At"}
	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, map[string]string{
			"Activity":     row.ActivityTitle,
			"Date":         row.ActivityDate,
			"Attendee":     row.UserFullName,
			"Rating":       fmt.Sprintf("%d", row.Rating),
			"Comment":      row.Comment,
			"Submitted At": row.SubmittedAt.Format(time.RFC3339),
		})
	}
	return export.Dataset{Headers: headers, Rows: out}
}
