package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/utepsa-eventos/eventos-api/internal/models"
	appErrors "github.com/utepsa-eventos/eventos-api/pkg/errors"
)

// ActivityRepository abstracts activity persistence.
type ActivityRepository interface {
	ListByEvent(ctx context.Context, eventID string) ([]models.Activity, error)
	FindByID(ctx context.Context, id string) (*models.Activity, error)
	Create(ctx context.Context, activity *models.Activity) error
	Update(ctx context.Context, activity *models.Activity) error
	Delete(ctx context.Context, id string) error
}

// CreateActivityInput carries organizer-supplied activity fields.
//
// Date and Time are accepted as raw strings. The canonical shapes are an ISO
// date ("2025-03-01") and a zero-padded clock time ("08:00"), but malformed
// values are stored verbatim rather than rejected.
type CreateActivityInput struct {
	EventID           string `json:"event_id" validate:"required"`
	Title             string `json:"title" validate:"required,max=200"`
	Description       string `json:"description" validate:"max=5000"`
	Date              string `json:"date" validate:"required"`
	Time              string `json:"time" validate:"required"`
	Location          string `json:"location" validate:"max=200"`
	EnrollmentEnabled bool   `json:"enrollment_enabled"`
}

// UpdateActivityInput carries partial updates to an activity.
type UpdateActivityInput struct {
	Title             *string `json:"title" validate:"omitempty,max=200"`
	Description       *string `json:"description" validate:"omitempty,max=5000"`
	Date              *string `json:"date"`
	Time              *string `json:"time"`
	Location          *string `json:"location" validate:"omitempty,max=200"`
	EnrollmentEnabled *bool   `json:"enrollment_enabled"`
}

// SurveyWindowInput bounds the habilitación window of an activity's survey.
// Both bounds nil clears the window; otherwise both must be present.
type SurveyWindowInput struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// InscriptionWindowRepository propagates survey window changes to the
// inscriptions already held on an activity.
type InscriptionWindowRepository interface {
	UpdateWindowByActivity(ctx context.Context, activityID string, start, end *time.Time) error
}

// ActivityService manages activity lifecycle for organizers.
type ActivityService struct {
	activities   ActivityRepository
	events       EventRepository
	inscriptions InscriptionWindowRepository
	cache        *CacheService
	validate     *validator.Validate
	logger       *zap.Logger
}

// NewActivityService constructs the service.
func NewActivityService(activities ActivityRepository, events EventRepository, inscriptions InscriptionWindowRepository, cache *CacheService, logger *zap.Logger) *ActivityService {
	return &ActivityService{
		activities:   activities,
		events:       events,
		inscriptions: inscriptions,
		cache:        cache,
		validate:     validator.New(),
		logger:       logger,
	}
}

// GetByID returns one activity.
func (s *ActivityService) GetByID(ctx context.Context, id string) (*models.Activity, error) {
	activity, err := s.activities.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "activity not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load activity")
	}
	return activity, nil
}

// Create stores a new activity and invalidates the event's cached schedule.
func (s *ActivityService) Create(ctx context.Context, input CreateActivityInput) (*models.Activity, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid activity payload")
	}

	if _, err := s.events.FindByID(ctx, input.EventID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}

	activity := &models.Activity{
		EventID:           input.EventID,
		Title:             input.Title,
		Description:       input.Description,
		Date:              input.Date,
		Time:              input.Time,
		Location:          input.Location,
		EnrollmentEnabled: input.EnrollmentEnabled,
	}
	if err := s.activities.Create(ctx, activity); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create activity")
	}

	s.invalidateSchedule(ctx, activity.EventID)
	return activity, nil
}

// Update applies partial changes to an activity and invalidates the schedule cache.
func (s *ActivityService) Update(ctx context.Context, id string, input UpdateActivityInput) (*models.Activity, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid activity payload")
	}

	activity, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		activity.Title = *input.Title
	}
	if input.Description != nil {
		activity.Description = *input.Description
	}
	if input.Date != nil {
		activity.Date = *input.Date
	}
	if input.Time != nil {
		activity.Time = *input.Time
	}
	if input.Location != nil {
		activity.Location = *input.Location
	}
	if input.EnrollmentEnabled != nil {
		activity.EnrollmentEnabled = *input.EnrollmentEnabled
	}

	if err := s.activities.Update(ctx, activity); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update activity")
	}

	s.invalidateSchedule(ctx, activity.EventID)
	return activity, nil
}

// Delete removes an activity and invalidates the schedule cache.
func (s *ActivityService) Delete(ctx context.Context, id string) error {
	activity, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.activities.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete activity")
	}
	s.invalidateSchedule(ctx, activity.EventID)
	return nil
}

// SetSurveyWindow configures the survey habilitación window of an activity
// and rewrites the window on every existing inscription so the change is
// visible to already-enrolled users.
func (s *ActivityService) SetSurveyWindow(ctx context.Context, id string, input SurveyWindowInput) (*models.Activity, error) {
	if (input.Start == nil) != (input.End == nil) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "survey window requires both start and end")
	}
	if input.Start != nil && input.End.Before(*input.Start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "survey window end must not precede start")
	}

	activity, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	activity.SurveyWindowStart = input.Start
	activity.SurveyWindowEnd = input.End
	if err := s.activities.Update(ctx, activity); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update activity")
	}

	if err := s.inscriptions.UpdateWindowByActivity(ctx, id, input.Start, input.End); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to propagate survey window")
	}

	s.invalidateSchedule(ctx, activity.EventID)
	s.logger.Info("survey window configured",
		zap.String("activity_id", id),
		zap.Bool("cleared", input.Start == nil))
	return activity, nil
}

func (s *ActivityService) invalidateSchedule(ctx context.Context, eventID string) {
	if s.cache == nil {
		return
	}
	pattern := fmt.Sprintf("schedule:event:%s*", eventID)
	if err := s.cache.Invalidate(ctx, pattern); err != nil {
		s.logger.Warn("failed to invalidate schedule cache", zap.String("event_id", eventID), zap.Error(err))
	}
}
