package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/utepsa-eventos/eventos-api/internal/dto"
	"github.com/utepsa-eventos/eventos-api/internal/models"
	"github.com/utepsa-eventos/eventos-api/internal/schedule"
	appErrors "github.com/utepsa-eventos/eventos-api/pkg/errors"
)

// InscriptionRepository abstracts inscription persistence.
type InscriptionRepository interface {
	FindByID(ctx context.Context, id string) (*models.Inscription, error)
	FindByUserAndActivity(ctx context.Context, userID, activityID string) (*models.Inscription, error)
	Create(ctx context.Context, inscription *models.Inscription) error
	ListDetailsByUser(ctx context.Context, userID, eventID string) ([]models.InscriptionDetail, error)
}

// InscriptionService manages enrollments and the per-user agenda view.
type InscriptionService struct {
	inscriptions InscriptionRepository
	activities   ActivityRepository
	events       EventRepository
	validate     *validator.Validate
	logger       *zap.Logger
	now          func() time.Time
}

// NewInscriptionService constructs the service.
func NewInscriptionService(inscriptions InscriptionRepository, activities ActivityRepository, events EventRepository, logger *zap.Logger) *InscriptionService {
	return &InscriptionService{
		inscriptions: inscriptions,
		activities:   activities,
		events:       events,
		validate:     validator.New(),
		logger:       logger,
		now:          time.Now,
	}
}

// Enroll registers the user in an activity. Enrollment must be enabled on
// the activity and a user may hold at most one inscription per activity.
func (s *InscriptionService) Enroll(ctx context.Context, userID string, req dto.EnrollRequest) (*dto.EnrollResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}

	activity, err := s.activities.FindByID(ctx, req.ActivityID)
	if err != nil {
		return nil, notFoundOrInternal(err, "activity not found", "failed to load activity")
	}
	if !activity.EnrollmentEnabled {
		return nil, appErrors.ErrEnrollmentDisabled
	}

	if _, err := s.inscriptions.FindByUserAndActivity(ctx, userID, req.ActivityID); err == nil {
		return nil, appErrors.ErrAlreadyEnrolled
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enrollment")
	}

	inscription := &models.Inscription{
		UserID:            userID,
		ActivityID:        req.ActivityID,
		EnrolledAt:        s.now().UTC(),
		SurveyWindowStart: activity.SurveyWindowStart,
		SurveyWindowEnd:   activity.SurveyWindowEnd,
	}
	if err := s.inscriptions.Create(ctx, inscription); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create inscription")
	}

	s.logger.Info("user enrolled",
		zap.String("user_id", userID),
		zap.String("activity_id", req.ActivityID),
		zap.String("inscription_id", inscription.ID))

	return &dto.EnrollResponse{
		InscriptionID: inscription.ID,
		ActivityID:    inscription.ActivityID,
		EnrolledAt:    inscription.EnrolledAt,
	}, nil
}

// MyInscriptions returns the user's enrolled activities for an event, each
// annotated with the survey availability verdict at the current instant.
// Having no inscriptions is a success with an empty array.
func (s *InscriptionService) MyInscriptions(ctx context.Context, userID, eventID string) (*dto.MyInscriptionsResponse, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return nil, notFoundOrInternal(err, "event not found", "failed to load event")
	}

	details, err := s.inscriptions.ListDetailsByUser(ctx, userID, eventID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list inscriptions")
	}

	now := s.now()
	items := make([]dto.MyInscriptionItem, 0, len(details))
	for _, d := range details {
		verdict := schedule.ClassifySurveyWindow(now, d.SurveyWindowStart, d.SurveyWindowEnd, d.AlreadyResponded)

		item := dto.MyInscriptionItem{
			InscriptionID:      d.ID,
			ActivityID:         d.ActivityID,
			ActivityTitle:      d.ActivityTitle,
			ActivityDate:       d.ActivityDate,
			ActivityTime:       d.ActivityTime,
			ActivityLocation:   d.ActivityLocation,
			SurveyAvailability: verdict,
		}
		if verdict == schedule.SurveyNotYetOpen && d.SurveyWindowStart != nil {
			opensAt := d.SurveyWindowStart.Format(time.RFC3339)
			item.SurveyOpensAt = &opensAt
		}
		items = append(items, item)
	}

	return &dto.MyInscriptionsResponse{EventID: eventID, Inscriptions: items}, nil
}
