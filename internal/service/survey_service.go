package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/utepsa-eventos/eventos-api/internal/dto"
	"github.com/utepsa-eventos/eventos-api/internal/models"
	"github.com/utepsa-eventos/eventos-api/internal/schedule"
	appErrors "github.com/utepsa-eventos/eventos-api/pkg/errors"
)

// SurveyRepository abstracts survey response persistence.
type SurveyRepository interface {
	HasResponse(ctx context.Context, inscriptionID string) (bool, error)
	Create(ctx context.Context, resp *models.SurveyResponse) error
}

// SurveyService accepts post-activity survey submissions. Submission is only
// allowed while the inscription's habilitación window is open.
type SurveyService struct {
	surveys      SurveyRepository
	inscriptions InscriptionRepository
	validate     *validator.Validate
	logger       *zap.Logger
	now          func() time.Time
}

// NewSurveyService constructs the service.
func NewSurveyService(surveys SurveyRepository, inscriptions InscriptionRepository, logger *zap.Logger) *SurveyService {
	return &SurveyService{
		surveys:      surveys,
		inscriptions: inscriptions,
		validate:     validator.New(),
		logger:       logger,
		now:          time.Now,
	}
}

// Submit validates and stores a survey answer. The inscription must belong
// to the submitting user and its window must currently be open.
func (s *SurveyService) Submit(ctx context.Context, userID string, req dto.SubmitSurveyRequest) (*dto.SubmitSurveyResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid survey payload")
	}

	inscription, err := s.inscriptions.FindByID(ctx, req.InscriptionID)
	if err != nil {
		return nil, notFoundOrInternal(err, "inscription not found", "failed to load inscription")
	}
	if inscription.UserID != userID {
		return nil, appErrors.ErrForbidden
	}

	responded, err := s.surveys.HasResponse(ctx, inscription.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check survey response")
	}

	switch schedule.ClassifySurveyWindow(s.now(), inscription.SurveyWindowStart, inscription.SurveyWindowEnd, responded) {
	case schedule.SurveyOpenUnanswered:
		// submission allowed
	case schedule.SurveyOpenAnswered, schedule.SurveyClosedAnswered:
		return nil, appErrors.ErrAlreadyResponded
	case schedule.SurveyNotYetOpen:
		return nil, appErrors.ErrSurveyNotOpen
	default:
		return nil, appErrors.ErrSurveyClosed
	}

	resp := &models.SurveyResponse{
		InscriptionID: inscription.ID,
		Rating:        req.Rating,
		Comment:       req.Comment,
		SubmittedAt:   s.now().UTC(),
	}
	if err := s.surveys.Create(ctx, resp); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store survey response")
	}

	s.logger.Info("survey submitted",
		zap.String("inscription_id", inscription.ID),
		zap.Int("rating", req.Rating))

	return &dto.SubmitSurveyResponse{ID: resp.ID, SubmittedAt: resp.SubmittedAt}, nil
}
