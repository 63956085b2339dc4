package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/utepsa-eventos/eventos-api/internal/dto"
	"github.com/utepsa-eventos/eventos-api/internal/models"
	appErrors "github.com/utepsa-eventos/eventos-api/pkg/errors"
)

// SurveyStatsRepository provides aggregated survey figures.
type SurveyStatsRepository interface {
	StatsByEvent(ctx context.Context, eventID string) ([]models.ActivitySurveyStats, error)
}

// DashboardService aggregates survey participation for the admin dashboard.
type DashboardService struct {
	events   EventRepository
	stats    SurveyStatsRepository
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewDashboardService constructs the service.
func NewDashboardService(events EventRepository, stats SurveyStatsRepository, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		events:   events,
		stats:    stats,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// EventDashboard returns per-activity and event-wide survey figures.
func (s *DashboardService) EventDashboard(ctx context.Context, eventID string) (*dto.EventDashboardResponse, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, notFoundOrInternal(err, "event not found", "failed to load event")
	}

	key := fmt.Sprintf("dashboard:event:%s", eventID)
	if s.cache != nil {
		var cached dto.EventDashboardResponse
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	stats, err := s.stats.StatsByEvent(ctx, eventID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate survey stats")
	}
	if stats == nil {
		stats = []models.ActivitySurveyStats{}
	}

	var inscriptions, responses int
	var ratingSum float64
	for _, st := range stats {
		inscriptions += st.Inscriptions
		responses += st.Responses
		ratingSum += st.AverageRating * float64(st.Responses)
	}

	resp := &dto.EventDashboardResponse{
		EventID:      event.ID,
		EventTitle:   event.Title,
		Activities:   stats,
		Inscriptions: inscriptions,
		Responses:    responses,
		GeneratedAt:  s.now().UTC(),
	}
	if inscriptions > 0 {
		resp.ResponseRate = round2(float64(responses) / float64(inscriptions))
	}
	if responses > 0 {
		resp.AverageRating = round2(ratingSum / float64(responses))
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, resp, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache dashboard", zap.String("event_id", eventID), zap.Error(err))
		}
	}
	return resp, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
