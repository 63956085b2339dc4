package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/utepsa-eventos/eventos-api/internal/dto"
	"github.com/utepsa-eventos/eventos-api/internal/schedule"
	appErrors "github.com/utepsa-eventos/eventos-api/pkg/errors"
)

// ScheduleService builds the grouped day-tab view of an event's schedule.
type ScheduleService struct {
	events       EventRepository
	activities   ActivityRepository
	inscriptions InscriptionRepository
	cache        *CacheService
	cacheTTL     time.Duration
	logger       *zap.Logger
}

// NewScheduleService constructs the service.
func NewScheduleService(events EventRepository, activities ActivityRepository, inscriptions InscriptionRepository, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		events:       events,
		activities:   activities,
		inscriptions: inscriptions,
		cache:        cache,
		cacheTTL:     cacheTTL,
		logger:       logger,
	}
}

// GetSchedule returns the activities of an event grouped into numbered day
// tabs. When userID is non-empty the activities carry the caller's
// enrollment state; anonymous requests get the same grouping with every
// enrolled flag false. The boolean result reports whether the grouping was
// served from cache. An event with no activities yields an empty days
// array, not an error.
func (s *ScheduleService) GetSchedule(ctx context.Context, eventID, userID string) (*dto.ScheduleResponse, bool, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return nil, false, notFoundOrInternal(err, "event not found", "failed to load event")
	}

	resp, cached, err := s.groupedSchedule(ctx, eventID)
	if err != nil {
		return nil, false, err
	}

	if userID != "" {
		if err := s.markEnrollments(ctx, resp, userID, eventID); err != nil {
			// The grouping is still valid without the overlay.
			s.logger.Warn("failed to annotate schedule with enrollments",
				zap.String("event_id", eventID),
				zap.String("user_id", userID),
				zap.Error(err))
		}
	}
	return resp, cached, nil
}

// groupedSchedule builds the user-independent grouping, which is what the
// cache holds. Per-user annotation happens on top of it per request.
func (s *ScheduleService) groupedSchedule(ctx context.Context, eventID string) (*dto.ScheduleResponse, bool, error) {
	key := scheduleCacheKey(eventID)
	if s.cache != nil {
		var cached dto.ScheduleResponse
		hit, err := s.cache.Get(ctx, key, &cached)
		if err == nil && hit {
			return &cached, true, nil
		}
	}

	activities, err := s.activities.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list activities")
	}

	days := schedule.Group(activities)
	resp := &dto.ScheduleResponse{
		EventID: eventID,
		Days:    make([]dto.ScheduleDay, 0, len(days)),
	}
	for _, day := range days {
		out := dto.ScheduleDay{
			Date:       day.Date,
			DayNumber:  day.DayNumber,
			Activities: make([]dto.ScheduleActivity, 0, len(day.Activities)),
		}
		for _, a := range day.Activities {
			out.Activities = append(out.Activities, dto.ScheduleActivity{Activity: a})
		}
		resp.Days = append(resp.Days, out)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, resp, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache schedule", zap.String("event_id", eventID), zap.Error(err))
		}
	}
	return resp, false, nil
}

func (s *ScheduleService) markEnrollments(ctx context.Context, resp *dto.ScheduleResponse, userID, eventID string) error {
	details, err := s.inscriptions.ListDetailsByUser(ctx, userID, eventID)
	if err != nil {
		return err
	}
	if len(details) == 0 {
		return nil
	}

	enrolled := make(map[string]bool, len(details))
	for _, d := range details {
		enrolled[d.ActivityID] = true
	}
	for di := range resp.Days {
		for ai := range resp.Days[di].Activities {
			if enrolled[resp.Days[di].Activities[ai].ID] {
				resp.Days[di].Activities[ai].Enrolled = true
			}
		}
	}
	return nil
}

func scheduleCacheKey(eventID string) string {
	return fmt.Sprintf("schedule:event:%s", eventID)
}
