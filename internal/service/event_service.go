package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/utepsa-eventos/eventos-api/internal/models"
	appErrors "github.com/utepsa-eventos/eventos-api/pkg/errors"
)

// EventRepository abstracts event persistence.
type EventRepository interface {
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error)
	FindByID(ctx context.Context, id string) (*models.Event, error)
}

// EventService exposes event listing and lookup.
type EventService struct {
	events EventRepository
	logger *zap.Logger
}

// NewEventService constructs the service.
func NewEventService(events EventRepository, logger *zap.Logger) *EventService {
	return &EventService{events: events, logger: logger}
}

// List returns events matching the filter together with pagination metadata.
// An empty result is a success with an empty slice, never an error.
func (s *EventService) List(ctx context.Context, filter models.EventFilter) ([]models.Event, *models.Pagination, error) {
	events, total, err := s.events.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	if events == nil {
		events = []models.Event{}
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return events, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// GetByID returns a single event.
func (s *EventService) GetByID(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load event")
	}
	return event, nil
}
