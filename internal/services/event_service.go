package services

import (
	"context"
	"fmt"
	"time"

	"github.com/isdelr/course-api-be/internal/models"
	"github.com/isdelr/course-api-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

const (
	DefaultEventLimit = 20
	MaxEventLimit     = 100
)

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	CreateEvent(ctx context.Context, eventType, level, message string, actorID, courseID *string) error
	GetRecentEvents(ctx context.Context, limit int) ([]models.Event, error)
	PruneEvents(ctx context.Context, olderThan time.Duration) (int64, error)
}

// Publisher pushes encoded messages to live subscribers.
type Publisher interface {
	Publish(data []byte, topics ...string)
}

// EventService provides business logic for the activity log.
type EventService struct {
	events    models.EventRepository
	publisher Publisher
	now       func() time.Time
}

// NewEventService creates a new EventService. publisher may be nil.
func NewEventService(events models.EventRepository, publisher Publisher) *EventService {
	return &EventService{events: events, publisher: publisher, now: time.Now}
}

// CreateEvent stores a new event and publishes it to subscribers of the global
// feed and, for course events, of the course.
func (s *EventService) CreateEvent(ctx context.Context, eventType, level, message string, actorID, courseID *string) error {
	event := models.Event{
		Type:      eventType,
		Level:     level,
		Message:   message,
		ActorID:   actorID,
		CourseID:  courseID,
		CreatedAt: s.now(),
	}
	if err := s.events.Create(ctx, &event); err != nil {
		return fmt.Errorf("record %s event: %w", eventType, err)
	}

	if s.publisher != nil {
		var topics []string
		if courseID != nil {
			topics = append(topics, *courseID)
		}
		s.publisher.Publish(websocket.NewEventMessage(event), topics...)
	}
	return nil
}

// GetRecentEvents returns the newest events. The limit falls back to
// DefaultEventLimit when not positive and is capped at MaxEventLimit.
func (s *EventService) GetRecentEvents(ctx context.Context, limit int) ([]models.Event, error) {
	if limit <= 0 {
		limit = DefaultEventLimit
	}
	if limit > MaxEventLimit {
		limit = MaxEventLimit
	}
	return s.events.ListRecent(ctx, limit)
}

// PruneEvents deletes events older than olderThan and returns how many were removed.
func (s *EventService) PruneEvents(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := s.now().Add(-olderThan)
	deleted, err := s.events.DeleteBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune events: %w", err)
	}
	return deleted, nil
}

// recordEvent logs instead of failing when the activity log cannot be written.
func recordEvent(ctx context.Context, events EventServiceProvider, eventType, level, message string, actorID, courseID *string) {
	if events == nil {
		return
	}
	if err := events.CreateEvent(ctx, eventType, level, message, actorID, courseID); err != nil {
		log.Error().Err(err).Str("type", eventType).Msg("Failed to record event")
	}
}
