package models

import (
	"context"
	"time"
)

// Event types recorded in the activity log.
const (
	EventUserCreate   = "user.create"
	EventCourseCreate = "course.create"
	EventCourseUpdate = "course.update"
	EventCourseDelete = "course.delete"
)

// Event levels.
const (
	LevelInfo = "info"
	LevelWarn = "warn"
)

// Event represents a loggable action in the system.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g., "course.update"
	Level     string    `json:"level"` // "info" or "warn"
	Message   string    `json:"message"`
	ActorID   *string   `json:"actorId,omitempty"`  // Nil for anonymous actions such as sign-up
	CourseID  *string   `json:"courseId,omitempty"` // Nil for user events
	CreatedAt time.Time `json:"createdAt"`
}

// EventRepository defines persistence operations for the activity log.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	ListRecent(ctx context.Context, limit int) ([]Event, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
