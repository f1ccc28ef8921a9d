package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/isdelr/course-api-be/internal/models"
)

// CourseServiceProvider defines the interface for course services.
type CourseServiceProvider interface {
	GetAllCourses(ctx context.Context) ([]models.Course, error)
	GetCourseByID(ctx context.Context, id string) (*models.Course, error)
	CreateCourse(ctx context.Context, actor *models.User, input CourseInput) (*models.Course, error)
	UpdateCourse(ctx context.Context, actor *models.User, course *models.Course, update models.CourseUpdate) error
	DeleteCourse(ctx context.Context, actor *models.User, course *models.Course) error
}

// CourseInput holds the fields of a new course. An empty UserID makes the
// acting user the owner.
type CourseInput struct {
	Title           string
	Description     string
	EstimatedTime   string
	MaterialsNeeded string
	UserID          string
}

// CourseService provides business logic for the course catalog.
type CourseService struct {
	courses models.CourseRepository
	users   models.UserRepository
	events  EventServiceProvider
}

// NewCourseService creates a new CourseService.
func NewCourseService(courses models.CourseRepository, users models.UserRepository, events EventServiceProvider) *CourseService {
	return &CourseService{courses: courses, users: users, events: events}
}

// GetAllCourses retrieves every course with its owner populated.
func (s *CourseService) GetAllCourses(ctx context.Context) ([]models.Course, error) {
	return s.courses.List(ctx)
}

// GetCourseByID retrieves a single course with its owner populated.
func (s *CourseService) GetCourseByID(ctx context.Context, id string) (*models.Course, error) {
	return s.courses.GetByID(ctx, id)
}

// CreateCourse stores a new course and returns it as persisted.
func (s *CourseService) CreateCourse(ctx context.Context, actor *models.User, input CourseInput) (*models.Course, error) {
	ownerID := input.UserID
	if ownerID == "" && actor != nil {
		ownerID = actor.ID
	}
	if err := s.checkOwner(ctx, ownerID); err != nil {
		return nil, err
	}

	course := &models.Course{
		Title:           input.Title,
		Description:     input.Description,
		EstimatedTime:   input.EstimatedTime,
		MaterialsNeeded: input.MaterialsNeeded,
		UserID:          ownerID,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	recordEvent(ctx, s.events, models.EventCourseCreate, models.LevelInfo,
		fmt.Sprintf("Course %q created by %s", course.Title, actorName(actor)), actorID(actor), &course.ID)
	return course, nil
}

// UpdateCourse applies a partial update to a course that was already loaded
// for the request.
func (s *CourseService) UpdateCourse(ctx context.Context, actor *models.User, course *models.Course, update models.CourseUpdate) error {
	if update.UserID != nil {
		if err := s.checkOwner(ctx, *update.UserID); err != nil {
			return err
		}
	}
	if err := s.courses.Update(ctx, course.ID, update); err != nil {
		return err
	}

	recordEvent(ctx, s.events, models.EventCourseUpdate, mutationLevel(actor, course),
		fmt.Sprintf("Course %q updated by %s", course.Title, actorName(actor)), actorID(actor), &course.ID)
	return nil
}

// DeleteCourse removes a course that was already loaded for the request.
func (s *CourseService) DeleteCourse(ctx context.Context, actor *models.User, course *models.Course) error {
	if err := s.courses.Delete(ctx, course.ID); err != nil {
		return err
	}

	recordEvent(ctx, s.events, models.EventCourseDelete, mutationLevel(actor, course),
		fmt.Sprintf("Course %q deleted by %s", course.Title, actorName(actor)), actorID(actor), &course.ID)
	return nil
}

// checkOwner turns a dangling or malformed user reference into a validation error.
func (s *CourseService) checkOwner(ctx context.Context, id string) error {
	if id == "" {
		return models.NewValidationError("user", "user is required")
	}
	_, err := s.users.GetByID(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrMalformedID):
		return models.NewValidationError("user", "user %s does not exist", id)
	default:
		return fmt.Errorf("check course owner: %w", err)
	}
}

// mutationLevel flags changes made by someone other than the owner. Any
// authenticated user may edit any course.
func mutationLevel(actor *models.User, course *models.Course) string {
	if actor != nil && actor.ID != course.UserID {
		return models.LevelWarn
	}
	return models.LevelInfo
}

func actorID(actor *models.User) *string {
	if actor == nil {
		return nil
	}
	id := actor.ID
	return &id
}

func actorName(actor *models.User) string {
	if actor == nil {
		return "anonymous"
	}
	return actor.EmailAddress
}
