package handlers

import (
	"github.com/isdelr/course-api-be/internal/models"
	"github.com/isdelr/course-api-be/internal/services"
)

// CreateUserRequest is the body of POST /api/users.
type CreateUserRequest struct {
	FirstName    string `json:"firstName" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
	EmailAddress string `json:"emailAddress" validate:"required"`
	Password     string `json:"password" validate:"required"`
}

func (req CreateUserRequest) input() services.UserInput {
	return services.UserInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		EmailAddress: req.EmailAddress,
		Password:     req.Password,
	}
}

// CreateCourseRequest is the body of POST /api/courses. User defaults to the
// authenticated caller.
type CreateCourseRequest struct {
	Title           string `json:"title" validate:"required"`
	Description     string `json:"description" validate:"required"`
	EstimatedTime   string `json:"estimatedTime"`
	MaterialsNeeded string `json:"materialsNeeded"`
	User            string `json:"user"`
}

func (req CreateCourseRequest) input() services.CourseInput {
	return services.CourseInput{
		Title:           req.Title,
		Description:     req.Description,
		EstimatedTime:   req.EstimatedTime,
		MaterialsNeeded: req.MaterialsNeeded,
		UserID:          req.User,
	}
}

// UpdateCourseRequest is the body of PUT /api/courses/{id}. Absent fields are
// left unchanged; present title and description must not be empty.
type UpdateCourseRequest struct {
	Title           *string `json:"title" validate:"omitnil,min=1"`
	Description     *string `json:"description" validate:"omitnil,min=1"`
	EstimatedTime   *string `json:"estimatedTime"`
	MaterialsNeeded *string `json:"materialsNeeded"`
	User            *string `json:"user" validate:"omitnil,min=1"`
}

func (req UpdateCourseRequest) update() models.CourseUpdate {
	return models.CourseUpdate{
		Title:           req.Title,
		Description:     req.Description,
		EstimatedTime:   req.EstimatedTime,
		MaterialsNeeded: req.MaterialsNeeded,
		UserID:          req.User,
	}
}
