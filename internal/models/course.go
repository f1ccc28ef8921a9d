package models

import "context"

// Course is a catalog entry. UserID references the owning user; User holds the
// populated owner whenever the course was read back from a repository.
type Course struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	EstimatedTime   string `json:"estimatedTime,omitempty"`
	MaterialsNeeded string `json:"materialsNeeded,omitempty"`
	UserID          string `json:"-"`
	User            *User  `json:"user"`
}

// CourseUpdate carries a partial update. Nil fields are left untouched.
type CourseUpdate struct {
	Title           *string
	Description     *string
	EstimatedTime   *string
	MaterialsNeeded *string
	UserID          *string
}

// IsEmpty reports whether the update would not change anything.
func (u CourseUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.EstimatedTime == nil &&
		u.MaterialsNeeded == nil && u.UserID == nil
}

// CourseRepository defines persistence operations for courses. Every read
// populates the owning user.
type CourseRepository interface {
	List(ctx context.Context) ([]Course, error)
	GetByID(ctx context.Context, id string) (*Course, error)
	Create(ctx context.Context, course *Course) error
	Update(ctx context.Context, id string, update CourseUpdate) error
	Delete(ctx context.Context, id string) error
}
