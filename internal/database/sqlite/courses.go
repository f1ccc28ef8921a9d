package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/isdelr/course-api-be/internal/models"
)

// selectCourses joins the owner so every read comes back populated.
const selectCourses = `
	SELECT c.id, c.title, c.description, c.estimated_time, c.materials_needed, c.user_id,
	       u.id, u.first_name, u.last_name, u.email_address, u.password_hash
	FROM courses c
	LEFT JOIN users u ON u.id = c.user_id`

// CourseRepository implements models.CourseRepository using SQLite.
type CourseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new SQLite-backed CourseRepository.
func NewCourseRepository(db *sql.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns every course in insertion order.
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	rows, err := r.db.QueryContext(ctx, selectCourses+" ORDER BY c.rowid")
	if err != nil {
		return nil, fmt.Errorf("query courses: %w", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, *course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses: %w", err)
	}
	return courses, nil
}

func (r *CourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	if err := checkID("course", id); err != nil {
		return nil, err
	}
	course, err := scanCourse(r.db.QueryRowContext(ctx, selectCourses+" WHERE c.id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("course %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("query course: %w", err)
	}
	return course, nil
}

// Create inserts course, assigning a new ID.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	id := uuid.New().String()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO courses (id, user_id, title, description, estimated_time, materials_needed)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, nullString(course.UserID), course.Title, course.Description,
		nullString(course.EstimatedTime), nullString(course.MaterialsNeeded),
	)
	if err != nil {
		return fmt.Errorf("insert course: %w", err)
	}
	course.ID = id
	return nil
}

// Update applies the non-nil fields of update to the course.
func (r *CourseRepository) Update(ctx context.Context, id string, update models.CourseUpdate) error {
	if err := checkID("course", id); err != nil {
		return err
	}

	var sets []string
	var args []any
	set := func(column string, value *string, nullable bool) {
		if value == nil {
			return
		}
		sets = append(sets, column+" = ?")
		if nullable {
			args = append(args, nullString(*value))
		} else {
			args = append(args, *value)
		}
	}
	set("title", update.Title, false)
	set("description", update.Description, false)
	set("estimated_time", update.EstimatedTime, true)
	set("materials_needed", update.MaterialsNeeded, true)
	set("user_id", update.UserID, true)

	if len(sets) == 0 {
		return r.exists(ctx, id)
	}

	args = append(args, id)
	result, err := r.db.ExecContext(ctx,
		"UPDATE courses SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return requireAffected(result, "course", id)
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	if err := checkID("course", id); err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, "DELETE FROM courses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return requireAffected(result, "course", id)
}

func (r *CourseRepository) exists(ctx context.Context, id string) error {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM courses WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("course %s: %w", id, models.ErrNotFound)
	}
	return err
}

func requireAffected(result sql.Result, kind, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, models.ErrNotFound)
	}
	return nil
}

// scanCourse scans a row produced by selectCourses.
func scanCourse(scanner interface{ Scan(...any) error }) (*models.Course, error) {
	var course models.Course
	var estimatedTime, materialsNeeded, userID sql.NullString
	var ownerID, firstName, lastName, email, passwordHash sql.NullString

	err := scanner.Scan(
		&course.ID, &course.Title, &course.Description, &estimatedTime, &materialsNeeded, &userID,
		&ownerID, &firstName, &lastName, &email, &passwordHash,
	)
	if err != nil {
		return nil, err
	}

	course.EstimatedTime = estimatedTime.String
	course.MaterialsNeeded = materialsNeeded.String
	course.UserID = userID.String
	if ownerID.Valid {
		course.User = &models.User{
			ID:           ownerID.String,
			FirstName:    firstName.String,
			LastName:     lastName.String,
			EmailAddress: email.String,
			PasswordHash: passwordHash.String,
		}
	}
	return &course, nil
}

var _ models.CourseRepository = (*CourseRepository)(nil)
