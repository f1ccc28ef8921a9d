package sqlite_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/isdelr/course-api-be/internal/database/sqlite"
	"github.com/isdelr/course-api-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const missingID = "7b0c4a4e-58a2-4f7f-9a53-2f3f8c7a1f00"

func ptr(s string) *string { return &s }

func TestCourseRepository_CreateAndGetPopulatesOwner(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := createUser(t, db, "owner@example.com")

	course := &models.Course{
		Title:         "Build a Basic Bookcase",
		Description:   "High-end furniture projects are great to dream about.",
		EstimatedTime: "12 hours",
		UserID:        owner.ID,
	}
	require.NoError(t, db.Courses().Create(ctx, course))
	require.NotEmpty(t, course.ID)

	got, err := db.Courses().GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Build a Basic Bookcase", got.Title)
	assert.Equal(t, "12 hours", got.EstimatedTime)
	assert.Empty(t, got.MaterialsNeeded)
	require.NotNil(t, got.User)
	assert.Equal(t, owner.ID, got.User.ID)
	assert.Equal(t, "owner@example.com", got.User.EmailAddress)
}

func TestCourseRepository_List(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	courses, err := db.Courses().List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)

	owner := createUser(t, db, "owner@example.com")
	for _, title := range []string{"First", "Second"} {
		require.NoError(t, db.Courses().Create(ctx, &models.Course{Title: title, Description: "d", UserID: owner.ID}))
	}
	require.NoError(t, db.Courses().Create(ctx, &models.Course{Title: "Unowned", Description: "d"}))

	courses, err = db.Courses().List(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 3)
	assert.Equal(t, "First", courses[0].Title)
	assert.Equal(t, "Second", courses[1].Title)
	require.NotNil(t, courses[0].User)
	assert.Equal(t, owner.ID, courses[0].User.ID)
	assert.Nil(t, courses[2].User)
}

func TestCourseRepository_UpdatePartial(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := createUser(t, db, "owner@example.com")

	course := &models.Course{Title: "Old", Description: "Keep me", MaterialsNeeded: "Saw", UserID: owner.ID}
	require.NoError(t, db.Courses().Create(ctx, course))

	err := db.Courses().Update(ctx, course.ID, models.CourseUpdate{
		Title:           ptr("New"),
		MaterialsNeeded: ptr(""),
	})
	require.NoError(t, err)

	got, err := db.Courses().GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, "Keep me", got.Description)
	assert.Empty(t, got.MaterialsNeeded)
	assert.Equal(t, owner.ID, got.UserID)
}

func TestCourseRepository_UpdateEmpty(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	course := &models.Course{Title: "T", Description: "D"}
	require.NoError(t, db.Courses().Create(ctx, course))

	assert.NoError(t, db.Courses().Update(ctx, course.ID, models.CourseUpdate{}))
	assert.ErrorIs(t, db.Courses().Update(ctx, missingID, models.CourseUpdate{}), models.ErrNotFound)
}

func TestCourseRepository_NotFound(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := db.Courses().GetByID(ctx, missingID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	err = db.Courses().Update(ctx, missingID, models.CourseUpdate{Title: ptr("x")})
	assert.ErrorIs(t, err, models.ErrNotFound)

	err = db.Courses().Delete(ctx, missingID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCourseRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	course := &models.Course{Title: "T", Description: "D"}
	require.NoError(t, db.Courses().Create(ctx, course))

	require.NoError(t, db.Courses().Delete(ctx, course.ID))
	_, err := db.Courses().GetByID(ctx, course.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCourseRepository_MalformedID(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Courses().GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, models.ErrMalformedID)
}

func TestCourseRepository_DriverFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	boom := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta("FROM courses c")).WillReturnError(boom)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.id = ?")).WithArgs(missingID).WillReturnError(boom)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM courses")).WithArgs(missingID).WillReturnError(boom)

	repo := sqlite.NewCourseRepository(sqlDB)
	ctx := context.Background()

	_, err = repo.List(ctx)
	assert.ErrorIs(t, err, boom)

	_, err = repo.GetByID(ctx, missingID)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, models.ErrNotFound)

	err = repo.Delete(ctx, missingID)
	assert.ErrorIs(t, err, boom)

	assert.NoError(t, mock.ExpectationsWereMet())
}
