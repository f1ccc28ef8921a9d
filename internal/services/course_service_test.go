package services

import (
	"context"
	"errors"
	"testing"

	"github.com/isdelr/course-api-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCourse_DefaultsOwnerToActor(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signUp(t, "a@b.com", "secret")
	ctx := context.Background()

	course, err := env.courses.CreateCourse(ctx, owner, CourseInput{Title: "Go", Description: "Learn Go"})
	require.NoError(t, err)
	require.NotEmpty(t, course.ID)

	got, err := env.courses.GetCourseByID(ctx, course.ID)
	require.NoError(t, err)
	require.NotNil(t, got.User)
	assert.Equal(t, owner.ID, got.User.ID)
	assert.Equal(t, "a@b.com", got.User.EmailAddress)
}

func TestCreateCourse_ExplicitOwner(t *testing.T) {
	env := newTestEnv(t)
	actor := env.signUp(t, "a@b.com", "secret")
	other := env.signUp(t, "c@d.com", "secret")

	course, err := env.courses.CreateCourse(context.Background(), actor, CourseInput{
		Title: "Go", Description: "Learn Go", UserID: other.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, other.ID, course.UserID)
}

func TestCreateCourse_UnknownOwner(t *testing.T) {
	env := newTestEnv(t)
	actor := env.signUp(t, "a@b.com", "secret")

	for _, id := range []string{"7b0c4a4e-58a2-4f7f-9a53-2f3f8c7a1f00", "not-an-id"} {
		_, err := env.courses.CreateCourse(context.Background(), actor, CourseInput{
			Title: "Go", Description: "Learn Go", UserID: id,
		})
		var verr *models.ValidationError
		require.True(t, errors.As(err, &verr), "owner %q", id)
		assert.Equal(t, "user", verr.Field)
	}
}

func TestUpdateCourse(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signUp(t, "a@b.com", "secret")
	ctx := context.Background()
	course, err := env.courses.CreateCourse(ctx, owner, CourseInput{Title: "Go", Description: "Learn Go"})
	require.NoError(t, err)

	title := "Advanced Go"
	require.NoError(t, env.courses.UpdateCourse(ctx, owner, course, models.CourseUpdate{Title: &title}))

	got, err := env.courses.GetCourseByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Advanced Go", got.Title)
	assert.Equal(t, "Learn Go", got.Description)
}

func TestUpdateCourse_ByOtherUserIsFlagged(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signUp(t, "a@b.com", "secret")
	intruder := env.signUp(t, "c@d.com", "secret")
	ctx := context.Background()
	course, err := env.courses.CreateCourse(ctx, owner, CourseInput{Title: "Go", Description: "Learn Go"})
	require.NoError(t, err)

	title := "Hijacked"
	require.NoError(t, env.courses.UpdateCourse(ctx, intruder, course, models.CourseUpdate{Title: &title}))

	events, err := env.events.GetRecentEvents(ctx, 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.EventCourseUpdate, events[0].Type)
	assert.Equal(t, models.LevelWarn, events[0].Level)
	assert.Equal(t, intruder.ID, *events[0].ActorID)
}

func TestUpdateCourse_UnknownOwner(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signUp(t, "a@b.com", "secret")
	ctx := context.Background()
	course, err := env.courses.CreateCourse(ctx, owner, CourseInput{Title: "Go", Description: "Learn Go"})
	require.NoError(t, err)

	missing := "7b0c4a4e-58a2-4f7f-9a53-2f3f8c7a1f00"
	err = env.courses.UpdateCourse(ctx, owner, course, models.CourseUpdate{UserID: &missing})

	var verr *models.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestDeleteCourse(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signUp(t, "a@b.com", "secret")
	ctx := context.Background()
	course, err := env.courses.CreateCourse(ctx, owner, CourseInput{Title: "Go", Description: "Learn Go"})
	require.NoError(t, err)

	require.NoError(t, env.courses.DeleteCourse(ctx, owner, course))

	_, err = env.courses.GetCourseByID(ctx, course.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	err = env.courses.DeleteCourse(ctx, owner, course)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGetAllCourses_Empty(t *testing.T) {
	env := newTestEnv(t)

	courses, err := env.courses.GetAllCourses(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)
}
