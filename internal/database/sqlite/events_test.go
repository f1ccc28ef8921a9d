package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/isdelr/course-api-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRepository_CreateAndListRecent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	actor := "actor-1"

	for i, typ := range []string{models.EventUserCreate, models.EventCourseCreate, models.EventCourseDelete} {
		require.NoError(t, db.Events().Create(ctx, &models.Event{
			Type:      typ,
			Level:     "info",
			Message:   typ,
			ActorID:   &actor,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	events, err := db.Events().ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, models.EventCourseDelete, events[0].Type)
	assert.Equal(t, models.EventCourseCreate, events[1].Type)
	require.NotNil(t, events[0].ActorID)
	assert.Equal(t, actor, *events[0].ActorID)
	assert.Nil(t, events[0].CourseID)
	assert.True(t, events[0].CreatedAt.Equal(base.Add(2*time.Minute)))
}

func TestEventRepository_DeleteBefore(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, db.Events().Create(ctx, &models.Event{Type: "old", Level: "info", Message: "m", CreatedAt: now.Add(-48 * time.Hour)}))
	require.NoError(t, db.Events().Create(ctx, &models.Event{Type: "new", Level: "info", Message: "m", CreatedAt: now}))

	n, err := db.Events().DeleteBefore(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	events, err := db.Events().ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "new", events[0].Type)
}
