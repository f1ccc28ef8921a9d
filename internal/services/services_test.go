package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/isdelr/course-api-be/internal/auth"
	"github.com/isdelr/course-api-be/internal/database"
	"github.com/isdelr/course-api-be/internal/models"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu       sync.Mutex
	messages [][]byte
	topics   [][]string
}

func (p *recordingPublisher) Publish(data []byte, topics ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, data)
	p.topics = append(p.topics, topics)
}

type testEnv struct {
	store     *database.Store
	publisher *recordingPublisher
	events    *EventService
	users     *UserService
	courses   *CourseService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	store, err := database.OpenSQLite(ctx, filepath.Join(t.TempDir(), "services.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close(ctx) })

	publisher := &recordingPublisher{}
	events := NewEventService(store.Events, publisher)
	return &testEnv{
		store:     store,
		publisher: publisher,
		events:    events,
		users:     NewUserService(store.Users, auth.NewBcryptHasher(4), events),
		courses:   NewCourseService(store.Courses, store.Users, events),
	}
}

func (e *testEnv) signUp(t *testing.T, email, password string) *models.User {
	t.Helper()
	user, err := e.users.CreateUser(context.Background(), UserInput{
		FirstName:    "Joe",
		LastName:     "Smith",
		EmailAddress: email,
		Password:     password,
	})
	require.NoError(t, err)
	return user
}
