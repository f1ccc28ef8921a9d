package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/isdelr/course-api-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventService struct {
	pruned    atomic.Int32
	olderThan atomic.Int64
}

func (f *fakeEventService) CreateEvent(context.Context, string, string, string, *string, *string) error {
	return nil
}

func (f *fakeEventService) GetRecentEvents(context.Context, int) ([]models.Event, error) {
	return nil, nil
}

func (f *fakeEventService) PruneEvents(_ context.Context, olderThan time.Duration) (int64, error) {
	f.pruned.Add(1)
	f.olderThan.Store(int64(olderThan))
	return 3, nil
}

func TestNewScheduler_InvalidSchedule(t *testing.T) {
	_, err := NewScheduler(&fakeEventService{}, "not a schedule", time.Hour)
	assert.Error(t, err)
}

func TestRunOnce_UsesRetention(t *testing.T) {
	svc := &fakeEventService{}
	s, err := NewScheduler(svc, "@hourly", 48*time.Hour)
	require.NoError(t, err)

	deleted, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	assert.Equal(t, int64(48*time.Hour), svc.olderThan.Load())
}

func TestStart_PrunesImmediately(t *testing.T) {
	svc := &fakeEventService{}
	s, err := NewScheduler(svc, "@daily", time.Hour)
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool { return svc.pruned.Load() >= 1 }, time.Second, 10*time.Millisecond)
}
