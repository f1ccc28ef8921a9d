// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/isdelr/course-api-be/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const jobTimeout = time.Minute

// Scheduler prunes old activity events on a cron schedule.
type Scheduler struct {
	eventSvc  services.EventServiceProvider
	retention time.Duration
	cron      *cron.Cron
}

// NewScheduler creates a scheduler that deletes events older than retention
// whenever schedule fires. Standard cron expressions and descriptors such as
// @hourly are accepted.
func NewScheduler(eventSvc services.EventServiceProvider, schedule string, retention time.Duration) (*Scheduler, error) {
	s := &Scheduler{
		eventSvc:  eventSvc,
		retention: retention,
		cron:      cron.New(cron.WithLogger(cronLogger{}), cron.WithChain(cron.SkipIfStillRunning(cronLogger{}))),
	}
	if _, err := s.cron.AddFunc(schedule, s.pruneEvents); err != nil {
		return nil, fmt.Errorf("invalid event prune schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start runs one prune immediately and then starts the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	log.Info().Dur("retention", s.retention).Msg("Starting background scheduler")
	go s.pruneEvents()
	s.cron.Start()
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("Stopped background scheduler")
}

// RunOnce prunes events immediately.
func (s *Scheduler) RunOnce(ctx context.Context) (int64, error) {
	return s.eventSvc.PruneEvents(ctx, s.retention)
}

func (s *Scheduler) pruneEvents() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	deleted, err := s.RunOnce(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Scheduler: failed to prune events")
		return
	}
	if deleted > 0 {
		log.Info().Int64("deleted", deleted).Msg("Scheduler: pruned old events")
	}
}

// cronLogger routes cron's own logging through zerolog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
