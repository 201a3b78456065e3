// Package scheduler runs periodic background jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DefaultRunTimeout bounds a single snapshot refresh.
const DefaultRunTimeout = 10 * time.Minute

// SnapshotRefresher records a health snapshot for every user.
type SnapshotRefresher interface {
	RefreshSnapshots(ctx context.Context) (int, error)
}

// Scheduler triggers snapshot refreshes on a cron schedule.
type Scheduler struct {
	cron      *cron.Cron
	refresher SnapshotRefresher
	log       logrus.FieldLogger
	timeout   time.Duration
}

// New registers the refresh job under schedule (standard 5-field spec or a
// descriptor such as "@daily"). The job does not run until Start.
func New(refresher SnapshotRefresher, schedule string, log logrus.FieldLogger) (*Scheduler, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithField("component", "scheduler")

	cronLog := cron.PrintfLogger(log)
	s := &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLog),
			cron.SkipIfStillRunning(cronLog),
		)),
		refresher: refresher,
		log:       log,
		timeout:   DefaultRunTimeout,
	}

	if _, err := s.cron.AddFunc(schedule, s.RunOnce); err != nil {
		return nil, fmt.Errorf("invalid snapshot schedule %q: %w", schedule, err)
	}
	return s, nil
}

// RunOnce performs a single refresh, logging the outcome.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	written, err := s.refresher.RefreshSnapshots(ctx)
	entry := s.log.WithFields(logrus.Fields{
		"written":  written,
		"duration": time.Since(start).String(),
	})
	if err != nil {
		entry.WithError(err).Error("snapshot refresh finished with errors")
		return
	}
	entry.Info("snapshot refresh finished")
}

// Start begins running the schedule in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started")
}

// Stop halts the schedule and waits for a running job until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
