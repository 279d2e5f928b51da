package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/RecipeCraft_Go/internal/logger"
)

// Log messages
const (
	LogMsgJobFailed    = "Scheduled job failed"
	LogMsgJobScheduled = "Job scheduled"
	LogMsgStopped      = "Scheduler stopped"
)

// Job is a unit of work run on a fixed interval
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a function to Job
type JobFunc func(ctx context.Context) error

// Process calls f(ctx)
func (f JobFunc) Process(ctx context.Context) error {
	return f(ctx)
}

// Scheduler runs jobs at fixed intervals. Each job has its own goroutine, so
// runs of the same job never overlap.
type Scheduler struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a scheduler whose jobs receive contexts derived from ctx
func New(ctx context.Context) *Scheduler {
	ctx, cancel := context.WithCancel(ctx)
	return &Scheduler{ctx: ctx, cancel: cancel}
}

// Schedule registers a job to run every interval until Stop
func (s *Scheduler) Schedule(name string, interval time.Duration, job Job) {
	log := logger.FromContext(s.ctx)
	log.Info(LogMsgJobScheduled, "job", name, "interval", interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := job.Process(s.ctx); err != nil {
					log.Error(LogMsgJobFailed, "job", name, "error", err)
				}
			case <-s.ctx.Done():
				return
			}
		}
	}()
}

// Stop cancels every job and waits for in-flight runs to return
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	logger.FromContext(s.ctx).Info(LogMsgStopped)
}
