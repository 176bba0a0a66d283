package scheduler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

var errNoInterval = errors.New("scheduler: interval must be positive")

// Runner is a single unit of scheduled work.
type Runner interface {
	Run(ctx context.Context) error
}

// Scheduler runs a job on a fixed interval, one run at a time.
type Scheduler struct {
	scheduler *gocron.Scheduler
	job       Runner
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler. A positive timeout bounds each run.
func New(interval, timeout time.Duration, job Runner) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		job:       job,
		interval:  interval,
		timeout:   timeout,
	}
}

// Start schedules the job, runs it once immediately, and starts the underlying
// scheduler. A run still in progress when the next tick fires causes that
// tick to be skipped.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		return errNoInterval
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.runOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) runOnce() {
	log.Println("scheduler: running weather archive job")

	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if err := s.job.Run(ctx); err != nil {
		log.Printf("scheduler: run failed: %v", err)
		return
	}
	log.Println("scheduler: completed weather archive job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
