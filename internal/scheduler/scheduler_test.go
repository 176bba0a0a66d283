package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingJob struct {
	runs atomic.Int32
	err  error
}

func (j *countingJob) Run(ctx context.Context) error {
	j.runs.Add(1)
	return j.err
}

// TestSchedulerRunsImmediatelyAndKeepsGoing verifies a failing run does not
// stop later runs.
func TestSchedulerRunsImmediatelyAndKeepsGoing(t *testing.T) {
	job := &countingJob{err: errors.New("boom")}
	s := New(50*time.Millisecond, 0, job)
	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for job.runs.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if n := job.runs.Load(); n < 2 {
		t.Fatalf("expected at least 2 runs, got %d", n)
	}
}

func TestSchedulerRejectsZeroInterval(t *testing.T) {
	s := New(0, 0, &countingJob{})
	if err := s.Start(); !errors.Is(err, errNoInterval) {
		t.Fatalf("expected errNoInterval, got %v", err)
	}
}
