package scheduler

import (
	"errors"
	"testing"
	"time"
)

func TestSchedulerRunsJob(t *testing.T) {
	ran := make(chan struct{}, 3)
	s := NewScheduler(10*time.Millisecond, func() error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}, nil)

	s.Start()
	defer s.Stop()

	// The first run happens immediately, a second on the next tick
	for i := 0; i < 2; i++ {
		select {
		case <-ran:
		case <-time.After(time.Second):
			t.Fatalf("job did not run (got %d runs)", i)
		}
	}
}

func TestSchedulerFailingJob(t *testing.T) {
	ran := make(chan struct{}, 3)
	s := NewScheduler(10*time.Millisecond, func() error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return errors.New("boom")
	}, nil)

	s.Start()
	defer s.Stop()

	// A failing job with no notifier must not stop the loop
	for i := 0; i < 2; i++ {
		select {
		case <-ran:
		case <-time.After(time.Second):
			t.Fatalf("job did not keep running after failure (got %d runs)", i)
		}
	}
}

func TestSchedulerStop(t *testing.T) {
	s := NewScheduler(time.Hour, func() error { return nil }, nil)
	s.Start()
	s.Stop()

	select {
	case <-s.ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not cancelled after Stop()")
	}
}
