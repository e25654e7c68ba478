package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kbukum/vibeapi/internal/logger"
)

func newTestScheduler() *Scheduler {
	return NewScheduler(logger.NewDefault("test"))
}

func waitForCount(t *testing.T, counter *atomic.Int64, want int64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if counter.Load() >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected at least %d runs, got %d", want, counter.Load())
}

func TestScheduler_RunsTaskOnInterval(t *testing.T) {
	s := newTestScheduler()
	var runs atomic.Int64
	s.Register(Task{
		Name:     "counter",
		Interval: 10 * time.Millisecond,
		Run: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	})

	s.Start(context.Background())
	defer s.Stop()

	waitForCount(t, &runs, 3)
}

func TestScheduler_FailingTaskKeepsRunning(t *testing.T) {
	s := newTestScheduler()
	var runs atomic.Int64
	s.Register(Task{
		Name:     "flaky",
		Interval: 10 * time.Millisecond,
		Run: func(ctx context.Context) error {
			runs.Add(1)
			return errors.New("boom")
		},
	})

	s.Start(context.Background())
	defer s.Stop()

	waitForCount(t, &runs, 3)
}

func TestScheduler_StopHaltsTasks(t *testing.T) {
	s := newTestScheduler()
	var runs atomic.Int64
	s.Register(Task{
		Name:     "counter",
		Interval: 10 * time.Millisecond,
		Run: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	})

	s.Start(context.Background())
	waitForCount(t, &runs, 1)
	s.Stop()

	after := runs.Load()
	time.Sleep(50 * time.Millisecond)
	if got := runs.Load(); got != after {
		t.Errorf("expected no runs after stop, got %d more", got-after)
	}
}

func TestScheduler_RunsMultipleTasks(t *testing.T) {
	s := newTestScheduler()
	var a, b atomic.Int64
	s.Register(Task{Name: "a", Interval: 10 * time.Millisecond, Run: func(ctx context.Context) error {
		a.Add(1)
		return nil
	}})
	s.Register(Task{Name: "b", Interval: 10 * time.Millisecond, Run: func(ctx context.Context) error {
		b.Add(1)
		return nil
	}})

	s.Start(context.Background())
	defer s.Stop()

	waitForCount(t, &a, 2)
	waitForCount(t, &b, 2)
}

func TestScheduler_StartTwiceIsNoop(t *testing.T) {
	s := newTestScheduler()
	var runs atomic.Int64
	s.Register(Task{
		Name:     "counter",
		Interval: 10 * time.Millisecond,
		Run: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	})

	ctx := context.Background()
	s.Start(ctx)
	s.Start(ctx)
	defer s.Stop()

	waitForCount(t, &runs, 2)
}
