// Package jobs runs recurring background tasks on fixed intervals. Each task
// run gets its own ID for log correlation; a failing run is logged and the
// schedule keeps going.
package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/vibeapi/internal/logger"
)

// Task is one unit of recurring work.
type Task struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler runs registered tasks until its context is cancelled.
type Scheduler struct {
	log   *logger.Logger
	tasks []Task

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

// NewScheduler creates an empty scheduler.
func NewScheduler(log *logger.Logger) *Scheduler {
	return &Scheduler{log: log.WithComponent("jobs")}
}

// Register adds a task. Must be called before Start.
func (s *Scheduler) Register(task Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
}

// Start launches one goroutine per task. Each task waits a full interval
// before its first run.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	ctx, s.cancel = context.WithCancel(ctx)
	for _, task := range s.tasks {
		s.wg.Add(1)
		go s.loop(ctx, task)
	}

	s.log.Info("Scheduler started", map[string]interface{}{
		"tasks": len(s.tasks),
	})
}

// Stop cancels all task loops and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
	s.log.Info("Scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context, task Task) {
	defer s.wg.Done()

	ticker := time.NewTicker(task.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx, task)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, task Task) {
	runID := uuid.New().String()
	start := time.Now()

	s.log.Debug("Task run starting", map[string]interface{}{
		"task":   task.Name,
		"run_id": runID,
	})

	if err := task.Run(ctx); err != nil {
		s.log.Error("Task run failed", map[string]interface{}{
			"task":     task.Name,
			"run_id":   runID,
			"duration": time.Since(start).String(),
			"error":    err.Error(),
		})
		return
	}

	s.log.Info("Task run completed", map[string]interface{}{
		"task":     task.Name,
		"run_id":   runID,
		"duration": time.Since(start).String(),
	})
}
