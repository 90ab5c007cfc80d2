package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Scheduler runs one named background task at a fixed interval. A panicking run is
// logged and the schedule continues.
type Scheduler struct {
	name     string
	interval time.Duration
	task     func(context.Context)
	logger   *zap.Logger

	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	runs    atomic.Int64
}

// New creates a scheduler for task. A nil logger disables logging.
func New(name string, interval time.Duration, task func(context.Context), logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		name:     name,
		interval: interval,
		task:     task,
		logger:   logger.With(zap.String("task", name)),
	}
}

// Start begins executing the task at the configured interval. A non-positive
// interval or a second Start is ignored.
func (s *Scheduler) Start(ctx context.Context, firstRunImmediately bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running || s.interval <= 0 {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.running = true
	s.logger.Debug("scheduler started", zap.Duration("interval", s.interval))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		if firstRunImmediately {
			s.run(ctx)
		}

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.run(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (s *Scheduler) run(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("scheduled task panicked", zap.Any("panic", r))
		}
	}()

	s.runs.Add(1)
	s.task(ctx)
}

// Stop terminates the periodic task execution and waits for a running task to return
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.running = false
	s.logger.Debug("scheduler stopped", zap.Int64("runs", s.runs.Load()))
}

// IsRunning returns true if the schedule is active
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Runs returns how many times the task has been invoked
func (s *Scheduler) Runs() int64 {
	return s.runs.Load()
}

// Name returns the task name
func (s *Scheduler) Name() string {
	return s.name
}
