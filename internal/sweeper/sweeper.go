// Package sweeper runs the periodic deadline sweep that fails overdue
// tasks. The sweep is a single batch statement; running it twice with the
// same clock reading changes nothing on the second pass.
package sweeper

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nkhandel/taskpilot-api/internal/store"
)

// Config holds configuration for the sweeper.
type Config struct {
	// Interval is how often the sweep runs. If zero, defaults to one
	// minute.
	Interval time.Duration
}

// Sweeper periodically marks overdue Upcoming and Ongoing tasks as Failed.
type Sweeper struct {
	taskStore  store.TaskStore
	interval   time.Duration
	logger     *slog.Logger
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup

	// timeFunc returns the current time. Injectable for testing.
	timeFunc func() time.Time
}

// New creates a new Sweeper.
func New(taskStore store.TaskStore, config Config, logger *slog.Logger) *Sweeper {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for Sweeper")
	}

	interval := config.Interval
	if interval <= 0 {
		interval = time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Sweeper{
		taskStore:  taskStore,
		interval:   interval,
		logger:     logger.With(slog.String("component", "sweeper")),
		ctx:        ctx,
		cancelFunc: cancel,
		timeFunc:   time.Now,
	}
}

// Start launches the sweep loop in a background goroutine. The first sweep
// runs immediately so a restart does not leave overdue tasks unswept for a
// full interval.
func (s *Sweeper) Start() {
	s.wg.Add(1)
	go s.run()

	s.logger.Info("deadline sweeper started", "interval", s.interval.String())
}

// Stop cancels the sweep loop and waits for an in-flight sweep to finish.
func (s *Sweeper) Stop() {
	s.cancelFunc()
	s.wg.Wait()

	s.logger.Info("deadline sweeper stopped")
}

// run executes sweeps on a fixed ticker until the context is cancelled.
func (s *Sweeper) run() {
	defer s.wg.Done()

	s.Sweep(s.ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(s.ctx)
		}
	}
}

// Sweep runs a single sweep pass: every Upcoming or Ongoing task whose
// deadline has passed becomes Failed. A failed sweep is logged and the loop
// waits for the next tick; it never stops the application.
func (s *Sweeper) Sweep(ctx context.Context) {
	now := s.timeFunc()

	count, err := s.taskStore.MarkOverdue(ctx, now)
	if err != nil {
		s.logger.Error("deadline sweep failed", "error", err)
		return
	}

	if count > 0 {
		s.logger.Info("deadline sweep marked overdue tasks as failed",
			"count", count)
	} else {
		s.logger.Debug("deadline sweep found no overdue tasks")
	}
}
