package sweeper

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/nkhandel/taskpilot-api/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSweep(t *testing.T) {
	t.Parallel()

	t.Run("passes the current time to the store", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		var gotNow time.Time
		taskStore := &mocks.MockTaskStore{
			MarkOverdueFn: func(ctx context.Context, sweepTime time.Time) (int64, error) {
				gotNow = sweepTime
				return 3, nil
			},
		}

		s := New(taskStore, Config{Interval: time.Minute}, testLogger())
		s.timeFunc = func() time.Time { return now }

		s.Sweep(context.Background())

		assert.Equal(t, now, gotNow)
	})

	t.Run("store failure does not panic or stop", func(t *testing.T) {
		t.Parallel()

		taskStore := &mocks.MockTaskStore{Err: assert.AnError}
		s := New(taskStore, Config{Interval: time.Minute}, testLogger())

		s.Sweep(context.Background())
		s.Sweep(context.Background())
	})

	t.Run("second sweep with same clock is a no-op", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

		// Fake store: two overdue tasks fail on the first pass, none on
		// repeat passes with the same clock reading.
		var mu sync.Mutex
		swept := false
		taskStore := &mocks.MockTaskStore{
			MarkOverdueFn: func(ctx context.Context, sweepTime time.Time) (int64, error) {
				mu.Lock()
				defer mu.Unlock()
				if swept {
					return 0, nil
				}
				swept = true
				return 2, nil
			},
		}

		s := New(taskStore, Config{Interval: time.Minute}, testLogger())
		s.timeFunc = func() time.Time { return now }

		s.Sweep(context.Background())
		s.Sweep(context.Background())

		mu.Lock()
		defer mu.Unlock()
		assert.True(t, swept)
	})
}

func TestStartStop(t *testing.T) {
	t.Parallel()

	t.Run("sweeps immediately on start", func(t *testing.T) {
		t.Parallel()

		sweeps := make(chan struct{}, 8)
		taskStore := &mocks.MockTaskStore{
			MarkOverdueFn: func(ctx context.Context, sweepTime time.Time) (int64, error) {
				select {
				case sweeps <- struct{}{}:
				default:
				}
				return 0, nil
			},
		}

		s := New(taskStore, Config{Interval: time.Hour}, testLogger())
		s.Start()
		defer s.Stop()

		select {
		case <-sweeps:
		case <-time.After(2 * time.Second):
			t.Fatal("expected an immediate sweep after Start")
		}
	})

	t.Run("stop waits for the loop to exit", func(t *testing.T) {
		t.Parallel()

		taskStore := &mocks.MockTaskStore{}
		s := New(taskStore, Config{Interval: 10 * time.Millisecond}, testLogger())

		s.Start()
		time.Sleep(50 * time.Millisecond)
		s.Stop()

		// A second Stop is harmless.
		s.Stop()
	})

	t.Run("zero interval falls back to one minute", func(t *testing.T) {
		t.Parallel()

		s := New(&mocks.MockTaskStore{}, Config{}, testLogger())
		require.Equal(t, time.Minute, s.interval)
	})
}
