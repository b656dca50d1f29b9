package cleanup

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// IdleReaper is the part of the session manager the worker needs.
type IdleReaper interface {
	CleanupIdle(maxIdle time.Duration) int
	Count() int
}

type Worker struct {
	Sessions IdleReaper
	Interval time.Duration
	MaxIdle  time.Duration
	logger   *zap.SugaredLogger
}

func NewWorker(sessions IdleReaper, interval, maxIdle time.Duration, logger *zap.SugaredLogger) *Worker {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Worker{Sessions: sessions, Interval: interval, MaxIdle: maxIdle, logger: logger}
}

// Start runs the cleanup on a ticker until ctx is cancelled. The returned
// channel closes once the worker has stopped.
func (w *Worker) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	ticker := time.NewTicker(w.Interval)

	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("[CLEANUP] Background worker stopped")
				return
			case <-ticker.C:
				w.runCleanup()
			}
		}
	}()

	w.logger.Infow("[CLEANUP] Background worker started", "interval", w.Interval, "maxIdle", w.MaxIdle)
	return done
}

// runCleanup executes the actual cleanup logic
func (w *Worker) runCleanup() {
	removed := w.Sessions.CleanupIdle(w.MaxIdle)
	if removed > 0 {
		w.logger.Infow("[CLEANUP] Removed idle game sessions", "removed", removed, "remaining", w.Sessions.Count())
	}
}
