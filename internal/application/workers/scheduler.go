package workers

import (
	"context"
	"fmt"
	"time"

	"pulse-server/internal/logger"
)

type Scheduler struct {
	log logger.Logger
}

func NewScheduler(log logger.Logger) *Scheduler {
	return &Scheduler{log: log}
}

// RunByDuration runs worker every dur in its own goroutine until ctx is
// cancelled. A panicking run is logged and the schedule carries on.
func (s *Scheduler) RunByDuration(ctx context.Context, dur time.Duration, worker Worker) {
	go func() {
		ticker := time.NewTicker(dur)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				start := time.Now()
				if err := s.runOnce(ctx, worker); err != nil {
					s.log.Error("worker failed", "name", worker.Name(), "error", err)
				}
				s.log.Debug("worker finished", "name", worker.Name(), "took", time.Since(start))
			}
		}
	}()
}

func (s *Scheduler) runOnce(ctx context.Context, worker Worker) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("panic: %v", v)
		}
	}()
	return worker.Run(ctx)
}
