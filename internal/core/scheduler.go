package core

import (
	"context"
	"time"

	"pulse-server/internal/domain"
	"pulse-server/internal/logger"
)

// Scheduler drives one sample per interval and hands each completed
// snapshot to the sink. A slow sample delays the next tick; ticks missed in
// the meantime are dropped by the ticker rather than queued.
type Scheduler struct {
	interval time.Duration
	log      logger.Logger
	sample   func(context.Context) (domain.Snapshot, bool)
	sink     func(domain.Snapshot)
}

// NewScheduler takes a sample func that reports whether its snapshot was
// committed; only committed snapshots reach sink.
func NewScheduler(interval time.Duration, log logger.Logger, sample func(context.Context) (domain.Snapshot, bool), sink func(domain.Snapshot)) *Scheduler {
	return &Scheduler{interval: interval, log: log, sample: sample, sink: sink}
}

// Start blocks until ctx is cancelled. The first tick runs immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("scheduler started", "interval", s.interval)

	s.tick(ctx)

	for {
		select {
		case <-ticker.C:
			s.tick(ctx)
		case <-ctx.Done():
			s.log.Info("scheduler stopping")
			return nil
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if s.sample == nil || s.sink == nil {
		return
	}
	if ctx.Err() != nil {
		return
	}

	start := time.Now()
	m, committed := s.sample(ctx)

	// a sample cut short by shutdown is never published
	if !committed {
		s.log.Debug("scheduler: sample abandoned on shutdown")
		return
	}

	s.sink(m)
	s.log.Debug("scheduler: tick finished", "took", time.Since(start))
}
