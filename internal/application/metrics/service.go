// Package metrics
package metrics

import (
	"time"

	"pulse-server/internal/config"
	"pulse-server/internal/domain"
	"pulse-server/internal/logger"
	"pulse-server/internal/storage/history"
	"pulse-server/internal/storage/snapshot"
)

// Service is the read side of the sampler. Every method is safe to call from
// any number of goroutines and never waits on a sampling cycle.
type Service struct {
	cfg     *config.Config
	latest  *snapshot.MetricsStore
	history *history.Store
	log     logger.Logger
}

func NewService(cfg *config.Config, hist *history.Store, log logger.Logger) *Service {
	return &Service{
		cfg:     cfg,
		latest:  snapshot.NewMetricsStore(),
		history: hist,
		log:     log,
	}
}

// Publish replaces the latest snapshot. It is the scheduler's sink.
func (s *Service) Publish(m domain.Snapshot) {
	first := s.latest.Version() == 0
	s.latest.Set(m)

	if first {
		s.log.Info("metrics: first sample published", "state", domain.StateRunning)
	}
}

func (s *Service) Latest() (domain.Snapshot, error) {
	m, ok := s.latest.Load()
	if !ok {
		return domain.Snapshot{}, domain.ErrNotSampled
	}
	return m, nil
}

func (s *Service) History() domain.History {
	return s.history.Snapshot()
}

func (s *Service) Series(id domain.SeriesID) (any, error) {
	return s.history.Snapshot().Series(id)
}

func (s *Service) Status() domain.ServiceStatus {
	m, ticks, ok := s.latest.Current()

	status := domain.ServiceStatus{
		State:    domain.StateWarmingUp,
		Ticks:    ticks,
		Interval: s.cfg.Interval.String(),
		Capacity: s.history.Capacity(),
	}

	if ok {
		at := m.Timestamp
		status.State = domain.StateRunning
		status.LastSampleAt = &at
	}

	return status
}

// Age reports how long ago the latest snapshot was taken.
func (s *Service) Age(now time.Time) (time.Duration, bool) {
	m, ok := s.latest.Load()
	if !ok {
		return 0, false
	}
	return now.Sub(m.Timestamp), true
}
