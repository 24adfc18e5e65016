// Package workers runs housekeeping jobs beside the sampler.
package workers

import (
	"context"
	"time"

	"pulse-server/internal/config"
	"pulse-server/internal/logger"
)

type Worker interface {
	Name() string
	Run(ctx context.Context) error
}

type ManagerServices struct {
	Metrics FreshnessSource
}

type job struct {
	every  time.Duration
	worker Worker
}

type Manager struct {
	scheduler *Scheduler
	log       logger.Logger
	jobs      []job
}

func NewManager(scheduler *Scheduler, cfg *config.Config, log logger.Logger, services *ManagerServices) *Manager {
	m := &Manager{scheduler: scheduler, log: log}

	if services != nil && services.Metrics != nil {
		m.jobs = append(m.jobs, job{
			every:  staleCheckEvery(cfg.Interval),
			worker: NewStalenessWorker(services.Metrics, cfg.Interval, log),
		})
	}

	return m
}

// Start schedules every job and returns immediately; jobs stop with ctx.
func (m *Manager) Start(ctx context.Context) {
	for _, j := range m.jobs {
		m.scheduler.RunByDuration(ctx, j.every, j.worker)
	}
	m.log.Info("worker: manager started", "jobs", len(m.jobs))
}

// Jobs lists the scheduled worker names.
func (m *Manager) Jobs() []string {
	names := make([]string, 0, len(m.jobs))
	for _, j := range m.jobs {
		names = append(names, j.worker.Name())
	}
	return names
}
