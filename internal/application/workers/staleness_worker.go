package workers

import (
	"context"
	"time"

	"pulse-server/internal/logger"
)

// stalledAfter is how many sampling intervals may pass without a new
// snapshot before the sampler is reported as stalled.
const stalledAfter = 5

type FreshnessSource interface {
	Age(now time.Time) (time.Duration, bool)
}

// StalenessWorker warns when the sampler has not published for a while,
// which usually means a provider call is hanging.
type StalenessWorker struct {
	src      FreshnessSource
	interval time.Duration
	log      logger.Logger
	now      func() time.Time

	stalled bool
}

func NewStalenessWorker(src FreshnessSource, interval time.Duration, log logger.Logger) *StalenessWorker {
	return &StalenessWorker{
		src:      src,
		interval: interval,
		log:      log,
		now:      time.Now,
	}
}

func (w *StalenessWorker) Name() string {
	return "metrics_staleness"
}

func (w *StalenessWorker) Run(ctx context.Context) error {
	age, ok := w.src.Age(w.now())
	if !ok {
		w.log.Debug("worker: no sample yet", "name", w.Name())
		return nil
	}

	limit := w.interval * stalledAfter
	switch {
	case age > limit && !w.stalled:
		w.stalled = true
		w.log.Warn("sampler stalled", "last_sample_age", age, "limit", limit)
	case age <= limit && w.stalled:
		w.stalled = false
		w.log.Info("sampler recovered", "last_sample_age", age)
	}

	return nil
}

// Stalled reports the state observed by the last Run.
func (w *StalenessWorker) Stalled() bool {
	return w.stalled
}

func staleCheckEvery(interval time.Duration) time.Duration {
	return max(interval*stalledAfter, time.Second)
}
