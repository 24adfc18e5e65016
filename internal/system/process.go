package system

import (
	"context"
	"fmt"
	"time"

	"pulse-server/internal/domain"

	"github.com/shirou/gopsutil/v4/process"
)

type cpuSample struct {
	busy float64
	at   time.Time
}

// ProcessTracker lists processes and derives CPU% from the change in CPU time
// since the previous listing, the same way top does. A process seen for the
// first time reports 0%.
type ProcessTracker struct {
	prev map[int32]cpuSample
	now  func() time.Time
}

func NewProcessTracker(now func() time.Time) *ProcessTracker {
	return &ProcessTracker{
		prev: make(map[int32]cpuSample),
		now:  now,
	}
}

func (t *ProcessTracker) List(ctx context.Context) ([]domain.RawProcess, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	now := t.now()
	seen := make(map[int32]cpuSample, len(procs))
	out := make([]domain.RawProcess, 0, len(procs))

	for _, p := range procs {
		rp := domain.RawProcess{PID: p.Pid}

		name, err := p.NameWithContext(ctx)
		if err != nil {
			rp.Gone = true
			out = append(out, rp)
			continue
		}
		rp.Name = name

		if times, err := p.TimesWithContext(ctx); err == nil {
			curr := cpuSample{busy: times.User + times.System, at: now}
			seen[p.Pid] = curr
			rp.CPUPercent = t.percent(p.Pid, curr)
		}

		if m, err := p.MemoryPercentWithContext(ctx); err == nil {
			v := float64(m)
			rp.MemPercent = &v
		}

		out = append(out, rp)
	}

	t.prev = seen
	return out, nil
}

func (t *ProcessTracker) percent(pid int32, curr cpuSample) *float64 {
	var pct float64

	if prev, ok := t.prev[pid]; ok {
		wall := curr.at.Sub(prev.at).Seconds()
		if wall > 0 && curr.busy >= prev.busy {
			pct = (curr.busy - prev.busy) / wall * 100
		}
	}

	return &pct
}
