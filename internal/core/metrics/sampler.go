// Package metrics
package metrics

import (
	"context"
	"maps"
	"time"

	"pulse-server/internal/core"
	"pulse-server/internal/domain"
	"pulse-server/internal/logger"
	"pulse-server/internal/storage/history"
)

type Options struct {
	TopProcesses   int
	ProcessNameMax int
	Now            func() time.Time
}

// Sampler runs one sampling cycle: read the providers, derive rates, build a
// Snapshot and append the tick to the history store. Provider failures only
// blank the affected fields.
type Sampler struct {
	metrics domain.MetricsProvider
	thermal domain.ThermalProvider
	rate    *RateCalculator
	history *history.Store
	log     logger.Logger

	topProcesses   int
	processNameMax int
	now            func() time.Time
}

func NewSampler(mp domain.MetricsProvider, tp domain.ThermalProvider, rate *RateCalculator, hist *history.Store, log logger.Logger, opts Options) *Sampler {
	if opts.TopProcesses <= 0 {
		opts.TopProcesses = 10
	}
	if opts.ProcessNameMax <= 0 {
		opts.ProcessNameMax = 30
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Sampler{
		metrics:        mp,
		thermal:        tp,
		rate:           rate,
		history:        hist,
		log:            log,
		topProcesses:   opts.TopProcesses,
		processNameMax: opts.ProcessNameMax,
		now:            opts.Now,
	}
}

// Collect runs one cycle. The flag reports whether the tick was committed to
// the history store; a cycle cut short by ctx is not, and its snapshot must
// not be published either.
func (s *Sampler) Collect(ctx context.Context) (domain.Snapshot, bool) {
	now := s.now()

	raw := s.metrics.Read(ctx)
	for source, err := range raw.Unavailable {
		if source == domain.SourceFrequency {
			s.log.Debug("collector", "name", source, "error", err)
			continue
		}
		s.log.Warn("collector", "name", source, "error", err)
	}

	thermal := s.readThermal(ctx)

	var rate domain.NetRate
	if raw.Available(domain.SourceNetwork) {
		rate = s.rate.Compute(raw.Network, now)
	}

	snap := s.build(now, raw, thermal, rate)

	if ctx.Err() != nil {
		return snap, false
	}

	tick := domain.TickPoints{
		CPU:     domain.HistoryPoint{Time: now, Value: snap.CPU.Percent},
		Memory:  domain.HistoryPoint{Time: now, Value: snap.Memory.Percent},
		Network: domain.NetworkPoint{Time: now, RX: rate.RX, TX: rate.TX},
	}
	if snap.Temperature != nil {
		tick.Temperature = &domain.HistoryPoint{Time: now, Value: *snap.Temperature}
	}
	s.history.AppendTick(tick)

	return snap, true
}

func (s *Sampler) readThermal(ctx context.Context) domain.ThermalReading {
	if s.thermal == nil {
		return domain.ThermalReading{}
	}

	reading, err := s.thermal.Read(ctx)
	if err != nil {
		s.log.Debug("collector", "name", s.thermal.Name(), "error", err)
		return domain.ThermalReading{}
	}
	return reading
}

func (s *Sampler) build(now time.Time, raw domain.RawMetrics, thermal domain.ThermalReading, rate domain.NetRate) domain.Snapshot {
	snap := domain.Snapshot{
		Timestamp: now,
		CPU: domain.CPUMetric{
			Percent:   raw.CPUPercent,
			PerCore:   append(make([]float64, 0, len(raw.PerCore)), raw.PerCore...),
			Frequency: copyFloat(raw.FrequencyMHz),
			Count:     raw.CoreCount,
		},
		Memory: domain.MemoryMetric{
			Total:      raw.MemTotal,
			Used:       raw.MemUsed,
			Available:  raw.MemAvailable,
			Percent:    raw.MemPercent,
			TotalHuman: core.FormatBytes(float64(raw.MemTotal)),
			UsedHuman:  core.FormatBytes(float64(raw.MemUsed)),
		},
		Swap: domain.SwapMetric{
			Total:   raw.SwapTotal,
			Used:    raw.SwapUsed,
			Percent: raw.SwapPercent,
		},
		Disk: domain.DiskMetric{
			Mountpoint: raw.DiskMount,
			Total:      raw.DiskTotal,
			Used:       raw.DiskUsed,
			Free:       raw.DiskFree,
			Percent:    raw.DiskPercent,
			TotalHuman: core.FormatBytes(float64(raw.DiskTotal)),
			UsedHuman:  core.FormatBytes(float64(raw.DiskUsed)),
			FreeHuman:  core.FormatBytes(float64(raw.DiskFree)),
		},
		Network: domain.NetworkMetric{
			BytesSent:      raw.Network.BytesSent,
			BytesRecv:      raw.Network.BytesRecv,
			RXRate:         rate.RX,
			TXRate:         rate.TX,
			BytesSentHuman: core.FormatBytes(float64(raw.Network.BytesSent)),
			BytesRecvHuman: core.FormatBytes(float64(raw.Network.BytesRecv)),
			RXRateHuman:    core.FormatRate(rate.RX),
			TXRateHuman:    core.FormatRate(rate.TX),
			Interfaces:     make(map[string]string, len(raw.Interfaces)),
		},
		Temperature:   copyFloat(thermal.Temperature),
		UptimeSeconds: uint64(raw.Uptime / time.Second),
		Uptime:        core.FormatUptime(raw.Uptime),
		LoadAvg:       raw.LoadAvg,
		Processes:     RankProcesses(raw.Processes, s.topProcesses, s.processNameMax),
	}
	maps.Copy(snap.Network.Interfaces, raw.Interfaces)

	if thermal.Throttle != nil {
		t := *thermal.Throttle
		snap.Throttle = &t
	}

	return snap
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
