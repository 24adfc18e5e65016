package metrics

import (
	"time"

	"pulse-server/internal/domain"
)

// RateCalculator turns successive cumulative network counters into bytes/sec.
// It owns the previous reading and is not safe for concurrent use; only the
// sampling cycle calls it.
type RateCalculator struct {
	last     domain.NetCounters
	lastTime time.Time
	primed   bool
}

func NewRateCalculator() *RateCalculator {
	return &RateCalculator{}
}

// Compute returns the throughput since the previous call and always replaces
// the stored baseline with curr. The first call, and any call where the clock
// did not advance, yields zero. Counter resets are floored at zero.
func (c *RateCalculator) Compute(curr domain.NetCounters, now time.Time) domain.NetRate {
	var rate domain.NetRate

	if c.primed {
		elapsed := now.Sub(c.lastTime).Seconds()
		if elapsed > 0 {
			rate.RX = perSecond(c.last.BytesRecv, curr.BytesRecv, elapsed)
			rate.TX = perSecond(c.last.BytesSent, curr.BytesSent, elapsed)
		}
	}

	c.last = curr
	c.lastTime = now
	c.primed = true

	return rate
}

func perSecond(prev, curr uint64, elapsed float64) float64 {
	if curr <= prev {
		return 0
	}
	return float64(curr-prev) / elapsed
}
