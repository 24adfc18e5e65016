package metrics

import (
	"testing"
	"time"

	"pulse-server/internal/domain"

	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func TestRateCalculator_FirstCallIsZero(t *testing.T) {
	c := NewRateCalculator()

	rate := c.Compute(domain.NetCounters{BytesSent: 5000, BytesRecv: 9000}, t0)

	assert.Zero(t, rate.RX)
	assert.Zero(t, rate.TX)
}

func TestRateCalculator_BytesPerSecond(t *testing.T) {
	c := NewRateCalculator()

	c.Compute(domain.NetCounters{BytesSent: 0, BytesRecv: 1_000_000}, t0)
	rate := c.Compute(domain.NetCounters{BytesSent: 500_000, BytesRecv: 3_000_000}, t0.Add(2*time.Second))

	assert.InDelta(t, 1_000_000, rate.RX, 0.001)
	assert.InDelta(t, 250_000, rate.TX, 0.001)
}

func TestRateCalculator_ClockDidNotAdvance(t *testing.T) {
	c := NewRateCalculator()

	c.Compute(domain.NetCounters{BytesRecv: 100}, t0)
	same := c.Compute(domain.NetCounters{BytesRecv: 200}, t0)
	back := c.Compute(domain.NetCounters{BytesRecv: 300}, t0.Add(-time.Second))

	assert.Zero(t, same.RX)
	assert.Zero(t, back.RX)
}

func TestRateCalculator_BaselineAdvancesOnZeroElapsed(t *testing.T) {
	c := NewRateCalculator()

	c.Compute(domain.NetCounters{BytesRecv: 0}, t0)
	c.Compute(domain.NetCounters{BytesRecv: 1000}, t0)
	rate := c.Compute(domain.NetCounters{BytesRecv: 1500}, t0.Add(time.Second))

	// measured against the 1000 reading, not the first one
	assert.InDelta(t, 500, rate.RX, 0.001)
}

func TestRateCalculator_CounterResetFloorsAtZero(t *testing.T) {
	c := NewRateCalculator()

	c.Compute(domain.NetCounters{BytesSent: 10_000, BytesRecv: 10_000}, t0)
	rate := c.Compute(domain.NetCounters{BytesSent: 10, BytesRecv: 20}, t0.Add(time.Second))

	assert.Zero(t, rate.RX)
	assert.Zero(t, rate.TX)

	rate = c.Compute(domain.NetCounters{BytesSent: 110, BytesRecv: 220}, t0.Add(2*time.Second))
	assert.InDelta(t, 200, rate.RX, 0.001)
	assert.InDelta(t, 100, rate.TX, 0.001)
}
