package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIPv4(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"192.168.1.10/24", "192.168.1.10", true},
		{"10.0.0.2", "10.0.0.2", true},
		{"fe80::1/64", "", false},
		{"::1", "", false},
		{"not-an-ip", "", false},
	}

	for _, tt := range tests {
		got, ok := ipv4(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestProcessTracker_Percent(t *testing.T) {
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tr := NewProcessTracker(func() time.Time { return at })

	first := tr.percent(7, cpuSample{busy: 10, at: at})
	assert.Zero(t, *first, "first sighting")

	tr.prev[7] = cpuSample{busy: 10, at: at}
	got := tr.percent(7, cpuSample{busy: 10.5, at: at.Add(time.Second)})
	assert.InDelta(t, 50, *got, 0.0001)

	// pid reuse with a lower cpu time
	got = tr.percent(7, cpuSample{busy: 1, at: at.Add(time.Second)})
	assert.Zero(t, *got)
}
