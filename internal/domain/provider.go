package domain

import (
	"context"
	"time"
)

// Sources reported by a MetricsProvider when part of a reading failed.
const (
	SourceCPU        = "cpu"
	SourceFrequency  = "frequency"
	SourceMemory     = "memory"
	SourceSwap       = "swap"
	SourceDisk       = "disk"
	SourceNetwork    = "network"
	SourceInterfaces = "interfaces"
	SourceLoad       = "load"
	SourceUptime     = "uptime"
	SourceProcesses  = "processes"
)

type MetricsProvider interface {
	Read(ctx context.Context) RawMetrics
}

type ThermalProvider interface {
	Name() string
	Read(ctx context.Context) (ThermalReading, error)
}

// RawMetrics is one provider call worth of counters. Groups listed in
// Unavailable hold zero values and must not be trusted.
type RawMetrics struct {
	CPUPercent   float64
	PerCore      []float64
	FrequencyMHz *float64
	CoreCount    int

	MemTotal     uint64
	MemUsed      uint64
	MemAvailable uint64
	MemPercent   float64

	SwapTotal   uint64
	SwapUsed    uint64
	SwapPercent float64

	DiskMount   string
	DiskTotal   uint64
	DiskUsed    uint64
	DiskFree    uint64
	DiskPercent float64

	Network    NetCounters
	Interfaces map[string]string

	LoadAvg [3]float64
	Uptime  time.Duration

	Processes []RawProcess

	Unavailable map[string]error
}

// RawProcess is one listed process. Nil percentages mean the value could not
// be read; Gone marks a process that exited or denied access mid-scan.
type RawProcess struct {
	PID        int32
	Name       string
	CPUPercent *float64
	MemPercent *float64
	Gone       bool
}

func (r RawMetrics) Available(source string) bool {
	_, failed := r.Unavailable[source]
	return !failed
}

func (r *RawMetrics) MarkUnavailable(source string, err error) {
	if r.Unavailable == nil {
		r.Unavailable = make(map[string]error)
	}
	r.Unavailable[source] = err
}

type ThermalReading struct {
	Temperature *float64
	Throttle    *ThrottleStatus
}
