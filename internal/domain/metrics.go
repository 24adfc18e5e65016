// Package domain
package domain

import (
	"errors"
	"time"
)

var (
	ErrNotSampled          = errors.New("metrics not sampled yet")
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrUnknownSeries       = errors.New("unknown history series")
)

// Snapshot is one fully-populated reading. It is never mutated after the
// sampler publishes it, so slices and maps inside may be shared by readers.
type Snapshot struct {
	Timestamp     time.Time       `json:"timestamp" yaml:"timestamp"`
	CPU           CPUMetric       `json:"cpu" yaml:"cpu"`
	Memory        MemoryMetric    `json:"memory" yaml:"memory"`
	Swap          SwapMetric      `json:"swap" yaml:"swap"`
	Disk          DiskMetric      `json:"disk" yaml:"disk"`
	Network       NetworkMetric   `json:"network" yaml:"network"`
	Temperature   *float64        `json:"temperature" yaml:"temperature"`
	Throttle      *ThrottleStatus `json:"throttle" yaml:"throttle"`
	UptimeSeconds uint64          `json:"uptime_seconds" yaml:"uptime_seconds"`
	Uptime        string          `json:"uptime" yaml:"uptime"`
	LoadAvg       [3]float64      `json:"load_avg" yaml:"load_avg"`
	Processes     []ProcessInfo   `json:"processes" yaml:"processes"`
}

type CPUMetric struct {
	Percent   float64   `json:"percent" yaml:"percent"`
	PerCore   []float64 `json:"per_cpu" yaml:"per_cpu"`
	Frequency *float64  `json:"frequency" yaml:"frequency"`
	Count     int       `json:"count" yaml:"count"`
}

type MemoryMetric struct {
	Total      uint64  `json:"total" yaml:"total"`
	Used       uint64  `json:"used" yaml:"used"`
	Available  uint64  `json:"available" yaml:"available"`
	Percent    float64 `json:"percent" yaml:"percent"`
	TotalHuman string  `json:"total_human" yaml:"total_human"`
	UsedHuman  string  `json:"used_human" yaml:"used_human"`
}

type SwapMetric struct {
	Total   uint64  `json:"total" yaml:"total"`
	Used    uint64  `json:"used" yaml:"used"`
	Percent float64 `json:"percent" yaml:"percent"`
}

type DiskMetric struct {
	Mountpoint string  `json:"mountpoint" yaml:"mountpoint"`
	Total      uint64  `json:"total" yaml:"total"`
	Used       uint64  `json:"used" yaml:"used"`
	Free       uint64  `json:"free" yaml:"free"`
	Percent    float64 `json:"percent" yaml:"percent"`
	TotalHuman string  `json:"total_human" yaml:"total_human"`
	UsedHuman  string  `json:"used_human" yaml:"used_human"`
	FreeHuman  string  `json:"free_human" yaml:"free_human"`
}

type NetworkMetric struct {
	BytesSent      uint64            `json:"bytes_sent" yaml:"bytes_sent"`
	BytesRecv      uint64            `json:"bytes_recv" yaml:"bytes_recv"`
	RXRate         float64           `json:"rx_speed" yaml:"rx_speed"`
	TXRate         float64           `json:"tx_speed" yaml:"tx_speed"`
	BytesSentHuman string            `json:"bytes_sent_human" yaml:"bytes_sent_human"`
	BytesRecvHuman string            `json:"bytes_recv_human" yaml:"bytes_recv_human"`
	RXRateHuman    string            `json:"rx_speed_human" yaml:"rx_speed_human"`
	TXRateHuman    string            `json:"tx_speed_human" yaml:"tx_speed_human"`
	Interfaces     map[string]string `json:"interfaces" yaml:"interfaces"`
}

type ThrottleStatus struct {
	UnderVoltage          bool `json:"under_voltage" yaml:"under_voltage"`
	ArmFreqCapped         bool `json:"arm_freq_capped" yaml:"arm_freq_capped"`
	CurrentlyThrottled    bool `json:"currently_throttled" yaml:"currently_throttled"`
	SoftTempLimit         bool `json:"soft_temp_limit" yaml:"soft_temp_limit"`
	UnderVoltageOccurred  bool `json:"under_voltage_occurred" yaml:"under_voltage_occurred"`
	ArmFreqCappedOccurred bool `json:"arm_freq_capped_occurred" yaml:"arm_freq_capped_occurred"`
	ThrottledOccurred     bool `json:"throttled_occurred" yaml:"throttled_occurred"`
	SoftTempLimitOccurred bool `json:"soft_temp_limit_occurred" yaml:"soft_temp_limit_occurred"`
}

type ProcessInfo struct {
	PID        int32   `json:"pid" yaml:"pid"`
	Name       string  `json:"name" yaml:"name"`
	CPUPercent float64 `json:"cpu" yaml:"cpu"`
	MemPercent float64 `json:"mem" yaml:"mem"`
}

// NetCounters are cumulative byte counters summed over all interfaces.
type NetCounters struct {
	BytesSent uint64
	BytesRecv uint64
}

type NetRate struct {
	RX float64
	TX float64
}
