package domain

import "time"

type SeriesID string

const (
	SeriesCPU         SeriesID = "cpu"
	SeriesMemory      SeriesID = "memory"
	SeriesTemperature SeriesID = "temperature"
	SeriesNetwork     SeriesID = "network"
)

var AllSeries = []SeriesID{SeriesCPU, SeriesMemory, SeriesTemperature, SeriesNetwork}

type HistoryPoint struct {
	Time  time.Time `json:"time" yaml:"time"`
	Value float64   `json:"value" yaml:"value"`
}

type NetworkPoint struct {
	Time time.Time `json:"time" yaml:"time"`
	RX   float64   `json:"rx" yaml:"rx"`
	TX   float64   `json:"tx" yaml:"tx"`
}

// TickPoints is what one sampling cycle appends. Temperature is nil when no
// reading was obtained.
type TickPoints struct {
	CPU         HistoryPoint
	Memory      HistoryPoint
	Temperature *HistoryPoint
	Network     NetworkPoint
}

// History is a detached copy of every series, oldest first.
type History struct {
	CPU         []HistoryPoint `json:"cpu" yaml:"cpu"`
	Memory      []HistoryPoint `json:"memory" yaml:"memory"`
	Temperature []HistoryPoint `json:"temperature" yaml:"temperature"`
	Network     []NetworkPoint `json:"network" yaml:"network"`
}

func (h History) Series(id SeriesID) (any, error) {
	switch id {
	case SeriesCPU:
		return h.CPU, nil
	case SeriesMemory:
		return h.Memory, nil
	case SeriesTemperature:
		return h.Temperature, nil
	case SeriesNetwork:
		return h.Network, nil
	default:
		return nil, ErrUnknownSeries
	}
}

type ServiceState string

const (
	StateWarmingUp ServiceState = "warming_up"
	StateRunning   ServiceState = "running"
)

type ServiceStatus struct {
	State        ServiceState `json:"state"`
	Ticks        uint64       `json:"ticks"`
	LastSampleAt *time.Time   `json:"last_sample_at"`
	Interval     string       `json:"interval"`
	Capacity     int          `json:"history_capacity"`
}

type MetricsService interface {
	Latest() (Snapshot, error)
	History() History
	Series(id SeriesID) (any, error)
	Status() ServiceStatus
}
