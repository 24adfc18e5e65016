package history

import (
	"sync"

	"pulse-server/internal/domain"
)

const DefaultCapacity = 60

// Store holds one ring per tracked series behind a single RWMutex. Writers
// hold the lock only for in-memory pushes and readers only for copies, so
// neither side does I/O inside the critical section.
type Store struct {
	mu       sync.RWMutex
	capacity int

	cpu         *ring[domain.HistoryPoint]
	memory      *ring[domain.HistoryPoint]
	temperature *ring[domain.HistoryPoint]
	network     *ring[domain.NetworkPoint]
}

func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		capacity:    capacity,
		cpu:         newRing[domain.HistoryPoint](capacity),
		memory:      newRing[domain.HistoryPoint](capacity),
		temperature: newRing[domain.HistoryPoint](capacity),
		network:     newRing[domain.NetworkPoint](capacity),
	}
}

func (s *Store) Capacity() int {
	return s.capacity
}

// Append pushes a point onto one scalar series.
func (s *Store) Append(id domain.SeriesID, p domain.HistoryPoint) error {
	r := s.scalar(id)
	if r == nil {
		return domain.ErrUnknownSeries
	}

	s.mu.Lock()
	r.push(p)
	s.mu.Unlock()
	return nil
}

func (s *Store) AppendNetwork(p domain.NetworkPoint) {
	s.mu.Lock()
	s.network.push(p)
	s.mu.Unlock()
}

// AppendTick records one sampling cycle under a single lock so readers see
// either none or all of its points.
func (s *Store) AppendTick(t domain.TickPoints) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cpu.push(t.CPU)
	s.memory.push(t.Memory)
	if t.Temperature != nil {
		s.temperature.push(*t.Temperature)
	}
	s.network.push(t.Network)
}

// Snapshot copies every series. The result shares nothing with the store.
func (s *Store) Snapshot() domain.History {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.History{
		CPU:         s.cpu.items(),
		Memory:      s.memory.items(),
		Temperature: s.temperature.items(),
		Network:     s.network.items(),
	}
}

func (s *Store) Len(id domain.SeriesID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id == domain.SeriesNetwork {
		return s.network.len()
	}
	if r := s.scalar(id); r != nil {
		return r.len()
	}
	return 0
}

func (s *Store) scalar(id domain.SeriesID) *ring[domain.HistoryPoint] {
	switch id {
	case domain.SeriesCPU:
		return s.cpu
	case domain.SeriesMemory:
		return s.memory
	case domain.SeriesTemperature:
		return s.temperature
	default:
		return nil
	}
}
