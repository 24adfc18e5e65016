package snapshot

import "pulse-server/internal/domain"

type MetricsStore struct {
	Store[domain.Snapshot]
}

func NewMetricsStore() *MetricsStore {
	return &MetricsStore{}
}
