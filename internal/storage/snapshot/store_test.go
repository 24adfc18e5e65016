package snapshot

import (
	"sync"
	"testing"
	"time"

	"pulse-server/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestStore_LoadBeforeSet(t *testing.T) {
	var s Store[int]

	v, ok := s.Load()

	assert.False(t, ok)
	assert.Zero(t, v)
	assert.Zero(t, s.Version())
}

func TestStore_SetReplaces(t *testing.T) {
	var s Store[string]

	s.Set("a")
	s.Set("b")

	v, ok := s.Load()
	assert.True(t, ok)
	assert.Equal(t, "b", v)
	assert.Equal(t, uint64(2), s.Version())

	cur, version, ok := s.Current()
	assert.Equal(t, "b", cur)
	assert.Equal(t, uint64(2), version)
	assert.True(t, ok)
}

func TestStore_CurrentIsConsistent(t *testing.T) {
	var s Store[uint64]

	_, version, ok := s.Current()
	assert.False(t, ok)
	assert.Zero(t, version)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := uint64(1); i <= 1000; i++ {
			s.Set(i)
		}
	}()

	for {
		v, version, ok := s.Current()
		// each Set stores its own sequence number, so value and version move together
		assert.Equal(t, version, v)
		assert.Equal(t, version > 0, ok)

		select {
		case <-done:
			return
		default:
		}
	}
}

func TestMetricsStore_ConcurrentAccess(t *testing.T) {
	s := NewMetricsStore()
	now := time.Now()

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Set(domain.Snapshot{Timestamp: now.Add(time.Duration(i) * time.Second)})
		}()
		go func() {
			defer wg.Done()
			s.Load()
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(4), s.Version())
}
