package core

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"pulse-server/internal/domain"
	"pulse-server/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_FirstTickIsImmediate(t *testing.T) {
	published := make(chan domain.Snapshot, 1)

	s := NewScheduler(time.Hour, logger.NewNop(),
		func(ctx context.Context) (domain.Snapshot, bool) { return domain.Snapshot{UptimeSeconds: 7}, true },
		func(m domain.Snapshot) { published <- m },
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	select {
	case m := <-published:
		assert.Equal(t, uint64(7), m.UptimeSeconds)
	case <-time.After(2 * time.Second):
		t.Fatal("first tick was not published")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestScheduler_TicksRepeatedly(t *testing.T) {
	var n atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewScheduler(10*time.Millisecond, logger.NewNop(),
		func(ctx context.Context) (domain.Snapshot, bool) { return domain.Snapshot{}, true },
		func(domain.Snapshot) {
			if n.Add(1) == 3 {
				cancel()
			}
		},
	)

	require.NoError(t, s.Start(ctx))
	assert.GreaterOrEqual(t, n.Load(), int32(3))
}

func TestScheduler_AbandonedSampleIsNotPublished(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var published atomic.Bool

	s := NewScheduler(time.Hour, logger.NewNop(),
		func(ctx context.Context) (domain.Snapshot, bool) {
			cancel()
			return domain.Snapshot{}, ctx.Err() == nil
		},
		func(domain.Snapshot) { published.Store(true) },
	)

	require.NoError(t, s.Start(ctx))
	assert.False(t, published.Load())
}

func TestScheduler_CommittedSampleIsPublishedDuringShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var published atomic.Bool

	// the sample committed its tick before the cancel landed, so the
	// snapshot must follow it out
	s := NewScheduler(time.Hour, logger.NewNop(),
		func(ctx context.Context) (domain.Snapshot, bool) {
			defer cancel()
			return domain.Snapshot{}, true
		},
		func(domain.Snapshot) { published.Store(true) },
	)

	require.NoError(t, s.Start(ctx))
	assert.True(t, published.Load())
}

func TestScheduler_StopsBeforeFirstTick(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var sampled atomic.Bool
	s := NewScheduler(time.Hour, logger.NewNop(),
		func(ctx context.Context) (domain.Snapshot, bool) {
			sampled.Store(true)
			return domain.Snapshot{}, true
		},
		func(domain.Snapshot) {},
	)

	require.NoError(t, s.Start(ctx))
	assert.False(t, sampled.Load())
}
