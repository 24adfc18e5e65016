package workers

import (
	"context"
	"testing"
	"time"

	"pulse-server/internal/config"
	"pulse-server/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFreshness struct {
	age time.Duration
	ok  bool
}

func (f *fakeFreshness) Age(time.Time) (time.Duration, bool) {
	return f.age, f.ok
}

func TestStalenessWorker_Transitions(t *testing.T) {
	src := &fakeFreshness{}
	w := NewStalenessWorker(src, time.Second, logger.NewNop())

	require.NoError(t, w.Run(context.Background()))
	assert.False(t, w.Stalled(), "no sample yet is not a stall")

	src.ok = true
	src.age = 2 * time.Second
	require.NoError(t, w.Run(context.Background()))
	assert.False(t, w.Stalled())

	src.age = 6 * time.Second
	require.NoError(t, w.Run(context.Background()))
	assert.True(t, w.Stalled())

	src.age = 500 * time.Millisecond
	require.NoError(t, w.Run(context.Background()))
	assert.False(t, w.Stalled())
}

func TestStaleCheckEvery(t *testing.T) {
	assert.Equal(t, 5*time.Second, staleCheckEvery(time.Second))
	assert.Equal(t, time.Second, staleCheckEvery(10*time.Millisecond))
}

type countingWorker struct {
	runs chan struct{}
}

func (c *countingWorker) Name() string { return "counting" }

func (c *countingWorker) Run(ctx context.Context) error {
	select {
	case c.runs <- struct{}{}:
	default:
	}
	return nil
}

func TestScheduler_RunByDuration(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := &countingWorker{runs: make(chan struct{}, 1)}
	NewScheduler(logger.NewNop()).RunByDuration(ctx, 5*time.Millisecond, w)

	select {
	case <-w.runs:
	case <-time.After(2 * time.Second):
		t.Fatal("worker never ran")
	}
}

type panicWorker struct{}

func (panicWorker) Name() string { return "panic" }

func (panicWorker) Run(context.Context) error { panic("boom") }

func TestScheduler_RunOnceRecovers(t *testing.T) {
	err := NewScheduler(logger.NewNop()).runOnce(context.Background(), panicWorker{})
	assert.ErrorContains(t, err, "boom")
}

func TestManager_Jobs(t *testing.T) {
	cfg := config.Default()
	log := logger.NewNop()

	m := NewManager(NewScheduler(log), cfg, log, &ManagerServices{Metrics: &fakeFreshness{}})
	assert.Equal(t, []string{"metrics_staleness"}, m.Jobs())

	empty := NewManager(NewScheduler(log), cfg, log, nil)
	assert.Empty(t, empty.Jobs())
}
