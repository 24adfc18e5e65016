package logger

import (
	"testing"

	"pulse-server/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(level zapcore.Level) (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return &zapLogger{sugar: zap.New(core).Sugar()}, logs
}

func TestWith_AddsFieldsToEveryEntry(t *testing.T) {
	log, logs := observed(zapcore.DebugLevel)

	client := log.With("client_id", "abc")
	client.Info("connected")
	client.Warn("dropped", "reason", "slow")
	log.Info("unrelated")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "abc", entries[0].ContextMap()["client_id"])
	assert.Equal(t, "abc", entries[1].ContextMap()["client_id"])
	assert.Equal(t, "slow", entries[1].ContextMap()["reason"])
	assert.NotContains(t, entries[2].ContextMap(), "client_id")
}

func TestKeyValueArgs(t *testing.T) {
	log, logs := observed(zapcore.InfoLevel)

	log.Debug("hidden")
	log.Error("collector", "name", "cpu", "count", 3)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "cpu", entries[0].ContextMap()["name"])
	assert.Equal(t, int64(3), entries[0].ContextMap()["count"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel(" error "))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestNew(t *testing.T) {
	for _, format := range []string{"text", "json"} {
		cfg := config.Default()
		cfg.LogFormat = format
		assert.NotNil(t, New(cfg), format)
	}
	assert.NoError(t, NewNop().With("k", "v").Sync())
}
