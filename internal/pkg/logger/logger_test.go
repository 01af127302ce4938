package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func captureLogs(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	previous := current()
	t.Cleanup(func() { SetDefault(previous) })

	var buf bytes.Buffer
	SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})))
	return &buf
}

func TestInit(t *testing.T) {
	previous := current()
	t.Cleanup(func() { SetDefault(previous) })

	zl, err := Init("debug", true)
	require.NoError(t, err)
	require.NotNil(t, zl)
	assert.True(t, zl.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, current().Enabled(context.Background(), slog.LevelDebug))

	zl, err = Init("warn", false)
	require.NoError(t, err)
	assert.False(t, zl.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, current().Enabled(context.Background(), slog.LevelInfo))

	_, err = Init("loud", false)
	assert.ErrorContains(t, err, "failed to parse log level")
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, slogLevel(zapcore.DebugLevel))
	assert.Equal(t, slog.LevelInfo, slogLevel(zapcore.InfoLevel))
	assert.Equal(t, slog.LevelWarn, slogLevel(zapcore.WarnLevel))
	assert.Equal(t, slog.LevelError, slogLevel(zapcore.ErrorLevel))
	assert.Equal(t, slog.LevelError, slogLevel(zapcore.FatalLevel))
}

func TestPackageFunctionsRespectLevel(t *testing.T) {
	buf := captureLogs(t, slog.LevelInfo)

	Debug("hidden")
	Info("shown", "step", "balances")
	Warn("careful")
	Error("broken")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown step=balances")
	assert.Contains(t, out, "level=WARN msg=careful")
	assert.Contains(t, out, "level=ERROR msg=broken")
}

func TestAdapterWith(t *testing.T) {
	buf := captureLogs(t, slog.LevelDebug)

	base := NewSlogAdapter("run_id", "abc")
	base.With("step", "positions").Info("fetched", "count", 3)
	base.Debug("plain")

	out := buf.String()
	assert.Contains(t, out, "msg=fetched run_id=abc step=positions count=3")
	assert.Contains(t, out, "msg=plain run_id=abc")
	assert.NotContains(t, out, "msg=plain run_id=abc step=positions")
}
