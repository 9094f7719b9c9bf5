package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fanout/core/logger"
)

func TestGroup(t *testing.T) {
	t.Parallel()
	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

// ============================================================================
// Error Tests
// ============================================================================

func TestErrors(t *testing.T) {
	t.Parallel()
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "0", g[0].Key)
	assert.Equal(t, "2", g[1].Key)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	empty := logger.Errors(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	t.Parallel()
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestPanic(t *testing.T) {
	t.Parallel()

	t.Run("with stack", func(t *testing.T) {
		t.Parallel()
		attr := logger.Panic("boom", []byte("goroutine 1"))
		require.Equal(t, "panic", attr.Key)
		g := attr.Value.Group()
		require.Len(t, g, 2)
		assert.Equal(t, "boom", g[0].Value.Any())
		assert.Equal(t, "goroutine 1", g[1].Value.String())
	})

	t.Run("without stack", func(t *testing.T) {
		t.Parallel()
		attr := logger.Panic(42, nil)
		require.Len(t, attr.Value.Group(), 1)
	})

	t.Run("nil value", func(t *testing.T) {
		t.Parallel()
		assert.True(t, logger.Panic(nil, []byte("x")).Equal(slog.Attr{}))
	})
}

// ============================================================================
// Timing Tests
// ============================================================================

func TestDuration(t *testing.T) {
	t.Parallel()
	d := 5 * time.Second
	attr := logger.Duration(d)
	require.Equal(t, "duration", attr.Key)
	assert.Equal(t, d, attr.Value.Duration())
}

func TestElapsed(t *testing.T) {
	t.Parallel()
	start := time.Now().Add(-50 * time.Millisecond)
	attr := logger.Elapsed(start)
	require.Equal(t, "elapsed", attr.Key)
	assert.GreaterOrEqual(t, attr.Value.Duration(), 50*time.Millisecond)
}

// ============================================================================
// Identifier Tests
// ============================================================================

func TestIdentifiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		attr slog.Attr
		key  string
		want string
	}{
		{"engine", logger.EngineID("e-1"), "engine_id", "e-1"},
		{"subscriber", logger.SubscriberID("s-1"), "subscriber_id", "s-1"},
		{"component", logger.Component("dispatch"), "component", "dispatch"},
		{"event", logger.Event("drained"), "event", "drained"},
		{"path", logger.Path("/users"), "path", "/users"},
		{"result", logger.Result("ok"), "result", "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.key, tt.attr.Key)
			assert.Equal(t, tt.want, tt.attr.Value.String())
		})
	}

	assert.True(t, logger.EngineID("").Equal(slog.Attr{}))
	assert.True(t, logger.SubscriberID("").Equal(slog.Attr{}))
	assert.True(t, logger.ID("k", nil).Equal(slog.Attr{}))
	assert.True(t, logger.Key("k", nil).Equal(slog.Attr{}))
	assert.Equal(t, int64(3), logger.Count("n", 3).Value.Int64())
}
