package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBrokenSink = errors.New("broken sink")

type failingHandler struct {
	slog.Handler
}

func (failingHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (failingHandler) Handle(context.Context, slog.Record) error {
	return errBrokenSink
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNew(t *testing.T) {
	t.Run("Writes JSON at the configured level", func(t *testing.T) {
		// Given: an info logger
		var out bytes.Buffer
		log := New(&out, "info", false)

		// When: a debug and an info record are written
		log.Debug("hidden")
		log.With("component", "app").Info("visible", "port", "9090")

		// Then: only the info record is written, as JSON
		var record map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &record))
		assert.Equal(t, "visible", record["msg"])
		assert.Equal(t, "app", record["component"])
		assert.Equal(t, "9090", record["port"])
	})

	t.Run("With telemetry the console still gets the record", func(t *testing.T) {
		var out bytes.Buffer
		log := New(&out, "debug", true)

		log.Debug("hello")

		assert.Contains(t, out.String(), `"msg":"hello"`)
	})
}

func TestMultiHandler(t *testing.T) {
	t.Run("Fans out to every handler", func(t *testing.T) {
		var first, second bytes.Buffer
		handler := NewMultiHandler(
			slog.NewJSONHandler(&first, nil),
			slog.NewJSONHandler(&second, &slog.HandlerOptions{Level: slog.LevelError}),
		)
		log := slog.New(handler).WithGroup("game").With("session_id", "123")

		log.Info("move")
		log.Error("broken")

		assert.Contains(t, first.String(), `"game":{"session_id":"123"}`)
		assert.Equal(t, 2, bytes.Count(first.Bytes(), []byte("\n")))
		assert.Equal(t, 1, bytes.Count(second.Bytes(), []byte("\n")))
	})

	t.Run("Errors are joined", func(t *testing.T) {
		var out bytes.Buffer
		handler := NewMultiHandler(failingHandler{}, slog.NewJSONHandler(&out, nil))

		err := handler.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "msg", 0))

		require.ErrorIs(t, err, errBrokenSink)
		assert.NotEmpty(t, out.String())
	})

	t.Run("Disabled when no handler accepts the level", func(t *testing.T) {
		handler := NewMultiHandler(slog.NewJSONHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn}))

		assert.False(t, handler.Enabled(context.Background(), slog.LevelInfo))
		assert.True(t, handler.Enabled(context.Background(), slog.LevelError))
	})
}
