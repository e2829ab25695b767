package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/logger"
)

type ctxKey string

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	return record
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json output with static attrs", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithAttr(slog.String("service", "authkit")),
		)
		log.Info("hello", "user_id", "u-1")

		record := decodeLine(t, &buf)
		assert.Equal(t, "hello", record["msg"])
		assert.Equal(t, "authkit", record["service"])
		assert.Equal(t, "u-1", record["user_id"])
	})

	t.Run("level filtering", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelWarn))
		log.Info("dropped")
		assert.Zero(t, buf.Len())
		log.Warn("kept")
		assert.NotZero(t, buf.Len())
	})

	t.Run("context value extraction", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		key := ctxKey("request_id")
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithContextValue("request_id", key),
		)

		ctx := context.WithValue(context.Background(), key, "req-42")
		log.InfoContext(ctx, "handled")

		record := decodeLine(t, &buf)
		assert.Equal(t, "req-42", record["request_id"])
	})

	t.Run("unknown format panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { logger.New(logger.WithFormat("yaml")) })
	})
}

func TestAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Error(nil))
	assert.Equal(t, "error", logger.Error(errors.New("boom")).Key)
	assert.Equal(t, slog.Attr{}, logger.UserID(nil))
	assert.Equal(t, "user_id", logger.UserID("u-1").Key)
	assert.Equal(t, slog.Attr{}, logger.SessionID(""))
	assert.Equal(t, "session_id", logger.SessionID("digest").Key)
	assert.Equal(t, "component", logger.Component("auth").Key)
	assert.Equal(t, "event", logger.Event("login").Key)
}
