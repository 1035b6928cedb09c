package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/widgetkit/pkg/environment"
	"github.com/dmitrymomot/widgetkit/pkg/logger"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Run("json by default", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		log.Info("hello")
		entry := decode(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text formatter", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithTextFormatter())
		log.Info("hello")
		assert.Contains(t, buf.String(), "level=INFO")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("invalid format panics", func(t *testing.T) {
		assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
	})

	t.Run("level name", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevelName("warn"))
		log.Info("skipped")
		assert.Empty(t, buf.String())
		log.Warn("kept")
		assert.Equal(t, "kept", decode(t, buf)["msg"])
	})

	t.Run("unknown level name is ignored", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevelName("loud"))
		log.Info("kept")
		assert.NotEmpty(t, buf.String())
	})

	t.Run("static attributes", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithAttr(slog.String("svc", "widgets")))
		log.Info("x")
		assert.Equal(t, "widgets", decode(t, buf)["svc"])
	})
}

func TestWithEnvironment(t *testing.T) {
	t.Run("development logs debug text", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment(environment.Development, "widgets"), logger.WithOutput(buf))
		log.Debug("msg")
		assert.Contains(t, buf.String(), "level=DEBUG")
		assert.Contains(t, buf.String(), "service=widgets")
		assert.Contains(t, buf.String(), "env=development")
	})

	t.Run("production logs info json", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment(environment.Production, "widgets"), logger.WithOutput(buf))
		log.Debug("hidden")
		assert.Empty(t, buf.String())
		log.Info("msg")
		entry := decode(t, buf)
		assert.Equal(t, "widgets", entry["service"])
		assert.Equal(t, "production", entry["env"])
	})
}

type ctxKey struct{}

func TestContextExtraction(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithContextValue("trace", ctxKey{}),
		logger.WithContextExtractors(nil, environment.LoggerExtractor()),
	)

	ctx := context.WithValue(context.Background(), ctxKey{}, "t-1")
	ctx = environment.WithContext(ctx, environment.Staging)
	log.With("a", 1).WithGroup("g").InfoContext(ctx, "x")

	out := buf.String()
	assert.Contains(t, out, `"trace":"t-1"`)
	assert.Contains(t, out, `"env":"staging"`)
}

func TestAttrs(t *testing.T) {
	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	assert.Equal(t, "error", logger.Error(errors.New("boom")).Key)

	assert.True(t, logger.Errors(nil, nil).Equal(slog.Attr{}))
	errs := logger.Errors(nil, errors.New("b"))
	assert.Equal(t, "errors", errs.Key)
	require.Len(t, errs.Value.Group(), 1)
	assert.Equal(t, "1", errs.Value.Group()[0].Key)

	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
	assert.Equal(t, "abc", logger.RequestID("abc").Value.String())
	assert.True(t, logger.Session("").Equal(slog.Attr{}))

	assert.Equal(t, "contact", logger.Widget("contact").Value.String())
	assert.Equal(t, "field", logger.Field("email").Key)
	assert.Equal(t, "operation", logger.Operation("subscribeEvent").Key)
	assert.Equal(t, "syd", logger.Keyword("syd").Value.String())
	assert.Equal(t, uint64(7), logger.Sequence(7).Value.Uint64())
	assert.Equal(t, int64(2), logger.Attempt(2).Value.Int64())
	assert.Equal(t, time.Second, logger.Duration(time.Second).Value.Duration())
	assert.Equal(t, "g", logger.Group("g", slog.Int("n", 1)).Key)
}

func TestDiscard(t *testing.T) {
	log := logger.Discard()
	require.NotNil(t, log)
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}

func TestContextAttrs(t *testing.T) {
	t.Run("scoped attributes reach records", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))

		ctx := logger.ContextWithAttrs(context.Background(), logger.Widget("join"))
		ctx = logger.ContextWithAttrs(ctx, logger.Session("s-1"), logger.RequestID(""))
		log.InfoContext(ctx, "x")

		entry := decode(t, buf)
		assert.Equal(t, "join", entry["widget"])
		assert.Equal(t, "s-1", entry["session_id"])
		assert.NotContains(t, entry, "request_id", "empty attributes are dropped")
	})

	t.Run("keys already on the record or logger are not repeated", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		ctx := logger.ContextWithAttrs(context.Background(), logger.Widget("contact"), logger.Field("email"))

		log.With(logger.Widget("subscribe")).InfoContext(ctx, "bound")
		log.InfoContext(ctx, "record", logger.Field("name"))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, 1, strings.Count(lines[0], `"widget"`))
		assert.Contains(t, lines[0], `"widget":"subscribe"`)
		assert.Equal(t, 1, strings.Count(lines[1], `"field"`))
		assert.Contains(t, lines[1], `"field":"name"`)
		assert.Contains(t, lines[1], `"widget":"contact"`)
	})

	t.Run("groups start a new namespace", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		ctx := logger.ContextWithAttrs(context.Background(), logger.Widget("join"))

		log.With(logger.Widget("outer")).WithGroup("g").InfoContext(ctx, "x")

		entry := decode(t, buf)
		assert.Equal(t, "outer", entry["widget"])
		group, ok := entry["g"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "join", group["widget"])
	})

	t.Run("middleware tags the request context", func(t *testing.T) {
		var got []slog.Attr
		h := logger.Middleware(logger.Widget("subscribe"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = logger.AttrsFromContext(r.Context())
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		require.Len(t, got, 1)
		assert.Equal(t, "subscribe", got[0].Value.String())
	})
}
