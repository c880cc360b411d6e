package logger

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T, format logFormat) (*slog.Logger, func() string) {
	t.Helper()
	buf := &bytes.Buffer{}
	aw := newAsyncWriter([]io.Writer{buf}, 1024)
	h := newStructuredHandler(handlerConfig{
		level:  slog.LevelDebug,
		writer: aw,
		format: format,
	})
	return slog.New(h), func() string {
		require.NoError(t, aw.Flush())
		require.NoError(t, aw.Close())
		return strings.TrimSpace(buf.String())
	}
}

func TestStructuredHandlerKVOrder(t *testing.T) {
	log, read := newTestLogger(t, formatKV)
	ctx := WithUpdateMeta(WithRID(context.Background(), "rid-123"), 42, 7, 9)

	LogEvent(ctx, log.With("component", "flow"), slog.LevelInfo, "lead.stored",
		slog.String("status", "OK"),
		slog.Int64("lead_id", 5),
	)

	tokens := strings.Fields(read())
	want := []string{"ts=", "level=INFO", "component=flow", "event=lead.stored", "status=ok", "rid=rid-123", "update_id=42", "user_id=7", "chat_id=9", "lead_id=5"}
	require.GreaterOrEqual(t, len(tokens), len(want))
	for i, prefix := range want {
		assert.True(t, strings.HasPrefix(tokens[i], prefix), "token %d = %s, want prefix %s", i, tokens[i], prefix)
	}
}

func TestStructuredHandlerJSONOrder(t *testing.T) {
	log, read := newTestLogger(t, formatJSON)
	ctx := WithRID(context.Background(), "rid-json")

	LogEvent(ctx, log.With("component", "broadcast"), slog.LevelError, "broadcast.failed",
		slog.String("status", "fail"),
		slog.String("err", "boom"),
	)

	line := read()
	require.True(t, strings.HasPrefix(line, "{"), line)
	pos := -1
	for _, part := range []string{`{"ts":`, `"level":"ERROR"`, `"component":"broadcast"`, `"event":"broadcast.failed"`, `"status":"fail"`, `"rid":"rid-json"`} {
		idx := strings.Index(line, part)
		require.Greater(t, idx, pos, "%s out of order in %s", part, line)
		pos = idx
	}
}

func TestStructuredHandlerCompactRID(t *testing.T) {
	t.Run("kv", func(t *testing.T) {
		log, read := newTestLogger(t, formatKV)
		LogEvent(WithRID(context.Background(), "123:456:789"), log, slog.LevelInfo, "rid.test")
		line := read()
		assert.Contains(t, line, "rid="+CompactRID("123:456:789"))
		assert.NotContains(t, line, "rid_full=")
	})
	t.Run("json", func(t *testing.T) {
		log, read := newTestLogger(t, formatJSON)
		LogEvent(WithRID(context.Background(), "12:34:56"), log, slog.LevelInfo, "rid.test")
		line := read()
		assert.Contains(t, line, `"rid":"c.y.1k"`)
		assert.Contains(t, line, `"rid_full":"12:34:56"`)
		assert.Contains(t, line, `"ts_unix_nano"`)
	})
}

func TestStructuredHandlerMasksPhone(t *testing.T) {
	log, read := newTestLogger(t, formatKV)
	LogEvent(context.Background(), log, slog.LevelInfo, "contact.saved",
		slog.String("phone", "+7 999 123-45-67"),
	)
	line := read()
	assert.Contains(t, line, "phone=+*******4567")
	assert.NotContains(t, line, "+7 999")
}

func TestStructuredHandlerDurationAndOutcome(t *testing.T) {
	log, read := newTestLogger(t, formatKV)
	LogEvent(context.Background(), log, slog.LevelInfo, "op",
		slog.Duration("duration", 1500*time.Millisecond),
		slog.String("outcome", "bogus"),
	)
	line := read()
	assert.Contains(t, line, "duration_ms=1500")
	assert.NotContains(t, line, "outcome=")
}

func TestCompactRID(t *testing.T) {
	assert.Equal(t, "c.y.1k", CompactRID("12:34:56"))
	assert.Equal(t, "not-a-rid", CompactRID("not-a-rid"))
	assert.Equal(t, "1:x:2", CompactRID("1:x:2"))
	assert.Equal(t, "1:2:3", BuildRID(1, 2, 3))
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "", MaskPhone(""))
	assert.Equal(t, "1234", MaskPhone("1234"))
	assert.Equal(t, "+*******4567", MaskPhone("+79991234567"))
	assert.Equal(t, "****5678", MaskPhone("12345678"))
}

func TestRatioSampler(t *testing.T) {
	s := newRatioSampler(1, 3)
	got := []bool{s.Allow(), s.Allow(), s.Allow(), s.Allow()}
	assert.Equal(t, []bool{true, false, false, true}, got)

	s.Set(0, 0)
	assert.True(t, s.Allow())

	num, den := parseRatioSpec("2/5")
	assert.Equal(t, [2]int{2, 5}, [2]int{num, den})
	num, den = parseRatioSpec("10")
	assert.Equal(t, [2]int{1, 10}, [2]int{num, den})
	num, den = parseRatioSpec("x")
	assert.Equal(t, [2]int{0, 0}, [2]int{num, den})
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "ab\tc\n", Sanitize("a\x00b\tc\n\x7f"))
	assert.Equal(t, "пр", SanitizeLimit("привет", 2))
}
