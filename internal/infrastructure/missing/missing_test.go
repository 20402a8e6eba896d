package missing

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marktrans/internal/domain/entities"
)

func TestFileSinkWritesOneLinePerMiss(t *testing.T) {
	var buf bytes.Buffer
	sink := NewFileSink(&buf, zerolog.Nop())
	at := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	sink.now = func() time.Time { return at }

	ctx := context.Background()
	sink.OnMissing(ctx,
		entities.Translatable{Span: `__{{w, "Hi"}}`, Key: "w", Default: "Hi"},
		entities.Scope{Locale: "en", Domain: "cust1"},
	)
	sink.OnMissing(ctx,
		entities.Translatable{Span: "__{{surname}}", Key: "surname"},
		entities.Scope{Locale: "es"},
	)

	var lines []string
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	require.Len(t, lines, 2)
	assert.Equal(t, "2024-03-01T12:30:00Z\tcust1\ten\tw\tHi\t__{{w, \"Hi\"}}", lines[0])

	first, err := ParseLine(lines[0])
	require.NoError(t, err)
	assert.True(t, at.Equal(first.Time))
	assert.Equal(t, entities.Scope{Locale: "en", Domain: "cust1"}, first.Scope)
	assert.Equal(t, "w", first.Translatable.Key)
	assert.Equal(t, "Hi", first.Translatable.Default)
	assert.Equal(t, `__{{w, "Hi"}}`, first.Translatable.Span)

	second, err := ParseLine(lines[1])
	require.NoError(t, err)
	assert.Equal(t, "", second.Scope.Domain)
	assert.Equal(t, "es", second.Scope.Locale)
	assert.Equal(t, "surname", second.Translatable.Key)
	assert.Equal(t, "", second.Translatable.Default)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestFileSinkLogsWriteErrors(t *testing.T) {
	var logs bytes.Buffer
	sink := NewFileSink(failingWriter{}, zerolog.New(&logs))

	assert.NotPanics(t, func() {
		sink.OnMissing(context.Background(), entities.Translatable{Key: "k", Span: "__{{k}}"}, entities.Scope{Locale: "en"})
	})
	assert.Contains(t, logs.String(), "disk full")
}

func TestParseLineRejectsMalformed(t *testing.T) {
	_, err := ParseLine("only\ttwo")
	assert.Error(t, err)

	_, err = ParseLine("yesterday\t\ten\tk\t\t__{{k}}")
	assert.Error(t, err)
}

func TestLogSink(t *testing.T) {
	var logs bytes.Buffer
	LogSink{Logger: zerolog.New(&logs)}.OnMissing(context.Background(),
		entities.Translatable{Key: "greeting", Default: "Hello"},
		entities.Scope{Locale: "en", Domain: "web"},
	)

	out := logs.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"key":"greeting"`)
	assert.Contains(t, out, `"domain":"web"`)
	assert.Contains(t, out, `"has_default":true`)
}

func TestMultiFansOut(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	m := Multi{a, nil, b}

	m.OnMissing(context.Background(), entities.Translatable{Key: "x"}, entities.Scope{Locale: "en"})
	m.OnMissing(context.Background(), entities.Translatable{Key: "y"}, entities.Scope{Locale: "en"})

	assert.Equal(t, []string{"x", "y"}, a.Keys())
	assert.Equal(t, []string{"x", "y"}, b.Keys())
}
