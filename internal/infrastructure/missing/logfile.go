package missing

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"marktrans/internal/domain/entities"
	"marktrans/internal/ports/output"
)

var _ output.MissingSink = (*FileSink)(nil)

// FileSink appends one tab-separated line per missing key:
//
//	time  domain  locale  key  default  span
//
// Write failures are logged, never returned to the resolver.
type FileSink struct {
	mu     sync.Mutex
	w      io.Writer
	now    func() time.Time
	logger zerolog.Logger
}

func NewFileSink(w io.Writer, logger zerolog.Logger) *FileSink {
	return &FileSink{w: w, now: time.Now, logger: logger}
}

func (s *FileSink) OnMissing(_ context.Context, t entities.Translatable, scope entities.Scope) {
	line := strings.Join([]string{
		s.now().Format(time.RFC3339),
		scope.Domain,
		scope.Locale,
		t.Key,
		t.Default,
		t.Span,
	}, "\t") + "\n"

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.WriteString(s.w, line); err != nil {
		s.logger.Error().Err(err).Str("key", t.Key).Msg("write missing translation line")
	}
}

// ParseLine splits a FileSink line back into its fields.
func ParseLine(line string) (Entry, error) {
	parts := strings.Split(strings.TrimRight(line, "\n"), "\t")
	if len(parts) != 6 {
		return Entry{}, fmt.Errorf("missing log line has %d fields, want 6", len(parts))
	}
	at, err := time.Parse(time.RFC3339, parts[0])
	if err != nil {
		return Entry{}, fmt.Errorf("missing log time: %w", err)
	}
	return Entry{
		Time:  at,
		Scope: entities.Scope{Domain: parts[1], Locale: parts[2]},
		Translatable: entities.Translatable{
			Key:     parts[3],
			Default: parts[4],
			Span:    parts[5],
		},
	}, nil
}

// Entry is one reported miss.
type Entry struct {
	Time         time.Time
	Scope        entities.Scope
	Translatable entities.Translatable
}
