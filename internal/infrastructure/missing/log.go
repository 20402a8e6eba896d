package missing

import (
	"context"

	"github.com/rs/zerolog"

	"marktrans/internal/domain/entities"
	"marktrans/internal/ports/output"
)

var _ output.MissingSink = LogSink{}

// LogSink reports misses as warnings on a zerolog logger.
type LogSink struct {
	Logger zerolog.Logger
}

func (s LogSink) OnMissing(_ context.Context, t entities.Translatable, scope entities.Scope) {
	s.Logger.Warn().
		Str("locale", scope.Locale).
		Str("domain", scope.Domain).
		Str("key", t.Key).
		Bool("has_default", t.HasDefault()).
		Msg("missing translation")
}
