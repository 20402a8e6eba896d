package output

import (
	"context"

	"marktrans/internal/domain/entities"
)

// MissingSink is told about keys the store had no translation for. It is
// called at most once per distinct key per resolution.
type MissingSink interface {
	OnMissing(ctx context.Context, t entities.Translatable, scope entities.Scope)
}

// MissingSinkFunc adapts a function to MissingSink.
type MissingSinkFunc func(ctx context.Context, t entities.Translatable, scope entities.Scope)

func (f MissingSinkFunc) OnMissing(ctx context.Context, t entities.Translatable, scope entities.Scope) {
	f(ctx, t, scope)
}
