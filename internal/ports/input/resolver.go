package input

import (
	"context"

	"marktrans/internal/domain/entities"
)

type Resolver interface {
	ResolveString(ctx context.Context, scope entities.Scope, input string) (string, error)
	ResolveTree(ctx context.Context, scope entities.Scope, input entities.Value) (entities.Value, error)
}
