package application

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"marktrans/internal/domain"
	"marktrans/internal/domain/entities"
	"marktrans/internal/parser"
	"marktrans/internal/ports/input"
	"marktrans/internal/ports/output"
)

var _ input.Resolver = (*Translator)(nil)

// Translator resolves markers against a TranslationStore. Its collaborators
// are fixed at construction and the scope travels with each call, so one
// Translator may serve concurrent resolutions.
type Translator struct {
	store  output.TranslationStore
	sink   output.MissingSink
	logger zerolog.Logger
}

type Option func(*Translator)

// WithMissingSink reports keys absent from the store to sink.
func WithMissingSink(sink output.MissingSink) Option {
	return func(t *Translator) { t.sink = sink }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(t *Translator) { t.logger = logger }
}

func NewTranslator(store output.TranslationStore, opts ...Option) *Translator {
	t := &Translator{
		store:  store,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Store returns the store the translator reads from.
func (t *Translator) Store() output.TranslationStore {
	return t.store
}

func (t *Translator) ResolveString(ctx context.Context, scope entities.Scope, in string) (string, error) {
	return Resolve[string](ctx, t, parser.NewStringParser(), scope, in)
}

// ResolveTree resolves every string leaf of in with a single store lookup.
// The input tree is not modified.
func (t *Translator) ResolveTree(ctx context.Context, scope entities.Scope, in entities.Value) (entities.Value, error) {
	return Resolve[entities.Value](ctx, t, parser.NewTreeParser(), scope, in)
}

// Resolve drives p over in: parse, one batched lookup for the distinct keys,
// miss reporting, then substitution.
func Resolve[T any](ctx context.Context, t *Translator, p parser.Parser[T], scope entities.Scope, in T) (T, error) {
	var zero T
	if t == nil || t.store == nil {
		return zero, domain.ErrStoreMissing
	}

	translatables, err := p.Parse(in)
	if err != nil {
		return zero, fmt.Errorf("parse input: %w", err)
	}

	keys := p.Keys()
	translations, err := t.lookup(ctx, scope, keys)
	if err != nil {
		return zero, err
	}

	misses := t.reportMissing(ctx, scope, translatables, translations)
	t.logger.Debug().
		Str("locale", scope.Locale).
		Str("domain", scope.Domain).
		Int("markers", len(translatables)).
		Int("keys", len(keys)).
		Int("misses", misses).
		Msg("resolved markers")

	out, err := p.Substitute(translations)
	if err != nil {
		return zero, fmt.Errorf("substitute: %w", err)
	}
	return out, nil
}

func (t *Translator) lookup(ctx context.Context, scope entities.Scope, keys []string) ([]entities.Translation, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	translations, err := t.store.FindMany(ctx, scope.Locale, keys, scope.Domain)
	if err != nil {
		return nil, fmt.Errorf("find translations: %w", err)
	}
	return translations, nil
}

// reportMissing notifies the sink once per distinct key that the store did
// not return, in order of first occurrence. A marker default does not
// suppress the report.
func (t *Translator) reportMissing(ctx context.Context, scope entities.Scope, translatables []entities.Translatable, translations []entities.Translation) int {
	found := make(map[string]struct{}, len(translations))
	for _, tr := range translations {
		found[tr.Key] = struct{}{}
	}

	reported := make(map[string]struct{})
	for _, tb := range translatables {
		if _, ok := found[tb.Key]; ok {
			continue
		}
		if _, ok := reported[tb.Key]; ok {
			continue
		}
		reported[tb.Key] = struct{}{}
		if t.sink != nil {
			t.sink.OnMissing(ctx, tb, scope)
		}
	}
	return len(reported)
}
