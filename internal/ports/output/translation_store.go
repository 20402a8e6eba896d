package output

import (
	"context"

	"marktrans/internal/domain/entities"
)

// TranslationStore persists translations by (locale, key, domain). An empty
// domain argument matches only rows stored without a domain.
type TranslationStore interface {
	// FindOne returns domain.ErrTranslationNotFound when no row matches.
	FindOne(ctx context.Context, locale, key, domain string) (entities.Translation, error)
	// FindMany returns the translations that exist for keys, in no particular order.
	FindMany(ctx context.Context, locale string, keys []string, domain string) ([]entities.Translation, error)
	// Create fails with domain.ErrTranslationExists when the identity is taken.
	Create(ctx context.Context, t entities.Translation) (entities.Translation, error)
	// Update fails with domain.ErrTranslationNotFound when no row matches.
	Update(ctx context.Context, t entities.Translation) (entities.Translation, error)
	Upsert(ctx context.Context, t entities.Translation) (entities.Translation, error)
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, locale, key, domain string) (bool, error)
}
