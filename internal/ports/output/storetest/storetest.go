// Package storetest holds the behaviour every output.TranslationStore must
// share, run against each adapter from its own tests.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marktrans/internal/domain"
	"marktrans/internal/domain/entities"
	"marktrans/internal/ports/output"
)

// Run exercises store. newStore must return an empty store on each call.
func Run(t *testing.T, newStore func(t *testing.T) output.TranslationStore) {
	t.Helper()

	t.Run("create then find", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		created, err := store.Create(ctx, entities.Translation{Locale: "en", Key: "title", Content: "Title"})
		require.NoError(t, err)
		assert.Equal(t, "Title", created.Content)

		got, err := store.FindOne(ctx, "en", "title", "")
		require.NoError(t, err)
		assert.Equal(t, "en", got.Locale)
		assert.Equal(t, "title", got.Key)
		assert.Equal(t, "", got.Domain)
		assert.Equal(t, "Title", got.Content)
	})

	t.Run("find one missing", func(t *testing.T) {
		store := newStore(t)
		_, err := store.FindOne(context.Background(), "en", "nope", "")
		assert.ErrorIs(t, err, domain.ErrTranslationNotFound)
	})

	t.Run("create duplicate fails", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		tr := entities.Translation{Locale: "en", Key: "k", Domain: "d1", Content: "A"}

		_, err := store.Create(ctx, tr)
		require.NoError(t, err)
		_, err = store.Create(ctx, tr)
		assert.ErrorIs(t, err, domain.ErrTranslationExists)

		noDomain := entities.Translation{Locale: "en", Key: "k", Content: "B"}
		_, err = store.Create(ctx, noDomain)
		require.NoError(t, err, "same key without domain is a different identity")
		_, err = store.Create(ctx, noDomain)
		assert.ErrorIs(t, err, domain.ErrTranslationExists)
	})

	t.Run("create requires locale and key", func(t *testing.T) {
		store := newStore(t)
		_, err := store.Create(context.Background(), entities.Translation{Locale: "en", Content: "x"})
		assert.ErrorIs(t, err, domain.ErrInvalidTranslation)
	})

	t.Run("domain is a strict filter", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		seed(t, store,
			entities.Translation{Locale: "en", Key: "k", Content: "A"},
			entities.Translation{Locale: "en", Key: "k", Domain: "d1", Content: "B"},
			entities.Translation{Locale: "en", Key: "only_d1", Domain: "d1", Content: "C"},
		)

		got, err := store.FindOne(ctx, "en", "k", "")
		require.NoError(t, err)
		assert.Equal(t, "A", got.Content)

		got, err = store.FindOne(ctx, "en", "k", "d1")
		require.NoError(t, err)
		assert.Equal(t, "B", got.Content)

		_, err = store.FindOne(ctx, "en", "only_d1", "")
		assert.ErrorIs(t, err, domain.ErrTranslationNotFound)

		many, err := store.FindMany(ctx, "en", []string{"k", "only_d1"}, "")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"k": "A"}, contents(many))

		many, err = store.FindMany(ctx, "en", []string{"k", "only_d1"}, "d1")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"k": "B", "only_d1": "C"}, contents(many))
	})

	t.Run("find many returns only existing keys", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		seed(t, store,
			entities.Translation{Locale: "en", Key: "a", Content: "A"},
			entities.Translation{Locale: "en", Key: "b", Content: "B"},
			entities.Translation{Locale: "es", Key: "a", Content: "A-es"},
		)

		many, err := store.FindMany(ctx, "en", []string{"a", "missing", "b"}, "")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"a": "A", "b": "B"}, contents(many))

		many, err = store.FindMany(ctx, "en", nil, "")
		require.NoError(t, err)
		assert.Empty(t, many)
	})

	t.Run("update", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		_, err := store.Update(ctx, entities.Translation{Locale: "en", Key: "k", Content: "x"})
		assert.ErrorIs(t, err, domain.ErrTranslationNotFound)

		seed(t, store, entities.Translation{Locale: "en", Key: "k", Content: "old"})
		updated, err := store.Update(ctx, entities.Translation{Locale: "en", Key: "k", Content: "new"})
		require.NoError(t, err)
		assert.Equal(t, "new", updated.Content)

		got, err := store.FindOne(ctx, "en", "k", "")
		require.NoError(t, err)
		assert.Equal(t, "new", got.Content)

		_, err = store.Update(ctx, entities.Translation{Locale: "en", Key: "k", Domain: "d1", Content: "x"})
		assert.ErrorIs(t, err, domain.ErrTranslationNotFound)
	})

	t.Run("upsert creates then updates", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		first, err := store.Upsert(ctx, entities.Translation{Locale: "en", Key: "k", Domain: "d1", Content: "one"})
		require.NoError(t, err)
		assert.Equal(t, "one", first.Content)

		second, err := store.Upsert(ctx, entities.Translation{Locale: "en", Key: "k", Domain: "d1", Content: "two"})
		require.NoError(t, err)
		assert.Equal(t, "two", second.Content)

		got, err := store.FindOne(ctx, "en", "k", "d1")
		require.NoError(t, err)
		assert.Equal(t, "two", got.Content)

		_, err = store.FindOne(ctx, "en", "k", "")
		assert.ErrorIs(t, err, domain.ErrTranslationNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		seed(t, store,
			entities.Translation{Locale: "en", Key: "k", Content: "A"},
			entities.Translation{Locale: "en", Key: "k", Domain: "d1", Content: "B"},
		)

		deleted, err := store.Delete(ctx, "en", "k", "d1")
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = store.Delete(ctx, "en", "k", "d1")
		require.NoError(t, err)
		assert.False(t, deleted)

		got, err := store.FindOne(ctx, "en", "k", "")
		require.NoError(t, err, "deleting the domained row keeps the undomained one")
		assert.Equal(t, "A", got.Content)
	})
}

func seed(t *testing.T, store output.TranslationStore, translations ...entities.Translation) {
	t.Helper()
	for _, tr := range translations {
		_, err := store.Create(context.Background(), tr)
		require.NoError(t, err)
	}
}

func contents(ts []entities.Translation) map[string]string {
	out := make(map[string]string, len(ts))
	for _, tr := range ts {
		out[tr.Key] = tr.Content
	}
	return out
}
