package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marktrans/internal/domain"
	"marktrans/internal/domain/entities"
	"marktrans/internal/ports/output"
	"marktrans/internal/ports/output/storetest"
)

func TestTranslationRepository(t *testing.T) {
	storetest.Run(t, func(*testing.T) output.TranslationStore {
		return NewTranslationRepository()
	})
}

func TestNewTranslationRepositoryFrom(t *testing.T) {
	repo, err := NewTranslationRepositoryFrom(
		entities.Translation{Locale: "en", Key: "a", Content: "A"},
		entities.Translation{Locale: "en", Key: "a", Domain: "cust1", Content: "A1"},
	)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.Len())

	got, err := repo.FindOne(context.Background(), "en", "a", "cust1")
	require.NoError(t, err)
	assert.Equal(t, "A1", got.Content)
	assert.False(t, got.CreatedAt.IsZero())

	_, err = NewTranslationRepositoryFrom(
		entities.Translation{Locale: "en", Key: "a", Content: "A"},
		entities.Translation{Locale: "en", Key: "a", Content: "again"},
	)
	assert.ErrorIs(t, err, domain.ErrTranslationExists)
}

func TestFindManyIgnoresRepeatedKeys(t *testing.T) {
	repo, err := NewTranslationRepositoryFrom(entities.Translation{Locale: "en", Key: "a", Content: "A"})
	require.NoError(t, err)

	got, err := repo.FindMany(context.Background(), "en", []string{"a", "a", "b"}, "")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
