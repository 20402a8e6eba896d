package i18n

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marktrans/internal/domain/entities"
	"marktrans/internal/infrastructure/memory"
	"marktrans/internal/ports/output"
)

func TestSeederUpsertsEverything(t *testing.T) {
	store := memory.NewTranslationRepository()
	seeder := NewSeeder(store, 3, zerolog.Nop())

	var ts []entities.Translation
	for i := range 20 {
		ts = append(ts, entities.Translation{Locale: "en", Key: fmt.Sprintf("k%d", i), Content: "v"})
	}

	n, err := seeder.Seed(context.Background(), ts)
	require.NoError(t, err)
	assert.Equal(t, 20, n)
	assert.Equal(t, 20, store.Len())

	ts[0].Content = "changed"
	n, err = seeder.Seed(context.Background(), ts[:1])
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := store.FindOne(context.Background(), "en", "k0", "")
	require.NoError(t, err)
	assert.Equal(t, "changed", got.Content)
	assert.Equal(t, 20, store.Len())
}

type failingStore struct {
	output.TranslationStore
}

func (failingStore) Upsert(context.Context, entities.Translation) (entities.Translation, error) {
	return entities.Translation{}, errors.New("read-only")
}

func TestSeederReportsFailure(t *testing.T) {
	seeder := NewSeeder(failingStore{}, 0, zerolog.Nop())

	n, err := seeder.Seed(context.Background(), []entities.Translation{{Locale: "en", Key: "k", Content: "v"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only")
	assert.Equal(t, 0, n)
}

func TestSeederEmpty(t *testing.T) {
	n, err := NewSeeder(memory.NewTranslationRepository(), 2, zerolog.Nop()).Seed(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
