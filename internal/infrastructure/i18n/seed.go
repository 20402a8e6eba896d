package i18n

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"marktrans/internal/domain/entities"
	"marktrans/internal/ports/output"
)

const defaultSeedConcurrency = 4

// Seeder upserts translations into a store with bounded concurrency.
type Seeder struct {
	store       output.TranslationStore
	concurrency int
	logger      zerolog.Logger
}

func NewSeeder(store output.TranslationStore, concurrency int, logger zerolog.Logger) *Seeder {
	if concurrency <= 0 {
		concurrency = defaultSeedConcurrency
	}
	return &Seeder{store: store, concurrency: concurrency, logger: logger}
}

// Seed upserts every translation and returns how many were written. The
// first failure cancels the remaining writes.
func (s *Seeder) Seed(ctx context.Context, translations []entities.Translation) (int, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	var written atomic.Int64
	for _, t := range translations {
		g.Go(func() error {
			if _, err := s.store.Upsert(ctx, t); err != nil {
				return fmt.Errorf("seed %s/%s: %w", t.Locale, t.Key, err)
			}
			written.Add(1)
			return nil
		})
	}
	err := g.Wait()

	n := int(written.Load())
	s.logger.Info().Int("written", n).Int("total", len(translations)).Msg("seed finished")
	return n, err
}
