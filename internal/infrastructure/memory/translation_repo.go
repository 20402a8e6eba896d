package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"marktrans/internal/domain"
	"marktrans/internal/domain/entities"
	"marktrans/internal/ports/output"
)

var _ output.TranslationStore = (*TranslationRepository)(nil)

// TranslationRepository keeps translations in process memory. It is safe for
// concurrent use.
type TranslationRepository struct {
	mu   sync.RWMutex
	rows map[entities.Identity]entities.Translation
	now  func() time.Time
}

func NewTranslationRepository() *TranslationRepository {
	return &TranslationRepository{
		rows: make(map[entities.Identity]entities.Translation),
		now:  time.Now,
	}
}

// NewTranslationRepositoryFrom seeds a repository, failing on the first
// invalid or duplicated translation.
func NewTranslationRepositoryFrom(translations ...entities.Translation) (*TranslationRepository, error) {
	r := NewTranslationRepository()
	for _, t := range translations {
		if _, err := r.Create(context.Background(), t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *TranslationRepository) FindOne(_ context.Context, locale, key, dom string) (entities.Translation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.rows[entities.Identity{Locale: locale, Key: key, Domain: dom}]
	if !ok {
		return entities.Translation{}, domain.ErrTranslationNotFound
	}
	return t, nil
}

func (r *TranslationRepository) FindMany(_ context.Context, locale string, keys []string, dom string) ([]entities.Translation, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.Translation, 0, len(keys))
	for _, key := range slices.Compact(slices.Sorted(slices.Values(keys))) {
		if t, ok := r.rows[entities.Identity{Locale: locale, Key: key, Domain: dom}]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *TranslationRepository) Create(_ context.Context, t entities.Translation) (entities.Translation, error) {
	if err := t.Validate(); err != nil {
		return entities.Translation{}, fmt.Errorf("create translation: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	id := t.Identity()
	if _, ok := r.rows[id]; ok {
		return entities.Translation{}, fmt.Errorf("create translation %s/%s: %w", t.Locale, t.Key, domain.ErrTranslationExists)
	}
	now := r.now().UTC()
	t.CreatedAt, t.UpdatedAt = now, now
	r.rows[id] = t
	return t, nil
}

func (r *TranslationRepository) Update(_ context.Context, t entities.Translation) (entities.Translation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.rows[t.Identity()]
	if !ok {
		return entities.Translation{}, fmt.Errorf("update translation %s/%s: %w", t.Locale, t.Key, domain.ErrTranslationNotFound)
	}
	existing.Content = t.Content
	existing.UpdatedAt = r.now().UTC()
	r.rows[t.Identity()] = existing
	return existing, nil
}

func (r *TranslationRepository) Upsert(_ context.Context, t entities.Translation) (entities.Translation, error) {
	if err := t.Validate(); err != nil {
		return entities.Translation{}, fmt.Errorf("upsert translation: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now().UTC()
	if existing, ok := r.rows[t.Identity()]; ok {
		existing.Content = t.Content
		existing.UpdatedAt = now
		r.rows[t.Identity()] = existing
		return existing, nil
	}
	t.CreatedAt, t.UpdatedAt = now, now
	r.rows[t.Identity()] = t
	return t, nil
}

func (r *TranslationRepository) Delete(_ context.Context, locale, key, dom string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := entities.Identity{Locale: locale, Key: key, Domain: dom}
	if _, ok := r.rows[id]; !ok {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}

// Len returns the number of stored translations.
func (r *TranslationRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rows)
}
