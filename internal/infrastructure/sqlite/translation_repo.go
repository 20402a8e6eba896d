package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"

	"marktrans/internal/domain"
	"marktrans/internal/domain/entities"
	"marktrans/internal/ports/output"
)

var _ output.TranslationStore = (*TranslationRepository)(nil)

// TranslationRepository implements output.TranslationStore on SQLite via Bun.
type TranslationRepository struct {
	db  *bun.DB
	now func() time.Time
}

func NewTranslationRepository(db *bun.DB) *TranslationRepository {
	return &TranslationRepository{db: db, now: time.Now}
}

type translationModel struct {
	bun.BaseModel `bun:"table:translations,alias:t"`

	ID        int64     `bun:",pk,autoincrement"`
	Locale    string    `bun:"locale,notnull"`
	Key       string    `bun:"key,notnull"`
	Domain    *string   `bun:"domain"`
	Content   string    `bun:"content,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

func modelFromTranslation(t entities.Translation) translationModel {
	m := translationModel{
		Locale:  t.Locale,
		Key:     t.Key,
		Content: t.Content,
	}
	if t.Domain != "" {
		d := t.Domain
		m.Domain = &d
	}
	return m
}

func modelToTranslation(m *translationModel) entities.Translation {
	t := entities.Translation{
		Locale:    m.Locale,
		Key:       m.Key,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Domain != nil {
		t.Domain = *m.Domain
	}
	return t
}

// whereIdentity filters on locale and domain. NULL domains are stored for the
// empty domain, so COALESCE(domain, '') = '' selects exactly those rows.
func whereIdentity(q *bun.SelectQuery, locale, dom string) *bun.SelectQuery {
	return q.
		Where("?TableAlias.locale = ?", locale).
		Where("COALESCE(?TableAlias.domain, '') = ?", dom)
}

func (r *TranslationRepository) FindOne(ctx context.Context, locale, key, dom string) (entities.Translation, error) {
	m, err := findModel(ctx, r.db, locale, key, dom)
	if err != nil {
		return entities.Translation{}, err
	}
	return modelToTranslation(m), nil
}

func (r *TranslationRepository) FindMany(ctx context.Context, locale string, keys []string, dom string) ([]entities.Translation, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	var models []translationModel
	err := whereIdentity(r.db.NewSelect().Model(&models), locale, dom).
		Where(`?TableAlias."key" IN (?)`, bun.In(keys)).
		OrderExpr(`?TableAlias."key" ASC`).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("find translations: %w", err)
	}
	out := make([]entities.Translation, len(models))
	for i := range models {
		out[i] = modelToTranslation(&models[i])
	}
	return out, nil
}

func (r *TranslationRepository) Create(ctx context.Context, t entities.Translation) (entities.Translation, error) {
	if err := t.Validate(); err != nil {
		return entities.Translation{}, fmt.Errorf("create translation: %w", err)
	}
	m := modelFromTranslation(t)
	m.CreatedAt = r.now().UTC()
	m.UpdatedAt = m.CreatedAt
	if _, err := r.db.NewInsert().Model(&m).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return entities.Translation{}, fmt.Errorf("create translation %s/%s: %w", t.Locale, t.Key, domain.ErrTranslationExists)
		}
		return entities.Translation{}, fmt.Errorf("create translation: %w", err)
	}
	return modelToTranslation(&m), nil
}

func (r *TranslationRepository) Update(ctx context.Context, t entities.Translation) (entities.Translation, error) {
	var out entities.Translation
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		m, err := findModel(ctx, tx, t.Locale, t.Key, t.Domain)
		if err != nil {
			return err
		}
		if err := r.updateContent(ctx, tx, m, t.Content); err != nil {
			return err
		}
		out = modelToTranslation(m)
		return nil
	})
	if err != nil {
		return entities.Translation{}, fmt.Errorf("update translation %s/%s: %w", t.Locale, t.Key, err)
	}
	return out, nil
}

func (r *TranslationRepository) Upsert(ctx context.Context, t entities.Translation) (entities.Translation, error) {
	if err := t.Validate(); err != nil {
		return entities.Translation{}, fmt.Errorf("upsert translation: %w", err)
	}
	var out entities.Translation
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		m, err := findModel(ctx, tx, t.Locale, t.Key, t.Domain)
		switch {
		case err == nil:
			if err := r.updateContent(ctx, tx, m, t.Content); err != nil {
				return err
			}
			out = modelToTranslation(m)
			return nil
		case errors.Is(err, domain.ErrTranslationNotFound):
			created := modelFromTranslation(t)
			created.CreatedAt = r.now().UTC()
			created.UpdatedAt = created.CreatedAt
			if _, err := tx.NewInsert().Model(&created).Exec(ctx); err != nil {
				return err
			}
			out = modelToTranslation(&created)
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return entities.Translation{}, fmt.Errorf("upsert translation: %w", err)
	}
	return out, nil
}

func (r *TranslationRepository) Delete(ctx context.Context, locale, key, dom string) (bool, error) {
	deleted := false
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		m, err := findModel(ctx, tx, locale, key, dom)
		if errors.Is(err, domain.ErrTranslationNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		res, err := tx.NewDelete().Model(m).WherePK().Exec(ctx)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		deleted = n > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete translation: %w", err)
	}
	return deleted, nil
}

func (r *TranslationRepository) updateContent(ctx context.Context, db bun.IDB, m *translationModel, content string) error {
	m.Content = content
	m.UpdatedAt = r.now().UTC()
	_, err := db.NewUpdate().
		Model(m).
		Column("content", "updated_at").
		WherePK().
		Exec(ctx)
	return err
}

func findModel(ctx context.Context, db bun.IDB, locale, key, dom string) (*translationModel, error) {
	m := new(translationModel)
	err := whereIdentity(db.NewSelect().Model(m), locale, dom).
		Where(`?TableAlias."key" = ?`, key).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTranslationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get translation: %w", err)
	}
	return m, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
