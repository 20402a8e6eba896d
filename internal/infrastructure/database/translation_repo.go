package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"marktrans/internal/domain"
	"marktrans/internal/domain/entities"
	"marktrans/internal/ports/output"
)

var _ output.TranslationStore = (*TranslationRepository)(nil)

// Querier is the subset of pgxpool.Pool and pgx.Tx used by the repository.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const uniqueViolation = "23505"

// Rows without a domain hold NULL, so COALESCE(domain, '') = '' selects
// exactly them and matches the unique index expression.
const (
	selectTranslation = `SELECT locale, key, domain, content, created_at, updated_at FROM translations`
	returningColumns  = ` RETURNING locale, key, domain, content, created_at, updated_at`

	findOneSQL = selectTranslation +
		` WHERE locale = $1 AND key = $2 AND COALESCE(domain, '') = $3 LIMIT 1`
	findManySQL = selectTranslation +
		` WHERE locale = $1 AND key = ANY($2) AND COALESCE(domain, '') = $3 ORDER BY key`
	createSQL = `INSERT INTO translations (locale, key, domain, content) VALUES ($1, $2, $3, $4)` +
		returningColumns
	updateSQL = `UPDATE translations SET content = $4, updated_at = now()
		WHERE locale = $1 AND key = $2 AND COALESCE(domain, '') = $3` +
		returningColumns
	upsertSQL = `INSERT INTO translations (locale, key, domain, content) VALUES ($1, $2, $3, $4)
		ON CONFLICT (locale, key, (COALESCE(domain, ''))) DO UPDATE
		SET content = EXCLUDED.content, updated_at = now()` +
		returningColumns
	deleteSQL = `DELETE FROM translations WHERE locale = $1 AND key = $2 AND COALESCE(domain, '') = $3`
)

// TranslationRepository implements output.TranslationStore on PostgreSQL.
type TranslationRepository struct {
	db Querier
}

func NewTranslationRepository(db Querier) *TranslationRepository {
	return &TranslationRepository{db: db}
}

func (r *TranslationRepository) FindOne(ctx context.Context, locale, key, dom string) (entities.Translation, error) {
	t, err := r.queryOne(ctx, findOneSQL, locale, key, dom)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.Translation{}, domain.ErrTranslationNotFound
	}
	if err != nil {
		return entities.Translation{}, fmt.Errorf("get translation: %w", err)
	}
	return t, nil
}

func (r *TranslationRepository) FindMany(ctx context.Context, locale string, keys []string, dom string) ([]entities.Translation, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, findManySQL, locale, keys, dom)
	if err != nil {
		return nil, fmt.Errorf("find translations: %w", err)
	}
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[translationRow])
	if err != nil {
		return nil, fmt.Errorf("find translations: %w", err)
	}
	out := make([]entities.Translation, len(found))
	for i := range found {
		out[i] = translationToDomain(found[i])
	}
	return out, nil
}

func (r *TranslationRepository) Create(ctx context.Context, t entities.Translation) (entities.Translation, error) {
	if err := t.Validate(); err != nil {
		return entities.Translation{}, fmt.Errorf("create translation: %w", err)
	}
	created, err := r.queryOne(ctx, createSQL, t.Locale, t.Key, domainToText(t.Domain), t.Content)
	if isUniqueViolation(err) {
		return entities.Translation{}, fmt.Errorf("create translation %s/%s: %w", t.Locale, t.Key, domain.ErrTranslationExists)
	}
	if err != nil {
		return entities.Translation{}, fmt.Errorf("create translation: %w", err)
	}
	return created, nil
}

func (r *TranslationRepository) Update(ctx context.Context, t entities.Translation) (entities.Translation, error) {
	updated, err := r.queryOne(ctx, updateSQL, t.Locale, t.Key, t.Domain, t.Content)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.Translation{}, fmt.Errorf("update translation %s/%s: %w", t.Locale, t.Key, domain.ErrTranslationNotFound)
	}
	if err != nil {
		return entities.Translation{}, fmt.Errorf("update translation: %w", err)
	}
	return updated, nil
}

func (r *TranslationRepository) Upsert(ctx context.Context, t entities.Translation) (entities.Translation, error) {
	if err := t.Validate(); err != nil {
		return entities.Translation{}, fmt.Errorf("upsert translation: %w", err)
	}
	stored, err := r.queryOne(ctx, upsertSQL, t.Locale, t.Key, domainToText(t.Domain), t.Content)
	if err != nil {
		return entities.Translation{}, fmt.Errorf("upsert translation: %w", err)
	}
	return stored, nil
}

func (r *TranslationRepository) Delete(ctx context.Context, locale, key, dom string) (bool, error) {
	tag, err := r.db.Exec(ctx, deleteSQL, locale, key, dom)
	if err != nil {
		return false, fmt.Errorf("delete translation: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *TranslationRepository) queryOne(ctx context.Context, sql string, args ...any) (entities.Translation, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return entities.Translation{}, err
	}
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[translationRow])
	if err != nil {
		return entities.Translation{}, err
	}
	return translationToDomain(row), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
