package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Open connects to the SQLite database at dsn and creates the schema when it
// is missing. dsn may be a file path or a "file:" URI.
func Open(ctx context.Context, dsn string, logger zerolog.Logger) (*bun.DB, error) {
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer at a time; concurrent connections only buy "database is locked".
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Info().Str("dsn", dsn).Msg("SQLite connected")
	return db, nil
}

// EnsureSchema creates the translations table and its identity index.
func EnsureSchema(ctx context.Context, db bun.IDB) error {
	if _, err := db.NewCreateTable().Model((*translationModel)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("create translations table: %w", err)
	}
	if _, err := db.ExecContext(ctx, createIdentityIndexSQL); err != nil {
		return fmt.Errorf("create translations index: %w", err)
	}
	return nil
}

const createIdentityIndexSQL = `CREATE UNIQUE INDEX IF NOT EXISTS translations_identity_idx
	ON translations (locale, "key", COALESCE(domain, ''))`
