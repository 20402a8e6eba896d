package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"marktrans/internal/application"
	"marktrans/internal/config"
	"marktrans/internal/infrastructure/database"
	"marktrans/internal/infrastructure/memory"
	"marktrans/internal/infrastructure/missing"
	"marktrans/internal/infrastructure/sqlite"
	"marktrans/internal/ports/output"
)

const missingLogPermissions = 0o644

// App carries the wiring shared by every command.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Store    output.TranslationStore
	Registry *application.Registry

	closers []io.Closer
}

func NewApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	app := &App{Config: cfg, Logger: logger}

	store, err := app.openStore(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Store = store

	sinks := missing.Multi{missing.LogSink{Logger: logger}}
	if cfg.MissingLogPath != "" {
		f, err := os.OpenFile(cfg.MissingLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, missingLogPermissions)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("open missing log: %w", err)
		}
		app.closers = append(app.closers, f)
		sinks = append(sinks, missing.NewFileSink(f, logger))
	}

	app.Registry = application.NewRegistry(func(name string) (*application.Translator, error) {
		return application.NewTranslator(store,
			application.WithMissingSink(sinks),
			application.WithLogger(logger.With().Str("translator", name).Logger()),
		), nil
	})
	return app, nil
}

func (a *App) openStore(ctx context.Context) (output.TranslationStore, error) {
	switch a.Config.StoreDriver {
	case config.DriverPostgres:
		pool, err := database.NewPool(ctx, a.Config.DatabaseURL, a.Logger)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.closers = append(a.closers, closerFunc(func() error { pool.Close(); return nil }))
		return database.NewTranslationRepository(pool), nil
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, a.Config.SQLitePath, a.Logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db)
		return sqlite.NewTranslationRepository(db), nil
	default:
		a.Logger.Warn().Msg("memory store selected; nothing is persisted between runs")
		return memory.NewTranslationRepository(), nil
	}
}

// Translator returns the default translator of the registry.
func (a *App) Translator() (*application.Translator, error) {
	return a.Registry.Instance(application.DefaultName)
}

// Close releases resources in reverse order of acquisition. It is safe to
// call more than once.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("close")
		}
	}
	a.closers = nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
