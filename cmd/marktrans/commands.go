package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"

	"marktrans/internal/config"
	"marktrans/internal/domain"
	"marktrans/internal/domain/entities"
	"marktrans/internal/infrastructure/database"
	"marktrans/internal/infrastructure/document"
	"marktrans/internal/infrastructure/i18n"
)

func runMigrate(_ context.Context, app *App, args []string) error {
	fs := flag.NewFlagSet(cmdMigrate, flag.ContinueOnError)
	path := fs.String("path", app.Config.MigrationsPath, "migrations `directory`")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if app.Config.StoreDriver != config.DriverPostgres {
		app.Logger.Info().Str("driver", app.Config.StoreDriver).Msg("schema is created on open; nothing to migrate")
		return nil
	}
	return database.RunMigrations(app.Config.DatabaseURL, *path, app.Logger)
}

func runSeed(ctx context.Context, app *App, args []string) error {
	fs := flag.NewFlagSet(cmdSeed, flag.ContinueOnError)
	domainName := fs.String("domain", "", "domain assigned to every imported translation")
	concurrency := fs.Int("concurrency", app.Config.SeedConcurrency, "parallel upserts")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("seed: at least one message file is required")
	}

	catalog := i18n.NewCatalog(app.Config.DefaultLocale, app.Logger)
	translations, err := catalog.LoadFiles(*domainName, fs.Args()...)
	if err != nil {
		return err
	}
	n, err := i18n.NewSeeder(app.Store, *concurrency, app.Logger).Seed(ctx, translations)
	if err != nil {
		return err
	}
	fmt.Printf("seeded %d translations\n", n)
	return nil
}

func runResolve(ctx context.Context, app *App, args []string) error {
	fs := flag.NewFlagSet(cmdResolve, flag.ContinueOnError)
	scope := scopeFlags(fs, app.Config.DefaultLocale)
	tree := fs.Bool("tree", false, "treat the input as a YAML/JSON document (implied by .json/.yaml/.yml files)")
	format := fs.String("format", "", "output format for documents: json or yaml (default from the input file)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	sc, err := scope()
	if err != nil {
		return err
	}

	in, name, err := readInput(fs.Arg(0))
	if err != nil {
		return err
	}
	translator, err := app.Translator()
	if err != nil {
		return err
	}

	isDocument := *tree
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		isDocument = true
	}

	if !isDocument {
		out, err := translator.ResolveString(ctx, sc, string(in))
		if err != nil {
			return err
		}
		_, err = io.WriteString(os.Stdout, out)
		return err
	}

	doc, err := document.Decode(in)
	if err != nil {
		return err
	}
	resolved, err := translator.ResolveTree(ctx, sc, doc)
	if err != nil {
		return err
	}
	outFormat := document.Format(*format)
	if outFormat == "" {
		outFormat = document.FormatFromPath(name)
	}
	encoded, err := document.Encode(resolved, outFormat)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(encoded)
	return err
}

func runGet(ctx context.Context, app *App, args []string) error {
	fs := flag.NewFlagSet(cmdGet, flag.ContinueOnError)
	scope := scopeFlags(fs, app.Config.DefaultLocale)
	if err := fs.Parse(args); err != nil {
		return err
	}
	sc, err := scope()
	if err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("get: usage: get [flags] <key>")
	}
	t, err := app.Store.FindOne(ctx, sc.Locale, fs.Arg(0), sc.Domain)
	if err != nil {
		return err
	}
	fmt.Println(t.Content)
	return nil
}

func runSet(ctx context.Context, app *App, args []string) error {
	fs := flag.NewFlagSet(cmdSet, flag.ContinueOnError)
	scope := scopeFlags(fs, app.Config.DefaultLocale)
	mode := fs.String("mode", "upsert", "write mode: create, update or upsert")
	if err := fs.Parse(args); err != nil {
		return err
	}
	sc, err := scope()
	if err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return errors.New("set: usage: set [flags] <key> <content>")
	}
	t := entities.Translation{Locale: sc.Locale, Key: fs.Arg(0), Domain: sc.Domain, Content: fs.Arg(1)}

	switch *mode {
	case "create":
		_, err = app.Store.Create(ctx, t)
	case "update":
		_, err = app.Store.Update(ctx, t)
	case "upsert":
		_, err = app.Store.Upsert(ctx, t)
	default:
		return fmt.Errorf("set: unknown mode %q", *mode)
	}
	return err
}

func runDelete(ctx context.Context, app *App, args []string) error {
	fs := flag.NewFlagSet(cmdDelete, flag.ContinueOnError)
	scope := scopeFlags(fs, app.Config.DefaultLocale)
	if err := fs.Parse(args); err != nil {
		return err
	}
	sc, err := scope()
	if err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("delete: usage: delete [flags] <key>")
	}
	deleted, err := app.Store.Delete(ctx, sc.Locale, fs.Arg(0), sc.Domain)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("delete %q: %w", fs.Arg(0), domain.ErrTranslationNotFound)
	}
	return nil
}

// scopeFlags registers -locale and -domain on fs. The returned function
// validates the locale once flags are parsed.
func scopeFlags(fs *flag.FlagSet, defaultLocale string) func() (entities.Scope, error) {
	locale := fs.String("locale", defaultLocale, "locale to resolve against")
	domainName := fs.String("domain", "", "domain to resolve against (empty for none)")
	return func() (entities.Scope, error) {
		tag, err := language.Parse(*locale)
		if err != nil {
			return entities.Scope{}, fmt.Errorf("invalid locale %q: %w", *locale, err)
		}
		return entities.Scope{Locale: tag.String(), Domain: *domainName}, nil
	}
}

// readInput reads the named file, or stdin when name is empty or "-".
func readInput(name string) ([]byte, string, error) {
	if name == "" || name == "-" {
		b, err := io.ReadAll(os.Stdin)
		return b, "", err
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, "", fmt.Errorf("read input: %w", err)
	}
	return b, name, nil
}

