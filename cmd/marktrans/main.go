/*
marktrans resolves __{{key, "default"}} translation markers in text and in
YAML/JSON documents against a translation store.

Usage:

	marktrans <command> [flags]

Commands:

  - migrate: applies PostgreSQL schema migrations (STORE_DRIVER=postgres).
  - seed: imports go-i18n message files (active.es.toml, fr.yaml, ...) into the store.
  - resolve: resolves markers in a file or stdin and prints the result.
  - get, set, delete: read and edit single translations.
  - help: prints usage.

Configuration comes from the environment (and an optional .env file); see
internal/config.
*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"marktrans/internal/config"
	"marktrans/internal/logging"
)

const (
	cmdHelp    = "help"
	cmdMigrate = "migrate"
	cmdSeed    = "seed"
	cmdResolve = "resolve"
	cmdGet     = "get"
	cmdSet     = "set"
	cmdDelete  = "delete"
)

// Command runs one subcommand with its remaining arguments.
type Command func(ctx context.Context, app *App, args []string) error

var commands = map[string]Command{
	cmdMigrate: runMigrate,
	cmdSeed:    runSeed,
	cmdResolve: runResolve,
	cmdGet:     runGet,
	cmdSet:     runSet,
	cmdDelete:  runDelete,
}

// Gets list of available commands
func availableCommands() []string {
	return []string{cmdMigrate, cmdSeed, cmdResolve, cmdGet, cmdSet, cmdDelete, cmdHelp}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: marktrans <command> [flags]\n\nCommands: %s\n", strings.Join(availableCommands(), ", "))
}

func checkFatal(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "No command given.")
		printUsage()
		os.Exit(2)
	}
	if args[0] == cmdHelp || args[0] == "-h" || args[0] == "--help" {
		printUsage()
		return
	}
	command, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Command '%s' not recognised.\n", args[0])
		printUsage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	checkFatal(err)
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app, err := NewApp(ctx, cfg, logger)
	checkFatal(err)
	defer app.Close()

	if err := command(ctx, app, args[1:]); err != nil {
		logger.Error().Err(err).Str("command", args[0]).Msg("command failed")
		app.Close()
		os.Exit(1)
	}
}
