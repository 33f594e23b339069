// Package main contains a small command-line entrypoint that registers
// a couple of sample commands and dispatches the one named in argv.
//
//	commander [--history] add 1 2
//	commander [--history] --keyword text=hello --keyword to=world say
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	gcpfirestore "cloud.google.com/go/firestore"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/pflag"

	"github.com/get-eventually/go-commander/command"
	commanderfirestore "github.com/get-eventually/go-commander/firestore"
	"github.com/get-eventually/go-commander/history"
	"github.com/get-eventually/go-commander/opentelemetry"
	"github.com/get-eventually/go-commander/postgres"
	"github.com/get-eventually/go-commander/zaplogger"
)

var (
	errMissingCommand = errors.New("commander.main: missing command name")
	errMixedArguments = errors.New("commander.main: keyword and positional arguments cannot be mixed")
)

type invocation struct {
	name        string
	args        command.Args
	showHistory bool
}

func parseInvocation(argv []string) (invocation, error) {
	flags := pflag.NewFlagSet("commander", pflag.ContinueOnError)
	keywords := flags.StringToString("keyword", nil, "keyword argument in key=value form, can be repeated")
	showHistory := flags.Bool("history", false, "print the recorded call history after the dispatch")

	if err := flags.Parse(argv); err != nil {
		return invocation{}, fmt.Errorf("commander.main: failed to parse flags, %w", err)
	}

	rest := flags.Args()
	if len(rest) == 0 {
		return invocation{}, errMissingCommand
	}

	inv := invocation{name: rest[0], showHistory: *showHistory}

	switch tokens := rest[1:]; {
	case len(*keywords) > 0 && len(tokens) > 0:
		return invocation{}, errMixedArguments
	case len(*keywords) > 0:
		inv.args = command.Keywords(*keywords)
	case len(tokens) > 0:
		inv.args = command.Tokens(tokens)
	}

	return inv, nil
}

type historyStore struct {
	history.Store
	close func()
}

func openHistoryStore(ctx context.Context, cfg *config) (historyStore, error) {
	switch {
	case cfg.PostgresDSN != "":
		if err := postgres.RunMigrations(cfg.PostgresDSN); err != nil {
			return historyStore{}, fmt.Errorf("commander.main: %w", err)
		}

		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return historyStore{}, fmt.Errorf("commander.main: failed to connect to postgres, %w", err)
		}

		return historyStore{Store: postgres.NewHistoryStore(pool), close: pool.Close}, nil

	case cfg.FirestoreProject != "":
		client, err := gcpfirestore.NewClient(ctx, cfg.FirestoreProject)
		if err != nil {
			return historyStore{}, fmt.Errorf("commander.main: failed to connect to firestore, %w", err)
		}

		closeClient := func() { _ = client.Close() }

		return historyStore{Store: commanderfirestore.NewHistoryStore(client), close: closeClient}, nil

	default:
		return historyStore{Store: history.NewInMemoryStore(), close: func() {}}, nil
	}
}

func printHistory(ctx context.Context, out io.Writer, store history.Streamer) error {
	entries, err := history.StreamToSlice(ctx, func(ctx context.Context, stream history.StreamWrite) error {
		return store.Stream(ctx, stream, history.SelectAll)
	})
	if err != nil {
		return fmt.Errorf("commander.main: failed to read history, %w", err)
	}

	for _, entry := range entries {
		line := fmt.Sprintf("%s %s %v", entry.RecordedAt.Format("2006-01-02T15:04:05Z07:00"), entry.Command, entry.Arguments)
		if entry.Failed() {
			line += " failed: " + entry.Error
		}

		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}

	return nil
}

func run(ctx context.Context, argv []string, out io.Writer) error {
	cfg, err := parseConfig()
	if err != nil {
		return fmt.Errorf("commander.main: failed to parse config, %w", err)
	}

	inv, err := parseInvocation(argv)
	if err != nil {
		return err
	}

	zapLogger, err := cfg.newLogger()
	if err != nil {
		return fmt.Errorf("commander.main: failed to initialize logger, %w", err)
	}

	//nolint:errcheck // No need for this error to come up if it happens.
	defer zapLogger.Sync()

	log := zaplogger.Wrap(zapLogger)

	store, err := openHistoryStore(ctx, cfg)
	if err != nil {
		return err
	}

	defer store.close()

	registry := command.NewRegistry(
		command.WithLogger(log),
		command.WithRecorder(store),
	)

	if err := register(registry, out, log); err != nil {
		return err
	}

	dispatcher, err := opentelemetry.NewInstrumentedDispatcher(command.ErrorRecorder{
		Dispatcher: registry,
		Appender:   store,
	})
	if err != nil {
		return fmt.Errorf("commander.main: failed to instrument dispatcher, %w", err)
	}

	dispatchErr := dispatcher.Execute(ctx, inv.name, inv.args)

	if inv.showHistory {
		if err := printHistory(ctx, out, store); err != nil {
			return err
		}
	}

	return dispatchErr
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
