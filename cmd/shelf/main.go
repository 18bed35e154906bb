// Package main implements the shelf command: a library circulation console
// (interactive or one operation per invocation), an HTTP server, and a
// migration runner, all sharing one configuration.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/phrazzld/shelf/internal/config"
	"github.com/phrazzld/shelf/internal/console"
	"github.com/phrazzld/shelf/internal/platform/logger"
)

// Process exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// replPrompt is shown before each line of an interactive text session.
const replPrompt = "shelf> "

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run parses args and executes the requested mode, returning the process exit code.
//
//	shelf [-config path]                    start the REPL
//	shelf [-config path] <operation> args…  run one console operation
//	shelf [-config path] serve              start the HTTP server
//	shelf [-config path] migrate <command>  run database migrations
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("shelf", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "path to a config file (default: ./shelf.yaml if present)")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	rest := flags.Args()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load configuration: %v\n", err)
		return exitFailure
	}

	log := logger.New(stderr, cfg.Server)
	slog.SetDefault(log)
	log.Debug("configuration loaded",
		"driver", cfg.Database.Driver,
		"log_level", cfg.Server.LogLevel,
		"console_output", cfg.Console.Output)

	if len(rest) > 0 && rest[0] == "migrate" {
		return runMigrate(ctx, cfg, log, rest[1:], stderr)
	}

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize application", "error", err)
		fmt.Fprintf(stderr, "Failed to initialize application: %v\n", err)
		return exitFailure
	}
	defer app.cleanup()

	if len(rest) > 0 && rest[0] == "serve" {
		if err := app.Run(ctx); err != nil {
			log.Error("server error", "error", err)
			return exitFailure
		}
		return exitOK
	}

	dispatcher, err := app.newDispatcher(stdout)
	if err != nil {
		log.Error("failed to create console", "error", err)
		return exitFailure
	}

	if len(rest) == 0 {
		prompt := replPrompt
		if cfg.Console.Output == console.FormatJSON {
			prompt = ""
		}
		if err := dispatcher.RunREPL(ctx, stdin, prompt); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("console stopped", "error", err)
			return exitFailure
		}
		return exitOK
	}

	return exitCode(dispatcher.Dispatch(ctx, strings.ToLower(rest[0]), rest[1:]))
}

// exitCode maps the result of a one-shot operation to a process exit code.
// Refused outcomes such as an unavailable book are not failures.
func exitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, console.ErrQuit):
		return exitOK
	case errors.Is(err, console.ErrUsage):
		return exitUsage
	default:
		return exitFailure
	}
}
