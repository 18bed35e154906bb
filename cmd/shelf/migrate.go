package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/phrazzld/shelf/internal/config"
	"github.com/phrazzld/shelf/internal/platform/postgres"
)

// runMigrate executes one goose command against the configured database.
func runMigrate(ctx context.Context, cfg *config.Config, log *slog.Logger, args []string, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintf(stderr, "usage: shelf migrate <%s>\n", strings.Join(postgres.MigrationCommands, "|"))
		return exitUsage
	}
	if cfg.Database.Driver != config.DriverPostgres {
		fmt.Fprintf(stderr, "Migrations require the %s driver (configured: %s)\n",
			config.DriverPostgres, cfg.Database.Driver)
		return exitUsage
	}

	db, err := setupAppDatabase(ctx, cfg, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		return exitFailure
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database connection", "error", err)
		}
	}()

	if err := postgres.Migrate(ctx, db, args[0], log); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return exitFailure
	}
	return exitOK
}
