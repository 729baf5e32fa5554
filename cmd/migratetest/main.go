// Command migratetest syncs the schema of a copy of the production database and checks that the analysis history
// survived the migration.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/myrjola/existyet/internal/errors"
	"github.com/myrjola/existyet/internal/sqlite"
	"github.com/myrjola/existyet/internal/testhelpers"
)

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	var (
		err       error
		start     = time.Now()
		ctx       context.Context
		sqliteURL string
		ok        bool
		cancel    context.CancelFunc
	)
	ctx = context.Background()
	ctx, cancel = context.WithTimeout(ctx, 5*time.Second) //nolint:mnd // 5 seconds

	if sqliteURL, ok = os.LookupEnv("EXISTYET_SQLITE_URL"); !ok {
		logger.LogAttrs(ctx, slog.LevelError, "EXISTYET_SQLITE_URL not set")
		os.Exit(1)
	}

	var db *sqlite.Database
	if db, err = sqlite.NewDatabase(ctx, sqliteURL, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating database",
			slog.String("url", sqliteURL), errors.SlogError(err))
		os.Exit(1)
	}

	var count, mismatched int
	if err = db.ReadOnly.QueryRowContext(ctx, `SELECT COUNT(*) FROM analyses`).Scan(&count); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error counting analyses", errors.SlogError(err))
		os.Exit(1)
	}
	// Every row must still have a parseable analysis document after the table has been rebuilt.
	err = db.ReadOnly.QueryRowContext(ctx, `SELECT COUNT(*) FROM analyses WHERE json_valid(analysis_json) = 0`).
		Scan(&mismatched)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error validating analyses", errors.SlogError(err))
		os.Exit(1)
	}
	if mismatched > 0 {
		logger.LogAttrs(ctx, slog.LevelError, "analyses with invalid JSON found", slog.Int("count", mismatched))
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "analysis count", slog.Int("count", count))

	if err = db.Close(); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error closing database", errors.SlogError(err))
		os.Exit(1)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "Migration test successful 🙌", slog.Duration("duration", time.Since(start)))
	cancel()
	os.Exit(0)
}
