package repositories

import (
	"context"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/myrjola/existyet/internal/errors"
	"github.com/myrjola/existyet/internal/models"
	"github.com/myrjola/existyet/internal/sqlite"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// AnalysisRepository keeps the local history of completed analyses.
type AnalysisRepository struct {
	readWrite *sqlx.DB
	readOnly  *sqlx.DB
	logger    *slog.Logger
}

func NewAnalysisRepository(dbs *sqlite.Database, logger *slog.Logger) *AnalysisRepository {
	return &AnalysisRepository{
		readWrite: sqlx.NewDb(dbs.ReadWrite, "sqlite3"),
		readOnly:  sqlx.NewDb(dbs.ReadOnly, "sqlite3"),
		logger:    logger.With("source", "AnalysisRepository"),
	}
}

// Insert appends entry to the history and returns its id.
func (r *AnalysisRepository) Insert(ctx context.Context, entry models.HistoryEntry) (int64, error) {
	stmt := `INSERT INTO analyses (timestamp, mode, product_idea, problem_statement, competitors, originality_score,
                      analysis_json, sheet_updated)
VALUES (:timestamp, :mode, :product_idea, :problem_statement, :competitors, :originality_score, :analysis_json,
        :sheet_updated)`
	result, err := r.readWrite.NamedExecContext(ctx, stmt, entry)
	if err != nil {
		return 0, errors.Wrap(err, "insert analysis", slog.String("product_idea", entry.ProductIdea))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "read inserted id")
	}
	return id, nil
}

// Recent returns at most limit entries, newest first. The limit is clamped to [1, MaxHistoryLimit].
func (r *AnalysisRepository) Recent(ctx context.Context, limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	limit = min(limit, MaxHistoryLimit)

	entries := []models.HistoryEntry{}
	stmt := `SELECT id, timestamp, mode, product_idea, problem_statement, competitors, originality_score, analysis_json,
       sheet_updated
FROM analyses
ORDER BY id DESC
LIMIT ?`
	if err := r.readOnly.SelectContext(ctx, &entries, stmt, limit); err != nil {
		return nil, errors.Wrap(err, "select recent analyses", slog.Int("limit", limit))
	}
	return entries, nil
}
