// Package sheets appends usage log rows to a Google spreadsheet.
package sheets

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/myrjola/existyet/internal/errors"
	"github.com/myrjola/existyet/internal/models"
	"github.com/myrjola/existyet/internal/usagelog"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// LogSheetID is the internal id of the sheet rows are appended to. The first sheet of a spreadsheet has id 0.
const LogSheetID int64 = 0

// Config identifies the spreadsheet and the service account allowed to write to it.
type Config struct {
	SpreadsheetID       string
	ServiceAccountEmail string
	// PrivateKey is the PEM encoded service account key. Literal "\n" sequences are accepted in place of newlines.
	PrivateKey string
}

func (c Config) missing() []string {
	var missing []string
	if strings.TrimSpace(c.SpreadsheetID) == "" {
		missing = append(missing, "spreadsheet id")
	}
	if strings.TrimSpace(c.ServiceAccountEmail) == "" {
		missing = append(missing, "service account email")
	}
	if strings.TrimSpace(c.PrivateKey) == "" {
		missing = append(missing, "private key")
	}
	return missing
}

// Logger is the usage logger. Append never panics and never returns an error.
type Logger struct {
	service       *gsheets.Service
	spreadsheetID string
	skipReason    string
	logger        *slog.Logger
}

// NewLogger creates a usage logger. Missing credentials yield a Logger whose appends are [usagelog.Skipped].
//
// opts are applied after the service account credentials and may override the endpoint or HTTP client.
func NewLogger(ctx context.Context, cfg Config, logger *slog.Logger, opts ...option.ClientOption) (*Logger, error) {
	logger = logger.With("source", "sheets")
	if missing := cfg.missing(); len(missing) > 0 {
		return &Logger{
			service:       nil,
			spreadsheetID: "",
			skipReason:    "Google Sheets credentials not configured: " + strings.Join(missing, ", "),
			logger:        logger,
		}, nil
	}

	jwtConfig := &jwt.Config{ //nolint:exhaustruct // defaults are fine
		Email:      cfg.ServiceAccountEmail,
		PrivateKey: []byte(strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n")),
		Scopes:     []string{gsheets.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}
	allOpts := append([]option.ClientOption{option.WithHTTPClient(jwtConfig.Client(ctx))}, opts...)
	service, err := gsheets.NewService(ctx, allOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "create sheets service")
	}
	return &Logger{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		skipReason:    "",
		logger:        logger,
	}, nil
}

// Append appends row to the sheet with id [LogSheetID].
func (l *Logger) Append(ctx context.Context, row models.LogRow) (outcome usagelog.Outcome) {
	if l.service == nil {
		l.logger.LogAttrs(ctx, slog.LevelWarn, "skipping usage log", slog.String("reason", l.skipReason))
		return usagelog.Skipped{Reason: l.skipReason}
	}

	defer func() {
		if r := recover(); r != nil {
			err := errors.New("panic while appending usage log", slog.Any("panic", r))
			l.logger.LogAttrs(ctx, slog.LevelError, "usage log failed", errors.SlogError(err))
			outcome = usagelog.Failed{Reason: err.Error()}
		}
	}()

	if err := l.append(ctx, row); err != nil {
		l.logger.LogAttrs(ctx, slog.LevelError, "usage log failed", errors.SlogError(err))
		return usagelog.Failed{Reason: err.Error()}
	}
	l.logger.LogAttrs(ctx, slog.LevelInfo, "usage log appended", slog.String("product_idea", row.ProductIdea))
	return usagelog.Logged{}
}

func (l *Logger) append(ctx context.Context, row models.LogRow) error {
	spreadsheet, err := l.service.Spreadsheets.Get(l.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return errors.Wrap(err, "load spreadsheet", slog.String("spreadsheet_id", l.spreadsheetID))
	}
	var title string
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.SheetId == LogSheetID {
			title = sheet.Properties.Title
			break
		}
	}
	if title == "" {
		return errors.New("log sheet not found",
			slog.String("spreadsheet_id", l.spreadsheetID), slog.Int64("sheet_id", LogSheetID))
	}

	values := &gsheets.ValueRange{ //nolint:exhaustruct // only values are needed
		Values: [][]interface{}{rowValues(row)},
	}
	if _, err = l.service.Spreadsheets.Values.Append(l.spreadsheetID, quoteSheetTitle(title), values).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do(); err != nil {
		return errors.Wrap(err, "append row", slog.String("sheet", title))
	}
	return nil
}

// rowValues orders the columns as timestamp, product_idea, problem_statement, competitors, originality_score,
// analysis_json.
func rowValues(row models.LogRow) []interface{} {
	var score interface{} = row.OriginalityScore
	if f, err := strconv.ParseFloat(row.OriginalityScore, 64); err == nil {
		score = f
	}
	return []interface{}{
		row.Timestamp,
		row.ProductIdea,
		row.ProblemStatement,
		row.Competitors,
		score,
		row.AnalysisJSON,
	}
}

// quoteSheetTitle turns a sheet title into an A1 notation range covering the whole sheet.
func quoteSheetTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
