package main

import (
	"context"
	"html/template"
	"log/slog"
	"os"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/donseba/go-htmx"
	"github.com/joho/godotenv"
	"github.com/myrjola/existyet/internal/ai"
	"github.com/myrjola/existyet/internal/analysis"
	"github.com/myrjola/existyet/internal/envstruct"
	"github.com/myrjola/existyet/internal/errors"
	"github.com/myrjola/existyet/internal/githubsearch"
	"github.com/myrjola/existyet/internal/logging"
	"github.com/myrjola/existyet/internal/metrics"
	"github.com/myrjola/existyet/internal/pprofserver"
	"github.com/myrjola/existyet/internal/repositories"
	"github.com/myrjola/existyet/internal/sheets"
	"github.com/myrjola/existyet/internal/sqlite"
)

type application struct {
	logger         *slog.Logger
	analyzer       *analysis.Analyzer
	usageLogger    analysis.UsageLogger
	history        *repositories.AnalysisRepository
	sessionManager *scs.SessionManager
	metrics        *metrics.Metrics
	htmx           *htmx.HTMX
	templates      map[string]*template.Template
	now            func() time.Time
	// operatorToken guards the operator endpoints. Empty disables them.
	operatorToken string
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"EXISTYET_ADDR" envDefault:"localhost:4000"`
	// PprofAddr is the loopback address of the pprof server. Empty disables it.
	PprofAddr string `env:"EXISTYET_PPROF_ADDR" envDefault:""`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ephemeral in-memory database.
	SqliteURL string `env:"EXISTYET_SQLITE_URL" envDefault:"./existyet.sqlite"`
	// OperatorToken is the bearer token for reading the analysis history over HTTP. Empty disables the endpoint.
	OperatorToken string `env:"EXISTYET_OPERATOR_TOKEN" envDefault:""`

	LLMAPIKey  string `env:"PERPLEXITY_API_KEY"  envDefault:""`
	LLMBaseURL string `env:"PERPLEXITY_BASE_URL" envDefault:"https://api.perplexity.ai"`
	LLMModel   string `env:"PERPLEXITY_MODEL"    envDefault:"llama-3.1-sonar-large-128k-online"`

	GitHubToken  string `env:"GITHUB_ACCESS_TOKEN" envDefault:""`
	GitHubAPIURL string `env:"GITHUB_API_URL"      envDefault:""`

	SheetsID            string `env:"GOOGLE_SHEETS_ID"             envDefault:""`
	ServiceAccountEmail string `env:"GOOGLE_SERVICE_ACCOUNT_EMAIL" envDefault:""`
	PrivateKey          string `env:"GOOGLE_PRIVATE_KEY"           envDefault:""`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		cfg config
		err error
	)
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config from environment")
	}

	pprofserver.Launch(ctx, cfg.PprofAddr, logger)

	var db *sqlite.Database
	if db, err = sqlite.NewDatabase(ctx, cfg.SqliteURL, logger); err != nil {
		return errors.Wrap(err, "open database", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "failed to close database", errors.SlogError(closeErr))
		}
	}()

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(db.ReadWrite, 24*time.Hour) //nolint:mnd // daily
	sessionManager.Lifetime = 12 * time.Hour                                               //nolint:mnd // half a day

	var completer analysis.Completer
	aiClient, err := ai.NewClient(ai.Config{APIKey: cfg.LLMAPIKey, BaseURL: cfg.LLMBaseURL, Model: cfg.LLMModel})
	switch {
	case errors.Is(err, ai.ErrNotConfigured):
		logger.LogAttrs(ctx, slog.LevelWarn, "PERPLEXITY_API_KEY not set, analyses will be rejected")
	case err != nil:
		return errors.Wrap(err, "create LLM client")
	default:
		completer = aiClient
	}

	var searcher *githubsearch.Client
	if searcher, err = githubsearch.NewClient(cfg.GitHubToken, cfg.GitHubAPIURL, logger); err != nil {
		return errors.Wrap(err, "create repository search client")
	}

	var usageLogger *sheets.Logger
	if usageLogger, err = sheets.NewLogger(ctx, sheets.Config{
		SpreadsheetID:       cfg.SheetsID,
		ServiceAccountEmail: cfg.ServiceAccountEmail,
		PrivateKey:          cfg.PrivateKey,
	}, logger); err != nil {
		return errors.Wrap(err, "create usage logger")
	}

	m := metrics.New()
	history := repositories.NewAnalysisRepository(db, logger)
	instrumentedUsage := &observedUsageLogger{next: usageLogger, metrics: m}

	var templates map[string]*template.Template
	if templates, err = parseTemplates(); err != nil {
		return errors.Wrap(err, "parse templates")
	}

	app := application{
		logger: logger,
		analyzer: analysis.NewAnalyzer(analysis.Config{
			Completer: completer,
			Searcher:  searcher,
			Usage:     instrumentedUsage,
			History:   history,
			Now:       time.Now,
		}, logger),
		usageLogger:    instrumentedUsage,
		history:        history,
		sessionManager: sessionManager,
		metrics:        m,
		htmx:           htmx.New(),
		templates:      templates,
		now:            time.Now,
		operatorToken:  cfg.OperatorToken,
	}

	if err = app.configureAndStartServer(ctx, cfg.Addr); err != nil {
		return errors.Wrap(err, "start server")
	}

	return nil
}

func main() {
	ctx := context.Background()
	logger := logging.NewLogger(os.Stdout, slog.LevelDebug, true)

	// A missing .env file is fine, the environment may be configured elsewhere.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.LogAttrs(ctx, slog.LevelError, "failed to load .env", errors.SlogError(err))
		os.Exit(1)
	}

	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
