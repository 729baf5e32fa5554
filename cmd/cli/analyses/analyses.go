// Package analyses holds the commands that run and list product idea analyses.
package analyses

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/myrjola/existyet/internal/ai"
	"github.com/myrjola/existyet/internal/analysis"
	"github.com/myrjola/existyet/internal/envstruct"
	"github.com/myrjola/existyet/internal/githubsearch"
	"github.com/myrjola/existyet/internal/logging"
	"github.com/myrjola/existyet/internal/repositories"
	"github.com/myrjola/existyet/internal/resultview"
	"github.com/myrjola/existyet/internal/sheets"
	"github.com/myrjola/existyet/internal/sqlite"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "analysis",
	Title: "Analyses",
}

type config struct {
	SqliteURL           string `env:"EXISTYET_SQLITE_URL"          envDefault:"./existyet.sqlite"`
	LLMAPIKey           string `env:"PERPLEXITY_API_KEY"           envDefault:""`
	LLMBaseURL          string `env:"PERPLEXITY_BASE_URL"          envDefault:"https://api.perplexity.ai"`
	LLMModel            string `env:"PERPLEXITY_MODEL"             envDefault:"llama-3.1-sonar-large-128k-online"`
	GitHubToken         string `env:"GITHUB_ACCESS_TOKEN"          envDefault:""`
	GitHubAPIURL        string `env:"GITHUB_API_URL"               envDefault:""`
	SheetsID            string `env:"GOOGLE_SHEETS_ID"             envDefault:""`
	ServiceAccountEmail string `env:"GOOGLE_SERVICE_ACCOUNT_EMAIL" envDefault:""`
	PrivateKey          string `env:"GOOGLE_PRIVATE_KEY"           envDefault:""`
}

func loadConfig() (config, error) {
	var cfg config
	if err := envstruct.Populate(&cfg, os.LookupEnv); err != nil {
		return cfg, fmt.Errorf("read configuration: %w", err)
	}
	return cfg, nil
}

// commandLogger logs warnings and errors to stderr so that stdout only carries results.
func commandLogger(cmd *cobra.Command) *slog.Logger {
	return logging.NewLogger(cmd.ErrOrStderr(), slog.LevelWarn, false)
}

func init() {
	Analyze.Flags().String("mode", string(analysis.ModeCompetitors), "competitors or startups")
	Analyze.Flags().Bool("json", false, "print the sanitized model response as JSON")
	Analyze.Flags().Bool("record", false, "append the analysis to the usage log and the local history")
	Analyze.Flags().Duration("timeout", time.Minute, "give up after this long")
	History.Flags().Int("limit", repositories.DefaultHistoryLimit, "number of analyses to list")
}

var Analyze = &cobra.Command{
	Use:     "analyze [idea]",
	GroupID: "analysis",
	Short:   "Analyze a product idea",
	Long:    `Asks the LLM for a competitor or startup analysis of the idea and searches for related repositories.`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, _ := cmd.Flags().GetString("mode")
		asJSON, _ := cmd.Flags().GetBool("json")
		record, _ := cmd.Flags().GetBool("record")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()
		logger := commandLogger(cmd)

		analyzerConfig := analysis.Config{} //nolint:exhaustruct // filled below.
		client, err := ai.NewClient(ai.Config{APIKey: cfg.LLMAPIKey, BaseURL: cfg.LLMBaseURL, Model: cfg.LLMModel})
		if err != nil {
			return fmt.Errorf("create LLM client: %w", err)
		}
		analyzerConfig.Completer = client
		if analyzerConfig.Searcher, err = githubsearch.NewClient(cfg.GitHubToken, cfg.GitHubAPIURL, logger); err != nil {
			return fmt.Errorf("create repository search client: %w", err)
		}
		if record {
			usage, usageErr := sheets.NewLogger(ctx, sheets.Config{
				SpreadsheetID:       cfg.SheetsID,
				ServiceAccountEmail: cfg.ServiceAccountEmail,
				PrivateKey:          cfg.PrivateKey,
			}, logger)
			if usageErr != nil {
				return fmt.Errorf("create usage logger: %w", usageErr)
			}
			db, dbErr := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
			if dbErr != nil {
				return fmt.Errorf("open database: %w", dbErr)
			}
			defer func() {
				_ = db.Close()
			}()
			analyzerConfig.Usage = usage
			analyzerConfig.History = repositories.NewAnalysisRepository(db, logger)
		}

		resp, err := analysis.NewAnalyzer(analyzerConfig, logger).Analyze(ctx, analysis.Request{
			ProductIdea: strings.Join(args, " "),
			Mode:        analysis.Mode(mode),
		})
		if err != nil {
			return fmt.Errorf("analyze: %w", err)
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), resp)
		}
		printView(cmd.OutOrStdout(), resultview.Build(resp.Content))
		for _, repo := range resp.GitHubResults {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "repo: %s (%d stars, %s) %s\n", repo.Name, repo.Stars, repo.Language,
				repo.URL)
		}
		return nil
	},
}

func printJSON(w io.Writer, resp *analysis.Response) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any{
		"content":       json.RawMessage(resp.Content),
		"githubResults": resp.GitHubResults,
		"sheetUpdated":  resp.SheetUpdated,
	}); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

func printView(w io.Writer, v resultview.View) {
	_, _ = fmt.Fprintf(w, "%s:\n", v.ListTitle)
	if len(v.Items) == 0 {
		_, _ = fmt.Fprintf(w, "  %s\n", v.EmptyMessage)
	}
	for _, item := range v.Items {
		_, _ = fmt.Fprintf(w, "  - %s", item.Name)
		if item.URL != "" {
			_, _ = fmt.Fprintf(w, " <%s>", item.URL)
		}
		_, _ = fmt.Fprintln(w)
	}
	if v.OriginalityScore != nil {
		_, _ = fmt.Fprintf(w, "originality: %s/100 (%s)\n", resultview.FormatScore(*v.OriginalityScore),
			v.ScoreLabel())
	}
}

var History = &cobra.Command{
	Use:     "history",
	GroupID: "analysis",
	Short:   "List recent analyses",
	Long:    `Lists the analyses kept in the local SQLite history, newest first.`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := commandLogger(cmd)
		db, err := sqlite.NewDatabase(cmd.Context(), cfg.SqliteURL, logger)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer func() {
			_ = db.Close()
		}()
		entries, err := repositories.NewAnalysisRepository(db, logger).Recent(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("list analyses: %w", err)
		}
		for _, e := range entries {
			score := e.OriginalityScore
			if score == "" {
				score = "-"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%s\n", e.ID, e.Timestamp, e.Mode, score,
				e.ProductIdea)
		}
		return nil
	},
}
