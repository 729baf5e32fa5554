package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/myrjola/existyet/internal/ai"
	"github.com/myrjola/existyet/internal/errors"
	"github.com/myrjola/existyet/internal/models"
	"github.com/myrjola/existyet/internal/usagelog"
	"golang.org/x/sync/errgroup"
)

// Completer returns the model's answer to userText under systemPrompt.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userText string) (string, error)
}

// Searcher finds repositories related to the query. It must never fail; problems yield an empty slice.
type Searcher interface {
	Search(ctx context.Context, query string) []models.Repository
}

// UsageLogger appends a row to the usage log.
type UsageLogger interface {
	Append(ctx context.Context, row models.LogRow) usagelog.Outcome
}

// HistoryRecorder keeps completed analyses locally.
type HistoryRecorder interface {
	Insert(ctx context.Context, entry models.HistoryEntry) (int64, error)
}

type Request struct {
	ProductIdea string
	Mode        Mode
}

type Response struct {
	// Content is the sanitized model output.
	Content       string
	GitHubResults []models.Repository
	SheetUpdated  bool
	SheetOutcome  usagelog.Outcome
	Result        *Result
}

// Analyzer orchestrates an analysis: completion and repository search run concurrently, the completion is validated
// and the outcome is logged.
type Analyzer struct {
	completer Completer
	searcher  Searcher
	usage     UsageLogger
	history   HistoryRecorder
	logger    *slog.Logger
	now       func() time.Time
}

// Config wires the collaborators of an [Analyzer]. Completer nil means the LLM is not configured. Searcher, Usage and
// History are optional.
type Config struct {
	Completer Completer
	Searcher  Searcher
	Usage     UsageLogger
	History   HistoryRecorder
	Now       func() time.Time
}

func NewAnalyzer(cfg Config, logger *slog.Logger) *Analyzer {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Analyzer{
		completer: cfg.Completer,
		searcher:  cfg.Searcher,
		usage:     cfg.Usage,
		history:   cfg.History,
		logger:    logger.With("source", "analyzer"),
		now:       now,
	}
}

func systemPrompt(mode Mode) string {
	if mode == ModeStartups {
		return ai.StartupPrompt
	}
	return ai.CompetitorPrompt
}

// Analyze runs an analysis of req.
//
// Errors are [ErrNotConfigured], [ErrEmptyIdea], [ErrInvalidMode], [*UpstreamError] or [*ContractViolation]. A missing
// completer is reported before any problem with the request.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*Response, error) {
	if a.completer == nil {
		return nil, ErrNotConfigured
	}
	idea := strings.TrimSpace(req.ProductIdea)
	if idea == "" {
		return nil, ErrEmptyIdea
	}
	mode, err := ParseMode(string(req.Mode))
	if err != nil {
		return nil, err
	}

	var (
		content string
		repos   = []models.Repository{}
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		completion, completeErr := a.completer.Complete(gctx, systemPrompt(mode), idea)
		if completeErr != nil {
			return &UpstreamError{Provider: "completion", Err: completeErr}
		}
		content = completion
		return nil
	})
	g.Go(func() error {
		repos = a.search(gctx, idea)
		return nil
	})
	if err = g.Wait(); err != nil {
		a.logger.LogAttrs(ctx, slog.LevelError, "analysis failed", errors.SlogError(err))
		return nil, err
	}

	cleaned := Sanitize(content)
	result, err := ParseResult(cleaned)
	if err != nil {
		var violation *ContractViolation
		if errors.As(err, &violation) {
			violation.RawContent = content
		}
		a.logger.LogAttrs(ctx, slog.LevelWarn, "model response violates contract",
			slog.String("error", err.Error()), slog.String("raw_content", content))
		return nil, err
	}

	row := LogRowFrom(idea, result, a.now())
	outcome := a.appendUsage(ctx, row)
	a.record(ctx, row, mode, outcome)

	return &Response{
		Content:       cleaned,
		GitHubResults: repos,
		SheetUpdated:  usagelog.IsLogged(outcome),
		SheetOutcome:  outcome,
		Result:        result,
	}, nil
}

// search shields the analysis from a misbehaving searcher.
func (a *Analyzer) search(ctx context.Context, idea string) (repos []models.Repository) {
	if a.searcher == nil {
		return []models.Repository{}
	}
	defer func() {
		if r := recover(); r != nil {
			err := errors.New("repository search panicked", slog.String("panic", fmt.Sprint(r)))
			a.logger.LogAttrs(ctx, slog.LevelError, "repository search failed", errors.SlogError(err))
			repos = []models.Repository{}
		}
	}()
	repos = a.searcher.Search(ctx, idea)
	if repos == nil {
		repos = []models.Repository{}
	}
	return repos
}

func (a *Analyzer) appendUsage(ctx context.Context, row models.LogRow) usagelog.Outcome {
	if a.usage == nil {
		return usagelog.Skipped{Reason: "usage logger not configured"}
	}
	return a.usage.Append(ctx, row)
}

func (a *Analyzer) record(ctx context.Context, row models.LogRow, mode Mode, outcome usagelog.Outcome) {
	if a.history == nil {
		return
	}
	entry := models.HistoryEntry{LogRow: row, Mode: string(mode), SheetUpdated: usagelog.IsLogged(outcome)}
	if _, err := a.history.Insert(ctx, entry); err != nil {
		a.logger.LogAttrs(ctx, slog.LevelError, "could not record analysis history", errors.SlogError(err))
	}
}
