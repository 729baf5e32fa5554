package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/myrjola/existyet/internal/analysis"
	"github.com/myrjola/existyet/internal/contexthelpers"
	"github.com/myrjola/existyet/internal/errors"
	"github.com/myrjola/existyet/internal/models"
	"github.com/myrjola/existyet/internal/resultview"
)

// maxAnalyzeBodyBytes caps the JSON body of an analysis request.
const maxAnalyzeBodyBytes = 64 << 10

var popularSearches = []string{
	"Platform to manage all your subscriptions",
	"AI-powered productivity tools",
	"Remote work collaboration tools",
}

type analyzeRequest struct {
	ProductIdea string `json:"productIdea"`
	Mode        string `json:"mode"`
}

type analyzeResponse struct {
	Content       string              `json:"content"`
	GitHubResults []models.Repository `json:"githubResults"`
	SheetUpdated  bool                `json:"sheetUpdated"`
}

type errorResponse struct {
	Error      string  `json:"error"`
	Details    string  `json:"details,omitempty"`
	Content    *string `json:"content,omitempty"`
	RawContent *string `json:"rawContent,omitempty"`
}

// analyze runs an analysis and records its outcome in the metrics.
func (app *application) analyze(ctx context.Context, idea string, mode string) (*analysis.Response, error) {
	start := time.Now()
	resp, err := app.analyzer.Analyze(ctx, analysis.Request{ProductIdea: idea, Mode: analysis.Mode(mode)})
	label := string(analysis.ModeCompetitors)
	if parsed, modeErr := analysis.ParseMode(mode); modeErr == nil {
		label = string(parsed)
	}
	app.metrics.ObserveAnalysis(label, outcomeLabel(err), time.Since(start))
	return resp, err //nolint:wrapcheck // the typed errors are mapped to responses by the callers.
}

func outcomeLabel(err error) string {
	var (
		violation *analysis.ContractViolation
		upstream  *analysis.UpstreamError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, analysis.ErrEmptyIdea), errors.Is(err, analysis.ErrInvalidMode):
		return "invalid_input"
	case errors.Is(err, analysis.ErrNotConfigured):
		return "not_configured"
	case errors.As(err, &violation):
		return "contract_violation"
	case errors.As(err, &upstream):
		return "upstream_error"
	default:
		return "error"
	}
}

// analysisError maps an analysis error to the JSON error response.
func analysisError(err error) (int, errorResponse) {
	var (
		violation *analysis.ContractViolation
		upstream  *analysis.UpstreamError
	)
	switch {
	case errors.Is(err, analysis.ErrEmptyIdea):
		return http.StatusBadRequest, errorResponse{Error: "Product idea is required"} //nolint:exhaustruct // no details
	case errors.Is(err, analysis.ErrNotConfigured):
		return http.StatusBadRequest, errorResponse{ //nolint:exhaustruct // no content
			Error:   "Failed to process request",
			Details: "PERPLEXITY_API_KEY is not configured",
		}
	case errors.Is(err, analysis.ErrInvalidMode):
		return http.StatusBadRequest, errorResponse{ //nolint:exhaustruct // no content
			Error:   "Failed to process request",
			Details: err.Error(),
		}
	case errors.As(err, &violation):
		return http.StatusUnprocessableEntity, errorResponse{
			Error:      "Failed to parse API response as JSON",
			Details:    violation.Reason,
			Content:    &violation.Content,
			RawContent: &violation.RawContent,
		}
	case errors.As(err, &upstream):
		return http.StatusInternalServerError, errorResponse{ //nolint:exhaustruct // no content
			Error:   "Failed to get analysis from API",
			Details: upstream.Provider + " request failed",
		}
	default:
		return http.StatusBadRequest, errorResponse{ //nolint:exhaustruct // no content
			Error:   "Failed to process request",
			Details: "Unknown error",
		}
	}
}

// apiAnalyze is the JSON endpoint behind POST /api/analyze.
func (app *application) apiAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req analyzeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAnalyzeBodyBytes))
	if err := dec.Decode(&req); err != nil {
		app.logger.LogAttrs(ctx, slog.LevelDebug, "malformed analyze request", slog.String("error", err.Error()))
		app.writeJSON(w, r, http.StatusBadRequest, errorResponse{ //nolint:exhaustruct // no content
			Error:   "Failed to process request",
			Details: err.Error(),
		})
		return
	}

	resp, err := app.analyze(ctx, req.ProductIdea, req.Mode)
	if err != nil {
		status, body := analysisError(err)
		app.writeJSON(w, r, status, body)
		return
	}
	app.writeJSON(w, r, http.StatusOK, analyzeResponse{
		Content:       resp.Content,
		GitHubResults: resp.GitHubResults,
		SheetUpdated:  resp.SheetUpdated,
	})
}

func competitorForm(idea string) analyzeFormData {
	return analyzeFormData{
		Mode:        analysis.ModeCompetitors,
		Prompt:      "Describe your product idea",
		Placeholder: "A social media app for pet owners to share photos and arrange play dates",
		SubmitLabel: "Analyze",
		ProductIdea: idea,
		FormError:   "",
	}
}

func startupForm(idea string) analyzeFormData {
	return analyzeFormData{
		Mode:        analysis.ModeStartups,
		Prompt:      "Describe the startup or investment sector you're interested in",
		Placeholder: "Describe the startup or investment sector you're interested in...",
		SubmitLabel: "Search",
		ProductIdea: idea,
		FormError:   "",
	}
}

func (app *application) getStarted(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "get-started", analyzePageData{
		BaseTemplateData: newBaseTemplateData(r),
		Form:             competitorForm(""),
		Result:           nil,
		PopularSearches:  nil,
	})
}

func (app *application) findStartups(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "find-startups", analyzePageData{
		BaseTemplateData: newBaseTemplateData(r),
		Form:             startupForm(""),
		Result:           nil,
		PopularSearches:  popularSearches,
	})
}

// analyzePage is the form endpoint behind POST /analyze. htmx requests receive only the result fragment.
func (app *application) analyzePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	idea := r.PostForm.Get("productIdea")
	mode, err := analysis.ParseMode(r.PostForm.Get("mode"))
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	page, form, retryPath := "get-started", competitorForm(idea), "/get-started"
	if mode == analysis.ModeStartups {
		page, form, retryPath = "find-startups", startupForm(idea), "/find-startups"
	}

	status := http.StatusOK
	result := &analysisResultData{ //nolint:exhaustruct // filled below.
		RetryPath: retryPath,
	}
	resp, err := app.analyze(ctx, idea, string(mode))
	var violation *analysis.ContractViolation
	switch {
	case err == nil:
		result.View = resultview.Build(resp.Content)
		result.GitHubResults = resp.GitHubResults
		result.SheetUpdated = resp.SheetUpdated
	case errors.Is(err, analysis.ErrEmptyIdea):
		status = http.StatusUnprocessableEntity
		form.FormError = "Please describe your idea before analyzing."
		result.Message = form.FormError
	case errors.As(err, &violation):
		status = http.StatusUnprocessableEntity
		// Unparseable output is shown as is. Parseable output of the wrong shape gets the retry panel.
		result.View = resultview.Build(violation.RawContent)
		result.Failed = !result.View.ParseError
	case errors.Is(err, analysis.ErrNotConfigured):
		status = http.StatusServiceUnavailable
		result.Failed = true
	default:
		status = http.StatusInternalServerError
		result.Failed = true
	}

	if contexthelpers.IsHTMXRequest(ctx) {
		// htmx only swaps successful responses.
		app.renderTemplate(w, r, http.StatusOK, page, "analysis-result", result)
		return
	}
	if result.Message != "" {
		result = nil
	}
	popular := []string(nil)
	if mode == analysis.ModeStartups {
		popular = popularSearches
	}
	app.render(w, r, status, page, analyzePageData{
		BaseTemplateData: newBaseTemplateData(r),
		Form:             form,
		Result:           result,
		PopularSearches:  popular,
	})
}
