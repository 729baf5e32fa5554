package main

import (
	"context"
	"net/http"
	"strconv"

	"github.com/myrjola/existyet/internal/analysis"
	"github.com/myrjola/existyet/internal/errors"
	"github.com/myrjola/existyet/internal/metrics"
	"github.com/myrjola/existyet/internal/models"
	"github.com/myrjola/existyet/internal/sheets"
	"github.com/myrjola/existyet/internal/usagelog"
)

// observedUsageLogger counts usage log outcomes.
type observedUsageLogger struct {
	next    analysis.UsageLogger
	metrics *metrics.Metrics
}

func (o *observedUsageLogger) Append(ctx context.Context, row models.LogRow) usagelog.Outcome {
	outcome := o.next.Append(ctx, row)
	o.metrics.ObserveUsageLog(usagelog.Label(outcome))
	return outcome
}

type testSheetsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// testSheets appends a canned row to check the spreadsheet connection.
func (app *application) testSheets(w http.ResponseWriter, r *http.Request) {
	outcome := app.usageLogger.Append(r.Context(), sheets.CannedRow(app.now()))
	if usagelog.IsLogged(outcome) {
		app.writeJSON(w, r, http.StatusOK, testSheetsResponse{Success: true, Message: "Test data added to sheet"})
		return
	}
	app.writeJSON(w, r, http.StatusOK, testSheetsResponse{Success: false, Message: "Failed to add test data"})
}

// recentAnalyses lists the local analysis history, newest first.
func (app *application) recentAnalyses(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		var err error
		if limit, err = strconv.Atoi(raw); err != nil || limit < 1 {
			app.writeJSON(w, r, http.StatusBadRequest, errorResponse{ //nolint:exhaustruct // no content
				Error:   "Failed to process request",
				Details: "limit must be a positive integer",
			})
			return
		}
	}
	entries, err := app.history.Recent(r.Context(), limit)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "list recent analyses"))
		return
	}
	app.writeJSON(w, r, http.StatusOK, entries)
}
