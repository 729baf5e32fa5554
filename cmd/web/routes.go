package main

import (
	"io/fs"
	"net/http"

	"github.com/justinas/alice"
	"github.com/myrjola/existyet/ui"
)

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	static, err := fs.Sub(ui.Files, "static")
	if err != nil {
		panic(err) // static is embedded at compile time.
	}
	mux.Handle("GET /static/", http.StripPrefix("/static", http.FileServer(http.FS(static))))

	page := alice.New(timeoutHandler(defaultTimeout, timeoutBody), app.sessionManager.LoadAndSave)
	analysisPage := alice.New(noCache, timeoutHandler(analysisTimeout, timeoutBody))
	api := alice.New(noCache, jsonContentType, timeoutHandler(defaultTimeout, apiTimeoutBody))
	analysisAPI := alice.New(noCache, jsonContentType, timeoutHandler(analysisTimeout, apiTimeoutBody))

	mux.Handle("GET /{$}", page.ThenFunc(app.home))
	mux.Handle("GET /get-started", page.ThenFunc(app.getStarted))
	mux.Handle("GET /find-startups", page.ThenFunc(app.findStartups))
	mux.Handle("POST /analyze", analysisPage.ThenFunc(app.analyzePage))

	mux.Handle("GET /investors", page.ThenFunc(app.investorSearch))
	mux.Handle("POST /investors/match", page.ThenFunc(app.investorMatch))
	mux.Handle("GET /investors/matches", page.ThenFunc(app.investorMatches))
	mux.Handle("POST /investors/reset", page.ThenFunc(app.investorReset))
	mux.Handle("GET /investors/{id}", page.ThenFunc(app.investorDetail))

	mux.Handle("POST /api/analyze", analysisAPI.ThenFunc(app.apiAnalyze))
	mux.Handle("GET /api/test-sheets", analysisAPI.ThenFunc(app.testSheets))
	mux.Handle("GET /api/analyses", api.Append(app.requireOperator).ThenFunc(app.recentAnalyses))
	mux.HandleFunc("GET /api/healthy", app.healthy)

	mux.Handle("GET /metrics", app.metrics.Handler())
	mux.Handle("/", page.ThenFunc(app.notFound))

	standard := alice.New(app.recoverPanic, app.logRequest, app.metrics.InstrumentHandler, app.secureHeaders,
		app.noSurf, app.commonContext)
	return standard.Then(mux)
}
