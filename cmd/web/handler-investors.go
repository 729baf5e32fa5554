package main

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/myrjola/existyet/internal/errors"
	"github.com/myrjola/existyet/internal/investors"
	"github.com/myrjola/existyet/internal/models"
)

func customerOptions() []customerOption {
	options := make([]customerOption, 0, len(investors.CustomerTypes))
	for _, ct := range investors.CustomerTypes {
		label := string(ct)
		if ct == models.CustomerBoth {
			label = "Both B2B and B2C"
		}
		options = append(options, customerOption{Value: string(ct), Label: label})
	}
	return options
}

func (app *application) renderInvestorForm(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	form investors.Form,
	formError string,
) {
	app.render(w, r, status, "investors", investorsPageData{
		BaseTemplateData: newBaseTemplateData(r),
		Form:             form,
		FormError:        formError,
		Stages:           investors.Stages,
		Industries:       investors.Industries,
		CustomerTypes:    customerOptions(),
	})
}

// storedSearch returns the investor search kept in the session.
func (app *application) storedSearch(r *http.Request) (investors.Form, bool) {
	form, ok := app.sessionManager.Get(r.Context(), string(investorSearchSessionKey)).(investors.Form)
	return form, ok
}

// investorSearch shows the matching form.
func (app *application) investorSearch(w http.ResponseWriter, r *http.Request) {
	form, _ := app.storedSearch(r)
	app.renderInvestorForm(w, r, http.StatusOK, form, "")
}

func formErrorMessage(err error) string {
	for _, sentinel := range []error{investors.ErrIncomplete, investors.ErrInvalidAmount, investors.ErrUnknownOption} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return investors.ErrIncomplete.Error()
}

// investorMatch validates the search and moves to the results.
func (app *application) investorMatch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	form := investors.Form{
		Amount:       r.PostForm.Get("amount"),
		Stage:        r.PostForm.Get("stage"),
		Industries:   r.PostForm["industries"],
		CustomerType: r.PostForm.Get("customerType"),
	}
	criteria, err := form.Criteria()
	if err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelDebug, "invalid investor search", slog.String("error", err.Error()))
		app.renderInvestorForm(w, r, http.StatusUnprocessableEntity, form, formErrorMessage(err))
		return
	}

	app.sessionManager.Put(r.Context(), string(investorSearchSessionKey), criteria.Form())
	app.metrics.ObserveInvestorMatch()
	http.Redirect(w, r, "/investors/matches", http.StatusSeeOther)
}

// investorMatches shows the top matches of the stored search.
func (app *application) investorMatches(w http.ResponseWriter, r *http.Request) {
	form, ok := app.storedSearch(r)
	if !ok {
		http.Redirect(w, r, "/investors", http.StatusSeeOther)
		return
	}
	criteria, err := form.Criteria()
	if err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelWarn, "discarding stored investor search", errors.SlogError(err))
		app.sessionManager.Remove(r.Context(), string(investorSearchSessionKey))
		http.Redirect(w, r, "/investors", http.StatusSeeOther)
		return
	}

	app.render(w, r, http.StatusOK, "investor-matches", investorMatchesPageData{
		BaseTemplateData: newBaseTemplateData(r),
		Form:             form,
		Matches:          investors.Match(investors.All(), criteria),
	})
}

// investorReset discards the stored search.
func (app *application) investorReset(w http.ResponseWriter, r *http.Request) {
	app.sessionManager.Remove(r.Context(), string(investorSearchSessionKey))
	http.Redirect(w, r, "/investors", http.StatusSeeOther)
}

func (app *application) investorDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	var (
		investor models.Investor
		found    bool
	)
	if err == nil {
		investor, found = investors.ByID(id)
	}
	if !found {
		app.render(w, r, http.StatusNotFound, "error", errorPageData{
			BaseTemplateData: newBaseTemplateData(r),
			Heading:          "Investor not found",
			Message:          "The investor you're looking for doesn't exist or may have been removed.",
			BackPath:         "/investors",
			BackLabel:        "Back to investors",
		})
		return
	}

	app.render(w, r, http.StatusOK, "investor", investorPageData{
		BaseTemplateData: newBaseTemplateData(r),
		Investor:         investor,
	})
}
