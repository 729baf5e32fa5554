package main

import (
	"net/http"

	"github.com/myrjola/existyet/internal/analysis"
	"github.com/myrjola/existyet/internal/contexthelpers"
	"github.com/myrjola/existyet/internal/investors"
	"github.com/myrjola/existyet/internal/models"
	"github.com/myrjola/existyet/internal/resultview"
)

type BaseTemplateData struct {
	CurrentPath string
}

func newBaseTemplateData(r *http.Request) BaseTemplateData {
	return BaseTemplateData{
		CurrentPath: contexthelpers.CurrentPath(r.Context()),
	}
}

// analyzeFormData fills the analyze-form partial.
type analyzeFormData struct {
	Mode        analysis.Mode
	Prompt      string
	Placeholder string
	SubmitLabel string
	ProductIdea string
	FormError   string
}

// analysisResultData fills the analysis-result partial.
type analysisResultData struct {
	// Message is an input problem shown instead of a result.
	Message string
	// Failed shows the retry panel instead of a result.
	Failed        bool
	RetryPath     string
	View          resultview.View
	GitHubResults []models.Repository
	SheetUpdated  bool
}

type analyzePageData struct {
	BaseTemplateData

	Form            analyzeFormData
	Result          *analysisResultData
	PopularSearches []string
}

type customerOption struct {
	Value string
	Label string
}

type investorsPageData struct {
	BaseTemplateData

	Form          investors.Form
	FormError     string
	Stages        []string
	Industries    []string
	CustomerTypes []customerOption
}

type investorMatchesPageData struct {
	BaseTemplateData

	Form    investors.Form
	Matches []models.Investor
}

type investorPageData struct {
	BaseTemplateData

	Investor models.Investor
}

type errorPageData struct {
	BaseTemplateData

	Heading   string
	Message   string
	BackPath  string
	BackLabel string
}
