// Package resultview turns analysis content into data for the result templates.
package resultview

import (
	"bytes"
	"encoding/json"
	"html/template"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/myrjola/existyet/internal/analysis"
	"github.com/yuin/goldmark"
)

// Item is one competitor or startup.
type Item struct {
	Name        string
	Description template.HTML
	Features    []string
	DetailLabel string
	Detail      string
	URL         string
}

// View is what the result template renders. When ParseError is set only Raw is meaningful.
type View struct {
	ParseError bool
	Raw        string

	ProblemStatement      template.HTML
	ListTitle             string
	Overview              template.HTML
	Items                 []Item
	EmptyMessage          string
	SuggestedImprovements template.HTML
	SummaryTitle          string
	Summary               template.HTML
	OriginalityScore      *float64
}

// ScoreLabel describes the originality score in words.
func (v View) ScoreLabel() string {
	if v.OriginalityScore == nil {
		return ""
	}
	switch score := *v.OriginalityScore; {
	case score < 20: //nolint:mnd // the bands match the prompt.
		return "Crowded market"
	case score > 85: //nolint:mnd // the bands match the prompt.
		return "Highly original"
	default:
		return "Some competition"
	}
}

type payload struct {
	ProblemStatement         string                             `json:"problem_statement"`
	CompetitiveAnalysis      *analysis.CompetitiveAnalysis      `json:"competitive_analysis"`
	MarketAnalysis           *analysis.MarketAnalysis           `json:"market_analysis"`
	UniqueSellingProposition *analysis.UniqueSellingProposition `json:"unique_selling_proposition"`
	Conclusion               *analysis.Conclusion               `json:"conclusion"`
}

// Build formats content. It never fails; content that is not a JSON object yields a View with ParseError set.
func Build(content string) View {
	cleaned := analysis.Sanitize(content)
	parseError := View{ParseError: true, Raw: content} //nolint:exhaustruct // only the raw text is shown.

	var root map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &root); err != nil {
		return parseError
	}
	raw := []byte(cleaned)
	if nested, ok := root["result"]; ok && bytes.HasPrefix(bytes.TrimSpace(nested), []byte("{")) {
		raw = nested
	}
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return parseError
	}

	v := View{ //nolint:exhaustruct // filled below.
		ProblemStatement: markdown(p.ProblemStatement),
	}
	switch {
	case p.MarketAnalysis != nil:
		v.ListTitle = "Startups"
		v.Overview = markdown(p.MarketAnalysis.Overview)
		v.EmptyMessage = "No startups found in this space."
		for _, s := range p.MarketAnalysis.Startups {
			v.Items = append(v.Items, Item{
				Name:        s.Name,
				Description: markdown(s.Description),
				Features:    s.Features,
				DetailLabel: "Funding stage",
				Detail:      s.FundingStage,
				URL:         safeURL(s.URL),
			})
		}
	default:
		v.ListTitle = "Competitors"
		v.EmptyMessage = "No direct competitors found for this product idea."
		if p.CompetitiveAnalysis != nil {
			v.Overview = markdown(p.CompetitiveAnalysis.Overview)
			for _, c := range p.CompetitiveAnalysis.Competitors {
				v.Items = append(v.Items, Item{
					Name:        c.Name,
					Description: markdown(c.Description),
					Features:    c.Features,
					DetailLabel: "Unique elements",
					Detail:      c.UniqueElements,
					URL:         safeURL(c.URL),
				})
			}
		}
	}
	if p.UniqueSellingProposition != nil {
		v.SuggestedImprovements = markdown(p.UniqueSellingProposition.SuggestedImprovements)
	}
	if p.Conclusion != nil {
		if score := p.Conclusion.OriginalityScore; score != nil {
			clamped := math.Min(math.Max(*score, 0), 100) //nolint:mnd // percentage
			v.OriginalityScore = &clamped
		}
		if p.Conclusion.InvestmentSummary != "" {
			v.SummaryTitle = "Investment summary"
			v.Summary = markdown(p.Conclusion.InvestmentSummary)
		} else {
			v.SummaryTitle = "Viability"
			v.Summary = markdown(p.Conclusion.ViabilitySummary)
		}
	}
	return v
}

// markdown renders model prose. Raw HTML in the source is dropped by goldmark's default renderer.
func markdown(source string) template.HTML {
	if strings.TrimSpace(source) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source)) //nolint:gosec // escaped above.
	}
	return template.HTML(buf.String()) //nolint:gosec // goldmark omits raw HTML by default.
}

// safeURL keeps absolute http and https URLs only.
func safeURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ""
	}
	return u.String()
}

// FormatScore formats an originality score without trailing zeros.
func FormatScore(score float64) string {
	return strconv.FormatFloat(math.Round(score*10)/10, 'f', -1, 64) //nolint:mnd // one decimal
}
