package sheets

import (
	"encoding/json"
	"time"

	"github.com/myrjola/existyet/internal/models"
)

type cannedCompetitor struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Features       []string `json:"features"`
	UniqueElements string   `json:"unique_elements"`
	URL            string   `json:"url"`
}

// CannedRow is the fixed row appended by the spreadsheet connectivity check.
func CannedRow(now time.Time) models.LogRow {
	competitors := []cannedCompetitor{{
		Name:           "Test Competitor",
		Description:    "Test description",
		Features:       []string{"Feature 1", "Feature 2"},
		UniqueElements: "Test unique elements",
		URL:            "",
	}}
	analysis := map[string]any{
		"problem_statement": "Test problem",
		"competitive_analysis": map[string]any{
			"overview":    "Test overview",
			"competitors": competitors,
		},
		"conclusion": map[string]any{
			"viability_summary": "Test viability summary",
			"originality_score": 85,
		},
	}
	competitorsJSON, _ := json.Marshal(competitors) //nolint:errchkjson // static data
	analysisJSON, _ := json.Marshal(analysis)       //nolint:errchkjson // static data
	return models.LogRow{
		ID:               0,
		Timestamp:        now.UTC().Format(models.TimestampFormat),
		ProductIdea:      "Test Product",
		ProblemStatement: "Test problem",
		Competitors:      string(competitorsJSON),
		OriginalityScore: "85",
		AnalysisJSON:     string(analysisJSON),
	}
}
