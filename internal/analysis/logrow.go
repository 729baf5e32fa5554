package analysis

import (
	"strconv"
	"time"

	"github.com/myrjola/existyet/internal/models"
)

// LogRowFrom derives the usage log row of a completed analysis.
func LogRowFrom(productIdea string, result *Result, timestamp time.Time) models.LogRow {
	score := ""
	if result.Conclusion.OriginalityScore != nil {
		score = strconv.FormatFloat(*result.Conclusion.OriginalityScore, 'f', -1, 64)
	}
	return models.LogRow{
		ID:               0,
		Timestamp:        timestamp.UTC().Format(models.TimestampFormat),
		ProductIdea:      productIdea,
		ProblemStatement: result.ProblemStatement,
		Competitors:      result.ListJSON(),
		OriginalityScore: score,
		AnalysisJSON:     string(result.Raw),
	}
}
