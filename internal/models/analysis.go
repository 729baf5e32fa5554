package models

// Repository is a public code repository that matched the analysed idea.
type Repository struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Stars       int    `json:"stars"`
	Language    string `json:"language"`
}

// LogRow is one appended usage log entry. Rows are never updated or deleted.
type LogRow struct {
	ID        int64  `db:"id"                json:"id,omitempty"`
	Timestamp string `db:"timestamp"         json:"timestamp"`
	// ProductIdea is the text the visitor submitted.
	ProductIdea      string `db:"product_idea"      json:"product_idea"`
	ProblemStatement string `db:"problem_statement" json:"problem_statement"`
	// Competitors is the JSON encoded list of competitors or startups.
	Competitors string `db:"competitors" json:"competitors"`
	// OriginalityScore is empty when the model did not provide a score.
	OriginalityScore string `db:"originality_score" json:"originality_score"`
	AnalysisJSON     string `db:"analysis_json"     json:"analysis_json"`
}

// HistoryEntry is a LogRow as kept in the local analysis history.
type HistoryEntry struct {
	LogRow

	Mode         string `db:"mode"          json:"mode"`
	SheetUpdated bool   `db:"sheet_updated" json:"sheet_updated"`
}

// TimestampFormat formats LogRow timestamps in UTC with millisecond precision, e.g. 2024-11-05T10:00:00.000Z.
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"
