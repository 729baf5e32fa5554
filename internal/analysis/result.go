package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/myrjola/existyet/internal/errors"
)

// Mode selects which kind of analysis is requested from the model.
type Mode string

const (
	ModeCompetitors Mode = "competitors"
	ModeStartups    Mode = "startups"
)

// ParseMode maps the empty string to [ModeCompetitors] and rejects unknown modes.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeCompetitors:
		return ModeCompetitors, nil
	case ModeStartups:
		return ModeStartups, nil
	default:
		return "", errors.Wrap(ErrInvalidMode, "parse mode", slog.String("mode", s))
	}
}

// Kind tells which variant of [Result] is populated.
type Kind int

const (
	KindCompetitive Kind = iota + 1
	KindMarket
)

func (k Kind) String() string {
	switch k {
	case KindCompetitive:
		return "competitive_analysis"
	case KindMarket:
		return "market_analysis"
	default:
		return "unknown"
	}
}

type Competitor struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Features       []string `json:"features"`
	UniqueElements string   `json:"unique_elements"`
	URL            string   `json:"url"`
}

type Startup struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Features     []string `json:"features"`
	FundingStage string   `json:"funding_stage"`
	URL          string   `json:"url"`
}

type CompetitiveAnalysis struct {
	Overview    string       `json:"overview"`
	Competitors []Competitor `json:"competitors"`
}

type MarketAnalysis struct {
	Overview string    `json:"overview"`
	Startups []Startup `json:"startups"`
}

type UniqueSellingProposition struct {
	SuggestedImprovements string `json:"suggested_improvements"`
}

type Conclusion struct {
	ViabilitySummary  string `json:"viability_summary,omitempty"`
	InvestmentSummary string `json:"investment_summary,omitempty"`
	// OriginalityScore is nil when the model gave no usable number. The model is asked for 0 to 100 but the range is
	// not enforced. Low scores mean a saturated market.
	OriginalityScore *float64 `json:"originality_score,omitempty"`
}

// UnmarshalJSON accepts the score as a JSON number or a numeric string such as "85" or "85%". Any other score is
// dropped instead of failing the whole conclusion.
func (c *Conclusion) UnmarshalJSON(data []byte) error {
	var raw struct {
		ViabilitySummary  string          `json:"viability_summary"`
		InvestmentSummary string          `json:"investment_summary"`
		OriginalityScore  json.RawMessage `json:"originality_score"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode conclusion: %w", err)
	}
	c.ViabilitySummary = raw.ViabilitySummary
	c.InvestmentSummary = raw.InvestmentSummary
	c.OriginalityScore = parseScore(raw.OriginalityScore)
	return nil
}

func parseScore(raw json.RawMessage) *float64 {
	var value any
	if len(raw) == 0 || json.Unmarshal(raw, &value) != nil {
		return nil
	}
	var (
		score float64
		err   error
	)
	switch v := value.(type) {
	case float64:
		score = v
	case string:
		text := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "%"))
		if score, err = strconv.ParseFloat(text, 64); err != nil {
			return nil
		}
	default:
		return nil
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return nil
	}
	return &score
}

// Result is a validated analysis. Exactly one of CompetitiveAnalysis and MarketAnalysis is set, as told by Kind.
type Result struct {
	Kind                     Kind
	ProblemStatement         string
	CompetitiveAnalysis      *CompetitiveAnalysis
	MarketAnalysis           *MarketAnalysis
	UniqueSellingProposition *UniqueSellingProposition
	Conclusion               Conclusion
	// Raw is the compact JSON of the result object as returned by the model.
	Raw json.RawMessage
}

type resultPayload struct {
	ProblemStatement         string                    `json:"problem_statement"`
	CompetitiveAnalysis      *CompetitiveAnalysis      `json:"competitive_analysis"`
	MarketAnalysis           *MarketAnalysis           `json:"market_analysis"`
	UniqueSellingProposition *UniqueSellingProposition `json:"unique_selling_proposition"`
	Conclusion               *Conclusion               `json:"conclusion"`
}

// ParseResult parses sanitized model output into a [Result].
//
// The result object is read from the top-level "result" key, falling back to the root object when the key is absent.
// Any problem is reported as a [*ContractViolation] carrying content.
func ParseResult(content string) (*Result, error) {
	violation := func(reason string) error {
		return &ContractViolation{Content: content, RawContent: content, Reason: reason}
	}

	var root map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &root); err != nil {
		return nil, violation(fmt.Sprintf("response is not a JSON object: %v", err))
	}
	raw := []byte(content)
	if nested, ok := root["result"]; ok && isObject(nested) {
		raw = nested
	}

	var document any
	if err := json.Unmarshal(raw, &document); err != nil {
		return nil, violation(fmt.Sprintf("decode result: %v", err))
	}
	if err := validateShape(document); err != nil {
		return nil, violation(err.Error())
	}

	var payload resultPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, violation(fmt.Sprintf("decode result: %v", err))
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return nil, violation(fmt.Sprintf("compact result: %v", err))
	}

	result := &Result{
		Kind:                     KindCompetitive,
		ProblemStatement:         payload.ProblemStatement,
		CompetitiveAnalysis:      payload.CompetitiveAnalysis,
		MarketAnalysis:           payload.MarketAnalysis,
		UniqueSellingProposition: payload.UniqueSellingProposition,
		Conclusion:               Conclusion{ViabilitySummary: "", InvestmentSummary: "", OriginalityScore: nil},
		Raw:                      compact.Bytes(),
	}
	if payload.MarketAnalysis != nil {
		result.Kind = KindMarket
	}
	if payload.Conclusion != nil {
		result.Conclusion = *payload.Conclusion
	}
	return result, nil
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// ListJSON returns the JSON array of competitors or startups.
func (r *Result) ListJSON() string {
	var list any = []Competitor{}
	switch r.Kind {
	case KindCompetitive:
		if r.CompetitiveAnalysis != nil && r.CompetitiveAnalysis.Competitors != nil {
			list = r.CompetitiveAnalysis.Competitors
		}
	case KindMarket:
		if r.MarketAnalysis != nil && r.MarketAnalysis.Startups != nil {
			list = r.MarketAnalysis.Startups
		}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(b)
}
