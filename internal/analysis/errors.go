package analysis

import "github.com/myrjola/existyet/internal/errors"

var (
	ErrEmptyIdea     = errors.NewSentinel("product idea is required")
	ErrInvalidMode   = errors.NewSentinel("unknown analysis mode")
	ErrNotConfigured = errors.NewSentinel("LLM API key is not configured")
)

// ContractViolation means the model's response could not be turned into a [Result].
type ContractViolation struct {
	// Content is the sanitized response.
	Content string
	// RawContent is the response exactly as the model returned it.
	RawContent string
	Reason     string
}

func (e *ContractViolation) Error() string {
	return "contract violation: " + e.Reason
}

// UpstreamError wraps a failure of an external provider. Its message may contain provider details and must not be
// shown to visitors as is.
type UpstreamError struct {
	Provider string
	Err      error
}

func (e *UpstreamError) Error() string {
	return e.Provider + " request failed: " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
