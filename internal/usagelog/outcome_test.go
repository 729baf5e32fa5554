package usagelog_test

import (
	"testing"

	"github.com/myrjola/existyet/internal/usagelog"
	"github.com/stretchr/testify/assert"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		outcome    usagelog.Outcome
		wantLogged bool
		wantLabel  string
		wantString string
	}{
		{usagelog.Logged{}, true, "logged", "logged"},
		{usagelog.Failed{Reason: "sheet 0 not found"}, false, "failed", "failed: sheet 0 not found"},
		{usagelog.Skipped{Reason: "credentials not configured"}, false, "skipped",
			"skipped: credentials not configured"},
		{nil, false, "unknown", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.wantLogged, usagelog.IsLogged(tt.outcome))
		assert.Equal(t, tt.wantLabel, usagelog.Label(tt.outcome))
		if tt.outcome != nil {
			assert.Equal(t, tt.wantString, tt.outcome.String())
		}
	}
}
