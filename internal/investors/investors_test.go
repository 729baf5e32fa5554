package investors_test

import (
	"testing"

	"github.com/myrjola/existyet/internal/investors"
	"github.com/myrjola/existyet/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kyle(t *testing.T) models.Investor {
	t.Helper()
	inv, ok := investors.ByID(1)
	require.True(t, ok)
	require.Equal(t, "Kyle Kallman", inv.Name)
	return inv
}

func seedAIFintechB2B(t *testing.T) investors.Criteria {
	t.Helper()
	c, err := investors.Form{
		Amount:       "$2M",
		Stage:        "Seed",
		Industries:   []string{"AI", "Fintech"},
		CustomerType: "B2B",
	}.Criteria()
	require.NoError(t, err)
	return c
}

func TestDataset(t *testing.T) {
	all := investors.All()
	require.Len(t, all, 7)
	for i, inv := range all {
		assert.Equal(t, i+1, inv.ID)
		assert.True(t, inv.Verified)
		assert.Zero(t, inv.Score)
		minAmount, maxAmount, err := investors.ParseTicketSize(inv.TicketSize)
		require.NoError(t, err)
		assert.Less(t, minAmount, maxAmount)
	}

	// Copies do not leak into the dataset.
	all[0].Focus[0] = "Mutated"
	all[0].Name = "Mutated"
	inv := kyle(t)
	assert.Equal(t, "SaaS", inv.Focus[0])

	_, ok := investors.ByID(42)
	assert.False(t, ok)
}

func TestScore_fullMatch(t *testing.T) {
	assert.Equal(t, 100, investors.Score(kyle(t), seedAIFintechB2B(t)))
}

func TestScore_disjoint(t *testing.T) {
	inv := models.Investor{ //nolint:exhaustruct // only scored fields matter
		ID:                 99,
		Name:               "Disjoint",
		Focus:              []string{"Climate", "Deep Tech"},
		Stage:              []string{"Series B", "Series C+"},
		TicketSize:         "$5M - $15M",
		CustomerPreference: models.CustomerB2C,
	}
	assert.Equal(t, 0, investors.Score(inv, seedAIFintechB2B(t)))
}

func TestScore_components(t *testing.T) {
	base := seedAIFintechB2B(t)
	tests := []struct {
		name   string
		modify func(c *investors.Criteria)
		want   int
	}{
		{"stage mismatch", func(c *investors.Criteria) { c.Stage = "Series B" }, 70},
		{"half the industries", func(c *investors.Criteria) { c.Industries = []string{"AI", "Crypto"} }, 85},
		{"one of three industries", func(c *investors.Criteria) {
			c.Industries = []string{"AI", "Crypto", "Web3"}
		}, 80},
		{"two of three industries", func(c *investors.Criteria) {
			c.Industries = []string{"AI", "Fintech", "Web3"}
		}, 90},
		{"customer mismatch", func(c *investors.Criteria) { c.CustomerType = models.CustomerB2C }, 80},
		{"requesting both excludes B2B investors", func(c *investors.Criteria) {
			c.CustomerType = models.CustomerBoth
		}, 80},
		{"ticket lower bound", func(c *investors.Criteria) { c.Amount = 500_000 }, 100},
		{"below ticket", func(c *investors.Criteria) { c.Amount = 499_999 }, 80},
		{"above ticket", func(c *investors.Criteria) { c.Amount = 2_000_001 }, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			c.Industries = append([]string(nil), base.Industries...)
			tt.modify(&c)
			assert.Equal(t, tt.want, investors.Score(kyle(t), c))
		})
	}
}

func TestScore_bothPreferenceAcceptsAnyCustomer(t *testing.T) {
	sarah, ok := investors.ByID(2)
	require.True(t, ok)
	for _, customer := range investors.CustomerTypes {
		c := seedAIFintechB2B(t)
		c.CustomerType = customer
		// Seed +30, AI 1 of 2 +15, customer +20, $2M within $1M - $5M +20.
		assert.Equal(t, 85, investors.Score(sarah, c))
	}
}

func TestScore_industryOverlapIsMonotonic(t *testing.T) {
	inv := kyle(t)
	requested := []string{"Crypto", "Web3", "Climate", "SaaS", "AI", "Fintech", "Healthcare", "Real Estate"}
	for _, investorFocus := range [][]string{nil, {"SaaS"}, inv.Focus, {"Crypto", "Web3"}} {
		candidate := inv
		candidate.Focus = investorFocus
		c := seedAIFintechB2B(t)
		c.Industries = requested

		previous := -1
		for size := 0; size <= len(investorFocus); size++ {
			// Growing the focus set grows the overlap with the requested industries.
			candidate.Focus = investorFocus[:size]
			score := investors.Score(candidate, c)
			assert.GreaterOrEqual(t, score, previous)
			previous = score
		}
	}
}

func TestScore_orderInsensitive(t *testing.T) {
	c := seedAIFintechB2B(t)
	reversed := c
	reversed.Industries = []string{"Fintech", "AI"}
	for _, inv := range investors.All() {
		assert.Equal(t, investors.Score(inv, c), investors.Score(inv, reversed))
	}
}

func TestMatch(t *testing.T) {
	matches := investors.Match(investors.All(), seedAIFintechB2B(t))

	require.Len(t, matches, investors.MatchLimit)
	assert.Equal(t, "Kyle Kallman", matches[0].Name)
	assert.Equal(t, 100, matches[0].Score)
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score)
	}
	// The dataset copy is never scored.
	for _, inv := range investors.All() {
		assert.Zero(t, inv.Score)
	}
}

func TestMatch_stableTies(t *testing.T) {
	c := investors.Criteria{Amount: 1, Stage: "Series C+", Industries: []string{"Biotech"},
		CustomerType: models.CustomerB2C}
	tied := []models.Investor{
		{ID: 1, Stage: []string{"Seed"}, TicketSize: "$1M - $2M", CustomerPreference: models.CustomerB2B},      //nolint:exhaustruct // test
		{ID: 2, Stage: []string{"Seed"}, TicketSize: "$1M - $2M", CustomerPreference: models.CustomerB2B},      //nolint:exhaustruct // test
		{ID: 3, Stage: []string{"Series C+"}, TicketSize: "$1M - $2M", CustomerPreference: models.CustomerB2B}, //nolint:exhaustruct // test
	}
	matches := investors.Match(tied, c)
	require.Len(t, matches, 3)
	assert.Equal(t, []int{3, 1, 2}, []int{matches[0].ID, matches[1].ID, matches[2].ID})
}

func TestForm_Criteria(t *testing.T) {
	tests := []struct {
		name    string
		form    investors.Form
		wantErr error
	}{
		{"missing amount", investors.Form{Amount: " ", Stage: "Seed", Industries: []string{"AI"}, CustomerType: "B2B"},
			investors.ErrIncomplete},
		{"missing stage", investors.Form{Amount: "$2M", Stage: "", Industries: []string{"AI"}, CustomerType: "B2B"},
			investors.ErrIncomplete},
		{"missing industries", investors.Form{Amount: "$2M", Stage: "Seed", Industries: []string{""}, CustomerType: "B2B"},
			investors.ErrIncomplete},
		{"missing customer type", investors.Form{Amount: "$2M", Stage: "Seed", Industries: []string{"AI"}},
			investors.ErrIncomplete},
		{"bad amount", investors.Form{Amount: "lots", Stage: "Seed", Industries: []string{"AI"}, CustomerType: "B2B"},
			investors.ErrInvalidAmount},
		{"unknown stage", investors.Form{Amount: "2", Stage: "Series Z", Industries: []string{"AI"}, CustomerType: "B2B"},
			investors.ErrUnknownOption},
		{"unknown industry", investors.Form{Amount: "2", Stage: "Seed", Industries: []string{"Mining"}, CustomerType: "B2B"},
			investors.ErrUnknownOption},
		{"unknown customer", investors.Form{Amount: "2", Stage: "Seed", Industries: []string{"AI"}, CustomerType: "B2G"},
			investors.ErrUnknownOption},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.form.Criteria()
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	c, err := investors.Form{Amount: "500K", Stage: "Seed", Industries: []string{"AI", "AI", "SaaS"},
		CustomerType: "Both"}.Criteria()
	require.NoError(t, err)
	assert.InDelta(t, 500_000, c.Amount, 0)
	assert.Equal(t, []string{"AI", "SaaS"}, c.Industries)
	assert.Equal(t, "$500K", c.Form().Amount)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"$2M", 2_000_000},
		{"2", 2_000_000},
		{"1.5m", 1_500_000},
		{"500K", 500_000},
		{"$ 750k", 750_000},
		{"$1,000K", 1_000_000},
		{"1B", 1_000_000_000},
		{"0.25", 250_000},
	}
	for _, tt := range tests {
		got, err := investors.ParseAmount(tt.in)
		require.NoError(t, err, tt.in)
		assert.InDelta(t, tt.want, got, 0.001, tt.in)
	}
	for _, in := range []string{"", "$", "M", "-2M", "0", "two million"} {
		_, err := investors.ParseAmount(in)
		require.ErrorIs(t, err, investors.ErrInvalidAmount, in)
	}
}

func TestFormatAmount_roundTrip(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0.5K", "$0.5K"},
		{"$250K", "$250K"},
		{"2", "$2M"},
		{"1.5B", "$1.5B"},
	}
	for _, tt := range tests {
		amount, err := investors.ParseAmount(tt.in)
		require.NoError(t, err, tt.in)
		formatted := investors.FormatAmount(amount)
		assert.Equal(t, tt.want, formatted, tt.in)
		again, err := investors.ParseAmount(formatted)
		require.NoError(t, err, formatted)
		assert.InDelta(t, amount, again, 0.001, tt.in)
	}

	// A stored search of a small amount comes back unchanged.
	c, err := investors.Form{Amount: "0.5K", Stage: "Seed", Industries: []string{"AI"}, CustomerType: "B2B"}.Criteria()
	require.NoError(t, err)
	restored, err := c.Form().Criteria()
	require.NoError(t, err)
	assert.InDelta(t, 500, restored.Amount, 0.001)
}

func TestParseTicketSize(t *testing.T) {
	minAmount, maxAmount, err := investors.ParseTicketSize("$500K - $2M")
	require.NoError(t, err)
	assert.InDelta(t, 500_000, minAmount, 0)
	assert.InDelta(t, 2_000_000, maxAmount, 0)

	minAmount, maxAmount, err = investors.ParseTicketSize("$125K - $500K")
	require.NoError(t, err)
	assert.InDelta(t, 125_000, minAmount, 0)
	assert.InDelta(t, 500_000, maxAmount, 0)

	for _, in := range []string{"$2M", "$5M - $1M", "a - b"} {
		_, _, err = investors.ParseTicketSize(in)
		require.Error(t, err, in)
	}
}
