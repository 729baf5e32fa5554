package investors

import (
	"math"
	"slices"
	"sort"

	"github.com/myrjola/existyet/internal/models"
)

// Score weights sum up to 100.
const (
	StageWeight    = 30
	IndustryWeight = 30
	CustomerWeight = 20
	TicketWeight   = 20

	// MatchLimit is the number of investors returned by [Match].
	MatchLimit = 5
)

// Score rates how well inv fits c on a scale from 0 to 100.
func Score(inv models.Investor, c Criteria) int {
	score := 0
	if slices.Contains(inv.Stage, c.Stage) {
		score += StageWeight
	}
	if len(c.Industries) > 0 {
		overlap := 0
		for _, industry := range c.Industries {
			if slices.Contains(inv.Focus, industry) {
				overlap++
			}
		}
		score += int(math.Round(IndustryWeight * float64(overlap) / float64(len(c.Industries))))
	}
	if inv.CustomerPreference == models.CustomerBoth || inv.CustomerPreference == c.CustomerType {
		score += CustomerWeight
	}
	if minAmount, maxAmount, err := ParseTicketSize(inv.TicketSize); err == nil &&
		c.Amount >= minAmount && c.Amount <= maxAmount {
		score += TicketWeight
	}
	return score
}

// Match scores investors against c and returns the best [MatchLimit] with Score set. Equal scores keep the order
// of investors.
func Match(investors []models.Investor, c Criteria) []models.Investor {
	scored := make([]models.Investor, len(investors))
	for i, inv := range investors {
		scored[i] = clone(inv)
		scored[i].Score = Score(inv, c)
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored[:min(len(scored), MatchLimit)]
}
