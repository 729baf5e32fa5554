// Package investors ranks the compiled-in investor profiles against what a founder is looking for.
package investors

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/myrjola/existyet/internal/models"
)

//go:embed investors.json
var investorsJSON []byte

// dataset is read-only after package initialization.
var dataset = mustLoad(investorsJSON)

func mustLoad(data []byte) []models.Investor {
	var investors []models.Investor
	if err := json.Unmarshal(data, &investors); err != nil {
		panic(fmt.Sprintf("decode investors: %v", err))
	}
	for _, inv := range investors {
		if _, _, err := ParseTicketSize(inv.TicketSize); err != nil {
			panic(fmt.Sprintf("investor %d: %v", inv.ID, err))
		}
	}
	return investors
}

// Industries, Stages and CustomerTypes are the choices offered by the matching form.
var (
	Industries = []string{
		"SaaS", "AI", "Fintech", "Healthcare", "Biotech", "E-commerce", "Consumer", "Marketplace", "Crypto", "Web3",
		"Enterprise", "Security", "Developer Tools", "Productivity", "Climate", "Deep Tech", "Real Estate",
	}
	Stages        = []string{"Pre-seed", "Seed", "Series A", "Series B", "Series C+"}
	CustomerTypes = []models.CustomerPreference{models.CustomerB2B, models.CustomerB2C, models.CustomerBoth}
)

// All returns a copy of every investor in dataset order.
func All() []models.Investor {
	investors := make([]models.Investor, len(dataset))
	for i, inv := range dataset {
		investors[i] = clone(inv)
	}
	return investors
}

// ByID returns the investor with id.
func ByID(id int) (models.Investor, bool) {
	for _, inv := range dataset {
		if inv.ID == id {
			return clone(inv), true
		}
	}
	return models.Investor{}, false //nolint:exhaustruct // zero value when not found.
}

func clone(inv models.Investor) models.Investor {
	inv.Focus = slices.Clone(inv.Focus)
	inv.Stage = slices.Clone(inv.Stage)
	inv.PortfolioCompanies = slices.Clone(inv.PortfolioCompanies)
	return inv
}
