package models

// CustomerPreference is the kind of customers an investor wants their portfolio companies to sell to.
type CustomerPreference string

const (
	CustomerB2B  CustomerPreference = "B2B"
	CustomerB2C  CustomerPreference = "B2C"
	CustomerBoth CustomerPreference = "Both"
)

// Investor is a compiled-in investor profile shown on the investor discovery pages.
type Investor struct {
	ID                 int                `json:"id"`
	Name               string             `json:"name"`
	Company            string             `json:"company"`
	Image              string             `json:"image"`
	Focus              []string           `json:"focus"`
	Stage              []string           `json:"stage"`
	TicketSize         string             `json:"ticketSize"`
	PortfolioCompanies []string           `json:"portfolioCompanies"`
	CustomerPreference CustomerPreference `json:"customerPreference"`
	Bio                string             `json:"bio"`
	Location           string             `json:"location"`
	Founded            int                `json:"founded"`
	Investments        int                `json:"investments"`
	LeadRounds         int                `json:"leadRounds"`
	Exits              int                `json:"exits"`
	Verified           bool               `json:"verified"`

	// Score is the match score between 0 and 100. It is only set on copies returned by a match.
	Score int `json:"score,omitempty"`
}
