package investors

import (
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/myrjola/existyet/internal/errors"
	"github.com/myrjola/existyet/internal/models"
)

var (
	ErrIncomplete    = errors.NewSentinel("Please fill in all fields to find matching investors")
	ErrInvalidAmount = errors.NewSentinel("Amount to raise must be a positive number such as $2M or 500K")
	ErrUnknownOption = errors.NewSentinel("Unknown option selected")
)

// Criteria is what a founder is looking for.
type Criteria struct {
	// Amount is the amount to raise in US dollars.
	Amount       float64
	Stage        string
	Industries   []string
	CustomerType models.CustomerPreference
}

// Form is the raw matching form input.
type Form struct {
	Amount       string   `json:"amount"`
	Stage        string   `json:"stage"`
	Industries   []string `json:"industries"`
	CustomerType string   `json:"customerType"`
}

// Criteria validates the form. All four fields are required.
func (f Form) Criteria() (Criteria, error) {
	industries := make([]string, 0, len(f.Industries))
	for _, industry := range f.Industries {
		industry = strings.TrimSpace(industry)
		if industry != "" && !slices.Contains(industries, industry) {
			industries = append(industries, industry)
		}
	}
	stage := strings.TrimSpace(f.Stage)
	customerType := models.CustomerPreference(strings.TrimSpace(f.CustomerType))
	if strings.TrimSpace(f.Amount) == "" || stage == "" || len(industries) == 0 || customerType == "" {
		return Criteria{}, ErrIncomplete //nolint:exhaustruct // invalid
	}

	amount, err := ParseAmount(f.Amount)
	if err != nil {
		return Criteria{}, err //nolint:exhaustruct // invalid
	}
	if !slices.Contains(Stages, stage) {
		return Criteria{}, errors.Wrap(ErrUnknownOption, "stage", slog.String("stage", stage)) //nolint:exhaustruct // invalid
	}
	for _, industry := range industries {
		if !slices.Contains(Industries, industry) {
			return Criteria{}, errors.Wrap(ErrUnknownOption, "industry", //nolint:exhaustruct // invalid
				slog.String("industry", industry))
		}
	}
	if !slices.Contains(CustomerTypes, customerType) {
		return Criteria{}, errors.Wrap(ErrUnknownOption, "customer type", //nolint:exhaustruct // invalid
			slog.String("customer_type", string(customerType)))
	}

	return Criteria{
		Amount:       amount,
		Stage:        stage,
		Industries:   industries,
		CustomerType: customerType,
	}, nil
}

// Form converts c back to form input so that a stored search can be shown again.
func (c Criteria) Form() Form {
	return Form{
		Amount:       FormatAmount(c.Amount),
		Stage:        c.Stage,
		Industries:   slices.Clone(c.Industries),
		CustomerType: string(c.CustomerType),
	}
}

const (
	thousand = 1_000
	million  = 1_000_000
	billion  = 1_000_000_000
)

// ParseAmount parses an amount to raise such as "$2M", "2", "1.5m" or "500K" into US dollars.
// Amounts without a suffix are in millions.
func ParseAmount(s string) (float64, error) {
	number, multiplier, err := parseMoney(s, million)
	if err != nil {
		return 0, errors.Wrap(ErrInvalidAmount, err.Error(), slog.String("amount", s))
	}
	return number * multiplier, nil
}

// ParseTicketSize parses an investor ticket size range such as "$500K - $2M" into US dollars. Each bound carries its
// own suffix; a bound without a suffix is in millions.
func ParseTicketSize(s string) (minAmount, maxAmount float64, err error) {
	lower, upper, found := strings.Cut(s, "-")
	if !found {
		return 0, 0, errors.New("ticket size is not a range", slog.String("ticket_size", s))
	}
	lowerNumber, lowerMultiplier, err := parseMoney(lower, million)
	if err != nil {
		return 0, 0, errors.Wrap(err, "parse lower bound", slog.String("ticket_size", s))
	}
	upperNumber, upperMultiplier, err := parseMoney(upper, million)
	if err != nil {
		return 0, 0, errors.Wrap(err, "parse upper bound", slog.String("ticket_size", s))
	}
	minAmount, maxAmount = lowerNumber*lowerMultiplier, upperNumber*upperMultiplier
	if minAmount > maxAmount {
		return 0, 0, errors.New("ticket size range is inverted", slog.String("ticket_size", s))
	}
	return minAmount, maxAmount, nil
}

func parseMoney(s string, defaultMultiplier float64) (float64, float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	multiplier := defaultMultiplier
	if s != "" {
		switch s[len(s)-1] {
		case 'k', 'K':
			multiplier = thousand
			s = s[:len(s)-1]
		case 'm', 'M':
			multiplier = million
			s = s[:len(s)-1]
		case 'b', 'B':
			multiplier = billion
			s = s[:len(s)-1]
		}
	}
	number, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, 0, errors.Wrap(err, "parse number")
	}
	if number <= 0 {
		return 0, 0, errors.New("amount must be positive")
	}
	return number, multiplier, nil
}

// FormatAmount formats US dollars the way ticket sizes are written, e.g. $500K or $2M. The result always carries a
// suffix so that [ParseAmount] reads it back as the same amount; amounts below a thousand are written as e.g. $0.5K.
func FormatAmount(amount float64) string {
	switch {
	case amount >= billion:
		return "$" + strconv.FormatFloat(amount/billion, 'f', -1, 64) + "B"
	case amount >= million:
		return "$" + strconv.FormatFloat(amount/million, 'f', -1, 64) + "M"
	default:
		return "$" + strconv.FormatFloat(amount/thousand, 'f', -1, 64) + "K"
	}
}
