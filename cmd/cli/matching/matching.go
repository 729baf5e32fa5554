// Package matching holds the commands that browse and rank the investor profiles.
package matching

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/myrjola/existyet/internal/investors"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "investors",
	Title: "Investor matching",
}

func init() {
	Match.Flags().String("amount", "", "amount to raise, e.g. $2M or 500K")
	Match.Flags().String("stage", "", "startup stage: "+strings.Join(investors.Stages, ", "))
	Match.Flags().StringSlice("industry", nil, "industries, repeat or separate with commas")
	Match.Flags().String("customer", "", "target customer: B2B, B2C or Both")
}

var Match = &cobra.Command{
	Use:     "match",
	GroupID: "investors",
	Short:   "Rank investors for a fundraise",
	Long:    `Scores every investor profile against the fundraise and prints the best matches.`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		amount, _ := cmd.Flags().GetString("amount")
		stage, _ := cmd.Flags().GetString("stage")
		industries, _ := cmd.Flags().GetStringSlice("industry")
		customer, _ := cmd.Flags().GetString("customer")

		criteria, err := investors.Form{
			Amount:       amount,
			Stage:        stage,
			Industries:   industries,
			CustomerType: customer,
		}.Criteria()
		if err != nil {
			return fmt.Errorf("invalid search: %w", err)
		}
		for _, inv := range investors.Match(investors.All(), criteria) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%3d%%  #%d %s (%s) %s\n", inv.Score, inv.ID, inv.Name, inv.Company,
				inv.TicketSize)
		}
		return nil
	},
}

var Show = &cobra.Command{
	Use:     "investor [id]",
	GroupID: "investors",
	Short:   "Show an investor profile",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("investor id must be a number: %w", err)
		}
		inv, ok := investors.ByID(id)
		if !ok {
			return fmt.Errorf("investor %d not found", id)
		}
		w := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(w, "%s, %s (%s)\n", inv.Name, inv.Company, inv.Location)
		_, _ = fmt.Fprintf(w, "%s\n", inv.Bio)
		_, _ = fmt.Fprintf(w, "stages:     %s\n", strings.Join(inv.Stage, ", "))
		_, _ = fmt.Fprintf(w, "industries: %s\n", strings.Join(inv.Focus, ", "))
		_, _ = fmt.Fprintf(w, "ticket:     %s\n", inv.TicketSize)
		_, _ = fmt.Fprintf(w, "customers:  %s\n", inv.CustomerPreference)
		_, _ = fmt.Fprintf(w, "portfolio:  %s\n", strings.Join(inv.PortfolioCompanies, ", "))
		return nil
	},
}
