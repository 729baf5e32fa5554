package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/myrjola/existyet/cmd/cli/analyses"
	"github.com/myrjola/existyet/cmd/cli/matching"
	"github.com/myrjola/existyet/cmd/cli/spreadsheet"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddGroup(analyses.Group)
	rootCmd.AddCommand(analyses.Analyze, analyses.History)
	rootCmd.AddGroup(matching.Group)
	rootCmd.AddCommand(matching.Match, matching.Show)
	rootCmd.AddGroup(spreadsheet.Group)
	rootCmd.AddCommand(spreadsheet.Test)
}

var rootCmd = &cobra.Command{
	Use:           "existyet-cli",
	Long:          `Command line utilities for Renvue https://github.com/myrjola/existyet`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		// A missing .env file is fine, the environment may be configured elsewhere.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load .env: %w", err)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
