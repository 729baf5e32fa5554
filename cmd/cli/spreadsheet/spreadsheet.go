// Package spreadsheet holds the usage log maintenance commands.
package spreadsheet

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/myrjola/existyet/internal/envstruct"
	"github.com/myrjola/existyet/internal/logging"
	"github.com/myrjola/existyet/internal/sheets"
	"github.com/myrjola/existyet/internal/usagelog"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "sheets",
	Title: "Usage log",
}

type config struct {
	SheetsID            string `env:"GOOGLE_SHEETS_ID"             envDefault:""`
	ServiceAccountEmail string `env:"GOOGLE_SERVICE_ACCOUNT_EMAIL" envDefault:""`
	PrivateKey          string `env:"GOOGLE_PRIVATE_KEY"           envDefault:""`
}

var Test = &cobra.Command{
	Use:     "sheets-test",
	GroupID: "sheets",
	Short:   "Append a test row to the usage log",
	Long:    `Appends a fixed test row to the usage log spreadsheet to check the credentials and the sheet layout.`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var cfg config
		if err := envstruct.Populate(&cfg, os.LookupEnv); err != nil {
			return fmt.Errorf("read configuration: %w", err)
		}
		logger := logging.NewLogger(cmd.ErrOrStderr(), slog.LevelInfo, false)
		usage, err := sheets.NewLogger(cmd.Context(), sheets.Config{
			SpreadsheetID:       cfg.SheetsID,
			ServiceAccountEmail: cfg.ServiceAccountEmail,
			PrivateKey:          cfg.PrivateKey,
		}, logger)
		if err != nil {
			return fmt.Errorf("create usage logger: %w", err)
		}
		outcome := usage.Append(cmd.Context(), sheets.CannedRow(time.Now()))
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), outcome.String())
		if !usagelog.IsLogged(outcome) {
			return fmt.Errorf("test row was not appended: %s", outcome)
		}
		return nil
	},
}
