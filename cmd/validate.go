package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mimic360/Payroll-ETL-Project/internal/bootstrap"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run the store integrity checks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		app, err := bootstrap.NewAppWithConfig(cfg)
		if err != nil {
			return err
		}
		defer app.Close()

		violations, err := app.Validate(cmd.Context())
		if err != nil {
			return err
		}
		if len(violations) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No violations found")
			return nil
		}
		for _, v := range violations {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows (%s)\n", v.Rule, v.Count, v.Detail)
		}
		return fmt.Errorf("found %d validation violations", len(violations))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
