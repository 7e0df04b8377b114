package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mimic360/Payroll-ETL-Project/internal/bootstrap"
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete superseded rows from the store",
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

		purged, err := app.Purge(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Purged %d superseded rows\n", purged)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(purgeCmd)
}
