package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mimic360/Payroll-ETL-Project/internal/bootstrap"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Rebuild reports from the store and export them",
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

		batchID, _ := cmd.Flags().GetString("batch-id")
		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("out")

		paths, err := app.Report(cmd.Context(), bootstrap.ReportOptions{
			BatchID: batchID,
			Format:  format,
			OutDir:  out,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Reports:")
		for _, path := range paths {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", path)
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().String("batch-id", "", "restrict reports to one batch")
	reportCmd.Flags().String("format", "", "export format (excel|csv|both)")
	reportCmd.Flags().String("out", "", "export directory")
	rootCmd.AddCommand(reportCmd)
}
