package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Mimic360/Payroll-ETL-Project/internal/bootstrap"
)

var runCmd = &cobra.Command{
	Use:   "run <files...>",
	Short: "Load payroll files, validate the store and export reports",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if v, _ := cmd.Flags().GetString("tax-policy"); v != "" {
			cfg.Tax.Policy = v
		}
		if v, _ := cmd.Flags().GetString("duplicate-policy"); v != "" {
			cfg.Load.DuplicatePolicy = v
		}
		if v, _ := cmd.Flags().GetString("out"); v != "" {
			cfg.Report.ExportDir = v
		}
		if v, _ := cmd.Flags().GetString("format"); v != "" {
			cfg.Report.Format = v
		}

		app, err := bootstrap.NewAppWithConfig(cfg)
		if err != nil {
			return err
		}
		defer app.Close()

		batchID, _ := cmd.Flags().GetString("batch-id")
		outcome, err := app.Run(cmd.Context(), bootstrap.RunOptions{Files: args, BatchID: batchID})
		if outcome != nil && outcome.Batch != nil {
			printOutcome(cmd.OutOrStdout(), outcome)
		}
		return err
	},
}

// printOutcome writes the human batch summary. A run never ends silently,
// even when it aborted part way.
func printOutcome(w io.Writer, outcome *bootstrap.RunOutcome) {
	b := outcome.Batch
	fmt.Fprintf(w, "Batch %s\n", b.BatchID)
	fmt.Fprintf(w, "  files attempted: %d\n", b.FilesAttempted)
	fmt.Fprintf(w, "  files succeeded: %d\n", b.FilesSucceeded)
	fmt.Fprintf(w, "  rows loaded:     %d\n", b.RowsLoaded)
	fmt.Fprintf(w, "  rows rejected:   %d\n", b.RowsRejected)
	fmt.Fprintf(w, "  rows skipped:    %d\n", b.RowsSkipped)

	failed := false
	for _, fr := range b.Files {
		if fr.Err != nil {
			if !failed {
				fmt.Fprintln(w, "Failed files:")
				failed = true
			}
			fmt.Fprintf(w, "  %v\n", fr.Err)
		}
	}
	if len(b.Rejections) > 0 {
		fmt.Fprintln(w, "Rejected rows:")
		for _, rej := range b.Rejections {
			fmt.Fprintf(w, "  %s row %d: %s: %s\n", rej.File, rej.Row, rej.Field, rej.Reason)
		}
	}
	if len(outcome.Violations) > 0 {
		fmt.Fprintln(w, "Validation violations:")
		for _, v := range outcome.Violations {
			fmt.Fprintf(w, "  %s: %d rows (%s)\n", v.Rule, v.Count, v.Detail)
		}
	}
	if len(outcome.ExportPaths) > 0 {
		fmt.Fprintln(w, "Reports:")
		for _, path := range outcome.ExportPaths {
			fmt.Fprintf(w, "  %s\n", path)
		}
	}
}

func init() {
	runCmd.Flags().String("batch-id", "", "batch id to load under (default generates one)")
	runCmd.Flags().String("tax-policy", "", "override the tax policy (flat_rate|bracketed)")
	runCmd.Flags().String("duplicate-policy", "", "override the duplicate policy (skip|error)")
	runCmd.Flags().String("out", "", "override the export directory")
	runCmd.Flags().String("format", "", "override the export format (excel|csv|both)")
	rootCmd.AddCommand(runCmd)
}
