// Package cmd defines the payroll-etl command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Mimic360/Payroll-ETL-Project/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "payroll-etl",
	Short: "Load delimited payroll files into a store, validate and report",
	Long: `payroll-etl ingests delimited payroll exports into a relational store,
computes pay under a configurable tax policy, validates the loaded data and
exports department reports.

Example usage:
  payroll-etl run data/jan.csv data/feb.csv   # load files and export reports
  payroll-etl report --format csv             # rebuild reports from the store
  payroll-etl validate                        # run the store integrity checks
  payroll-etl purge                           # drop superseded rows`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the CLI and exits non-zero on any command error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", os.Getenv("PAYROLL_CONFIG"), "path to the YAML configuration file")
	rootCmd.PersistentFlags().String("db", "", "override the store DSN")
	rootCmd.PersistentFlags().String("log-level", "", "override the log level (debug|info|warn|error)")
}

// loadConfig builds the configuration and applies the persistent overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.Database.DSN = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	return cfg, nil
}
