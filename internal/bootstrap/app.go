// Package bootstrap wires configuration, logging, storage and the pipeline
// into the operations the CLI exposes.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Mimic360/Payroll-ETL-Project/internal/cleaner"
	"github.com/Mimic360/Payroll-ETL-Project/internal/config"
	"github.com/Mimic360/Payroll-ETL-Project/internal/database"
	"github.com/Mimic360/Payroll-ETL-Project/internal/domain"
	"github.com/Mimic360/Payroll-ETL-Project/internal/export"
	"github.com/Mimic360/Payroll-ETL-Project/internal/loader"
	"github.com/Mimic360/Payroll-ETL-Project/internal/logger"
	"github.com/Mimic360/Payroll-ETL-Project/internal/parser"
	"github.com/Mimic360/Payroll-ETL-Project/internal/report"
	"github.com/Mimic360/Payroll-ETL-Project/internal/repository"
	"github.com/Mimic360/Payroll-ETL-Project/internal/tax"
)

// App owns the store handle and hands the pipeline operations to the CLI.
// Close must be called on every exit path once construction succeeds.
type App struct {
	Config *config.Config
	Log    zerolog.Logger
	DB     *sql.DB
	Repo   domain.PayrollRepository
}

// NewApp loads configuration from path (empty means defaults plus env) and
// opens the store.
func NewApp(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return NewAppWithConfig(cfg)
}

// NewAppWithConfig wires an App from an already built configuration.
func NewAppWithConfig(cfg *config.Config) (*App, error) {
	log := logger.New(cfg.Log)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	log.Debug().Str("driver", cfg.Database.Driver).Msg("store ready")

	return &App{
		Config: cfg,
		Log:    log,
		DB:     db,
		Repo:   repository.NewPayrollRepository(db),
	}, nil
}

// Close releases the store connection.
func (a *App) Close() error {
	return a.DB.Close()
}

// RunOptions carry the run command inputs.
type RunOptions struct {
	Files   []string
	BatchID string
}

// RunOutcome is everything one pipeline run produced.
type RunOutcome struct {
	Batch       *domain.BatchResult
	Violations  []*domain.ValidationViolation
	ExportPaths []string
}

// Run executes the full pipeline: load the files, validate the store, build
// the reports and export them. A partial outcome is returned alongside the
// error when the batch aborts, so callers can still report what happened.
func (a *App) Run(ctx context.Context, opts RunOptions) (*RunOutcome, error) {
	policy, err := tax.New(a.Config.Tax.Policy, a.Config.Tax.FlatRate, a.Config.Tax.Brackets)
	if err != nil {
		return nil, err
	}
	p, err := parser.New(a.Config.Load.Delimiter)
	if err != nil {
		return nil, err
	}
	l, err := loader.New(p, cleaner.New(policy), a.Repo, loader.Config{
		BatchID:         opts.BatchID,
		DuplicatePolicy: a.Config.Load.DuplicatePolicy,
	}, a.Log)
	if err != nil {
		return nil, err
	}

	outcome := &RunOutcome{}
	outcome.Batch, err = l.LoadFiles(ctx, opts.Files)
	if err != nil {
		return outcome, err
	}

	outcome.Violations, err = a.Validate(ctx)
	if err != nil {
		return outcome, err
	}

	outcome.ExportPaths, err = a.exportReports(ctx, "", "", "")
	if err != nil {
		return outcome, err
	}
	return outcome, nil
}

// ReportOptions narrow or redirect a standalone report build. Empty fields
// fall back to the configuration.
type ReportOptions struct {
	BatchID string
	Format  string
	OutDir  string
}

// Report rebuilds the report tables from the store and exports them.
func (a *App) Report(ctx context.Context, opts ReportOptions) ([]string, error) {
	return a.exportReports(ctx, opts.BatchID, opts.Format, opts.OutDir)
}

// Validate runs the store integrity checks and logs every violation.
func (a *App) Validate(ctx context.Context) ([]*domain.ValidationViolation, error) {
	violations, err := a.Repo.Validate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to validate store: %w", err)
	}
	for _, v := range violations {
		a.Log.Warn().Str("rule", v.Rule).Int("count", v.Count).Msg("validation violation")
	}
	return violations, nil
}

// Purge deletes superseded rows from the store.
func (a *App) Purge(ctx context.Context) (int64, error) {
	purged, err := a.Repo.PurgeSuperseded(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to purge superseded rows: %w", err)
	}
	a.Log.Info().Int64("rows", purged).Msg("purged superseded rows")
	return purged, nil
}

func (a *App) exportReports(ctx context.Context, batchID, format, outDir string) ([]string, error) {
	builder := report.NewBuilder(a.Repo, report.Config{
		BatchID:    batchID,
		TopEarners: a.Config.Report.TopEarners,
	}, a.Log)
	tables, err := builder.Build(ctx)
	if err != nil {
		return nil, err
	}

	if format == "" {
		format = a.Config.Report.Format
	}
	if outDir == "" {
		outDir = a.Config.Report.ExportDir
	}
	sinks, err := export.NewSinks(format, outDir, a.Log)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, sink := range sinks {
		path, err := sink.Write(ctx, tables)
		if err != nil {
			return nil, fmt.Errorf("failed to export reports: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
