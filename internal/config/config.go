// Package config loads pipeline settings from an optional YAML file, a .env
// file and process environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Mimic360/Payroll-ETL-Project/internal/database"
	"github.com/Mimic360/Payroll-ETL-Project/internal/export"
	"github.com/Mimic360/Payroll-ETL-Project/internal/loader"
	"github.com/Mimic360/Payroll-ETL-Project/internal/logger"
	"github.com/Mimic360/Payroll-ETL-Project/internal/report"
	"github.com/Mimic360/Payroll-ETL-Project/internal/tax"
)

// Config carries every knob of the pipeline. It is built once at startup and
// passed into constructors; nothing reads the environment after Load returns.
type Config struct {
	Database database.Config `yaml:"database"`
	Tax      TaxConfig       `yaml:"tax"`
	Load     LoadConfig      `yaml:"load"`
	Report   ReportConfig    `yaml:"report"`
	Log      logger.Config   `yaml:"log"`
}

// TaxConfig selects the withholding policy.
type TaxConfig struct {
	Policy   string        `yaml:"policy"`
	FlatRate float64       `yaml:"flat_rate"`
	Brackets []tax.Bracket `yaml:"brackets"`
}

// LoadConfig controls batch ingestion.
type LoadConfig struct {
	DuplicatePolicy string `yaml:"duplicate_policy"`
	Delimiter       string `yaml:"delimiter"`
}

// ReportConfig controls aggregation and export.
type ReportConfig struct {
	ExportDir  string `yaml:"export_dir"`
	Format     string `yaml:"format"`
	TopEarners int    `yaml:"top_earners"`
}

// Default returns the configuration used when nothing else is given: a local
// sqlite store, flat 10% tax, duplicate skip, excel reports under ./exports.
func Default() *Config {
	return &Config{
		Database: database.Config{
			Driver: database.DriverSQLite,
			DSN:    database.DefaultSQLitePath,
		},
		Tax: TaxConfig{
			Policy:   tax.PolicyFlatRate,
			FlatRate: tax.DefaultFlatRate,
		},
		Load: LoadConfig{
			DuplicatePolicy: loader.DuplicateSkip,
			Delimiter:       ",",
		},
		Report: ReportConfig{
			ExportDir:  "exports",
			Format:     export.FormatExcel,
			TopEarners: report.DefaultTopEarners,
		},
		Log: logger.Config{Level: "info"},
	}
}

// Load builds the configuration. A missing .env is fine; a named YAML file
// that cannot be read or parsed is not. Semantic validation happens in the
// component constructors, so bad values still fail at startup.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Database.Driver = getEnvString("PAYROLL_DB_DRIVER", cfg.Database.Driver)
	cfg.Database.DSN = getEnvString("PAYROLL_DB_DSN", cfg.Database.DSN)
	cfg.Tax.Policy = getEnvString("PAYROLL_TAX_POLICY", cfg.Tax.Policy)
	cfg.Tax.FlatRate = getEnvFloat("PAYROLL_TAX_FLAT_RATE", cfg.Tax.FlatRate)
	cfg.Load.DuplicatePolicy = getEnvString("PAYROLL_DUPLICATE_POLICY", cfg.Load.DuplicatePolicy)
	cfg.Load.Delimiter = getEnvString("PAYROLL_DELIMITER", cfg.Load.Delimiter)
	cfg.Report.ExportDir = getEnvString("PAYROLL_EXPORT_DIR", cfg.Report.ExportDir)
	cfg.Report.Format = getEnvString("PAYROLL_EXPORT_FORMAT", cfg.Report.Format)
	cfg.Report.TopEarners = getEnvInt("PAYROLL_TOP_EARNERS", cfg.Report.TopEarners)
	cfg.Log.Level = getEnvString("PAYROLL_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.File = getEnvString("PAYROLL_LOG_FILE", cfg.Log.File)
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}
