// Package database opens and migrates the relational store backing the
// pipeline. SQL stays in the subset both supported drivers accept.
package database

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Mimic360/Payroll-ETL-Project/internal/domain"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// DefaultSQLitePath is used when no DSN is configured.
const DefaultSQLitePath = "payroll.db"

// Config carries the store connection settings
type Config struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// Connect opens the configured database, verifies the connection and
// migrates the payroll schema. The caller owns the returned handle and must
// close it on every exit path of the run.
func Connect(cfg Config) (*sql.DB, error) {
	driver, dsn, err := resolve(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if driver == DriverSQLite && strings.Contains(dsn, ":memory:") {
		// each pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

// resolve fills in driver defaults and the sqlite DSN options.
func resolve(cfg Config) (string, string, error) {
	switch cfg.Driver {
	case "", DriverSQLite:
		dsn := cfg.DSN
		if dsn == "" {
			dsn = DefaultSQLitePath
		}
		if !strings.HasPrefix(dsn, ":memory:") && !strings.Contains(dsn, "?") {
			dsn += "?_foreign_keys=on&_journal_mode=WAL"
		}
		return DriverSQLite, dsn, nil
	case DriverPostgres:
		if cfg.DSN == "" {
			return "", "", &domain.ConfigurationError{Field: "database.dsn", Reason: "postgres requires a dsn"}
		}
		return DriverPostgres, cfg.DSN, nil
	default:
		return "", "", &domain.ConfigurationError{Field: "database.driver", Reason: fmt.Sprintf("unknown driver %q", cfg.Driver)}
	}
}

// Migrate creates the payroll schema. Integrity rules beyond the uniqueness
// key are deliberately not expressed as constraints; validation queries
// report them instead of the store silently rejecting rows.
func Migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS payroll_records (
		employee_id    TEXT NOT NULL,
		employee_name  TEXT NOT NULL DEFAULT '',
		department     TEXT NOT NULL,
		pay_date       TEXT NOT NULL DEFAULT '',
		notes          TEXT NOT NULL DEFAULT '',
		hours_worked   DOUBLE PRECISION NOT NULL,
		regular_hours  DOUBLE PRECISION NOT NULL,
		overtime_hours DOUBLE PRECISION NOT NULL,
		overtime       BOOLEAN NOT NULL DEFAULT FALSE,
		hourly_rate    DOUBLE PRECISION NOT NULL,
		gross_pay      DOUBLE PRECISION NOT NULL,
		tax            DOUBLE PRECISION NOT NULL,
		net_pay        DOUBLE PRECISION NOT NULL,
		load_batch_id  TEXT NOT NULL,
		source_file    TEXT NOT NULL,
		loaded_at      TIMESTAMP NOT NULL,
		superseded_at  TIMESTAMP,
		UNIQUE (employee_id, load_batch_id, source_file)
	);

	CREATE INDEX IF NOT EXISTS idx_payroll_department
		ON payroll_records (department);
	CREATE INDEX IF NOT EXISTS idx_payroll_source_file
		ON payroll_records (source_file);
	CREATE INDEX IF NOT EXISTS idx_payroll_batch
		ON payroll_records (load_batch_id);

	CREATE TABLE IF NOT EXISTS ingestion_log (
		batch_id      TEXT NOT NULL,
		source_file   TEXT NOT NULL,
		status        TEXT NOT NULL,
		rows_read     INTEGER NOT NULL DEFAULT 0,
		rows_loaded   INTEGER NOT NULL DEFAULT 0,
		rows_rejected INTEGER NOT NULL DEFAULT 0,
		rows_skipped  INTEGER NOT NULL DEFAULT 0,
		error         TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_ingestion_batch
		ON ingestion_log (batch_id);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
