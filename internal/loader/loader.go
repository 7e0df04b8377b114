// Package loader drives one batch run across an ordered set of input files.
package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Mimic360/Payroll-ETL-Project/internal/cleaner"
	"github.com/Mimic360/Payroll-ETL-Project/internal/domain"
	"github.com/Mimic360/Payroll-ETL-Project/internal/parser"
	"github.com/Mimic360/Payroll-ETL-Project/internal/schema"
)

// Duplicate policies.
const (
	DuplicateSkip  = "skip"
	DuplicateError = "error"
)

// Config controls one batch run. It is passed explicitly to New; the loader
// keeps no process-wide state.
type Config struct {
	BatchID         string // empty auto-generates a UUID
	DuplicatePolicy string // skip (default) or error
}

// Loader runs the ingestion loop: parse, clean, persist, audit. Files are
// processed one at a time in lexicographic path order; a bad file is logged
// and skipped, a store failure aborts the run.
type Loader struct {
	parser    *parser.Parser
	cleaner   *cleaner.Cleaner
	validator *schema.Validator
	repo      domain.PayrollRepository
	cfg       Config
	log       zerolog.Logger
}

// New creates a Loader. The duplicate policy is validated here so a bad
// value fails startup, not the middle of a batch.
func New(p *parser.Parser, c *cleaner.Cleaner, repo domain.PayrollRepository, cfg Config, log zerolog.Logger) (*Loader, error) {
	switch cfg.DuplicatePolicy {
	case "":
		cfg.DuplicatePolicy = DuplicateSkip
	case DuplicateSkip, DuplicateError:
	default:
		return nil, &domain.ConfigurationError{Field: "duplicate_policy", Reason: fmt.Sprintf("unknown policy %q", cfg.DuplicatePolicy)}
	}
	return &Loader{
		parser:    p,
		cleaner:   c,
		validator: schema.NewValidator(),
		repo:      repo,
		cfg:       cfg,
		log:       log,
	}, nil
}

// LoadFiles runs one batch over the given files. Order of the arguments does
// not matter; processing is lexicographic by path so reruns are reproducible.
// The returned BatchResult is complete even when the error is non-nil, so a
// run that aborts still reports what it managed to do.
func (l *Loader) LoadFiles(ctx context.Context, paths []string) (*domain.BatchResult, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no input files to load")
	}

	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)

	batchID := l.cfg.BatchID
	if batchID == "" {
		batchID = uuid.NewString()
	}

	result := &domain.BatchResult{
		BatchID:   batchID,
		StartedAt: time.Now().UTC(),
	}
	l.log.Info().Str("batch_id", batchID).Int("files", len(sorted)).Msg("starting batch")

	for _, path := range sorted {
		result.FilesAttempted++
		if err := l.loadFile(ctx, batchID, path, result); err != nil {
			l.finalize(result)
			return result, err
		}
	}

	l.finalize(result)
	l.log.Info().
		Str("batch_id", batchID).
		Int("files_attempted", result.FilesAttempted).
		Int("files_succeeded", result.FilesSucceeded).
		Int("rows_loaded", result.RowsLoaded).
		Int("rows_rejected", result.RowsRejected).
		Int("rows_skipped", result.RowsSkipped).
		Msg("batch finished")
	return result, nil
}

// loadFile processes one file. A parse failure marks the file failed and
// returns nil so the batch continues; a store failure returns the fatal
// error that aborts the run.
func (l *Loader) loadFile(ctx context.Context, batchID, path string, result *domain.BatchResult) error {
	parsed, err := l.parser.ParseFile(path)
	if err != nil {
		fileErr := &domain.FileFailed{File: path, Err: err}
		l.log.Error().Err(fileErr).Str("file", path).Msg("file failed")
		result.Files = append(result.Files, domain.FileResult{
			File:   path,
			Status: domain.FileStatusFailed,
			Err:    fileErr,
		})
		l.audit(ctx, batchID, path, domain.FileResult{Status: domain.FileStatusFailed, Err: fileErr})
		return nil
	}

	if missing := l.validator.CheckHeader(parsed.Header); len(missing) > 0 {
		// every row will be rejected below; say why once
		l.log.Warn().Str("file", path).Strs("missing_columns", missing).Msg("header lacks required columns")
	}

	fr := domain.FileResult{File: path, Status: domain.FileStatusLoaded, RowsRead: len(parsed.Rows)}
	for _, row := range parsed.Rows {
		rec, rejects := l.cleaner.Clean(row, batchID)
		if len(rejects) > 0 {
			fr.RowsRejected++
			result.Rejections = append(result.Rejections, rejects...)
			for _, rej := range rejects {
				l.log.Warn().Str("file", rej.File).Int("row", rej.Row).Str("field", rej.Field).Str("reason", rej.Reason).Msg("row rejected")
			}
			continue
		}

		inserted, err := l.repo.InsertRecord(ctx, rec)
		if err != nil {
			return l.abort(ctx, batchID, path, fr, result, err)
		}
		if !inserted {
			if l.cfg.DuplicatePolicy == DuplicateError {
				return l.abort(ctx, batchID, path, fr, result,
					fmt.Errorf("duplicate key for employee %q in %s", rec.EmployeeID, rec.SourceFile))
			}
			fr.RowsSkipped++
			continue
		}
		fr.RowsLoaded++
		if rec.Overtime {
			result.Overtime = append(result.Overtime, *rec)
		}
	}

	// this load of the file is now the active one; retire earlier loads
	marked, err := l.repo.SupersedeFile(ctx, filepath.Base(path), batchID)
	if err != nil {
		return l.abort(ctx, batchID, path, fr, result, err)
	}
	if marked > 0 {
		l.log.Info().Str("file", path).Int64("rows", marked).Msg("superseded earlier load")
	}

	result.FilesSucceeded++
	result.Files = append(result.Files, fr)
	l.audit(ctx, batchID, path, fr)
	l.log.Info().
		Str("file", path).
		Int("rows_read", fr.RowsRead).
		Int("rows_loaded", fr.RowsLoaded).
		Int("rows_rejected", fr.RowsRejected).
		Int("rows_skipped", fr.RowsSkipped).
		Msg("file loaded")
	return nil
}

// abort wraps a store failure, records the half-loaded file as failed and
// hands the fatal error up. Committed rows stay put; idempotent keyed
// inserts make the rerun safe.
func (l *Loader) abort(ctx context.Context, batchID, path string, fr domain.FileResult, result *domain.BatchResult, cause error) error {
	storeErr := &domain.StoreWriteFailed{File: path, Err: cause}
	l.log.Error().Err(storeErr).Str("file", path).Msg("store write failed, aborting batch")
	fr.Status = domain.FileStatusFailed
	fr.Err = storeErr
	result.Files = append(result.Files, fr)
	l.audit(ctx, batchID, path, fr)
	return storeErr
}

// audit writes the per-file ingestion_log row. Best effort: a failing audit
// write must not mask the outcome it records.
func (l *Loader) audit(ctx context.Context, batchID, path string, fr domain.FileResult) {
	entry := &domain.IngestionLog{
		BatchID:      batchID,
		SourceFile:   filepath.Base(path),
		Status:       fr.Status,
		RowsRead:     fr.RowsRead,
		RowsLoaded:   fr.RowsLoaded,
		RowsRejected: fr.RowsRejected,
		RowsSkipped:  fr.RowsSkipped,
	}
	if fr.Err != nil {
		entry.Error = fr.Err.Error()
	}
	if err := l.repo.RecordIngestion(ctx, entry); err != nil {
		l.log.Warn().Err(err).Str("file", path).Msg("failed to write ingestion log")
	}
}

func (l *Loader) finalize(result *domain.BatchResult) {
	for _, fr := range result.Files {
		result.RowsLoaded += fr.RowsLoaded
		result.RowsRejected += fr.RowsRejected
		result.RowsSkipped += fr.RowsSkipped
	}
}
