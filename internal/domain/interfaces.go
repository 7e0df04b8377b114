package domain

import "context"

// PayrollRepository defines the interface for payroll data operations.
// Queries and validation read active (non-superseded) rows only; an empty
// batchID spans all batches.
type PayrollRepository interface {
	// InsertRecord writes one record with an idempotent keyed insert.
	// Returns false when the key (employee_id, load_batch_id, source_file)
	// already exists and the row was left untouched.
	InsertRecord(ctx context.Context, rec *PayrollRecord) (bool, error)

	// SupersedeFile marks active rows of sourceFile from batches other than
	// keepBatchID as superseded. Returns the number of rows marked.
	SupersedeFile(ctx context.Context, sourceFile, keepBatchID string) (int64, error)

	// RecordIngestion writes one audit row for an attempted file.
	RecordIngestion(ctx context.Context, entry *IngestionLog) error

	// Validate runs the integrity queries and returns every violation found.
	Validate(ctx context.Context) ([]*ValidationViolation, error)

	// QuerySummaries aggregates active rows per department.
	QuerySummaries(ctx context.Context, batchID string) ([]DepartmentSummary, error)

	QueryTopEarners(ctx context.Context, batchID string, limit int) ([]TopEarner, error)
	QueryMonthlySummaries(ctx context.Context, batchID string) ([]MonthlySummary, error)
	QueryDepartmentHours(ctx context.Context, batchID string) ([]DepartmentHours, error)

	// QueryOvertime returns active records flagged as overtime, longest
	// overtime first.
	QueryOvertime(ctx context.Context, batchID string) ([]PayrollRecord, error)

	// PurgeSuperseded deletes superseded rows. Returns the number deleted.
	PurgeSuperseded(ctx context.Context) (int64, error)

	// CountActive returns the number of active records.
	CountActive(ctx context.Context) (int, error)
}

// ReportSink renders finished report tables somewhere outside the pipeline.
// Write returns the destination it produced (a file or directory path).
type ReportSink interface {
	Write(ctx context.Context, reports []ReportTable) (string, error)
}
