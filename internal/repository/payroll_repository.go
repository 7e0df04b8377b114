package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Mimic360/Payroll-ETL-Project/internal/domain"
	"github.com/Mimic360/Payroll-ETL-Project/internal/repository/builder"
)

// recordColumns is the insert column list for payroll_records.
var recordColumns = []string{
	"employee_id", "employee_name", "department", "pay_date", "notes",
	"hours_worked", "regular_hours", "overtime_hours", "overtime",
	"hourly_rate", "gross_pay", "tax", "net_pay",
	"load_batch_id", "source_file", "loaded_at",
}

// duplicateKeyQuery counts keys that appear more than once among active rows.
const duplicateKeyQuery = `
SELECT COUNT(*) FROM (
	SELECT employee_id, load_batch_id, source_file
	FROM payroll_records
	WHERE superseded_at IS NULL
	GROUP BY employee_id, load_batch_id, source_file
	HAVING COUNT(*) > 1
) AS dup`

type payrollRepository struct {
	db *sql.DB
}

// NewPayrollRepository creates a new instance of PayrollRepository
func NewPayrollRepository(db *sql.DB) domain.PayrollRepository {
	return &payrollRepository{db: db}
}

func (r *payrollRepository) InsertRecord(ctx context.Context, rec *domain.PayrollRecord) (bool, error) {
	loadedAt := rec.LoadedAt
	if loadedAt.IsZero() {
		loadedAt = time.Now().UTC()
	}

	b := builder.NewSQLBuilder()
	query, args := b.Insert("payroll_records", recordColumns...).
		Values(rec.EmployeeID, rec.EmployeeName, rec.Department, rec.PayDate, rec.Notes,
			rec.HoursWorked, rec.RegularHours, rec.OvertimeHours, rec.Overtime,
			rec.HourlyRate, rec.GrossPay, rec.Tax, rec.NetPay,
			rec.LoadBatchID, rec.SourceFile, loadedAt).
		OnConflictDoNothing("employee_id", "load_batch_id", "source_file").
		Build()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *payrollRepository) SupersedeFile(ctx context.Context, sourceFile, keepBatchID string) (int64, error) {
	b := builder.NewSQLBuilder()
	query, args := b.Update("payroll_records").
		Set("superseded_at", time.Now().UTC()).
		Where("source_file = ?", sourceFile).
		Where("load_batch_id <> ?", keepBatchID).
		Where("superseded_at IS NULL").
		Build()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *payrollRepository) RecordIngestion(ctx context.Context, entry *domain.IngestionLog) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	b := builder.NewSQLBuilder()
	query, args := b.Insert("ingestion_log",
		"batch_id", "source_file", "status",
		"rows_read", "rows_loaded", "rows_rejected", "rows_skipped",
		"error", "created_at").
		Values(entry.BatchID, entry.SourceFile, entry.Status,
			entry.RowsRead, entry.RowsLoaded, entry.RowsRejected, entry.RowsSkipped,
			entry.Error, createdAt).
		Build()

	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// Validate runs the integrity queries over active rows. Each broken rule
// yields one violation carrying the offending row count.
func (r *payrollRepository) Validate(ctx context.Context) ([]*domain.ValidationViolation, error) {
	counting := func(conditions ...string) func() (string, []interface{}) {
		return func() (string, []interface{}) {
			b := builder.NewSQLBuilder().
				Select("COUNT(*)").
				From("payroll_records").
				Where("superseded_at IS NULL")
			for _, cond := range conditions {
				b.Where(cond)
			}
			return b.Build()
		}
	}

	checks := []struct {
		rule   string
		detail string
		query  func() (string, []interface{})
	}{
		{
			rule:   domain.RuleGrossNegative,
			detail: "records with negative gross_pay",
			query:  counting("gross_pay < 0"),
		},
		{
			rule:   domain.RuleNetExceedsGross,
			detail: "records where net_pay exceeds gross_pay",
			query:  counting("net_pay > gross_pay + 1e-9"),
		},
		{
			rule:   domain.RuleDuplicateKey,
			detail: "duplicate (employee_id, load_batch_id, source_file) keys",
			query: func() (string, []interface{}) {
				return duplicateKeyQuery, nil
			},
		},
		{
			rule:   domain.RuleBlankDepartment,
			detail: "records referencing a blank department",
			query:  counting("TRIM(department) = ''"),
		},
		{
			rule:   domain.RuleGrossMismatch,
			detail: "records where gross_pay disagrees with hours_worked * hourly_rate",
			query:  counting("ABS(gross_pay - hours_worked * hourly_rate) > 1e-9"),
		},
	}

	var violations []*domain.ValidationViolation
	for _, check := range checks {
		query, args := check.query()
		var count int
		if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
			return nil, fmt.Errorf("failed to run %s check: %w", check.rule, err)
		}
		if count > 0 {
			violations = append(violations, &domain.ValidationViolation{
				Rule:   check.rule,
				Count:  count,
				Detail: check.detail,
			})
		}
	}
	return violations, nil
}

func (r *payrollRepository) QuerySummaries(ctx context.Context, batchID string) ([]domain.DepartmentSummary, error) {
	b := builder.NewSQLBuilder().
		Select("department",
			"COUNT(DISTINCT employee_id) AS employee_count",
			"SUM(hours_worked) AS total_hours",
			"AVG(hours_worked) AS avg_hours",
			"SUM(gross_pay) AS total_gross_pay",
			"SUM(net_pay) AS total_net_pay").
		From("payroll_records").
		Where("superseded_at IS NULL")
	if batchID != "" {
		b.Where("load_batch_id = ?", batchID)
	}
	query, args := b.GroupBy("department").
		OrderBy("total_gross_pay DESC").
		OrderBy("department ASC").
		Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []domain.DepartmentSummary
	for rows.Next() {
		var s domain.DepartmentSummary
		if err := rows.Scan(&s.Department, &s.EmployeeCount, &s.TotalHours, &s.AvgHours,
			&s.TotalGrossPay, &s.TotalNetPay); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *payrollRepository) QueryTopEarners(ctx context.Context, batchID string, limit int) ([]domain.TopEarner, error) {
	if limit <= 0 {
		limit = 5
	}

	b := builder.NewSQLBuilder().
		Select("employee_id", "employee_name", "department", "gross_pay").
		From("payroll_records").
		Where("superseded_at IS NULL")
	if batchID != "" {
		b.Where("load_batch_id = ?", batchID)
	}
	query, args := b.OrderBy("gross_pay DESC").
		OrderBy("employee_id ASC").
		Limit(limit).
		Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var earners []domain.TopEarner
	for rows.Next() {
		var e domain.TopEarner
		if err := rows.Scan(&e.EmployeeID, &e.EmployeeName, &e.Department, &e.GrossPay); err != nil {
			return nil, err
		}
		earners = append(earners, e)
	}
	return earners, rows.Err()
}

func (r *payrollRepository) QueryMonthlySummaries(ctx context.Context, batchID string) ([]domain.MonthlySummary, error) {
	b := builder.NewSQLBuilder().
		Select("SUBSTR(pay_date, 1, 7) AS month",
			"SUM(gross_pay) AS total_gross_pay",
			"SUM(tax) AS total_tax",
			"SUM(net_pay) AS total_net_pay").
		From("payroll_records").
		Where("superseded_at IS NULL").
		Where("pay_date <> ''")
	if batchID != "" {
		b.Where("load_batch_id = ?", batchID)
	}
	query, args := b.GroupBy("month").
		OrderBy("month ASC").
		Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var months []domain.MonthlySummary
	for rows.Next() {
		var m domain.MonthlySummary
		if err := rows.Scan(&m.Month, &m.TotalGrossPay, &m.TotalTax, &m.TotalNetPay); err != nil {
			return nil, err
		}
		months = append(months, m)
	}
	return months, rows.Err()
}

func (r *payrollRepository) QueryDepartmentHours(ctx context.Context, batchID string) ([]domain.DepartmentHours, error) {
	b := builder.NewSQLBuilder().
		Select("department",
			"COUNT(DISTINCT employee_id) AS employee_count",
			"AVG(hours_worked) AS avg_hours").
		From("payroll_records").
		Where("superseded_at IS NULL")
	if batchID != "" {
		b.Where("load_batch_id = ?", batchID)
	}
	query, args := b.GroupBy("department").
		OrderBy("avg_hours DESC").
		OrderBy("department ASC").
		Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hours []domain.DepartmentHours
	for rows.Next() {
		var h domain.DepartmentHours
		if err := rows.Scan(&h.Department, &h.EmployeeCount, &h.AvgHours); err != nil {
			return nil, err
		}
		hours = append(hours, h)
	}
	return hours, rows.Err()
}

func (r *payrollRepository) QueryOvertime(ctx context.Context, batchID string) ([]domain.PayrollRecord, error) {
	b := builder.NewSQLBuilder().
		Select("employee_id", "employee_name", "department",
			"hours_worked", "regular_hours", "overtime_hours",
			"hourly_rate", "gross_pay").
		From("payroll_records").
		Where("superseded_at IS NULL").
		Where("overtime = TRUE")
	if batchID != "" {
		b.Where("load_batch_id = ?", batchID)
	}
	query, args := b.OrderBy("overtime_hours DESC").
		OrderBy("employee_id ASC").
		Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.PayrollRecord
	for rows.Next() {
		var rec domain.PayrollRecord
		if err := rows.Scan(&rec.EmployeeID, &rec.EmployeeName, &rec.Department,
			&rec.HoursWorked, &rec.RegularHours, &rec.OvertimeHours,
			&rec.HourlyRate, &rec.GrossPay); err != nil {
			return nil, err
		}
		rec.Overtime = true
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *payrollRepository) PurgeSuperseded(ctx context.Context) (int64, error) {
	b := builder.NewSQLBuilder()
	query, args := b.Delete("payroll_records").
		Where("superseded_at IS NOT NULL").
		Build()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *payrollRepository) CountActive(ctx context.Context) (int, error) {
	b := builder.NewSQLBuilder()
	query, args := b.Select("COUNT(*)").
		From("payroll_records").
		Where("superseded_at IS NULL").
		Build()

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
