// Package report aggregates stored payroll into the tables shipped to sinks.
package report

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/Mimic360/Payroll-ETL-Project/internal/domain"
)

// DefaultTopEarners bounds the top-earners table when the config leaves it unset.
const DefaultTopEarners = 5

// Config scopes report building. An empty BatchID reports over all active rows.
type Config struct {
	BatchID    string
	TopEarners int
}

// Builder turns repository aggregates into renderer-agnostic report tables.
// Summaries are always recomputed from the store, never cached.
type Builder struct {
	repo domain.PayrollRepository
	cfg  Config
	log  zerolog.Logger
}

// NewBuilder creates a report Builder.
func NewBuilder(repo domain.PayrollRepository, cfg Config, log zerolog.Logger) *Builder {
	if cfg.TopEarners <= 0 {
		cfg.TopEarners = DefaultTopEarners
	}
	return &Builder{repo: repo, cfg: cfg, log: log}
}

// Build assembles the report tables in presentation order. The department
// summary, top earners and average hours tables are always present; the
// monthly and overtime tables are dropped when they would be empty.
func (b *Builder) Build(ctx context.Context) ([]domain.ReportTable, error) {
	summaries, err := b.repo.QuerySummaries(ctx, b.cfg.BatchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query department summaries: %w", err)
	}
	if len(summaries) == 0 {
		b.log.Warn().Str("batch_id", b.cfg.BatchID).Msg("no active records to report on")
	}
	tables := []domain.ReportTable{departmentTable(summaries)}

	earners, err := b.repo.QueryTopEarners(ctx, b.cfg.BatchID, b.cfg.TopEarners)
	if err != nil {
		return nil, fmt.Errorf("failed to query top earners: %w", err)
	}
	tables = append(tables, topEarnersTable(earners))

	months, err := b.repo.QueryMonthlySummaries(ctx, b.cfg.BatchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly summaries: %w", err)
	}
	if len(months) > 0 {
		tables = append(tables, monthlyTable(months))
	}

	hours, err := b.repo.QueryDepartmentHours(ctx, b.cfg.BatchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query department hours: %w", err)
	}
	tables = append(tables, hoursTable(hours))

	overtime, err := b.repo.QueryOvertime(ctx, b.cfg.BatchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query overtime: %w", err)
	}
	if len(overtime) > 0 {
		tables = append(tables, overtimeTable(overtime))
	}

	return tables, nil
}

func departmentTable(summaries []domain.DepartmentSummary) domain.ReportTable {
	rows := make([][]interface{}, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []interface{}{
			s.Department,
			s.EmployeeCount,
			round2(s.TotalHours),
			round2(s.AvgHours),
			round2(s.TotalGrossPay),
			round2(s.TotalNetPay),
		})
	}
	return domain.ReportTable{
		Name:    "department_summary",
		Title:   "Payroll Summary by Department",
		Columns: []string{"department", "employee_count", "total_hours", "avg_hours", "total_gross_pay", "total_net_pay"},
		Rows:    rows,
	}
}

func topEarnersTable(earners []domain.TopEarner) domain.ReportTable {
	rows := make([][]interface{}, 0, len(earners))
	for _, e := range earners {
		rows = append(rows, []interface{}{
			e.EmployeeID,
			e.EmployeeName,
			e.Department,
			round2(e.GrossPay),
		})
	}
	return domain.ReportTable{
		Name:    "top_earners",
		Title:   "Top Earners by Gross Pay",
		Columns: []string{"employee_id", "employee_name", "department", "gross_pay"},
		Rows:    rows,
	}
}

func monthlyTable(months []domain.MonthlySummary) domain.ReportTable {
	rows := make([][]interface{}, 0, len(months))
	for _, m := range months {
		rows = append(rows, []interface{}{
			m.Month,
			round2(m.TotalGrossPay),
			round2(m.TotalTax),
			round2(m.TotalNetPay),
		})
	}
	return domain.ReportTable{
		Name:    "monthly_summary",
		Title:   "Payroll Totals by Month",
		Columns: []string{"month", "total_gross_pay", "total_tax", "total_net_pay"},
		Rows:    rows,
		Chart: &domain.ChartSpec{
			Title:    "Gross Pay by Month",
			LabelCol: 0,
			ValueCol: 1,
		},
	}
}

func hoursTable(hours []domain.DepartmentHours) domain.ReportTable {
	rows := make([][]interface{}, 0, len(hours))
	for _, h := range hours {
		rows = append(rows, []interface{}{
			h.Department,
			h.EmployeeCount,
			round2(h.AvgHours),
		})
	}
	return domain.ReportTable{
		Name:    "avg_hours_by_department",
		Title:   "Average Hours by Department",
		Columns: []string{"department", "employee_count", "avg_hours"},
		Rows:    rows,
	}
}

func overtimeTable(records []domain.PayrollRecord) domain.ReportTable {
	rows := make([][]interface{}, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []interface{}{
			rec.EmployeeID,
			rec.EmployeeName,
			rec.Department,
			round2(rec.HoursWorked),
			round2(rec.OvertimeHours),
			round2(rec.GrossPay),
		})
	}
	return domain.ReportTable{
		Name:    "overtime",
		Title:   "Overtime Hours",
		Columns: []string{"employee_id", "employee_name", "department", "hours_worked", "overtime_hours", "gross_pay"},
		Rows:    rows,
	}
}

// round2 rounds for presentation; stored values stay full precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
