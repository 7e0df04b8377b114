package domain

import "time"

// ==================== INPUT ====================

// RawRow is one data row of a source file, fields keyed by canonical header name.
type RawRow struct {
	File   string
	Line   int // 1-based data row number, header row excluded
	Fields map[string]string
}

// Canonical header names recognized in source files.
const (
	FieldEmployeeID   = "employee_id"
	FieldEmployeeName = "employee_name"
	FieldDepartment   = "department"
	FieldPayDate      = "pay_date"
	FieldNotes        = "notes"
	FieldHoursWorked  = "hours_worked"
	FieldHourlyRate   = "hourly_rate"
)

// ==================== PAYROLL RECORDS ====================

// PayrollRecord represents the payroll_records table
type PayrollRecord struct {
	EmployeeID    string     `json:"employee_id" db:"employee_id"`
	EmployeeName  string     `json:"employee_name,omitempty" db:"employee_name"`
	Department    string     `json:"department" db:"department"`
	PayDate       string     `json:"pay_date,omitempty" db:"pay_date"`
	Notes         string     `json:"notes,omitempty" db:"notes"`
	HoursWorked   float64    `json:"hours_worked" db:"hours_worked"`
	RegularHours  float64    `json:"regular_hours" db:"regular_hours"`
	OvertimeHours float64    `json:"overtime_hours" db:"overtime_hours"`
	Overtime      bool       `json:"overtime" db:"overtime"`
	HourlyRate    float64    `json:"hourly_rate" db:"hourly_rate"`
	GrossPay      float64    `json:"gross_pay" db:"gross_pay"`
	Tax           float64    `json:"tax" db:"tax"`
	NetPay        float64    `json:"net_pay" db:"net_pay"`
	LoadBatchID   string     `json:"load_batch_id" db:"load_batch_id"`
	SourceFile    string     `json:"source_file" db:"source_file"`
	LoadedAt      time.Time  `json:"loaded_at" db:"loaded_at"`
	SupersededAt  *time.Time `json:"superseded_at,omitempty" db:"superseded_at"`
}

// IngestionLog represents the ingestion_log audit table, one row per
// attempted file
type IngestionLog struct {
	BatchID      string    `json:"batch_id" db:"batch_id"`
	SourceFile   string    `json:"source_file" db:"source_file"`
	Status       string    `json:"status" db:"status"`
	RowsRead     int       `json:"rows_read" db:"rows_read"`
	RowsLoaded   int       `json:"rows_loaded" db:"rows_loaded"`
	RowsRejected int       `json:"rows_rejected" db:"rows_rejected"`
	RowsSkipped  int       `json:"rows_skipped" db:"rows_skipped"`
	Error        string    `json:"error,omitempty" db:"error"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// File statuses recorded in ingestion_log.
const (
	FileStatusLoaded = "loaded"
	FileStatusFailed = "failed"
)

// ==================== BATCH RESULTS ====================

// FileResult is the outcome of loading one source file within a batch
type FileResult struct {
	File         string `json:"file"`
	Status       string `json:"status"`
	RowsRead     int    `json:"rows_read"`
	RowsLoaded   int    `json:"rows_loaded"`
	RowsRejected int    `json:"rows_rejected"`
	RowsSkipped  int    `json:"rows_skipped"`
	Err          error  `json:"-"`
}

// BatchResult is the finalized summary of one batch run across all files.
// Created when the run starts, finalized when the last file is done.
type BatchResult struct {
	BatchID        string          `json:"batch_id"`
	StartedAt      time.Time       `json:"started_at"`
	FilesAttempted int             `json:"files_attempted"`
	FilesSucceeded int             `json:"files_succeeded"`
	RowsLoaded     int             `json:"rows_loaded"`
	RowsRejected   int             `json:"rows_rejected"`
	RowsSkipped    int             `json:"rows_skipped"`
	Files          []FileResult    `json:"files"`
	Rejections     []*RowRejected  `json:"rejections,omitempty"`
	Overtime       []PayrollRecord `json:"-"`
}

// ==================== REPORTING ====================

// DepartmentSummary represents aggregated payroll for one department.
// Always recomputed from payroll_records, never stored as ground truth.
type DepartmentSummary struct {
	Department    string  `json:"department" db:"department"`
	EmployeeCount int     `json:"employee_count" db:"employee_count"`
	TotalHours    float64 `json:"total_hours" db:"total_hours"`
	AvgHours      float64 `json:"avg_hours" db:"avg_hours"`
	TotalGrossPay float64 `json:"total_gross_pay" db:"total_gross_pay"`
	TotalNetPay   float64 `json:"total_net_pay" db:"total_net_pay"`
}

// TopEarner is one row of the top-earners report
type TopEarner struct {
	EmployeeID   string  `json:"employee_id" db:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty" db:"employee_name"`
	Department   string  `json:"department" db:"department"`
	GrossPay     float64 `json:"gross_pay" db:"gross_pay"`
}

// MonthlySummary aggregates pay by calendar month for rows that carry a pay date
type MonthlySummary struct {
	Month         string  `json:"month" db:"month"`
	TotalGrossPay float64 `json:"total_gross_pay" db:"total_gross_pay"`
	TotalTax      float64 `json:"total_tax" db:"total_tax"`
	TotalNetPay   float64 `json:"total_net_pay" db:"total_net_pay"`
}

// DepartmentHours reports average hours worked per department
type DepartmentHours struct {
	Department    string  `json:"department" db:"department"`
	EmployeeCount int     `json:"employee_count" db:"employee_count"`
	AvgHours      float64 `json:"avg_hours" db:"avg_hours"`
}

// ReportTable is a renderer-agnostic tabular report handed to export sinks
type ReportTable struct {
	Name    string
	Title   string
	Columns []string
	Rows    [][]interface{}
	Chart   *ChartSpec
}

// ChartSpec asks a sink for a bar chart over the table; sinks without chart
// support ignore it.
type ChartSpec struct {
	Title    string
	LabelCol int
	ValueCol int
}
