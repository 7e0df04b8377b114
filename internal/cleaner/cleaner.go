// Package cleaner turns raw input rows into canonical payroll records.
package cleaner

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Mimic360/Payroll-ETL-Project/internal/domain"
	"github.com/Mimic360/Payroll-ETL-Project/internal/schema"
	"github.com/Mimic360/Payroll-ETL-Project/internal/tax"
)

// RegularWeekHours is the overtime threshold; hours beyond it are split out
// and the record flagged.
const RegularWeekHours = 40

// Cleaner normalizes raw rows and computes derived pay fields under one
// tax policy. A Cleaner never mutates its input row.
type Cleaner struct {
	validator *schema.Validator
	policy    tax.Policy
	title     cases.Caser
}

func New(policy tax.Policy) *Cleaner {
	return &Cleaner{
		validator: schema.NewValidator(),
		policy:    policy,
		title:     cases.Title(language.English),
	}
}

// Clean validates and transforms one raw row. Exactly one of the returned
// record or rejection list is set; a malformed row yields rejections and
// never a record.
func (c *Cleaner) Clean(row domain.RawRow, batchID string) (*domain.PayrollRecord, []*domain.RowRejected) {
	if rejects := c.validator.ValidateRow(row); len(rejects) > 0 {
		return nil, rejects
	}

	hours, _ := schema.ParseNumber(row.Fields[domain.FieldHoursWorked])
	rate, _ := schema.ParseNumber(row.Fields[domain.FieldHourlyRate])

	rec := &domain.PayrollRecord{
		EmployeeID:  strings.TrimSpace(row.Fields[domain.FieldEmployeeID]),
		Department:  c.CanonicalDepartment(row.Fields[domain.FieldDepartment]),
		HoursWorked: hours,
		HourlyRate:  rate,
		LoadBatchID: batchID,
		SourceFile:  filepath.Base(row.File),
	}

	if name, ok := row.Fields[domain.FieldEmployeeName]; ok && strings.TrimSpace(name) != "" {
		rec.EmployeeName = c.title.String(strings.ToLower(strings.TrimSpace(name)))
	}
	if raw, ok := row.Fields[domain.FieldPayDate]; ok {
		if d, err := schema.ParseDate(raw); err == nil {
			rec.PayDate = d.Format("2006-01-02")
		}
	}
	if notes, ok := row.Fields[domain.FieldNotes]; ok {
		rec.Notes = strings.TrimSpace(notes)
	}

	rec.RegularHours = hours
	if hours > RegularWeekHours {
		rec.Overtime = true
		rec.RegularHours = RegularWeekHours
		rec.OvertimeHours = hours - RegularWeekHours
	}

	rec.GrossPay = hours * rate
	rec.Tax = c.policy.Withhold(rec.GrossPay)
	rec.NetPay = rec.GrossPay - rec.Tax
	return rec, nil
}

// CanonicalDepartment case-folds a department name to its canonical form so
// "Sales", "sales" and " SALES " collapse into one department.
func (c *Cleaner) CanonicalDepartment(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	return c.title.String(strings.ToLower(name))
}
