// Package schema validates raw input rows against the payroll record schema.
// Violations are collected per row, never thrown; a bad row is rejected and
// the rest of its file continues.
package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Mimic360/Payroll-ETL-Project/internal/domain"
)

// Required lists the columns every source file must carry.
var Required = []string{
	domain.FieldEmployeeID,
	domain.FieldDepartment,
	domain.FieldHoursWorked,
	domain.FieldHourlyRate,
}

var dateLayouts = []string{"2006-01-02", "2006/01/02", "01/02/2006"}

// Validator checks raw rows field by field
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// CheckHeader verifies that fields contains every required column and returns
// the canonical names of the missing ones.
func (v *Validator) CheckHeader(fields map[string]int) []string {
	var missing []string
	for _, col := range Required {
		if _, ok := fields[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

// ValidateRow returns every violation found in row. An empty result means the
// row is safe to clean and transform.
func (v *Validator) ValidateRow(row domain.RawRow) []*domain.RowRejected {
	var rejects []*domain.RowRejected
	reject := func(field, reason string) {
		rejects = append(rejects, &domain.RowRejected{File: row.File, Row: row.Line, Field: field, Reason: reason})
	}

	if strings.TrimSpace(row.Fields[domain.FieldEmployeeID]) == "" {
		reject(domain.FieldEmployeeID, "empty employee id")
	}
	if strings.TrimSpace(row.Fields[domain.FieldDepartment]) == "" {
		reject(domain.FieldDepartment, "empty department")
	}

	if hours, err := ParseNumber(row.Fields[domain.FieldHoursWorked]); err != nil {
		reject(domain.FieldHoursWorked, err.Error())
	} else if hours < 0 {
		reject(domain.FieldHoursWorked, fmt.Sprintf("negative hours %v", hours))
	}

	if rate, err := ParseNumber(row.Fields[domain.FieldHourlyRate]); err != nil {
		reject(domain.FieldHourlyRate, err.Error())
	} else if rate < 0 {
		reject(domain.FieldHourlyRate, fmt.Sprintf("negative rate %v", rate))
	}

	// pay_date is optional per file; when the column exists the value must parse
	if raw, ok := row.Fields[domain.FieldPayDate]; ok {
		if _, err := ParseDate(raw); err != nil {
			reject(domain.FieldPayDate, err.Error())
		}
	}

	return rejects
}

// ParseNumber parses a numeric field, rejecting NaN and infinities.
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	return f, nil
}

// ParseDate parses a pay date in any of the accepted layouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date: %q", s)
}
