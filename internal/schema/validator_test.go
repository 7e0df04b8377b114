package schema

import (
	"testing"

	"github.com/Mimic360/Payroll-ETL-Project/internal/domain"
)

func row(fields map[string]string) domain.RawRow {
	return domain.RawRow{File: "test.csv", Line: 1, Fields: fields}
}

func TestValidateRow(t *testing.T) {
	v := NewValidator()

	t.Run("valid row passes", func(t *testing.T) {
		rejects := v.ValidateRow(row(map[string]string{
			domain.FieldEmployeeID:  "E001",
			domain.FieldDepartment:  "Sales",
			domain.FieldHoursWorked: "40",
			domain.FieldHourlyRate:  "25.50",
		}))
		if len(rejects) != 0 {
			t.Errorf("expected no rejections, got %v", rejects)
		}
	})

	t.Run("empty employee id", func(t *testing.T) {
		rejects := v.ValidateRow(row(map[string]string{
			domain.FieldEmployeeID:  "   ",
			domain.FieldDepartment:  "Sales",
			domain.FieldHoursWorked: "40",
			domain.FieldHourlyRate:  "25",
		}))
		if len(rejects) != 1 {
			t.Fatalf("expected 1 rejection, got %d", len(rejects))
		}
		if rejects[0].Field != domain.FieldEmployeeID {
			t.Errorf("expected field %s, got %s", domain.FieldEmployeeID, rejects[0].Field)
		}
	})

	t.Run("empty department", func(t *testing.T) {
		rejects := v.ValidateRow(row(map[string]string{
			domain.FieldEmployeeID:  "E001",
			domain.FieldDepartment:  "",
			domain.FieldHoursWorked: "40",
			domain.FieldHourlyRate:  "25",
		}))
		if len(rejects) != 1 || rejects[0].Field != domain.FieldDepartment {
			t.Errorf("expected department rejection, got %v", rejects)
		}
	})

	t.Run("non-numeric hours", func(t *testing.T) {
		rejects := v.ValidateRow(row(map[string]string{
			domain.FieldEmployeeID:  "E001",
			domain.FieldDepartment:  "Sales",
			domain.FieldHoursWorked: "forty",
			domain.FieldHourlyRate:  "25",
		}))
		if len(rejects) != 1 || rejects[0].Field != domain.FieldHoursWorked {
			t.Errorf("expected hours rejection, got %v", rejects)
		}
	})

	t.Run("negative hours rejected", func(t *testing.T) {
		rejects := v.ValidateRow(row(map[string]string{
			domain.FieldEmployeeID:  "E001",
			domain.FieldDepartment:  "Sales",
			domain.FieldHoursWorked: "-8",
			domain.FieldHourlyRate:  "25",
		}))
		if len(rejects) != 1 || rejects[0].Field != domain.FieldHoursWorked {
			t.Errorf("expected hours rejection, got %v", rejects)
		}
	})

	t.Run("zero hours allowed", func(t *testing.T) {
		rejects := v.ValidateRow(row(map[string]string{
			domain.FieldEmployeeID:  "E001",
			domain.FieldDepartment:  "Sales",
			domain.FieldHoursWorked: "0",
			domain.FieldHourlyRate:  "25",
		}))
		if len(rejects) != 0 {
			t.Errorf("expected no rejections, got %v", rejects)
		}
	})

	t.Run("NaN rate rejected", func(t *testing.T) {
		rejects := v.ValidateRow(row(map[string]string{
			domain.FieldEmployeeID:  "E001",
			domain.FieldDepartment:  "Sales",
			domain.FieldHoursWorked: "40",
			domain.FieldHourlyRate:  "NaN",
		}))
		if len(rejects) != 1 || rejects[0].Field != domain.FieldHourlyRate {
			t.Errorf("expected rate rejection, got %v", rejects)
		}
	})

	t.Run("multiple violations collected", func(t *testing.T) {
		rejects := v.ValidateRow(row(map[string]string{
			domain.FieldEmployeeID:  "",
			domain.FieldDepartment:  "",
			domain.FieldHoursWorked: "abc",
			domain.FieldHourlyRate:  "-1",
		}))
		if len(rejects) != 4 {
			t.Errorf("expected 4 rejections, got %d: %v", len(rejects), rejects)
		}
	})

	t.Run("bad pay date rejected when column present", func(t *testing.T) {
		rejects := v.ValidateRow(row(map[string]string{
			domain.FieldEmployeeID:  "E001",
			domain.FieldDepartment:  "Sales",
			domain.FieldHoursWorked: "40",
			domain.FieldHourlyRate:  "25",
			domain.FieldPayDate:     "not-a-date",
		}))
		if len(rejects) != 1 || rejects[0].Field != domain.FieldPayDate {
			t.Errorf("expected pay date rejection, got %v", rejects)
		}
	})

	t.Run("missing pay date column is fine", func(t *testing.T) {
		rejects := v.ValidateRow(row(map[string]string{
			domain.FieldEmployeeID:  "E001",
			domain.FieldDepartment:  "Sales",
			domain.FieldHoursWorked: "40",
			domain.FieldHourlyRate:  "25",
		}))
		if len(rejects) != 0 {
			t.Errorf("expected no rejections, got %v", rejects)
		}
	})
}

func TestCheckHeader(t *testing.T) {
	v := NewValidator()

	t.Run("all required present", func(t *testing.T) {
		missing := v.CheckHeader(map[string]int{
			domain.FieldEmployeeID:  0,
			domain.FieldDepartment:  1,
			domain.FieldHoursWorked: 2,
			domain.FieldHourlyRate:  3,
		})
		if len(missing) != 0 {
			t.Errorf("expected nothing missing, got %v", missing)
		}
	})

	t.Run("reports missing columns", func(t *testing.T) {
		missing := v.CheckHeader(map[string]int{
			domain.FieldEmployeeID: 0,
			domain.FieldDepartment: 1,
		})
		if len(missing) != 2 {
			t.Errorf("expected 2 missing, got %v", missing)
		}
	})
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-03-15", "2024-03-15", true},
		{"2024/03/15", "2024-03-15", true},
		{"03/15/2024", "2024-03-15", true},
		{" 2024-03-15 ", "2024-03-15", true},
		{"15-03-2024", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, err := ParseDate(c.in)
		if c.ok && err != nil {
			t.Errorf("ParseDate(%q): unexpected error %v", c.in, err)
			continue
		}
		if !c.ok {
			if err == nil {
				t.Errorf("ParseDate(%q): expected error", c.in)
			}
			continue
		}
		if got.Format("2006-01-02") != c.want {
			t.Errorf("ParseDate(%q) = %s, want %s", c.in, got.Format("2006-01-02"), c.want)
		}
	}
}
